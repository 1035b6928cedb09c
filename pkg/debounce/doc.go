// Package debounce delays an action until calls to it stop arriving.
//
// Every Call replaces the pending invocation and restarts the quiet window, so only the
// argument of the last call in a burst reaches the action:
//
//	d := debounce.New(func(keyword string) { search(keyword) })
//	d.Call("s")
//	d.Call("sy")
//	d.Call("syd") // search("syd") runs once, 1s after this call
//
// Actions run on their own goroutine. A panic inside an action is recovered and passed to
// the handler set with WithPanicHandler; it never reaches the caller and is not retried.
package debounce
