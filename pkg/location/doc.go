// Package location implements the debounced location autocomplete used by the
// join widget.
//
// A Lookup owns the state of one input field. Keystrokes go to Type, which
// arms a debounced search (one second by default); the search result becomes
// the candidate list unless a newer search has already been applied.
// Select fixes a candidate, Blur marks the field invalid when nothing usable
// was entered, and Subscribe streams state snapshots to the page:
//
//	l := location.New(api, location.WithLogger(log))
//	defer l.Close()
//	updates, cancel := l.Subscribe()
//	defer cancel()
//	l.Type("syd")
//
// Failed searches are logged and shown as an empty result.
package location
