package debounce

import (
	"sync"
	"time"
)

// DefaultDelay is the quiet window used when no delay is configured.
const DefaultDelay = time.Second

// Timer is the pending invocation handle returned by an AfterFunc.
type Timer interface {
	Stop() bool
}

// AfterFunc arms f to run once after d. time.AfterFunc satisfies it through StdAfterFunc.
type AfterFunc func(d time.Duration, f func()) Timer

// StdAfterFunc schedules on the runtime timer.
func StdAfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Debouncer holds at most one pending invocation of its action.
type Debouncer[T any] struct {
	mu        sync.Mutex
	action    func(T)
	delay     time.Duration
	afterFunc AfterFunc
	onPanic   func(any)
	timer     Timer
	gen       uint64
	stopped   bool
}

// Option configures a Debouncer.
type Option func(*config)

type config struct {
	delay     time.Duration
	afterFunc AfterFunc
	onPanic   func(any)
}

// WithDelay sets the quiet window. Non-positive values keep the default.
func WithDelay(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.delay = d
		}
	}
}

// WithAfterFunc replaces the timer source.
func WithAfterFunc(fn AfterFunc) Option {
	return func(c *config) {
		if fn != nil {
			c.afterFunc = fn
		}
	}
}

// WithPanicHandler receives values recovered from a panicking action.
func WithPanicHandler(fn func(any)) Option {
	return func(c *config) {
		c.onPanic = fn
	}
}

// New returns a Debouncer for action.
func New[T any](action func(T), opts ...Option) *Debouncer[T] {
	cfg := config{
		delay:     DefaultDelay,
		afterFunc: StdAfterFunc,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Debouncer[T]{
		action:    action,
		delay:     cfg.delay,
		afterFunc: cfg.afterFunc,
		onPanic:   cfg.onPanic,
	}
}

// Func wraps action into a fire-and-forget debounced callable.
func Func[T any](action func(T), delay time.Duration) func(T) {
	d := New(action, WithDelay(delay))
	return d.Call
}

// Call cancels any pending invocation and schedules action(arg) after the delay.
// Calls after Close are ignored.
func (d *Debouncer[T]) Call(arg T) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}

	d.gen++
	gen := d.gen
	d.timer = d.afterFunc(d.delay, func() {
		d.fire(gen, arg)
	})
}

// Stop cancels the pending invocation, if any. It reports whether one was cancelled.
func (d *Debouncer[T]) Stop() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.stopLocked()
}

// Close stops the pending invocation and rejects further calls.
func (d *Debouncer[T]) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopLocked()
	d.stopped = true
}

// Pending reports whether an invocation is armed.
func (d *Debouncer[T]) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

// Delay returns the configured quiet window.
func (d *Debouncer[T]) Delay() time.Duration {
	return d.delay
}

func (d *Debouncer[T]) stopLocked() bool {
	if d.timer == nil {
		return false
	}
	d.gen++
	d.timer.Stop()
	d.timer = nil
	return true
}

// fire runs the action unless a later Call or Stop superseded this invocation.
func (d *Debouncer[T]) fire(gen uint64, arg T) {
	d.mu.Lock()
	if gen != d.gen {
		d.mu.Unlock()
		return
	}
	d.timer = nil
	onPanic := d.onPanic
	d.mu.Unlock()

	defer func() {
		if r := recover(); r != nil && onPanic != nil {
			onPanic(r)
		}
	}()
	d.action(arg)
}
