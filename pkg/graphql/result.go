package graphql

// Result is the outcome of a remote call: a value or a classified failure.
type Result[T any] struct {
	value T
	err   error
	kind  ErrorKind
}

func Ok[T any](v T) Result[T] {
	return Result[T]{value: v}
}

// Fail builds a failed result. The kind is derived from err.
func Fail[T any](err error) Result[T] {
	kind := KindOf(err)
	if kind == KindNone {
		kind = KindUnknown
	}
	return Result[T]{err: err, kind: kind}
}

func (r Result[T]) IsOk() bool {
	return r.err == nil && r.kind == KindNone
}

// Value returns the decoded value and whether the call succeeded.
func (r Result[T]) Value() (T, bool) {
	return r.value, r.IsOk()
}

func (r Result[T]) Err() error {
	return r.err
}

func (r Result[T]) Kind() ErrorKind {
	return r.kind
}

// Unwrap returns the value and error in the usual Go form.
func (r Result[T]) Unwrap() (T, error) {
	return r.value, r.err
}

// Map converts a successful result, passing failures through unchanged.
func Map[T, U any](r Result[T], fn func(T) (U, error)) Result[U] {
	if !r.IsOk() {
		return Result[U]{err: r.err, kind: r.kind}
	}
	u, err := fn(r.value)
	if err != nil {
		return Fail[U](err)
	}
	return Ok(u)
}
