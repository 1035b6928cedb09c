package binder

import (
	"net/http"
)

// Query binds URL query parameters into fields tagged `query:"name"`.
// The datastar parameter is left to Signals.
func Query() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		values := r.URL.Query()
		values.Del(datastarQueryParam)
		if len(values) == 0 {
			return ErrNotApplicable
		}
		return bindValues(v, "query", values, ErrFailedToParseQuery)
	}
}
