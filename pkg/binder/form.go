package binder

import (
	"errors"
	"fmt"
	"mime"
	"net/http"
)

// MaxFormSize caps urlencoded widget submissions.
const MaxFormSize = 64 << 10

// Form binds application/x-www-form-urlencoded bodies into fields tagged
// `form:"name"`. Other content types yield ErrNotApplicable.
func Form() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
		if mediaType != "application/x-www-form-urlencoded" {
			return ErrNotApplicable
		}

		r.Body = http.MaxBytesReader(nil, r.Body, MaxFormSize)
		if err := r.ParseForm(); err != nil {
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				return fmt.Errorf("%w: %w", ErrFailedToParseForm, ErrBodyTooLarge)
			}
			return fmt.Errorf("%w: %w", ErrFailedToParseForm, err)
		}
		return bindValues(v, "form", r.PostForm, ErrFailedToParseForm)
	}
}
