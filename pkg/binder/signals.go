package binder

import (
	"errors"
	"fmt"
	"mime"
	"net/http"

	"github.com/starfederation/datastar-go/datastar"
)

const datastarQueryParam = "datastar"

// Signals binds the Datastar signal store sent with a request into fields
// tagged `json:"name"`. GET requests carry the signals in the datastar query
// parameter, other methods send them as a JSON body. Requests that carry no
// signals yield ErrNotApplicable.
func Signals() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		if !hasSignals(r) {
			return ErrNotApplicable
		}
		if r.Body != nil {
			r.Body = http.MaxBytesReader(nil, r.Body, MaxFormSize)
		}
		if err := datastar.ReadSignals(r, v); err != nil {
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				return fmt.Errorf("%w: %w", ErrFailedToParseSignals, ErrBodyTooLarge)
			}
			return fmt.Errorf("%w: %w", ErrFailedToParseSignals, err)
		}
		return nil
	}
}

func hasSignals(r *http.Request) bool {
	if r.Method == http.MethodGet || r.Method == http.MethodDelete {
		return r.URL.Query().Has(datastarQueryParam)
	}
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return mediaType == "application/json"
}
