package messages

import (
	"net/http"
	"slices"
	"strings"
)

// maxAcceptLanguageLength caps the header before parsing.
const maxAcceptLanguageLength = 4096

// Middleware negotiates the request language and stores it in the request context.
// An explicit "lang" query parameter naming a loaded language wins over Accept-Language.
func Middleware(c *Catalog) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lang := ""
			if q := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("lang"))); q != "" {
				if slices.Contains(c.Languages(), q) {
					lang = q
				}
			}
			if lang == "" {
				lang = c.Match(r.Header.Get("Accept-Language"))
			}

			next.ServeHTTP(w, r.WithContext(SetLocale(r.Context(), lang)))
		})
	}
}
