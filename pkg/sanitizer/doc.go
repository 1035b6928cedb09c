// Package sanitizer cleans visitor input before it leaves the widgets.
//
// Markup is removed with a bluemonday strict policy and the result is plain
// text; templ escapes it again when it is rendered. The field helpers Name,
// Email and Body compose the small string transforms of this package and
// enforce the length limits the backend accepts:
//
//	in := backend.TicketInput{
//		Name:         sanitizer.Name(form.Name),
//		Body:         sanitizer.Body(form.Body),
//		EmailAddress: sanitizer.Email(form.Email),
//	}
//
// Apply and Compose build custom chains from any func(string) string.
// MaskEmail shortens addresses for log records.
package sanitizer
