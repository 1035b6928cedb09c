// Package formstate tracks per-field validation messages for one form instance.
//
// A Session is created with the fields a widget validates. Each field is Untouched until
// its first validation, then Invalid (message set) or Valid (message cleared):
//
//	s := formstate.New(catalog.For("en"), formstate.Email("emailAddress"), formstate.DisplayName("name"))
//	if !s.Validate("emailAddress", input) {
//		msg := s.Message("emailAddress")
//	}
//
// Messages are resolved through a messages.Table so the widget renders localized text.
// SetMessage and ClearMessage bypass the validators for errors reported by the server.
package formstate
