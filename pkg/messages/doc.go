// Package messages provides the widget message table: a fixed vocabulary of keys mapped
// to localized strings.
//
// Tables are loaded from YAML through an Adapter. Each top level key of the document is a
// language code holding a flat key to string map:
//
//	en:
//	  emailValidation: "Please enter a valid email address."
//	  ticketCreated: "Support ticket %{id} has been created. Thank you for contacting us."
//
// Placeholders use the %{name} form and are filled from key/value argument pairs:
//
//	catalog.T("en", messages.KeyTicketCreated, "id", "42")
//
// A Catalog negotiates the request language from Accept-Language with
// golang.org/x/text/language, and Middleware stores the result in the request context so
// handlers can call Tc or For(GetLocale(ctx)).
//
// Default returns a Catalog backed by the embedded English table, which covers every key
// the widgets use.
package messages
