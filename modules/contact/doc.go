// Package contact implements the contact-us widget.
//
// Form is the transport-free orchestrator: it tracks the typed values and
// field messages of one form instance, gates the submit button, validates,
// checks the bot-check token and creates a support ticket through the
// backend. Service exposes it over HTTP for plain form posts and Datastar:
//
//	GET  /        form, subject preselected from ?subject=
//	POST /input   typing updates, answers the canSubmit signal
//	POST /        submit, answers the form and the outcome popup
//
// After a successful submit every field except the subject is cleared; after
// a failure the values are kept so the visitor can try again. WithSubmitLimiter
// puts a per-client token bucket in front of POST /.
package contact
