package contact

import "errors"

var (
	// ErrSubmitInProgress rejects a submit while another one of the same form is running.
	ErrSubmitInProgress = errors.New("contact: submit already in progress")
	// ErrInvalid means local validation failed; field messages are set on the form.
	ErrInvalid = errors.New("contact: form is invalid")
	// ErrBotCheck means the bot-check token was missing or not accepted.
	ErrBotCheck = errors.New("contact: bot check failed")
	// ErrSubmitFailed means the ticket could not be created.
	ErrSubmitFailed = errors.New("contact: ticket was not created")
)
