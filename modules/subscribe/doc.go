// Package subscribe implements the event-subscription modal.
//
// Modal holds the dialog state of one visitor: open or closed, the typed
// name, email and state, and the field messages. The host page opens it
// explicitly, either by loading the widget with ?open=true or by posting to
// /open (the default view does so on a keep-me-posted window event).
// A successful subscription shows "Subscribed!" and closes the modal after
// DefaultCloseAfter; closing clears every message.
package subscribe
