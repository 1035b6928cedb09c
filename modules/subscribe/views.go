package subscribe

import (
	"context"
	"strconv"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/widgetkit/modules/internal/view"
)

// ErrorSlotID is the id request errors are patched into. Error handlers
// passed to WithErrorHandler should target it.
const ErrorSlotID = "subscribe-error"

type StateOption struct {
	Value    string
	Label    string
	Selected bool
}

// ModalParams contains data for rendering the subscription modal.
type ModalParams struct {
	SessionID  string
	Action     string
	Open       bool
	Values     Values
	States     []StateOption
	Messages   map[string]string
	Success    string
	CloseAfter int64 // milliseconds
	Error      string
}

type Views struct {
	Modal func(ModalParams) templ.Component
}

func DefaultViews() *Views {
	return &Views{Modal: modalView}
}

func modalView(p ModalParams) templ.Component {
	return view.Func(func(ctx context.Context, w *view.Writer) {
		if !p.Open {
			w.Printf(`<div id="subscribe-modal" hidden data-on-keep-me-posted__window="@post('%s/open', {contentType: 'form', payload: {sessionId: '%s'}})"></div>`, p.Action, p.SessionID)
			return
		}

		w.Raw(`<div id="subscribe-modal" role="dialog" aria-modal="true">`)
		w.Printf(`<button type="button" class="close" data-on-click="@post('%s/close', {contentType: 'form', payload: {sessionId: '%s'}})">&times;</button>`, p.Action, p.SessionID)
		w.Raw(`<h2>Subscribe To Events</h2>`)

		if p.Success != "" {
			w.Printf(`<p class="success" data-on-load__delay.%sms="@post('%s/close', {contentType: 'form', payload: {sessionId: '%s'}})">%s</p></div>`,
				strconv.FormatInt(p.CloseAfter, 10), p.Action, p.SessionID, p.Success)
			return
		}

		w.Printf(`<form method="post" action="%s" autocomplete="off" data-on-submit__prevent="@post('%s', {contentType: 'form'})">`, p.Action, p.Action)
		w.Printf(`<input type="hidden" name="sessionId" value="%s">`, p.SessionID)
		w.Printf(`<input id="subscribe-name" name="name" placeholder="Name" value="%s">`, p.Values.Name)
		view.FieldMessage(w, "subscribe-name", p.Messages[FieldName])
		w.Printf(`<input id="subscribe-email" name="emailAddress" type="email" placeholder="Email" value="%s">`, p.Values.Email)
		view.FieldMessage(w, "subscribe-email", p.Messages[FieldEmail])

		w.Raw(`<label for="subscribe-state">State: </label><select id="subscribe-state" name="state">`)
		for _, s := range p.States {
			w.Printf(`<option value="%s"`, s.Value)
			w.Raw(view.Checked(s.Selected, "selected"))
			w.Printf(`>%s</option>`, s.Label)
		}
		w.Raw(`</select>`)

		if p.Error != "" {
			w.Printf(`<p class="error" role="alert">%s</p>`, p.Error)
		}
		view.ErrorSlot(w, ErrorSlotID)
		w.Raw(`<button type="submit">Subscribe</button></form></div>`)
	})
}
