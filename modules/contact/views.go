package contact

import (
	"context"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/widgetkit/modules/internal/view"
)

// ErrorSlotID is the id request errors are patched into. Error handlers
// passed to WithErrorHandler should target it.
const ErrorSlotID = "contact-error"

// SubjectOption is a subject ready to render.
type SubjectOption struct {
	Value    string
	Label    string
	Selected bool
}

// FormParams contains data for rendering the contact form.
type FormParams struct {
	SessionID string
	Action    string
	Subjects  []SubjectOption
	Values    Values
	Messages  map[string]string
	CanSubmit bool
	SiteKey   string
	// DevToken renders a fixed bot-check token instead of the widget.
	DevToken bool
}

// ResultParams contains data for rendering the outcome popup.
type ResultParams struct {
	Success      bool
	Confirmation Confirmation
	Message      string
}

// Views renders the widget. Hosts may replace any of them.
type Views struct {
	Form   func(FormParams) templ.Component
	Result func(ResultParams) templ.Component
}

// DefaultViews renders plain, unstyled markup wired for Datastar.
func DefaultViews() *Views {
	return &Views{Form: formView, Result: resultView}
}

func formView(p FormParams) templ.Component {
	return view.Func(func(ctx context.Context, w *view.Writer) {
		w.Printf(`<form id="contact-form" method="post" action="%s" data-signals-can-submit="%s" `, p.Action, boolJS(p.CanSubmit))
		w.Printf(`data-on-input__debounce.300ms="@post('%s/input', {contentType: 'form'})" `, p.Action)
		w.Printf(`data-on-submit__prevent="@post('%s', {contentType: 'form'})">`, p.Action)
		w.Printf(`<input type="hidden" name="sessionId" value="%s">`, p.SessionID)

		w.Printf(`<label for="name">Name</label><input id="name" name="name" value="%s">`, p.Values.Name)
		view.FieldMessage(w, FieldName, p.Messages[FieldName])

		w.Printf(`<label for="emailAddress">Email</label><input id="emailAddress" name="emailAddress" type="email" value="%s">`, p.Values.Email)
		view.FieldMessage(w, FieldEmail, p.Messages[FieldEmail])

		w.Raw(`<label for="subject">Subject</label><select id="subject" name="subject">`)
		for _, s := range p.Subjects {
			w.Printf(`<option value="%s"`, s.Value)
			w.Raw(view.Checked(s.Selected, "selected"))
			w.Printf(`>%s</option>`, s.Label)
		}
		w.Raw(`</select>`)

		w.Printf(`<label for="body">Message</label><textarea id="body" name="body">%s</textarea>`, p.Values.Body)
		view.FieldMessage(w, FieldBody, p.Messages[FieldBody])

		if p.SiteKey != "" {
			w.Printf(`<div class="g-recaptcha" data-sitekey="%s"></div>`, p.SiteKey)
		} else if p.DevToken {
			w.Raw(`<input type="hidden" name="g-recaptcha-response" value="development">`)
		}
		view.FieldMessage(w, FieldBotCheck, p.Messages[FieldBotCheck])

		w.Raw(`<button id="contact-submit" type="submit" data-attr-disabled="!$canSubmit"`)
		w.Raw(view.Checked(!p.CanSubmit, "disabled"))
		w.Raw(`>Submit</button>`)
		view.ErrorSlot(w, ErrorSlotID)
		w.Raw(`</form>`)
	})
}

func resultView(p ResultParams) templ.Component {
	return view.Func(func(ctx context.Context, w *view.Writer) {
		if !p.Success && p.Message == "" {
			w.Raw(`<div id="contact-result" hidden></div>`)
			return
		}
		w.Raw(`<div id="contact-result" role="dialog">`)
		if p.Success {
			w.Printf(`<p>%s<strong>%s</strong>%s</p>`, p.Confirmation.Before, p.Confirmation.TicketID, p.Confirmation.After)
		} else {
			w.Printf(`<p>%s</p>`, p.Message)
		}
		w.Raw(`</div>`)
	})
}

func boolJS(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
