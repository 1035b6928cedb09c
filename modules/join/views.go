package join

import (
	"context"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/widgetkit/modules/internal/view"
)

// ErrorSlotID is the id request errors are patched into. Error handlers
// passed to WithErrorHandler should target it.
const ErrorSlotID = "join-error"

type GenderOption struct {
	Value    string
	Label    string
	Selected bool
}

type Candidate struct {
	ID    string
	Label string
}

// LocationParams contains data for rendering the location field and its
// candidate list.
type LocationParams struct {
	SessionID  string
	Action     string
	Text       string
	Valid      bool
	Message    string
	ShowList   bool
	Candidates []Candidate
	NoResult   string
}

// WidgetParams contains data for rendering the whole join widget.
type WidgetParams struct {
	SessionID string
	Action    string
	Genders   GenderParams
	Location  LocationParams
}

// GenderParams contains data for rendering both gender pickers.
type GenderParams struct {
	Action     string
	Gender     []GenderOption
	LookingFor []GenderOption
	Message    string
}

// Views render the widget and the fragments patched while the visitor works
// through it. Every fragment keeps a stable id.
type Views struct {
	Widget     func(WidgetParams) templ.Component
	Genders    func(GenderParams) templ.Component
	Location   func(LocationParams) templ.Component
	Candidates func(LocationParams) templ.Component
}

func DefaultViews() *Views {
	return &Views{
		Widget:     widgetView,
		Genders:    gendersView,
		Location:   locationView,
		Candidates: candidatesView,
	}
}

func widgetView(p WidgetParams) templ.Component {
	return view.Func(func(ctx context.Context, w *view.Writer) {
		w.Raw(`<div id="join-widget">`)
		w.Raw(`<h2>Find your ideal date from thousands of members!</h2>`)
		w.Printf(`<form method="post" action="%s" autocomplete="off" data-on-submit__prevent="@post('%s', {contentType: 'form'})">`, p.Action, p.Action)
		w.Printf(`<input type="hidden" name="sessionId" value="%s">`, p.SessionID)

		w.Component(ctx, gendersView(p.Genders))

		w.Component(ctx, locationView(p.Location))

		view.ErrorSlot(w, ErrorSlotID)
		w.Raw(`<button type="submit" class="join">Join for free</button>`)
		w.Raw(`<p class="terms">By joining you certify that you are over 18 and agree to the RSVP `)
		w.Raw(`<a href="/terms-of-service">Terms of Service</a> and <a href="/privacy-policy">Privacy Policy</a></p>`)
		w.Raw(`</form>`)
		w.Printf(`<div id="join-stream" hidden data-on-load="@get('%s/stream?sessionId=%s')"></div>`, p.Action, p.SessionID)
		w.Raw(`</div>`)
	})
}

func gendersView(p GenderParams) templ.Component {
	return view.Func(func(ctx context.Context, w *view.Writer) {
		w.Raw(`<div id="join-genders">`)
		genderGroup(w, p.Action, "I am a", FieldGender, p.Gender)
		genderGroup(w, p.Action, "Looking for a", FieldLookingFor, p.LookingFor)
		view.FieldMessage(w, "join-gender", p.Message)
		w.Raw(`</div>`)
	})
}

func genderGroup(w *view.Writer, action, legend, name string, options []GenderOption) {
	w.Printf(`<fieldset class="gender" id="join-%s"><legend>%s</legend>`, name, legend)
	for _, o := range options {
		w.Printf(`<label><input type="radio" name="%s" value="%s" data-on-change="@post('%s/gender', {contentType: 'form'})"`, name, o.Value, action)
		w.Raw(view.Checked(o.Selected, "checked"))
		w.Printf(`>%s</label>`, o.Label)
	}
	w.Raw(`</fieldset>`)
}

func locationView(p LocationParams) templ.Component {
	return view.Func(func(ctx context.Context, w *view.Writer) {
		w.Raw(`<div id="join-location-field" class="location">`)
		w.Printf(`<input id="join-location" name="location" value="%s" placeholder="My location (Suburb, town or postcode)"`, p.Text)
		if !p.Valid || p.Message != "" {
			w.Raw(` aria-invalid="true"`)
		}
		w.Printf(` data-on-input="@post('%s/location', {contentType: 'form'})"`, p.Action)
		w.Printf(` data-on-blur="@post('%s/location/blur', {contentType: 'form'})">`, p.Action)
		w.Component(ctx, candidatesView(p))
		view.FieldMessage(w, "join-location", p.Message)
		w.Raw(`</div>`)
	})
}

func candidatesView(p LocationParams) templ.Component {
	return view.Func(func(ctx context.Context, w *view.Writer) {
		if !p.ShowList {
			w.Raw(`<ul id="join-location-list" role="listbox" hidden></ul>`)
			return
		}
		w.Raw(`<ul id="join-location-list" role="listbox">`)
		if len(p.Candidates) == 0 {
			w.Printf(`<li class="empty" aria-disabled="true">%s</li>`, p.NoResult)
		}
		for _, c := range p.Candidates {
			w.Printf(`<li role="option"><button type="submit" name="locationId" value="%s" formaction="%s/location/select"`, c.ID, p.Action)
			w.Printf(` data-on-click__prevent="@post('%s/location/select?locationId=%s', {contentType: 'form'})">%s</button></li>`, p.Action, c.ID, c.Label)
		}
		w.Raw(`</ul>`)
	})
}
