package handler

import (
	"encoding/json"
	"net/http"

	"github.com/a-h/templ"
	"github.com/starfederation/datastar-go/datastar"
)

// TemplOption configures how a fragment is patched into the page.
type TemplOption = datastar.PatchElementOption

// WithTarget patches the element matched by selector instead of the element
// with the fragment's id.
func WithTarget(selector string) TemplOption {
	return datastar.WithSelector(selector)
}

func WithPatchMode(mode datastar.ElementPatchMode) TemplOption {
	return datastar.WithMode(mode)
}

// TemplPatch is one fragment of a TemplMulti response.
type TemplPatch struct {
	Component templ.Component
	Options   []TemplOption
}

func Patch(component templ.Component, opts ...TemplOption) TemplPatch {
	return TemplPatch{Component: component, Options: opts}
}

type templResponse struct {
	status  int
	patches []TemplPatch
	signals map[string]any
}

// Render sends one element patch per fragment to Datastar clients and the
// concatenated HTML to everyone else.
func (t templResponse) Render(w http.ResponseWriter, r *http.Request) error {
	if IsDataStar(r) {
		sse := datastar.NewSSE(w, r)
		for _, p := range t.patches {
			if err := sse.PatchElementTempl(p.Component, p.Options...); err != nil {
				return err
			}
		}
		if len(t.signals) == 0 {
			return nil
		}
		data, err := json.Marshal(t.signals)
		if err != nil {
			return err
		}
		return sse.PatchSignals(data)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if t.status != 0 {
		w.WriteHeader(t.status)
	}
	for _, p := range t.patches {
		if err := p.Component.Render(r.Context(), w); err != nil {
			return err
		}
	}
	return nil
}

// Templ renders a single component.
func Templ(component templ.Component, opts ...TemplOption) Response {
	return templResponse{patches: []TemplPatch{Patch(component, opts...)}}
}

// TemplWithStatus renders component with a non-200 status for plain requests.
// Datastar responses are always 200 because the stream carries the result.
func TemplWithStatus(status int, component templ.Component, opts ...TemplOption) Response {
	return templResponse{status: status, patches: []TemplPatch{Patch(component, opts...)}}
}

// TemplMulti renders several fragments, e.g. a field message and the submit button.
func TemplMulti(patches ...TemplPatch) Response {
	return templResponse{patches: patches}
}

// TemplSignals renders fragments and then patches signals, e.g. a fresh form
// together with canSubmit=false. Plain requests only get the HTML.
func TemplSignals(status int, signals map[string]any, patches ...TemplPatch) Response {
	return templResponse{status: status, patches: patches, signals: signals}
}
