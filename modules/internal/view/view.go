// Package view holds the markup helpers shared by the default widget views.
// Hosts that need their own markup replace the views of a module instead.
package view

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// Writer collects markup and remembers the first write error.
type Writer struct {
	w   io.Writer
	err error
}

func (w *Writer) Raw(s string) {
	if w.err == nil {
		_, w.err = io.WriteString(w.w, s)
	}
}

// Printf writes format with every argument HTML-escaped.
func (w *Writer) Printf(format string, args ...any) {
	escaped := make([]any, len(args))
	for i, a := range args {
		escaped[i] = templ.EscapeString(fmt.Sprint(a))
	}
	w.Raw(fmt.Sprintf(format, escaped...))
}

// Component renders a nested component into the same output.
func (w *Writer) Component(ctx context.Context, c templ.Component) {
	if w.err == nil && c != nil {
		w.err = c.Render(ctx, w.w)
	}
}

// Func builds a component from a render function.
func Func(render func(ctx context.Context, w *Writer)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := &Writer{w: out}
		render(ctx, w)
		return w.err
	})
}

// FieldMessage renders the message slot of a field. It is always present so
// Datastar can patch it by id.
func FieldMessage(w *Writer, id, msg string) {
	if msg == "" {
		w.Printf(`<p id="%s-message" class="field-message" hidden></p>`, id)
		return
	}
	w.Printf(`<p id="%s-message" class="field-message" role="alert">%s</p>`, id, msg)
}

// Checked returns the attribute for a selected option or checkbox.
func Checked(ok bool, attr string) string {
	if ok {
		return " " + attr
	}
	return ""
}

// JSString quotes s for use inside a Datastar expression.
func JSString(s string) string {
	return "'" + strings.NewReplacer(`\`, `\\`, `'`, `\'`, "\n", `\n`).Replace(s) + "'"
}

// ErrorSlot is the element request errors are patched into.
func ErrorSlot(w *Writer, id string) {
	w.Printf(`<div id="%s" class="widget-error" role="alert" aria-live="polite"></div>`, id)
}
