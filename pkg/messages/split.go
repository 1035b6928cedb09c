package messages

import "strings"

const splitMarker = "\x00"

// Around renders key with placeholder substituted by a marker and returns the
// text before and after it, so a view can style the value on its own, e.g.
// the ticket id inside "Support ticket %{id} has been created.". When the
// text has no such placeholder, before holds all of it.
func Around(t Table, key, placeholder string) (before, after string) {
	text := t.T(key, placeholder, splitMarker)
	before, after, _ = strings.Cut(text, splitMarker)
	return before, after
}

type keyTable struct{}

func (keyTable) T(key string, _ ...string) string { return key }

// Keys is a Table that renders every key verbatim. Useful as a default and in tests.
func Keys() Table { return keyTable{} }
