package sanitizer

// Length limits applied to widget input before it is sent to the backend.
const (
	MaxNameLength  = 100
	MaxEmailLength = 254
	MaxBodyLength  = 5000
)

// Name cleans a person's name: plain text on one line.
func Name(s string) string {
	return Apply(s,
		RemoveControlChars,
		StripHTML,
		SingleLine,
		func(s string) string { return MaxLength(s, MaxNameLength) },
	)
}

// Email trims an address and drops anything that cannot be part of one.
// Case is preserved; validation happens separately.
func Email(s string) string {
	return Apply(s,
		RemoveControlChars,
		SingleLine,
		func(s string) string { return MaxLength(s, MaxEmailLength) },
	)
}

// Body cleans a free-text message. Paragraph breaks survive, markup does not.
func Body(s string) string {
	return Apply(s,
		NormalizeNewlines,
		RemoveControlChars,
		StripHTML,
		CollapseSpaces,
		func(s string) string { return MaxLength(s, MaxBodyLength) },
	)
}
