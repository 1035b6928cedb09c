package validator

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	emailRegex = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

	// Shape only; consecutive separators and the trailing character are checked separately
	// because RE2 has no look-around.
	usernameShapeRegex    = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9._]{3,29}$`)
	displayNameShapeRegex = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9._ ]{3,29}$`)

	specialCharsRegex = regexp.MustCompile(`[^A-Za-z0-9]`)

	// AU: 61 + (0 + 9 digits | 4 + 8 digits); NZ: 64 + (0 + 9 digits | 2 + 7..9 digits).
	mobileRegex = regexp.MustCompile(`^(?:61(?:0[0-9]{9}|4[0-9]{8})|64(?:0[0-9]{9}|2[0-9]{7,9}))$`)
)

const passwordSymbols = "#?!@$%^&*-"

// IsValidEmail reports whether text has the local-part@domain.tld shape.
func IsValidEmail(text string) bool {
	return emailRegex.MatchString(text)
}

// IsValidPassword requires at least 8 characters, one letter and one digit or symbol from #?!@$%^&*-.
func IsValidPassword(text string) bool {
	if utf8.RuneCountInString(text) < 8 || strings.ContainsAny(text, "\n\r") {
		return false
	}

	var hasLetter, hasDigitOrSymbol bool
	for _, r := range text {
		switch {
		case isASCIILetter(r):
			hasLetter = true
		case isASCIIDigit(r), strings.ContainsRune(passwordSymbols, r):
			hasDigitOrSymbol = true
		}
	}
	return hasLetter && hasDigitOrSymbol
}

// IsValidUsername accepts 4-30 characters starting with a letter, followed by letters,
// digits, dots or underscores, without doubled separators and not ending in a separator.
func IsValidUsername(text string) bool {
	return usernameShapeRegex.MatchString(text) && separatorsOK(text)
}

// IsValidDisplayName is IsValidUsername with spaces allowed after the first character.
func IsValidDisplayName(text string) bool {
	return displayNameShapeRegex.MatchString(text) && separatorsOK(text)
}

// HasSpecialChars reports whether text contains anything outside [A-Za-z0-9].
func HasSpecialChars(text string) bool {
	return specialCharsRegex.MatchString(text)
}

// StartsWithDigit reports whether the first character of text is an ASCII digit.
func StartsWithDigit(text string) bool {
	return text != "" && isASCIIDigit(rune(text[0]))
}

// IsValidMobileNumber accepts Australian and New Zealand numbers in international form
// without a leading plus, e.g. 61412345678 or 6421234567.
func IsValidMobileNumber(text string) bool {
	return mobileRegex.MatchString(text)
}

// IsInRange reports whether the character count of text is within [min, max].
func IsInRange(text string, min, max int) bool {
	n := utf8.RuneCountInString(text)
	return n >= min && n <= max
}

func separatorsOK(text string) bool {
	if strings.Contains(text, "..") || strings.Contains(text, "__") ||
		strings.Contains(text, "._") || strings.Contains(text, "_.") {
		return false
	}
	last := text[len(text)-1]
	return last != '.' && last != '_'
}

func isASCIILetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isASCIIDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
