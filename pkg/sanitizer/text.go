package sanitizer

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	spaceRun    = regexp.MustCompile(`[^\S\n]+`)
	anySpaceRun = regexp.MustCompile(`\s+`)
	blankLines  = regexp.MustCompile(`\n{3,}`)
)

func Trim(s string) string {
	return strings.TrimSpace(s)
}

// MaxLength truncates s to maxLen runes.
func MaxLength(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen])
}

// NormalizeNewlines converts CRLF and lone CR line endings to LF.
func NormalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// RemoveControlChars drops control characters except newlines and tabs.
func RemoveControlChars(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && r != '\n' && r != '\t' {
			return -1
		}
		return r
	}, s)
}

// SingleLine collapses every whitespace run, line breaks included, into one space.
func SingleLine(s string) string {
	return strings.TrimSpace(anySpaceRun.ReplaceAllString(s, " "))
}

// CollapseSpaces collapses horizontal whitespace and limits blank lines to one,
// keeping paragraph breaks.
func CollapseSpaces(s string) string {
	lines := strings.Split(spaceRun.ReplaceAllString(s, " "), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return strings.TrimSpace(blankLines.ReplaceAllString(strings.Join(lines, "\n"), "\n\n"))
}

// MaskEmail keeps the first character of the local part and the domain, e.g.
// "jane@example.com" becomes "j***@example.com". Used for log records.
func MaskEmail(email string) string {
	email = strings.TrimSpace(email)
	at := strings.LastIndex(email, "@")
	if at <= 0 {
		return "***"
	}
	first := []rune(email[:at])[0]
	return string(first) + "***" + email[at:]
}
