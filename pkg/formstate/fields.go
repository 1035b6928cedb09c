package formstate

import (
	"strings"

	"github.com/dmitrymomot/widgetkit/pkg/validator"
)

// Field describes how one input is validated.
// CharsKey, when set, replaces Key for input that contains special characters or starts
// with a digit.
type Field struct {
	Name     string
	Check    func(string) bool
	Key      string
	CharsKey string
	Args     []string
}

func Username(name string) Field {
	return Field{
		Name:     name,
		Check:    validator.IsValidUsername,
		Key:      validator.KeyUsername,
		CharsKey: validator.KeyUsernameChars,
	}
}

func DisplayName(name string) Field {
	return Field{
		Name:     name,
		Check:    validator.IsValidDisplayName,
		Key:      validator.KeyDisplayName,
		CharsKey: validator.KeyDisplayNameChars,
	}
}

// FirstName only requires a non-blank value.
func FirstName(name string) Field {
	return Required(name, validator.KeyFirstName)
}

func Password(name string) Field {
	return Field{Name: name, Check: validator.IsValidPassword, Key: validator.KeyPassword}
}

func Email(name string) Field {
	return Field{Name: name, Check: validator.IsValidEmail, Key: validator.KeyEmail}
}

func MobileNumber(name string) Field {
	return Field{Name: name, Check: validator.IsValidMobileNumber, Key: validator.KeyMobileNumber}
}

// Required accepts any non-blank value and reports key otherwise.
func Required(name, key string) Field {
	return Field{
		Name:  name,
		Check: func(s string) bool { return strings.TrimSpace(s) != "" },
		Key:   key,
	}
}
