package validator

import (
	"fmt"
	"strings"
)

// Translation keys understood by the widget message table.
const (
	KeyRequired         = "fieldRequired"
	KeyEmail            = "emailValidation"
	KeyPassword         = "passwordValidation"
	KeyUsername         = "usernameTooltip"
	KeyUsernameChars    = "usernameValidationError"
	KeyFirstName        = "firstNameTooltip"
	KeyDisplayName      = "displayNameTooltip"
	KeyDisplayNameChars = "displayNameValidationError"
	KeyMobileNumber     = "mobileValidation"
	KeyLength           = "lengthValidation"
)

// Required validates that a string is not empty after trimming whitespace.
func Required(field, value string) Rule {
	return RequiredWithKey(field, value, KeyRequired)
}

// RequiredWithKey is Required reporting a widget specific translation key.
func RequiredWithKey(field, value, key string) Rule {
	return Rule{
		Check: func() bool {
			return strings.TrimSpace(value) != ""
		},
		Error: ValidationError{
			Field:          field,
			Message:        "field is required",
			TranslationKey: key,
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}

// InRange validates that the value has between min and max characters, inclusive.
func InRange(field, value string, min, max int) Rule {
	return Rule{
		Check: func() bool {
			return IsInRange(value, min, max)
		},
		Error: ValidationError{
			Field:          field,
			Message:        fmt.Sprintf("must be between %d and %d characters long", min, max),
			TranslationKey: KeyLength,
			TranslationValues: map[string]any{
				"field": field,
				"min":   min,
				"max":   max,
			},
		},
	}
}

func Email(field, value string) Rule {
	return Rule{
		Check: func() bool { return IsValidEmail(value) },
		Error: ValidationError{
			Field:             field,
			Message:           "must be a valid email address",
			TranslationKey:    KeyEmail,
			TranslationValues: map[string]any{"field": field},
		},
	}
}

func Password(field, value string) Rule {
	return Rule{
		Check: func() bool { return IsValidPassword(value) },
		Error: ValidationError{
			Field:             field,
			Message:           "must be at least 8 characters with a letter and a number or symbol",
			TranslationKey:    KeyPassword,
			TranslationValues: map[string]any{"field": field},
		},
	}
}

// Username reports the "invalid characters" key when the value contains special characters
// or starts with a digit, and the generic format key otherwise.
func Username(field, value string) Rule {
	key, msg := KeyUsername, "must be 4-30 characters and start with a letter"
	if HasSpecialChars(value) || StartsWithDigit(value) {
		key, msg = KeyUsernameChars, "contains characters that are not allowed"
	}
	return Rule{
		Check: func() bool { return IsValidUsername(value) },
		Error: ValidationError{
			Field:             field,
			Message:           msg,
			TranslationKey:    key,
			TranslationValues: map[string]any{"field": field},
		},
	}
}

// DisplayName follows Username but allows spaces.
func DisplayName(field, value string) Rule {
	key, msg := KeyDisplayName, "must be 4-30 characters and start with a letter"
	if HasSpecialChars(value) || StartsWithDigit(value) {
		key, msg = KeyDisplayNameChars, "contains characters that are not allowed"
	}
	return Rule{
		Check: func() bool { return IsValidDisplayName(value) },
		Error: ValidationError{
			Field:             field,
			Message:           msg,
			TranslationKey:    key,
			TranslationValues: map[string]any{"field": field},
		},
	}
}

func MobileNumber(field, value string) Rule {
	return Rule{
		Check: func() bool { return IsValidMobileNumber(value) },
		Error: ValidationError{
			Field:             field,
			Message:           "must be an Australian or New Zealand mobile number",
			TranslationKey:    KeyMobileNumber,
			TranslationValues: map[string]any{"field": field},
		},
	}
}
