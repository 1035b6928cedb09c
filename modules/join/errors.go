package join

import "errors"

var (
	ErrInvalid           = errors.New("join: form is incomplete")
	ErrInvalidProductURL = errors.New("join: invalid product url")
	ErrUnknownGender     = errors.New("join: unknown gender")
)
