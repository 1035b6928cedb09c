package formstate_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/widgetkit/pkg/formstate"
	"github.com/dmitrymomot/widgetkit/pkg/messages"
	"github.com/dmitrymomot/widgetkit/pkg/validator"
)

func englishTable(t *testing.T) messages.Table {
	t.Helper()
	c, err := messages.Default(context.Background())
	require.NoError(t, err)
	return c.For("en")
}

func TestSessionFieldStates(t *testing.T) {
	table := englishTable(t)
	s := formstate.New(table, formstate.Email("email"))

	assert.Equal(t, formstate.Untouched, s.State("email"))
	assert.Empty(t, s.Message("email"))

	assert.False(t, s.Validate("email", "bad"))
	assert.Equal(t, formstate.Invalid, s.State("email"))
	assert.Equal(t, table.T(validator.KeyEmail), s.Message("email"))
	assert.False(t, s.Valid())

	assert.True(t, s.Validate("email", "jane@x.com"))
	assert.Equal(t, formstate.Valid, s.State("email"))
	assert.Empty(t, s.Message("email"))
	assert.True(t, s.Valid())
}

func TestSessionCharacterMessages(t *testing.T) {
	s := formstate.New(nil, formstate.Username("username"), formstate.DisplayName("name"))

	s.Validate("username", "abc")
	assert.Equal(t, validator.KeyUsername, s.Message("username"))

	s.Validate("username", "jane!")
	assert.Equal(t, validator.KeyUsernameChars, s.Message("username"))

	s.Validate("username", "9lives")
	assert.Equal(t, validator.KeyUsernameChars, s.Message("username"))

	s.Validate("name", "Jo")
	assert.Equal(t, validator.KeyDisplayName, s.Message("name"))

	s.Validate("name", "Jo Jo!")
	assert.Equal(t, validator.KeyDisplayNameChars, s.Message("name"))

	assert.True(t, s.Validate("name", "Jo Jo"))
}

func TestSessionBuiltInFields(t *testing.T) {
	s := formstate.New(nil,
		formstate.FirstName("firstName"),
		formstate.Password("password"),
		formstate.MobileNumber("mobile"),
		formstate.Required("body", messages.KeyMessageRequired),
	)

	assert.False(t, s.Validate("firstName", "  "))
	assert.Equal(t, validator.KeyFirstName, s.Message("firstName"))
	assert.True(t, s.Validate("firstName", "Jane"))

	assert.False(t, s.Validate("password", "abcdefgh"))
	assert.Equal(t, validator.KeyPassword, s.Message("password"))

	assert.False(t, s.Validate("mobile", "0412345678"))
	assert.Equal(t, validator.KeyMobileNumber, s.Message("mobile"))

	assert.False(t, s.Validate("body", ""))
	assert.Equal(t, messages.KeyMessageRequired, s.Message("body"))
}

func TestSessionUnknownField(t *testing.T) {
	s := formstate.New(nil)
	assert.False(t, s.Validate("nope", "value"))
	assert.Empty(t, s.Message("nope"))
	assert.True(t, s.Valid())
}

func TestSessionValidateAll(t *testing.T) {
	s := formstate.New(nil, formstate.DisplayName("name"), formstate.Email("email"))

	ok := s.ValidateAll(map[string]string{"name": "Jo", "email": "bad"})
	assert.False(t, ok)
	assert.Equal(t, map[string]string{
		"name":  validator.KeyDisplayName,
		"email": validator.KeyEmail,
	}, s.Messages())

	assert.True(t, s.ValidateAll(map[string]string{"name": "Jane", "email": "jane@x.com"}))
	assert.Empty(t, s.Messages())
}

func TestSessionServerMessages(t *testing.T) {
	s := formstate.New(nil, formstate.Email("email"))

	s.SetMessage("email", "already used")
	assert.Equal(t, formstate.Invalid, s.State("email"))
	assert.Equal(t, "already used", s.Message("email"))

	s.ClearMessage("email")
	assert.Equal(t, formstate.Valid, s.State("email"))
	assert.Empty(t, s.Message("email"))

	s.SetMessageKey("email", validator.KeyEmail)
	assert.Equal(t, validator.KeyEmail, s.Message("email"))
}

func TestSessionApplyErrors(t *testing.T) {
	table := englishTable(t)
	s := formstate.New(table)

	err := validator.Apply(
		validator.InRange("name", "abc", 4, 30),
		validator.Email("email", "x"),
	)
	require.Error(t, err)

	assert.True(t, s.ApplyErrors(err))
	assert.Equal(t, "Must be between 4 and 30 characters long.", s.Message("name"))
	assert.Equal(t, table.T(validator.KeyEmail), s.Message("email"))

	assert.False(t, s.ApplyErrors(errors.New("transport")))
	assert.False(t, s.ApplyErrors(nil))
}

func TestSessionReset(t *testing.T) {
	s := formstate.New(nil, formstate.Email("email"))
	s.Validate("email", "bad")
	s.Reset()

	assert.Equal(t, formstate.Untouched, s.State("email"))
	assert.Empty(t, s.Messages())
}

func TestSessionSetTable(t *testing.T) {
	s := formstate.New(nil, formstate.Email("email"))
	s.Validate("email", "bad")
	assert.Equal(t, validator.KeyEmail, s.Message("email"))

	table := englishTable(t)
	s.SetTable(table)
	s.Validate("email", "still bad")
	assert.Equal(t, table.T(validator.KeyEmail), s.Message("email"))
}

func TestSessionMessagesReturnsCopy(t *testing.T) {
	s := formstate.New(nil, formstate.Email("email"))
	s.Validate("email", "bad")

	msgs := s.Messages()
	msgs["email"] = "changed"
	assert.Equal(t, validator.KeyEmail, s.Message("email"))
}

func TestSessionConcurrentUse(t *testing.T) {
	s := formstate.New(nil, formstate.Email("email"))

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				s.Validate("email", "bad")
			} else {
				_ = s.Message("email")
			}
		}(i)
	}
	wg.Wait()
	assert.Equal(t, formstate.Invalid, s.State("email"))
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "untouched", formstate.Untouched.String())
	assert.Equal(t, "invalid", formstate.Invalid.String())
	assert.Equal(t, "valid", formstate.Valid.String())
}
