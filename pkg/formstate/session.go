package formstate

import (
	"maps"
	"sync"

	"github.com/dmitrymomot/widgetkit/pkg/messages"
	"github.com/dmitrymomot/widgetkit/pkg/validator"
)

// State is the validation state of one field.
type State int

const (
	Untouched State = iota
	Invalid
	Valid
)

func (s State) String() string {
	switch s {
	case Invalid:
		return "invalid"
	case Valid:
		return "valid"
	default:
		return "untouched"
	}
}

// Session owns the field messages of a single form instance. It is safe for concurrent use.
type Session struct {
	mu       sync.RWMutex
	table    messages.Table
	fields   map[string]Field
	order    []string
	states   map[string]State
	messages map[string]string
}

// New creates a session for fields. A nil table renders message keys verbatim.
func New(table messages.Table, fields ...Field) *Session {
	if table == nil {
		table = keyTable{}
	}

	s := &Session{
		table:    table,
		fields:   make(map[string]Field, len(fields)),
		states:   make(map[string]State, len(fields)),
		messages: make(map[string]string, len(fields)),
	}
	for _, f := range fields {
		if _, ok := s.fields[f.Name]; !ok {
			s.order = append(s.order, f.Name)
		}
		s.fields[f.Name] = f
	}
	return s
}

// SetTable switches the language of messages produced from now on. Existing
// messages keep their text. A nil table renders keys verbatim.
func (s *Session) SetTable(table messages.Table) {
	if table == nil {
		table = keyTable{}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.table = table
}

// Validate runs the field's check against text and updates its message.
// Unknown fields are reported as invalid without a message.
func (s *Session) Validate(field, text string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.validateLocked(field, text)
}

// ValidateAll validates every declared field with its value from values, in declaration
// order. All fields are checked even after the first failure.
func (s *Session) ValidateAll(values map[string]string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	ok := true
	for _, name := range s.order {
		if !s.validateLocked(name, values[name]) {
			ok = false
		}
	}
	return ok
}

func (s *Session) validateLocked(field, text string) bool {
	f, ok := s.fields[field]
	if !ok {
		return false
	}

	if f.Check(text) {
		delete(s.messages, field)
		s.states[field] = Valid
		return true
	}

	key := f.Key
	if f.CharsKey != "" && (validator.HasSpecialChars(text) || validator.StartsWithDigit(text)) {
		key = f.CharsKey
	}
	s.messages[field] = s.table.T(key, f.Args...)
	s.states[field] = Invalid
	return false
}

// SetMessage marks field invalid with text, bypassing its validator.
func (s *Session) SetMessage(field, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if text == "" {
		delete(s.messages, field)
		s.states[field] = Valid
		return
	}
	s.messages[field] = text
	s.states[field] = Invalid
}

// SetMessageKey is SetMessage with text resolved from the message table.
func (s *Session) SetMessageKey(field, key string, args ...string) {
	s.SetMessage(field, s.table.T(key, args...))
}

// ClearMessage marks field valid.
func (s *Session) ClearMessage(field string) {
	s.SetMessage(field, "")
}

// ApplyErrors sets the first message of each field found in err, which is expected to
// carry validator.ValidationErrors. It reports whether any message was set.
func (s *Session) ApplyErrors(err error) bool {
	verrs := validator.ExtractValidationErrors(err)
	if verrs.IsEmpty() {
		return false
	}

	for _, field := range verrs.Fields() {
		ve, _ := verrs.First(field)
		s.SetMessageKey(field, ve.TranslationKey, translationArgs(ve.TranslationValues)...)
	}
	return true
}

func (s *Session) Message(field string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.messages[field]
}

// Messages returns a copy of all current messages keyed by field.
func (s *Session) Messages() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.messages)
}

func (s *Session) State(field string) State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.states[field]
}

// Valid reports whether no field currently has a message.
func (s *Session) Valid() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.messages) == 0
}

// Reset returns every field to Untouched.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.messages)
	clear(s.states)
}

type keyTable struct{}

func (keyTable) T(key string, _ ...string) string { return key }
