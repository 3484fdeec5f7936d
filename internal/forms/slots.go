package forms

import "errors"

// Slots holds one error message per field, the way the page shows an
// invalid-feedback line under each input.
type Slots struct {
	fields []string
	msgs   map[string]string
}

// NewSlots creates empty slots for the fields of f.
func NewSlots(f Form) *Slots {
	return &Slots{fields: f.Fields(), msgs: make(map[string]string)}
}

// Check validates f, clears every slot and writes the first violation, if
// any, into its field's slot. It reports whether submission may proceed.
func (s *Slots) Check(f Form) bool {
	s.Clear()
	err := f.Validate()
	if err == nil {
		return true
	}
	var fe *FieldError
	if errors.As(err, &fe) {
		s.msgs[fe.Field] = fe.Message
	}
	return false
}

// Clear empties every slot.
func (s *Slots) Clear() {
	for k := range s.msgs {
		delete(s.msgs, k)
	}
}

// Message returns the message in field's slot.
func (s *Slots) Message(field string) string {
	return s.msgs[field]
}

// Invalid lists the fields that currently hold a message, in form order.
func (s *Slots) Invalid() []string {
	var out []string
	for _, f := range s.fields {
		if s.msgs[f] != "" {
			out = append(out, f)
		}
	}
	return out
}
