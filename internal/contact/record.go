package contact

import (
	"fmt"
	"strings"
)

// Record is one contact: a name, its phones in entry order, and an optional birthday.
// Phones may repeat; nothing enforces uniqueness.
type Record struct {
	Name     string
	Phones   []Phone
	Birthday *Birthday
}

// NewRecord creates a record with no phones and no birthday.
func NewRecord(name string) (*Record, error) {
	if strings.TrimSpace(name) == "" {
		return nil, &ValidationError{Field: "name", Value: name, Reason: "Contact name cannot be empty"}
	}
	return &Record{Name: name}, nil
}

// AddPhone validates value and appends it.
func (r *Record) AddPhone(value string) error {
	p, err := NewPhone(value)
	if err != nil {
		return err
	}
	r.Phones = append(r.Phones, p)
	return nil
}

// EditPhone replaces every phone equal to old with newValue.
// No match is not an error. newValue is validated before anything changes.
func (r *Record) EditPhone(old, newValue string) error {
	matched := false
	for _, p := range r.Phones {
		if p.value == old {
			matched = true
			break
		}
	}
	if !matched {
		return nil
	}

	p, err := NewPhone(newValue)
	if err != nil {
		return err
	}
	for i := range r.Phones {
		if r.Phones[i].value == old {
			r.Phones[i] = p
		}
	}
	return nil
}

// RemovePhone drops the first phone equal to value, if any.
func (r *Record) RemovePhone(value string) {
	for i, p := range r.Phones {
		if p.value == value {
			r.Phones = append(r.Phones[:i], r.Phones[i+1:]...)
			return
		}
	}
}

// FindPhone returns the phone equal to value.
// Returns (zero, false) when the record has no such phone.
func (r *Record) FindPhone(value string) (Phone, bool) {
	for _, p := range r.Phones {
		if p.value == value {
			return p, true
		}
	}
	return Phone{}, false
}

// SetBirthday validates value and replaces any previous birthday.
func (r *Record) SetBirthday(value string) error {
	b, err := NewBirthday(value)
	if err != nil {
		return err
	}
	r.Birthday = &b
	return nil
}

// PhoneStrings returns the phones as plain strings, in order.
func (r *Record) PhoneStrings() []string {
	out := make([]string, len(r.Phones))
	for i, p := range r.Phones {
		out[i] = p.value
	}
	return out
}

func (r *Record) String() string {
	return fmt.Sprintf("Contact name: %s, phones: %s", r.Name, strings.Join(r.PhoneStrings(), "; "))
}
