// Package contact holds the contact record and the validated fields it owns.
package contact

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
)

// BirthdayLayout is the accepted birthday text format (DD.MM.YYYY).
const BirthdayLayout = "02.01.2006"

const (
	phoneRule    = "required,len=10,number"
	birthdayRule = "required,datetime=" + BirthdayLayout
)

var validate = validator.New()

// ErrValidation matches every ValidationError via errors.Is.
var ErrValidation = errors.New("contact: invalid input")

// ValidationError reports a field value that failed its format rule.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// Unwrap lets errors.Is(err, ErrValidation) succeed.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// Phone is a phone number of exactly ten decimal digits.
type Phone struct {
	value string
}

// NewPhone validates value and returns it as a Phone.
func NewPhone(value string) (Phone, error) {
	if err := validate.Var(value, phoneRule); err != nil {
		return Phone{}, &ValidationError{
			Field:  "phone",
			Value:  value,
			Reason: "Phone number must contain 10 digits",
		}
	}
	return Phone{value: value}, nil
}

func (p Phone) String() string {
	return p.value
}

// Birthday is a calendar date entered as DD.MM.YYYY.
// The original text is kept; Date re-parses it on demand.
type Birthday struct {
	value string
}

// NewBirthday validates value as a real calendar date in BirthdayLayout.
func NewBirthday(value string) (Birthday, error) {
	if err := validate.Var(value, birthdayRule); err != nil {
		return Birthday{}, &ValidationError{
			Field:  "birthday",
			Value:  value,
			Reason: "Invalid birthday format. Use DD.MM.YYYY",
		}
	}
	return Birthday{value: value}, nil
}

func (b Birthday) String() string {
	return b.value
}

// Date returns the birthday as a calendar date at UTC midnight.
func (b Birthday) Date() (time.Time, error) {
	return time.Parse(BirthdayLayout, b.value)
}

// RestorePhone and RestoreBirthday rebuild fields from persisted text without
// validation. Callers reading a damaged file get values that fail later, at use.
func RestorePhone(value string) Phone {
	return Phone{value: value}
}

// RestoreBirthday is the Birthday counterpart of RestorePhone.
func RestoreBirthday(value string) Birthday {
	return Birthday{value: value}
}
