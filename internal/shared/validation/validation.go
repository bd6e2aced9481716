package validation

import (
	"errors"
	"sort"
	"strings"

	ozzo "github.com/go-ozzo/ozzo-validation/v4"
)

// Messages dùng chung cho các form
const (
	MsgNotBlank     = "This value should not be blank."
	MsgTooLong      = "This value is too long. It should have 255 characters or less."
	MsgPositive     = "This value should be greater than 0."
	MsgInvalidValue = "This value is not valid."
)

// MaxStringLength là giới hạn của các cột VARCHAR(255)
const MaxStringLength = 255

// Errors maps a field name to its messages. It is returned by services and
// rendered as a 422 by handlers.
type Errors map[string][]string

func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+strings.Join(e[f], " "))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Field builds a single-field error.
func Field(name, message string) Errors {
	return Errors{name: {message}}
}

// FromOzzo converts ozzo-validation field errors. Internal rule errors and
// nil are returned unchanged.
func FromOzzo(err error) error {
	if err == nil {
		return nil
	}

	var fieldErrs ozzo.Errors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	out := Errors{}
	flatten(out, "", fieldErrs)
	return out
}

func flatten(out Errors, prefix string, errs ozzo.Errors) {
	for field, fieldErr := range errs {
		if fieldErr == nil {
			continue
		}
		name := field
		if prefix != "" {
			name = prefix + "." + field
		}

		var nested ozzo.Errors
		if errors.As(fieldErr, &nested) {
			flatten(out, name, nested)
			continue
		}
		out[name] = append(out[name], fieldErr.Error())
	}
}

// RequiredString validates a trimmed, bounded, mandatory string.
func RequiredString() []ozzo.Rule {
	return []ozzo.Rule{
		ozzo.Required.Error(MsgNotBlank),
		ozzo.RuneLength(0, MaxStringLength).Error(MsgTooLong),
	}
}

// OptionalString validates a bounded string that may be empty.
func OptionalString() []ozzo.Rule {
	return []ozzo.Rule{
		ozzo.RuneLength(0, MaxStringLength).Error(MsgTooLong),
	}
}

// PositiveInt validates a mandatory *int greater than zero.
func PositiveInt() []ozzo.Rule {
	return []ozzo.Rule{
		ozzo.Required.Error(MsgNotBlank),
		ozzo.Min(1).Error(MsgPositive),
	}
}
