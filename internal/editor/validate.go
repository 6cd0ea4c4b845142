// Package editor holds the form state behind the record, firefighter and
// settings editors. Required fields are checked locally before anything is
// sent; a failed check never reaches the network.
package editor

import (
	"github.com/go-faster/errors"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	must(v.RegisterValidation("notblank", validators.NotBlank))
	return v
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

// ValidationError is a local form check failure. Message is ready to show.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// IsValidation reports whether err is a local form check failure.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// messages maps "Field.tag" to the text shown for it. A missing tag entry
// falls back to "Field".
type messages map[string]string

// check validates form and converts the first failure, in field order, into a
// ValidationError.
func check(form any, msgs messages) error {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return errors.Wrap(err, "validate form")
	}
	first := verrs[0]
	msg, ok := msgs[first.Field()+"."+first.Tag()]
	if !ok {
		msg, ok = msgs[first.Field()]
	}
	if !ok {
		msg = first.Error()
	}
	return &ValidationError{Field: first.Field(), Message: msg}
}
