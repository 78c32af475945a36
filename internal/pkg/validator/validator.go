package validator

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// ErrMalformedRow is returned when a row read at a boundary does not satisfy
// its declared shape.
var ErrMalformedRow = errors.New("malformed row")

// Validate struct fields
func Validate(v interface{}) map[string]string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"_": err.Error()}
	}

	errors := make(map[string]string)
	for _, err := range verrs {
		errors[err.Field()] = err.Tag()
	}
	return errors
}

// Row validates a decoded row and wraps failures in ErrMalformedRow so callers
// can reject it instead of trusting its shape.
func Row(kind string, v interface{}) error {
	fields := Validate(v)
	if len(fields) == 0 {
		return nil
	}
	parts := make([]string, 0, len(fields))
	for f, tag := range fields {
		parts = append(parts, f+"="+tag)
	}
	sort.Strings(parts)
	return fmt.Errorf("%w: %s (%s)", ErrMalformedRow, kind, strings.Join(parts, ", "))
}

// Var validates a single value against a tag expression, e.g. "oneof=a b".
func Var(v interface{}, tag string) bool {
	return validate.Var(v, tag) == nil
}
