package binder

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// dateValidator ensures the value parses as a real YYYY-MM-DD calendar date
// or is the empty string. Parsing rather than shape-matching rejects
// impossible dates like 2020-00-15 up front, so form handlers can reparse
// the value without a failure path. The empty string is allowed so the same
// validator works for optional date fields; pair with `required` when the
// field must be present.
func dateValidator(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	_, err := time.Parse("2006-01-02", value)
	return err == nil
}
