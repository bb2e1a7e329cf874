package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("weekday", func(fl validator.FieldLevel) bool {
		return IsWeekday(fl.Field().String())
	})
	_ = v.RegisterValidation("docid", func(fl validator.FieldLevel) bool {
		return IsDocID(fl.Field().String())
	})
	return v
}

var weekdays = []string{"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday"}

// IsWeekday accepts full English day names in any case.
func IsWeekday(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, d := range weekdays {
		if s == d {
			return true
		}
	}
	return false
}

// maxDocIDBytes is Firestore's document id limit.
const maxDocIDBytes = 1500

// IsDocID reports whether s can be used as a single Firestore document id.
// Empty values pass so the tag composes with omitempty and required.
func IsDocID(s string) bool {
	if s == "" {
		return true
	}
	if s == "." || s == ".." || len(s) > maxDocIDBytes {
		return false
	}
	return !strings.Contains(s, "/")
}

// Struct validates v and flattens the first failure into a short message such
// as "email: must be a valid email".
func Struct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	return fmt.Errorf("%s: %s", lowerFirst(fe.Field()), describe(fe))
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "url":
		return "must be a valid url"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	case "oneof":
		return "must be one of: " + fe.Param()
	case "weekday":
		return "must be a day of the week"
	case "docid":
		return "must not contain '/'"
	default:
		return "is invalid"
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
