// Package validation holds the shared validator instance used by gin binding
// and by callers that validate payloads outside of an HTTP request.
package validation

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const DateLayout = "2006-01-02"

var (
	once     sync.Once
	validate *validator.Validate
)

// Engine returns a validator that reads the same `binding` tags gin uses.
func Engine() *validator.Validate {
	once.Do(func() {
		validate = validator.New()
		validate.SetTagName("binding")
		register(validate)
	})
	return validate
}

// RegisterGin installs the custom tags on gin's default validator.
func RegisterGin() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin validator engine is not go-playground/validator")
	}
	register(v)
	return nil
}

func Struct(s any) error {
	return Engine().Struct(s)
}

func register(v *validator.Validate) {
	_ = v.RegisterValidation("civil_date", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if s == "" {
			return true
		}
		_, err := time.Parse(DateLayout, s)
		return err == nil
	})
	_ = v.RegisterValidation("phone_digits", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if strings.TrimSpace(s) == "" {
			return true
		}
		return CountDigits(s) >= 10
	})
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
}

func CountDigits(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsDigit(r) {
			n++
		}
	}
	return n
}

// Message turns validator errors into a single sentence list for API clients.
// Unknown fields fall back to their lower-cased struct field name.
func Message(err error, labels map[string]string) string {
	var verr validator.ValidationErrors
	if !errors.As(err, &verr) {
		return "Invalid input"
	}

	msgs := make([]string, 0, len(verr))
	for _, fe := range verr {
		field := fe.StructField()
		lbl, ok := labels[field]
		if !ok {
			lbl = strings.ToLower(field)
		}

		var msg string
		switch fe.Tag() {
		case "required", "notblank":
			msg = fmt.Sprintf("%s is required", lbl)
		case "min":
			if fe.Kind().String() == "slice" {
				msg = fmt.Sprintf("%s must contain at least %s items", lbl, fe.Param())
			} else {
				msg = fmt.Sprintf("%s must be at least %s", lbl, minMaxUnit(fe))
			}
		case "max":
			if fe.Kind().String() == "slice" {
				msg = fmt.Sprintf("%s must contain at most %s items", lbl, fe.Param())
			} else {
				msg = fmt.Sprintf("%s must be at most %s", lbl, minMaxUnit(fe))
			}
		case "email":
			msg = fmt.Sprintf("%s must be a valid email address", lbl)
		case "oneof":
			msg = fmt.Sprintf("%s must be one of [%s]", lbl, fe.Param())
		case "url":
			msg = fmt.Sprintf("%s must be a valid URL", lbl)
		case "civil_date":
			msg = fmt.Sprintf("%s must be a date in YYYY-MM-DD format", lbl)
		case "phone_digits":
			msg = fmt.Sprintf("%s must contain at least 10 digits", lbl)
		case "gtefield":
			msg = fmt.Sprintf("%s must not be before %s", lbl, labelFor(labels, fe.Param()))
		default:
			msg = fmt.Sprintf("%s is invalid", lbl)
		}
		msgs = append(msgs, msg)
	}
	return strings.Join(msgs, "; ")
}

func minMaxUnit(fe validator.FieldError) string {
	switch fe.Kind().String() {
	case "string":
		return fe.Param() + " characters"
	default:
		return fe.Param()
	}
}

func labelFor(labels map[string]string, field string) string {
	if l, ok := labels[field]; ok {
		return l
	}
	return strings.ToLower(field)
}
