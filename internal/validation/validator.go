// Package validation checks account forms before anything is sent to the
// backend, using go-playground/validator with the app's own messages.
package validation

import (
	"errors"
	"reflect"
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

const (
	MsgPasswordPolicy = "Password must be at least 8 characters with 2+ types (uppercase, lowercase, digit, special character)."
	MsgEmail          = "Please enter a valid email address."
	MsgUsername       = "Username must be 3-50 characters."
	MsgMismatch       = "Passwords do not match."
	MsgInvalid        = "Invalid value."
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Error lists the failing fields by their json name.
type Error struct {
	Fields map[string]string
}

func (e *Error) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, e.Fields[k])
	}
	return strings.Join(msgs, " ")
}

// Field returns the message for one field, or "".
func (e *Error) Field(name string) string {
	return e.Fields[name]
}

type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	mustRegister(v, "password", func(fl validator.FieldLevel) bool {
		return PasswordOK(fl.Field().String())
	})
	mustRegister(v, "emailaddr", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})
	mustRegister(v, "username", func(fl validator.FieldLevel) bool {
		n := utf8.RuneCountInString(fl.Field().String())
		return n >= 3 && n <= 50
	})

	return &Validator{v: v}
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}

// Validate returns nil or *Error.
func (v *Validator) Validate(s any) error {
	err := v.v.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	fields := make(map[string]string, len(validationErrs))
	for _, e := range validationErrs {
		if _, seen := fields[e.Field()]; !seen {
			fields[e.Field()] = friendlyMessage(e)
		}
	}
	return &Error{Fields: fields}
}

func friendlyMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return capitalize(e.Field()) + " is required."
	case "password":
		return MsgPasswordPolicy
	case "emailaddr":
		return MsgEmail
	case "username":
		return MsgUsername
	case "eqfield":
		return MsgMismatch
	default:
		return MsgInvalid
	}
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// PasswordOK reports whether p has at least 8 characters drawn from at
// least two of: upper case, lower case, digits, anything else.
func PasswordOK(p string) bool {
	if utf8.RuneCountInString(p) < 8 {
		return false
	}

	var upper, lower, digit, other bool
	for _, r := range p {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= '0' && r <= '9':
			digit = true
		default:
			other = true
		}
	}

	categories := 0
	for _, ok := range []bool{upper, lower, digit, other} {
		if ok {
			categories++
		}
	}
	return categories >= 2
}
