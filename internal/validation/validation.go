package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Email addresses are only accepted from a small TLD whitelist.
var allowedTLDs = map[string]struct{}{
	"com": {},
	"net": {},
}

var digitsPattern = regexp.MustCompile(`^[0-9]+$`)

// FieldError is a single rule violation on a named payload field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error collects every violation found in one payload, not just the first.
type Error struct {
	Fields []FieldError
}

func (e *Error) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Validator evaluates declarative `validate` tag rules on request payloads.
type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	v := validator.New()

	// Report fields under their wire names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	// Registration only fails for empty tags or nil funcs, neither possible here.
	_ = v.RegisterValidation("digits", func(fl validator.FieldLevel) bool {
		return digitsPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("tld", func(fl validator.FieldLevel) bool {
		addr := fl.Field().String()
		dot := strings.LastIndex(addr, ".")
		if dot < 0 || dot == len(addr)-1 {
			return false
		}
		_, ok := allowedTLDs[strings.ToLower(addr[dot+1:])]
		return ok
	})

	return &Validator{validate: v}
}

// Struct checks every rule on the payload. On violation it returns an *Error
// carrying all field-level failures; any other error means the payload itself
// was not validatable and is an internal fault.
func (v *Validator) Struct(payload interface{}) error {
	err := v.validate.Struct(payload)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate payload failed: %w", err)
	}

	out := &Error{Fields: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{
			Field:   fe.Field(),
			Message: messageFor(fe),
		})
	}
	return out
}

func messageFor(fe validator.FieldError) string {
	name := displayName(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", name)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters long", name, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters long", name, fe.Param())
	case "email":
		return "Invalid email address"
	case "tld":
		return "Email domain is not allowed"
	case "digits":
		return fmt.Sprintf("%s must contain only digits", name)
	default:
		return fmt.Sprintf("%s is invalid", name)
	}
}

func displayName(field string) string {
	if field == "" {
		return field
	}
	return strings.ToUpper(field[:1]) + field[1:]
}
