// Package form binds and validates the venue, artist and show submissions
// and describes the fields of each form for the GET form endpoints.
package form

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// StartTimeLayout is the layout used for show start times in forms.
const StartTimeLayout = "2006-01-02 15:04:05"

// Validator adapts go-playground/validator to echo.Validator.  Custom
// tags: genre, state and starttime.
type Validator struct {
	v *validator.Validate
}

// NewValidator builds a Validator with the custom form rules registered.
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report errors under the submitted field name
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	_ = v.RegisterValidation("genre", func(fl validator.FieldLevel) bool {
		return IsGenre(fl.Field().String())
	})
	_ = v.RegisterValidation("state", func(fl validator.FieldLevel) bool {
		return IsState(fl.Field().String())
	})
	_ = v.RegisterValidation("starttime", func(fl validator.FieldLevel) bool {
		_, err := ParseStartTime(fl.Field().String())
		return err == nil
	})
	return &Validator{v: v}
}

// Validate implements echo.Validator.
func (cv *Validator) Validate(i any) error {
	return cv.v.Struct(i)
}

// FieldErrors flattens a validation failure into field -> message.  It
// returns nil when err is not a validation failure.
func FieldErrors(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		name := fe.Field()
		// dive errors on genres are reported as genres[i]
		if i := strings.IndexByte(name, '['); i > 0 {
			name = name[:i]
		}
		if _, seen := out[name]; seen {
			continue
		}
		out[name] = message(fe)
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "max":
		return fmt.Sprintf("Field cannot be longer than %s characters.", fe.Param())
	case "min":
		return fmt.Sprintf("Choose at least %s.", fe.Param())
	case "url":
		return "Invalid URL."
	case "genre", "state":
		return "Not a valid choice."
	case "starttime":
		return "Not a valid datetime value."
	default:
		return "Invalid value."
	}
}

// ParseStartTime accepts "2006-01-02 15:04:05", "2006-01-02T15:04" (the
// HTML datetime-local format) and RFC 3339.  Times without an offset are
// read as UTC.
func ParseStartTime(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range []string{StartTimeLayout, "2006-01-02T15:04", "2006-01-02T15:04:05"} {
		if t, err := time.ParseInLocation(layout, raw, time.UTC); err == nil {
			return t, nil
		}
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid start time %q", raw)
	}
	return t.UTC(), nil
}

// Checkbox is a boolean form field.  HTML forms send "y", "on" or
// "true" for a ticked box and omit the field otherwise; JSON bodies may
// send either a boolean or one of those strings.
type Checkbox bool

// UnmarshalParam implements echo.BindUnmarshaler.
func (c *Checkbox) UnmarshalParam(param string) error {
	*c = Checkbox(truthy(param))
	return nil
}

// UnmarshalJSON accepts true/false or a checkbox string.
func (c *Checkbox) UnmarshalJSON(b []byte) error {
	var v bool
	if err := json.Unmarshal(b, &v); err == nil {
		*c = Checkbox(v)
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("checkbox: %w", err)
	}
	*c = Checkbox(truthy(s))
	return nil
}

func truthy(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes", "on", "true", "1":
		return true
	}
	return false
}

// clean trims surrounding whitespace from every string field value.
func clean(ss ...*string) {
	for _, s := range ss {
		*s = strings.TrimSpace(*s)
	}
}
