// Package validation turns raw JSON request bodies into sanitized model values.
//
// Each endpoint has a request type. Decode rejects unknown keys and values of
// the wrong type, then runs the validator rules declared on the type. The first
// problem found is reported as a *ValidationError naming the JSON field.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"

	"github.com/dulha-dulhan/matrimony/internal/db/models"
)

// ValidationError describes the first offending field of a request.
type ValidationError struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return e.Message
}

// ErrNotANumber is returned by FlexInt for values that are not integers.
var ErrNotANumber = errors.New("value is not a whole number")

const (
	minPort = 1
	maxPort = 65535
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// report JSON names instead of Go field names
	v.RegisterTagNameFunc(jsonName)

	mustRegister(v, "notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	mustRegister(v, "age", func(fl validator.FieldLevel) bool {
		n := fl.Field().Int()
		return n >= models.MinAge && n <= models.MaxAge
	})
	mustRegister(v, "profile_status", func(fl validator.FieldLevel) bool {
		return models.ProfileStatus(fl.Field().String()).Valid()
	})
	mustRegister(v, "port", func(fl validator.FieldLevel) bool {
		n := fl.Field().Int()
		return n >= minPort && n <= maxPort
	})

	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}

func jsonName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}

	if name == "" {
		return f.Name
	}

	return name
}

// FlexInt accepts a JSON number or a string holding a whole number.
type FlexInt int

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexInt) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		return nil
	}

	if unquoted, err := strconv.Unquote(s); err == nil {
		s = strings.TrimSpace(unquoted)
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		return ErrNotANumber
	}

	*f = FlexInt(n)

	return nil
}

type field struct {
	name  string
	index int
	typ   reflect.Type
}

// Decode fills dst, a pointer to a request struct, from a JSON object body and
// validates it.
func Decode(body []byte, dst interface{}) error {
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Ptr || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("decode target must be a struct pointer, got %T", dst)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil || raw == nil {
		return &ValidationError{Message: "request body must be a JSON object"}
	}

	fields := fieldsOf(rv.Elem().Type())

	known := make(map[string]field, len(fields))
	for _, f := range fields {
		known[f.name] = f
	}

	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	for _, k := range keys {
		if _, ok := known[k]; !ok {
			return &ValidationError{Field: k, Message: fmt.Sprintf("unknown field %q", k)}
		}
	}

	// decode in declaration order so the first bad field is reported
	for _, f := range fields {
		b, ok := raw[f.name]
		if !ok {
			continue
		}

		v := reflect.New(f.typ)
		if err := json.Unmarshal(b, v.Interface()); err != nil {
			return &ValidationError{Field: f.name, Message: fmt.Sprintf("%s has an invalid value", f.name)}
		}

		rv.Elem().Field(f.index).Set(v.Elem())
	}

	return Struct(dst)
}

// Struct runs the validator rules declared on s.
func Struct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}

	fe := fieldErrs[0]

	return &ValidationError{Field: fe.Field(), Message: message(fe)}
}

func fieldsOf(t reflect.Type) []field {
	out := make([]field, 0, t.NumField())

	for i := range t.NumField() {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}

		name := jsonName(sf)
		if name == "" {
			continue
		}

		out = append(out, field{name: name, index: i, typ: sf.Type})
	}

	return out
}

func message(fe validator.FieldError) string {
	name := fe.Field()

	switch fe.Tag() {
	case "required", "notblank":
		return name + " is required"
	case "age":
		return fmt.Sprintf("%s must be between %d and %d", name, models.MinAge, models.MaxAge)
	case "profile_status":
		names := make([]string, 0, len(models.ProfileStatuses))
		for _, s := range models.ProfileStatuses {
			names = append(names, string(s))
		}

		return fmt.Sprintf("%s must be one of %s", name, strings.Join(names, ", "))
	case "port":
		return fmt.Sprintf("%s must be between %d and %d", name, minPort, maxPort)
	case "email":
		return name + " must be a valid email address"
	default:
		return name + " is invalid"
	}
}
