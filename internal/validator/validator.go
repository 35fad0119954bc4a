// Package validator holds the input checks every handler runs before touching a
// repository: required fields, numeric IDs, ISBN and email formats, empty payloads.
package validator

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	appErrors "bookstore-management/pkg/errors"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Field is one required payload entry. Flag fields must hold a boolean.
type Field struct {
	Name  string
	Value interface{}
	Flag  bool
}

func Required(name string, value interface{}) Field {
	return Field{Name: name, Value: value}
}

func RequiredFlag(name string, value interface{}) Field {
	return Field{Name: name, Value: value, Flag: true}
}

// RequiredFields fails with a validation error listing, in order, every field
// that is absent, empty, or (for flags) not a boolean.
func RequiredFields(fields ...Field) error {
	var missing []string
	for _, f := range fields {
		if isMissing(f) {
			missing = append(missing, f.Name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return appErrors.Validation(fmt.Sprintf("Please fill in all required fields: %s", strings.Join(missing, ", ")))
}

func isMissing(f Field) bool {
	if f.Value == nil {
		return true
	}

	v := reflect.ValueOf(f.Value)
	for v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return true
		}
		v = v.Elem()
	}

	if f.Flag {
		return v.Kind() != reflect.Bool
	}

	switch v.Kind() {
	case reflect.String:
		return strings.TrimSpace(v.String()) == ""
	case reflect.Map, reflect.Slice:
		return v.Len() == 0
	}
	return false
}

// ParseID accepts a non-negative base-10 integer.
func ParseID(raw string) (uint, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, appErrors.ErrInvalidID
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, appErrors.ErrInvalidID
	}
	return uint(id), nil
}

// IsValidISBN accepts ISBN-10 or ISBN-13 with a correct check digit. Hyphens and
// spaces are ignored, and so is the case of an ISBN-10 "X" check digit.
func IsValidISBN(value string) bool {
	value = strings.ToUpper(strings.TrimSpace(value))
	if value == "" {
		return false
	}
	return validate.Var(value, "isbn") == nil
}

func IsValidEmail(email string) bool {
	email = strings.TrimSpace(email)
	if email == "" {
		return false
	}
	return validate.Var(email, "email") == nil
}

// IsEmptyPayload reports whether a decoded JSON body carries no keys.
func IsEmptyPayload(body map[string]interface{}) bool {
	return len(body) == 0
}
