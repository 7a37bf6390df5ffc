package api

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// schema checks request payloads and decoded responses against their
// validate tags. Field names in messages are the JSON names.
type schema struct {
	v *validator.Validate
}

func newSchema() *schema {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &schema{v: v}
}

var defaultSchema = newSchema()

// Validate checks v against its validate tags and returns a short message
// naming the first failing field. v may be a struct, a pointer to one or a
// slice of them.
func Validate(v any) error {
	return defaultSchema.check(v)
}

// check validates a struct, a pointer to one, or a slice of them.
func (s *schema) check(value any) error {
	rv := reflect.ValueOf(value)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return errors.New("value is nil")
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Struct:
		return s.describe(s.v.Struct(rv.Interface()))
	case reflect.Slice:
		if rv.IsNil() {
			return errors.New("list is null")
		}
		for i := 0; i < rv.Len(); i++ {
			if err := s.check(rv.Index(i).Interface()); err != nil {
				return fmt.Errorf("item %d: %w", i, err)
			}
		}
		return nil
	}
	return nil
}

// describe turns validator errors into a short, user-facing sentence about
// the first failing field.
func (s *schema) describe(err error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}

	fe := verrs[0]
	field := fe.Field()
	switch fe.Tag() {
	case "required", "required_without":
		return fmt.Errorf("%s is required", field)
	case "email":
		return fmt.Errorf("%s must be a valid email address", field)
	case "min":
		return fmt.Errorf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Errorf("%s must be at most %s", field, fe.Param())
	case "oneof":
		return fmt.Errorf("%s must be one of: %s", field, fe.Param())
	}
	return fmt.Errorf("%s is invalid", field)
}
