package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

const maxBodyBytes = 1_048_576

var errInvalidBody = errors.New("invalid request body")

// Validator wraps validator.Validate and renders failures as API errors keyed
// by JSON field name.
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{validate: v}
}

// ValidateStruct returns nil or the list of failing fields.
func (v *Validator) ValidateStruct(s any) []APIError {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []APIError{{Path: []string{}, Message: err.Error()}}
	}

	out := make([]APIError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, APIError{Path: []string{fe.Field()}, Message: fieldMessage(fe)})
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_if":
		return "Required"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("String must contain at least %s character(s)", fe.Param())
		}
		return fmt.Sprintf("Number must be greater than or equal to %s", fe.Param())
	case "oneof":
		options := strings.Fields(fe.Param())
		return fmt.Sprintf("Invalid enum value. Expected '%s', received '%v'",
			strings.Join(options, "' | '"), fe.Value())
	default:
		return fmt.Sprintf("Invalid value for %s", fe.Field())
	}
}

// decodeJSON reads exactly one JSON object from the body into dst. Type
// mismatches come back as field errors; anything else unreadable is
// errInvalidBody.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) ([]APIError, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)

	if err := dec.Decode(dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return []APIError{{Path: strings.Split(typeErr.Field, "."), Message: typeMessage(typeErr)}}, nil
		}
		return nil, errInvalidBody
	}

	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return nil, errInvalidBody
	}
	return nil, nil
}

func typeMessage(e *json.UnmarshalTypeError) string {
	expected := "string"
	switch e.Type.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if e.Value == "number" || strings.HasPrefix(e.Value, "number ") {
			return "Expected integer, received float"
		}
		expected = "number"
	case reflect.Bool:
		expected = "boolean"
	}
	received := e.Value
	if received == "bool" {
		received = "boolean"
	}
	return fmt.Sprintf("Expected %s, received %s", expected, received)
}
