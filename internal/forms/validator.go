// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package forms declares the submitted forms and their validation rules.
package forms

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"codeberg.org/oliverandrich/jokebox/internal/models"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Validator wraps go-playground/validator for Echo.
type Validator struct {
	validate *validator.Validate
}

// NewValidator returns a Validator that reports fields by their form or json name
// and knows the "category" rule.
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(fieldName)
	_ = v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		return models.IsKnownCategory(fl.Field().String())
	})
	return &Validator{validate: v}
}

// Validate implements echo.Validator.
func (v *Validator) Validate(i any) error {
	return v.validate.Struct(i)
}

func fieldName(f reflect.StructField) string {
	for _, tag := range []string{"form", "json"} {
		name, _, _ := strings.Cut(f.Tag.Get(tag), ",")
		if name != "" && name != "-" {
			return name
		}
	}
	return f.Name
}

// Errors maps field names to a message. The empty key holds form-level errors.
type Errors map[string]string

// Add records msg for field unless the field already has an error.
func (e Errors) Add(field, msg string) {
	if _, ok := e[field]; !ok {
		e[field] = msg
	}
}

// Get returns the message for field, or "".
func (e Errors) Get(field string) string {
	return e[field]
}

// Any reports whether there are errors.
func (e Errors) Any() bool {
	return len(e) > 0
}

// Check validates form through the validator installed on the Echo instance
// and converts failures to field messages.
func Check(c echo.Context, form any) (Errors, error) {
	errs := Errors{}
	err := c.Validate(form)
	if err == nil {
		return errs, nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, err
	}
	for _, fe := range verrs {
		errs.Add(fe.Field(), message(fe))
	}
	return errs, nil
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Invalid email address."
	case "min":
		return fmt.Sprintf("Field must be at least %s characters long.", fe.Param())
	case "max":
		return fmt.Sprintf("Field cannot be longer than %s characters.", fe.Param())
	case "eqfield":
		return "Passwords must match."
	case "category":
		return "Not a valid choice."
	}
	return "Invalid value."
}
