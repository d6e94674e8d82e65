// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package forms binds submitted form values to typed structs and validates
// them with struct tags. A form that fails validation carries field-level
// messages back to the template that rendered it.
package forms

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// usernameRegex allows letters, digits and @.+-_ like most account systems.
var usernameRegex = regexp.MustCompile(`^[\p{L}\p{N}@.+_-]+$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernameRegex.MatchString(fl.Field().String())
	})

	return v
}

// FieldErrors maps a form field name to its message. The "__all__" key
// holds errors that belong to the form as a whole.
type FieldErrors map[string]string

// NonField is the key for form-wide errors.
const NonField = "__all__"

// Add records a message unless the field already has one.
func (e FieldErrors) Add(field, msg string) {
	if _, ok := e[field]; !ok {
		e[field] = msg
	}
}

// Get returns the message for a field, or "".
func (e FieldErrors) Get(field string) string { return e[field] }

// Has reports whether a field has an error.
func (e FieldErrors) Has(field string) bool {
	_, ok := e[field]
	return ok
}

// Any reports whether there is at least one error.
func (e FieldErrors) Any() bool { return len(e) > 0 }

// check runs struct tag validation and converts failures into messages.
func check(form any) FieldErrors {
	errs := FieldErrors{}

	err := validate.Struct(form)
	if err == nil {
		return errs
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		errs.Add(NonField, err.Error())
		return errs
	}

	for _, fe := range verrs {
		errs.Add(fe.Field(), message(fe))
	}
	return errs
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Обязательное поле."
	case "max":
		return fmt.Sprintf("Убедитесь, что это значение содержит не более %s символов (сейчас %d).", fe.Param(), len([]rune(fe.Value().(string))))
	case "email":
		return "Введите правильный адрес электронной почты."
	case "username":
		return "Введите правильное имя пользователя. Оно может содержать только буквы, цифры и знаки @/./+/-/_."
	case "eqfield":
		return "Введённые пароли не совпадают."
	default:
		return "Введите правильное значение."
	}
}

// Sentence turns an error into a message for display: first letter
// upper-cased, terminated with a period.
func Sentence(err error) string {
	msg := strings.TrimSpace(err.Error())
	if msg == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(msg)
	msg = string(unicode.ToUpper(r)) + msg[size:]
	if !strings.HasSuffix(msg, ".") {
		msg += "."
	}
	return msg
}

func field(values url.Values, name string) string {
	return strings.TrimSpace(values.Get(name))
}

func checkbox(values url.Values, name string) bool {
	switch values.Get(name) {
	case "on", "true", "1":
		return true
	}
	return false
}
