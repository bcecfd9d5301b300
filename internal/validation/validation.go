// Package validation checks request input structs and turns failures into field errors.
package validation

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"devconnector/internal/models"
)

// Validator wraps validator.Validate with the app's custom rules and message formatting.
type Validator struct {
	validate *validator.Validate
}

// New returns a Validator whose field names follow json tags.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	RegisterValidators(v)
	return &Validator{validate: v}
}

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("notblank", NotBlank)
	_ = v.RegisterValidation("maxbytes", MaxBytes)
}

// NotBlank rejects strings that are empty after trimming.
func NotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// MaxBytes limits the encoded length of a string, unlike max which counts runes.
func MaxBytes(fl validator.FieldLevel) bool {
	limit, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return len(fl.Field().String()) <= limit
}

// Struct validates s. It returns nil or a validation AppError listing every failing field.
func (v *Validator) Struct(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return models.NewInternalError(err)
	}

	fields := make([]models.FieldError, 0, len(validationErrors))
	for _, e := range validationErrors {
		fields = append(fields, models.FieldError{
			Msg:   message(s, e),
			Param: e.Field(),
		})
	}
	return models.NewFieldErrors(fields...)
}

// message prefers a msg_<rule> tag, then the field's msg tag, and falls back to a generic sentence.
func message(s interface{}, e validator.FieldError) string {
	t := reflect.TypeOf(s)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() == reflect.Struct {
		if f, ok := t.FieldByName(e.StructField()); ok {
			if msg := f.Tag.Get("msg_" + e.Tag()); msg != "" {
				return msg
			}
			if msg := f.Tag.Get("msg"); msg != "" {
				return msg
			}
		}
	}

	switch e.Tag() {
	case "required", "notblank":
		return fmt.Sprintf("%s is required", e.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email", e.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", e.Field(), e.Param())
	case "max", "maxbytes":
		return fmt.Sprintf("%s must be at most %s characters", e.Field(), e.Param())
	default:
		return fmt.Sprintf("%s is invalid", e.Field())
	}
}
