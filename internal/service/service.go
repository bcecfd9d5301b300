// Package service holds the request-independent business rules behind each route.
package service

import (
	"errors"

	"devconnector/internal/models"
	"devconnector/internal/validation"
)

func validatorOrDefault(v *validation.Validator) *validation.Validator {
	if v == nil {
		return validation.New()
	}
	return v
}

// fieldErrors splits a validation result into its field list. Any other error is returned as is.
func fieldErrors(err error) ([]models.FieldError, error) {
	if err == nil {
		return nil, nil
	}
	var appErr *models.AppError
	if errors.As(err, &appErr) && len(appErr.Fields) > 0 {
		return appErr.Fields, nil
	}
	return nil, err
}

func requireDate(fields []models.FieldError, d *models.Date, param, msg string) []models.FieldError {
	if d == nil || d.IsZero() {
		return append(fields, models.FieldError{Msg: msg, Param: param})
	}
	return fields
}

func optionalDate(d *models.Date) *models.Date {
	if d == nil || d.IsZero() {
		return nil
	}
	return d
}
