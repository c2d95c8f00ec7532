/*
Package errs provides custom error types and application-level error code constants.

This file defines the CustomError struct, which implements the standard Go error interface
and includes a business code, a user-friendly message, the HTTP status observed on the wire,
and optional per-field validation detail for unified error reporting.
*/
package errs

import (
	"errors"
	"fmt"
	"strings"

	"learnhub/internal/pkg/logx"
)

// CustomError is the custom error structure used throughout the client.
// It wraps the Go error interface, adding a business code, the HTTP status
// the platform responded with (when applicable), and validation field detail.
type CustomError struct {
	// Code is the business error code (see constants definition).
	Code int

	// Message is the user-friendly error description.
	Message string

	// Status is the HTTP status code observed on the wire, zero when the
	// error never reached the platform (e.g. transport failures).
	Status int

	// Fields carries per-field validation messages returned by the platform
	// on form errors, keyed by field name. Nil for non-validation errors.
	Fields map[string][]string
}

// Error implements the standard Go error interface. It returns a formatted
// error string containing the error code, HTTP status, and message.
func (e CustomError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("Error Code %d (HTTP %d): %s", e.Code, e.Status, e.Message)
	}
	return fmt.Sprintf("Error Code %d: %s", e.Code, e.Message)
}

// NewError constructs and returns a new *CustomError instance based on a predefined error code.
// The optional details parameter allows for formatting arguments (printf-style) to be supplied
// for the error message. If an unknown code is provided, it defaults to returning ErrUnknown.
func NewError(code int, details ...any) *CustomError {
	templateErr, ok := errorMap[code]

	if !ok {
		logx.Error(
			fmt.Errorf("attempted to create an error with an unknown code in errorMap"),
			"Unknown error code requested",
			"requested_code", code,
		)

		unknownErr := errorMap[ErrUnknown]
		return &CustomError{
			Code:    unknownErr.Code,
			Message: unknownErr.Message,
			Status:  unknownErr.Status,
		}
	}

	customErr := templateErr

	if len(details) > 0 {
		if strings.Contains(customErr.Message, "%") {
			customErr.Message = fmt.Sprintf(customErr.Message, details...)
		} else if originalErr, ok := details[0].(error); ok {
			customErr.Message = fmt.Sprintf("%s (%v)", customErr.Message, originalErr)
		} else {
			logx.Warn(
				"Details provided for error, but message template has no formatting placeholders. Details ignored.",
			)
		}
	}

	return &customErr
}

// NewValidationError constructs an ErrValidation error carrying the per-field
// messages the platform returned for a rejected form submission.
func NewValidationError(status int, fields map[string][]string) *CustomError {
	customErr := NewError(ErrValidation)
	customErr.Status = status
	customErr.Fields = fields
	return customErr
}

// CodeOf extracts the business error code from err. It returns ErrUnknown for
// nil errors and for errors that are not a *CustomError.
func CodeOf(err error) int {
	var customErr *CustomError
	if errors.As(err, &customErr) {
		return customErr.Code
	}
	return ErrUnknown
}

// FieldsOf extracts per-field validation detail from err, or nil when the
// error carries none.
func FieldsOf(err error) map[string][]string {
	var customErr *CustomError
	if errors.As(err, &customErr) {
		return customErr.Fields
	}
	return nil
}
