// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation is matched by every [ValidationError].
	ErrValidation = errors.New("validation failed")

	ErrUnsupportedType = errors.New("unsupported type for validation")
)

// ValidationError reports the first offending input, identified by its path
// such as "query.limit" or "body.publish_date".
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError builds a *ValidationError.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// Is makes errors.Is(err, ErrValidation) hold for every ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// QueryField returns the path of a query-string parameter.
func QueryField(name string) string {
	return "query." + name
}

// BodyField returns the path of a request body field.
func BodyField(name string) string {
	return "body." + name
}
