// Copyright (C) 2026 l3montree GmbH
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package shared

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// TransportError is returned whenever the remote table store fails.
// The message of the underlying error is passed through unchanged.
type TransportError struct {
	Op    string
	Table string
	Err   error
}

func (e *TransportError) Error() string {
	return e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func NewTransportError(op, table string, err error) *TransportError {
	return &TransportError{Op: op, Table: table, Err: err}
}

// ValidationError holds one message per invalid field.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

// ValidationErrorFromValidator converts the errors of the go-playground validator.
// Any other error is returned as is.
func ValidationErrorFromValidator(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		var invalid *validator.InvalidValidationError
		if errors.As(err, &invalid) {
			return NewValidationError("", "invalid input")
		}
		return err
	}

	fields := make(map[string]string, len(validationErrors))
	for _, fe := range validationErrors {
		fields[fe.Field()] = RuleMessage(fe.Tag(), fe.Param(), isNumericKind(fe.Kind().String()))
	}
	return &ValidationError{Fields: fields}
}

type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s not found", e.Entity)
	}
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

// AmbiguousError is returned when a lookup that should match exactly one row matched more.
type AmbiguousError struct {
	Entity string
	Count  int
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("expected exactly one %s, found %d", e.Entity, e.Count)
}

// ConflictError is returned when an operation would break a relation between entities.
type ConflictError struct {
	Entity string
	Reason string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: %s", e.Entity, e.Reason)
}

func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}

func isNumericKind(kind string) bool {
	switch kind {
	case "int", "int8", "int16", "int32", "int64",
		"uint", "uint8", "uint16", "uint32", "uint64",
		"float32", "float64":
		return true
	}
	return false
}

// RuleMessage renders a human readable message for a failed validator tag.
func RuleMessage(tag, param string, numeric bool) string {
	switch tag {
	case "required":
		return "This field is required"
	case "min", "gte":
		if numeric {
			return "Must be at least " + param
		}
		return fmt.Sprintf("Must be at least %s characters", param)
	case "max", "lte":
		if numeric {
			return "Must be at most " + param
		}
		return fmt.Sprintf("Must be at most %s characters", param)
	case "email":
		return "Must be a valid email address"
	case "oneof":
		return "Must be one of: " + strings.Join(strings.Fields(param), ", ")
	case "datetime":
		return "Must be a date (YYYY-MM-DD)"
	case "uuid", "uuid4":
		return "Must be a valid identifier"
	case "url", "uri":
		return "Must be a valid URL"
	case "number", "numeric":
		return "Must be a number"
	}
	return "Invalid value"
}
