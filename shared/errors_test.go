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
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationErrorFromValidator(t *testing.T) {
	type form struct {
		Name  string `validate:"required"`
		Email string `validate:"required,email"`
		Score int    `validate:"min=0,max=100"`
	}

	err := validator.New().Struct(form{Email: "nope", Score: 120})
	converted := ValidationErrorFromValidator(err)

	var ve *ValidationError
	require.ErrorAs(t, converted, &ve)
	assert.Equal(t, map[string]string{
		"Name":  "This field is required",
		"Email": "Must be a valid email address",
		"Score": "Must be at most 100",
	}, ve.Fields)
	assert.Equal(t, "validation failed: Email: Must be a valid email address, Name: This field is required, Score: Must be at most 100", ve.Error())

	t.Run("should pass other errors through", func(t *testing.T) {
		other := errors.New("boom")
		assert.Same(t, other, ValidationErrorFromValidator(other))
	})
}

func TestRuleMessage(t *testing.T) {
	assert.Equal(t, "Must be at least 2 characters", RuleMessage("min", "2", false))
	assert.Equal(t, "Must be at least 2", RuleMessage("gte", "2", true))
	assert.Equal(t, "Must be one of: Low, Medium, High", RuleMessage("oneof", "Low Medium High", false))
	assert.Equal(t, "Invalid value", RuleMessage("unknown", "", false))
}

func TestErrorPredicates(t *testing.T) {
	wrapped := fmt.Errorf("gateway: %w", &NotFoundError{Entity: "Supplier", ID: "42"})
	assert.True(t, IsNotFound(wrapped))
	assert.Equal(t, "gateway: Supplier 42 not found", wrapped.Error())

	assert.True(t, IsConflict(fmt.Errorf("x: %w", &ConflictError{Entity: "SystemNode", Reason: "still referenced"})))
	assert.True(t, IsValidationError(NewValidationError("name", "This field is required")))
	assert.False(t, IsNotFound(errors.New("boom")))

	transport := NewTransportError("select", "suppliers", errors.New("connection refused"))
	assert.Equal(t, "connection refused", transport.Error())
	assert.ErrorIs(t, fmt.Errorf("x: %w", transport), transport.Err)
}
