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

package commands

import (
	"bytes"
	"strings"
	"testing"

	"github.com/l3montree-dev/supplyguard/middlewares"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenCommand(t *testing.T) {
	t.Setenv("SESSION_SECRET", "a-very-long-test-secret")

	t.Run("should issue a token the server accepts", func(t *testing.T) {
		var out bytes.Buffer
		cmd := NewTokenCommand()
		cmd.SetOut(&out)
		cmd.SetArgs([]string{"user-1"})
		require.NoError(t, cmd.Execute())

		tokens, err := middlewares.NewSessionTokensFromEnv()
		require.NoError(t, err)
		userID, err := tokens.Verify(strings.TrimSpace(out.String()))
		require.NoError(t, err)
		assert.Equal(t, "user-1", userID)
	})

	t.Run("should require a user id", func(t *testing.T) {
		cmd := NewTokenCommand()
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs([]string{})
		assert.Error(t, cmd.Execute())
	})

	t.Run("should fail without a secret", func(t *testing.T) {
		t.Setenv("SESSION_SECRET", "")
		cmd := NewTokenCommand()
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs([]string{"user-1"})
		assert.Error(t, cmd.Execute())
	})
}
