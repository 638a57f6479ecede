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

package synchronization

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/l3montree-dev/supplyguard/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSettings struct {
	Theme string
}

type fakeSettingsStore struct {
	mu      sync.Mutex
	byUser  map[string]fakeSettings
	fetches int
	saveErr error
}

func (s *fakeSettingsStore) get(ctx context.Context, userID string) (fakeSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fetches++
	if settings, ok := s.byUser[userID]; ok {
		return settings, nil
	}
	return fakeSettings{Theme: "system"}, nil
}

func (s *fakeSettingsStore) save(ctx context.Context, userID string, theme *string) (fakeSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return fakeSettings{}, s.saveErr
	}
	settings := fakeSettings{Theme: *theme}
	s.byUser[userID] = settings
	return settings, nil
}

func TestDocumentHook(t *testing.T) {
	ctx := context.Background()
	store := &fakeSettingsStore{byUser: map[string]fakeSettings{}}
	h := NewDocumentHook("Settings", store.get, store.save, testConfig())

	t.Run("should cache one document per key", func(t *testing.T) {
		assert.Equal(t, "system", h.Get(ctx, "user-1").Data.Theme)
		assert.Equal(t, "system", h.Get(ctx, "user-1").Data.Theme)
		assert.Equal(t, "system", h.Get(ctx, "user-2").Data.Theme)
		assert.Equal(t, 2, store.fetches)
	})

	t.Run("should reflect a save on the next read of the same key only", func(t *testing.T) {
		_, notification, err := h.Save(ctx, "user-1", shared.Ptr("dark"))
		require.NoError(t, err)
		assert.Equal(t, "Settings updated successfully", notification.Message)

		assert.Equal(t, "dark", h.Get(ctx, "user-1").Data.Theme)
		assert.Equal(t, 3, store.fetches)
		assert.Equal(t, "system", h.Get(ctx, "user-2").Data.Theme)
		assert.Equal(t, 3, store.fetches)
	})

	t.Run("a failed save must keep the cached document", func(t *testing.T) {
		store.saveErr = errors.New("timeout")
		_, notification, err := h.Save(ctx, "user-1", shared.Ptr("light"))
		assert.Error(t, err)
		assert.Equal(t, "Failed to update settings: timeout", notification.Message)
		assert.Equal(t, "dark", h.Get(ctx, "user-1").Data.Theme)
		assert.Equal(t, 3, store.fetches)
	})

	t.Run("a remote invalidation drops every document", func(t *testing.T) {
		h.Invalidate(OriginRemote)
		h.Get(ctx, "user-1")
		h.Get(ctx, "user-2")
		assert.Equal(t, 5, store.fetches)
	})
}

func TestInbox(t *testing.T) {
	inbox := NewInbox()
	for i := range 7 {
		inbox.Push("user-1", Notification{Message: string(rune('a' + i))})
	}

	pending := inbox.Drain("user-1")
	require.Len(t, pending, 5)
	assert.Equal(t, "c", pending[0].Message)
	assert.Empty(t, inbox.Drain("user-1"))
	assert.Empty(t, inbox.Drain("user-2"))
}
