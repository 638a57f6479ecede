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

package utils

import (
	"log/slog"
	"sync"

	"github.com/l3montree-dev/supplyguard/monitoring"
)

// FireAndForgetSynchronizer runs side effects that must not delay the caller.
// In tests the synchronous implementation makes the side effects observable.
type FireAndForgetSynchronizer interface {
	FireAndForget(fn func())
}

type asyncFireAndForgetSynchronizer struct {
	wg sync.WaitGroup
}

func NewFireAndForgetSynchronizer() *asyncFireAndForgetSynchronizer {
	return &asyncFireAndForgetSynchronizer{}
}

func (s *asyncFireAndForgetSynchronizer) FireAndForget(fn func()) {
	s.wg.Go(func() {
		defer func() {
			if r := recover(); r != nil {
				monitoring.RecoverAndAlert("panic in fire and forget function", r)
			}
		}()
		fn()
	})
}

// Wait blocks until every function started so far returned. Used on shutdown.
func (s *asyncFireAndForgetSynchronizer) Wait() {
	s.wg.Wait()
}

type syncFireAndForgetSynchronizer struct{}

func NewSyncFireAndForgetSynchronizer() syncFireAndForgetSynchronizer {
	return syncFireAndForgetSynchronizer{}
}

func (syncFireAndForgetSynchronizer) FireAndForget(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("panic in synchronous fire and forget function", "err", r)
		}
	}()
	fn()
}
