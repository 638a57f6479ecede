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
	"log/slog"
	"sync"

	"github.com/l3montree-dev/supplyguard/shared"
)

// Registry invalidates the hooks of this instance when another instance
// announces a mutation on the broker.
type Registry struct {
	mu    sync.RWMutex
	hooks map[string][]Invalidator
}

func NewRegistry(hooks ...Invalidator) *Registry {
	r := &Registry{hooks: make(map[string][]Invalidator)}
	for _, h := range hooks {
		r.Register(h)
	}
	return r
}

func (r *Registry) Register(h Invalidator) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hooks[h.Entity()] = append(r.hooks[h.Entity()], h)
}

// Invalidate returns false for unknown entities.
func (r *Registry) Invalidate(entity string, origin string) bool {
	r.mu.RLock()
	hooks := r.hooks[entity]
	r.mu.RUnlock()

	for _, h := range hooks {
		h.Invalidate(origin)
	}
	return len(hooks) > 0
}

// Listen consumes entityInvalidated messages until ctx is done.
func (r *Registry) Listen(ctx context.Context, broker shared.PubSubBroker) error {
	messages, err := broker.Subscribe(shared.EntityInvalidatedChannel)
	if err != nil {
		return err
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case payload, ok := <-messages:
				if !ok {
					return
				}
				entity, ok := shared.InvalidatedEntity(payload)
				if !ok {
					slog.Warn("dropping malformed invalidation", "payload", payload)
					continue
				}
				if !r.Invalidate(entity, OriginRemote) {
					slog.Debug("received invalidation for unknown entity", "entity", entity)
				}
			}
		}
	}()
	return nil
}
