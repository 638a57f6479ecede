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
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/l3montree-dev/supplyguard/monitoring"
	"github.com/l3montree-dev/supplyguard/utils"
)

const (
	documentCacheSize = 1000
	documentCacheTTL  = 15 * time.Minute
)

// DocumentHook caches one document per key, e.g. the settings of a user.
// The least recently used documents are dropped.
type DocumentHook[K comparable, E any, P any] struct {
	fetch func(ctx context.Context, key K) (E, error)
	save  func(ctx context.Context, key K, patch P) (E, error)
	retry RetryPolicy

	mu      sync.Mutex
	queries *expirable.LRU[K, *query[E]]

	effects
}

func NewDocumentHook[K comparable, E any, P any](
	entity string,
	fetch func(ctx context.Context, key K) (E, error),
	save func(ctx context.Context, key K, patch P) (E, error),
	config Config,
) *DocumentHook[K, E, P] {
	if config.Synchronizer == nil {
		config.Synchronizer = utils.NewFireAndForgetSynchronizer()
	}
	if config.Notifier == nil {
		config.Notifier = NewNotifier(config.Synchronizer)
	}
	if config.Retry == (RetryPolicy{}) {
		config.Retry = DefaultRetryPolicy
	}

	return &DocumentHook[K, E, P]{
		fetch:   fetch,
		save:    save,
		retry:   config.Retry,
		queries: expirable.NewLRU[K, *query[E]](documentCacheSize, nil, documentCacheTTL),
		effects: effects{
			entity:       entity,
			notifier:     config.Notifier,
			broker:       config.Broker,
			synchronizer: config.Synchronizer,
		},
	}
}

func (h *DocumentHook[K, E, P]) Entity() string {
	return h.entity
}

func (h *DocumentHook[K, E, P]) queryFor(key K) *query[E] {
	h.mu.Lock()
	defer h.mu.Unlock()
	if q, ok := h.queries.Get(key); ok {
		return q
	}
	q := newQuery(h.entity, h.retry, func(ctx context.Context) (E, error) {
		return h.fetch(ctx, key)
	})
	h.queries.Add(key, q)
	return q
}

func (h *DocumentHook[K, E, P]) Get(ctx context.Context, key K) QueryState[E] {
	return h.queryFor(key).Get(ctx)
}

func (h *DocumentHook[K, E, P]) Save(ctx context.Context, key K, patch P) (E, Notification, error) {
	var res E
	notification, err := h.run(ctx, OperationUpdate, func() { h.InvalidateKey(key, OriginLocal) }, func(ctx context.Context) error {
		var err error
		res, err = h.save(ctx, key, patch)
		return err
	})
	return res, notification, err
}

func (h *DocumentHook[K, E, P]) Mutation(op string) MutationState {
	return h.mutations.get(op)
}

func (h *DocumentHook[K, E, P]) InvalidateKey(key K, origin string) {
	monitoring.InvalidationAmount.WithLabelValues(h.entity, origin).Inc()
	h.mu.Lock()
	q, ok := h.queries.Peek(key)
	h.mu.Unlock()
	if ok {
		q.Invalidate()
	}
}

// Invalidate drops every cached document. Remote invalidations do not carry the key.
func (h *DocumentHook[K, E, P]) Invalidate(origin string) {
	monitoring.InvalidationAmount.WithLabelValues(h.entity, origin).Inc()
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, q := range h.queries.Values() {
		q.Invalidate()
	}
}
