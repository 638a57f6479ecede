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

// Package synchronization caches the reads of the gateways and coordinates
// the side effects of mutations: invalidation and notifications.
package synchronization

import (
	"context"
	"sync"
	"time"

	"github.com/l3montree-dev/supplyguard/monitoring"
	"github.com/l3montree-dev/supplyguard/shared"
	"github.com/l3montree-dev/supplyguard/utils"
)

// Gateway is the part of an entity gateway a Hook needs.
type Gateway[ID comparable, E any, P any] interface {
	Entity() string
	FetchAll(ctx context.Context, filters ...shared.Filter) ([]E, error)
	Create(ctx context.Context, entity E) (E, error)
	Update(ctx context.Context, id ID, patch P) (E, error)
	Remove(ctx context.Context, id ID) error
}

// MutationState is the state of the last run of one operation.
type MutationState struct {
	Status    Status
	Err       error
	UpdatedAt time.Time
}

// Invalidator is implemented by every hook. origin is "local" or "remote".
type Invalidator interface {
	Entity() string
	Invalidate(origin string)
}

const (
	OriginLocal  = "local"
	OriginRemote = "remote"
)

// mutations tracks one MutationState per operation.
type mutations struct {
	mu     sync.Mutex
	states map[string]MutationState
}

func (m *mutations) set(op string, status Status, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.states == nil {
		m.states = make(map[string]MutationState)
	}
	m.states[op] = MutationState{Status: status, Err: err, UpdatedAt: time.Now()}
}

func (m *mutations) get(op string) MutationState {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.states[op]; ok {
		return s
	}
	return MutationState{Status: StatusIdle}
}

// effects is shared by list and document hooks.
type effects struct {
	entity       string
	notifier     *Notifier
	broker       shared.PubSubBroker
	synchronizer utils.FireAndForgetSynchronizer
	mutations    mutations
}

// run executes a mutation. On success invalidate runs before the call returns,
// so the next read reflects the mutation. On failure the cache is left untouched.
func (e *effects) run(ctx context.Context, op Operation, invalidate func(), mutate func(ctx context.Context) error) (Notification, error) {
	e.mutations.set(op.Name, StatusPending, nil)

	if err := mutate(ctx); err != nil {
		e.mutations.set(op.Name, StatusError, err)
		monitoring.MutationAmount.WithLabelValues(e.entity, op.Name, "error").Inc()
		notification := errorNotification(e.entity, op, err)
		e.notifier.Notify(notification)
		return notification, err
	}

	e.mutations.set(op.Name, StatusSuccess, nil)
	monitoring.MutationAmount.WithLabelValues(e.entity, op.Name, "success").Inc()
	invalidate()
	e.publish(ctx)

	notification := successNotification(e.entity, op)
	e.notifier.Notify(notification)
	return notification, nil
}

func (e *effects) publish(ctx context.Context) {
	if e.broker == nil {
		return
	}
	ctx = context.WithoutCancel(ctx)
	e.synchronizer.FireAndForget(func() {
		if err := e.broker.Publish(ctx, shared.NewEntityInvalidatedMessage(e.entity)); err != nil {
			monitoring.Alert("could not publish entity invalidation", err, "entity", e.entity)
		}
	})
}

// Hook caches the list of one entity.
type Hook[ID comparable, E any, P any] struct {
	gateway Gateway[ID, E, P]
	list    *query[[]E]
	effects
}

type Config struct {
	Notifier     *Notifier
	Broker       shared.PubSubBroker
	Synchronizer utils.FireAndForgetSynchronizer
	Retry        RetryPolicy
}

func NewHook[ID comparable, E any, P any](gateway Gateway[ID, E, P], config Config) *Hook[ID, E, P] {
	if config.Synchronizer == nil {
		config.Synchronizer = utils.NewFireAndForgetSynchronizer()
	}
	if config.Notifier == nil {
		config.Notifier = NewNotifier(config.Synchronizer)
	}
	if config.Retry == (RetryPolicy{}) {
		config.Retry = DefaultRetryPolicy
	}

	return &Hook[ID, E, P]{
		gateway: gateway,
		list: newQuery(gateway.Entity(), config.Retry, func(ctx context.Context) ([]E, error) {
			return gateway.FetchAll(ctx)
		}),
		effects: effects{
			entity:       gateway.Entity(),
			notifier:     config.Notifier,
			broker:       config.Broker,
			synchronizer: config.Synchronizer,
		},
	}
}

func (h *Hook[ID, E, P]) Entity() string {
	return h.entity
}

// List returns the cached list, fetching it when the cache is empty or invalidated.
func (h *Hook[ID, E, P]) List(ctx context.Context) QueryState[[]E] {
	return h.list.Get(ctx)
}

// Peek returns the cached list without fetching.
func (h *Hook[ID, E, P]) Peek() QueryState[[]E] {
	return h.list.Peek()
}

func (h *Hook[ID, E, P]) Invalidate(origin string) {
	monitoring.InvalidationAmount.WithLabelValues(h.entity, origin).Inc()
	h.list.Invalidate()
}

func (h *Hook[ID, E, P]) Mutation(op string) MutationState {
	return h.mutations.get(op)
}

func (h *Hook[ID, E, P]) Create(ctx context.Context, entity E) (E, Notification, error) {
	return h.Action(ctx, OperationCreate, func(ctx context.Context) (E, error) {
		return h.gateway.Create(ctx, entity)
	})
}

func (h *Hook[ID, E, P]) Update(ctx context.Context, id ID, patch P) (E, Notification, error) {
	return h.Action(ctx, OperationUpdate, func(ctx context.Context) (E, error) {
		return h.gateway.Update(ctx, id, patch)
	})
}

func (h *Hook[ID, E, P]) Remove(ctx context.Context, id ID) (Notification, error) {
	return h.run(ctx, OperationDelete, h.invalidateLocal, func(ctx context.Context) error {
		return h.gateway.Remove(ctx, id)
	})
}

// Action runs a named mutation returning the changed entity.
func (h *Hook[ID, E, P]) Action(ctx context.Context, op Operation, action func(ctx context.Context) (E, error)) (E, Notification, error) {
	var res E
	notification, err := h.run(ctx, op, h.invalidateLocal, func(ctx context.Context) error {
		var err error
		res, err = action(ctx)
		return err
	})
	return res, notification, err
}

func (h *Hook[ID, E, P]) invalidateLocal() {
	h.Invalidate(OriginLocal)
}
