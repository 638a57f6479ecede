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
	"strconv"
	"sync"
	"time"

	"github.com/l3montree-dev/supplyguard/monitoring"
	"github.com/l3montree-dev/supplyguard/shared"
	"golang.org/x/sync/singleflight"
)

type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusPending Status = "pending"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// QueryState is a snapshot of a cached read.
// Data is kept when a refetch fails.
type QueryState[T any] struct {
	Status    Status
	Data      T
	Err       error
	UpdatedAt time.Time
}

func (s QueryState[T]) HasData() bool {
	return !s.UpdatedAt.IsZero()
}

// RetryPolicy bounds the retries of a read. Writes are never retried.
type RetryPolicy struct {
	Retries int
	Backoff time.Duration
	// Timeout bounds a shared fetch including its backoff.
	// Zero allows DefaultFetchTimeout on top of the total backoff.
	Timeout time.Duration
}

const DefaultFetchTimeout = 10 * time.Second

var DefaultRetryPolicy = RetryPolicy{Retries: 3, Backoff: 200 * time.Millisecond}

func (p RetryPolicy) timeout() time.Duration {
	if p.Timeout > 0 {
		return p.Timeout
	}
	// 1+2+4+... times the backoff
	return DefaultFetchTimeout + p.Backoff*time.Duration(1<<p.Retries-1)
}

// query caches the result of fetch until it is invalidated.
// Concurrent reads of one generation share a single fetch. A fetch that
// started before an invalidation never writes the cache.
type query[T any] struct {
	entity string
	fetch  func(ctx context.Context) (T, error)
	retry  RetryPolicy

	mu         sync.Mutex
	state      QueryState[T]
	generation uint64
	fresh      bool

	group singleflight.Group
}

func newQuery[T any](entity string, retry RetryPolicy, fetch func(ctx context.Context) (T, error)) *query[T] {
	return &query[T]{
		entity: entity,
		fetch:  fetch,
		retry:  retry,
		state:  QueryState[T]{Status: StatusIdle},
	}
}

// staleAttempts bounds how often a read restarts because of concurrent invalidations.
const staleAttempts = 3

func (q *query[T]) Get(ctx context.Context) QueryState[T] {
	for range staleAttempts {
		q.mu.Lock()
		if q.fresh {
			state := q.state
			q.mu.Unlock()
			monitoring.ListCacheHitAmount.WithLabelValues(q.entity).Inc()
			return state
		}
		generation := q.generation
		q.state.Status = StatusLoading
		q.mu.Unlock()

		v, err, _ := q.group.Do(strconv.FormatUint(generation, 10), func() (any, error) {
			// the fetch is shared, one caller giving up must not cancel it for the others
			fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), q.retry.timeout())
			defer cancel()
			return q.fetchWithRetry(fetchCtx)
		})

		q.mu.Lock()
		if generation != q.generation {
			// invalidated while fetching, the result might not contain the latest mutation
			q.mu.Unlock()
			monitoring.ListFetchAmount.WithLabelValues(q.entity, "stale").Inc()
			continue
		}

		if err != nil {
			q.state.Status = StatusError
			q.state.Err = err
			monitoring.ListFetchAmount.WithLabelValues(q.entity, "error").Inc()
		} else {
			q.state = QueryState[T]{Status: StatusSuccess, Data: v.(T), UpdatedAt: time.Now()}
			q.fresh = true
			monitoring.ListFetchAmount.WithLabelValues(q.entity, "success").Inc()
		}
		state := q.state
		q.mu.Unlock()
		return state
	}

	q.mu.Lock()
	defer q.mu.Unlock()
	return q.state
}

// Peek returns the current state without fetching.
func (q *query[T]) Peek() QueryState[T] {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.state
}

func (q *query[T]) Invalidate() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.generation++
	q.fresh = false
}

func (q *query[T]) fetchWithRetry(ctx context.Context) (T, error) {
	var (
		res T
		err error
	)
	backoff := q.retry.Backoff
	for attempt := 0; attempt <= q.retry.Retries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return res, err
			case <-time.After(backoff):
			}
			backoff *= 2
		}

		res, err = q.fetch(ctx)
		if err == nil || !retryable(err) {
			return res, err
		}
	}
	return res, err
}

// retryable is true for transport failures only.
func retryable(err error) bool {
	var transportErr *shared.TransportError
	return errors.As(err, &transportErr)
}
