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

package database

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/l3montree-dev/supplyguard/monitoring"
	"github.com/l3montree-dev/supplyguard/shared"
	"github.com/lib/pq"
)

// topicListener owns the pool connection that LISTENs on one topic.
type topicListener struct {
	conn *pgxpool.Conn
	outs []chan map[string]any
}

// PostgreSQLBroker implements shared.PubSubBroker with LISTEN/NOTIFY.
// Every topic holds one pool connection for as long as the broker lives.
type PostgreSQLBroker struct {
	ID string

	pool        *pgxpool.Pool
	ownMessages bool

	mu        sync.RWMutex
	listeners map[shared.PubSubChannel]*topicListener
	wg        sync.WaitGroup
	ctx       context.Context
	cancel    context.CancelFunc
}

var _ shared.PubSubBroker = (*PostgreSQLBroker)(nil)

func NewPostgreSQLBroker(pool *pgxpool.Pool) *PostgreSQLBroker {
	ctx, cancel := context.WithCancel(context.Background())
	return &PostgreSQLBroker{
		ID:        uuid.New().String(),
		pool:      pool,
		listeners: make(map[shared.PubSubChannel]*topicListener),
		ctx:       ctx,
		cancel:    cancel,
	}
}

// SetShouldReceiveOwnMessages makes the broker deliver its own notifications
// to its own subscribers as well.
func (b *PostgreSQLBroker) SetShouldReceiveOwnMessages(should bool) {
	b.ownMessages = should
}

func (b *PostgreSQLBroker) Publish(ctx context.Context, message shared.PubSubMessage) error {
	raw, err := encodeEnvelope(b.ID, message)
	if err != nil {
		return err
	}
	// NOTIFY does not accept bind parameters, pg_notify does
	if _, err := b.pool.Exec(ctx, "SELECT pg_notify($1, $2)", string(message.GetChannel()), string(raw)); err != nil {
		return fmt.Errorf("could not notify %s: %w", message.GetChannel(), err)
	}
	return nil
}

func (b *PostgreSQLBroker) Subscribe(topic shared.PubSubChannel) (<-chan map[string]any, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make(chan map[string]any, subscriberBuffer)
	if l, ok := b.listeners[topic]; ok {
		l.outs = append(l.outs, out)
		return out, nil
	}

	l, err := b.listen(topic)
	if err != nil {
		return nil, err
	}
	l.outs = []chan map[string]any{out}
	b.listeners[topic] = l
	b.wg.Go(func() { b.receive(topic, l.conn) })
	return out, nil
}

func (b *PostgreSQLBroker) listen(topic shared.PubSubChannel) (*topicListener, error) {
	ctx, cancel := context.WithTimeout(b.ctx, 30*time.Second)
	defer cancel()

	conn, err := b.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not acquire listening connection: %w", err)
	}
	if _, err := conn.Exec(ctx, "LISTEN "+pq.QuoteIdentifier(string(topic))); err != nil {
		conn.Release()
		return nil, fmt.Errorf("could not listen on %s: %w", topic, err)
	}
	return &topicListener{conn: conn}, nil
}

func (b *PostgreSQLBroker) receive(topic shared.PubSubChannel, conn *pgxpool.Conn) {
	defer conn.Release()
	for {
		n, err := conn.Conn().WaitForNotification(b.ctx)
		if err != nil {
			if b.ctx.Err() == nil {
				monitoring.Alert("postgres broker stopped listening", err, "topic", topic)
			}
			return
		}
		if n.Channel != string(topic) {
			continue
		}
		envelope, ok := decodeEnvelope(n.Payload, b.ID, b.ownMessages)
		if !ok {
			continue
		}

		b.mu.RLock()
		for _, out := range b.listeners[topic].outs {
			deliver(out, topic, envelope.Payload)
		}
		b.mu.RUnlock()
	}
}

// IsHealthy pings the pool the listeners are taken from.
func (b *PostgreSQLBroker) IsHealthy(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := b.pool.Ping(ctx); err != nil {
		slog.Error("postgres broker is unhealthy", "err", err)
		return false
	}
	return true
}

// GetActiveTopics returns the topics with a LISTEN in place, sorted.
func (b *PostgreSQLBroker) GetActiveTopics() []shared.PubSubChannel {
	b.mu.RLock()
	defer b.mu.RUnlock()

	topics := make([]shared.PubSubChannel, 0, len(b.listeners))
	for topic := range b.listeners {
		topics = append(topics, topic)
	}
	slices.Sort(topics)
	return topics
}

// Close stops every listener and closes the subscriber channels. It may be
// called more than once.
func (b *PostgreSQLBroker) Close() error {
	b.cancel()
	b.wg.Wait()

	b.mu.Lock()
	defer b.mu.Unlock()
	for topic, l := range b.listeners {
		for _, out := range l.outs {
			close(out)
		}
		delete(b.listeners, topic)
	}
	return nil
}
