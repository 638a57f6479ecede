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
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/l3montree-dev/supplyguard/shared"
	goredis "github.com/redis/go-redis/v9"
)

// RedisBroker implements shared.PubSubBroker on redis pub/sub channels.
// Channel names are prefixed to share one redis with other services.
type RedisBroker struct {
	rdb    *goredis.Client
	prefix string
	ID     string

	mu     sync.Mutex
	subs   []*goredis.PubSub
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

var _ shared.PubSubBroker = (*RedisBroker)(nil)

func NewRedisBroker(ctx context.Context, addr, prefix string) (*RedisBroker, error) {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	pingCtx, cancelPing := context.WithTimeout(ctx, 5*time.Second)
	defer cancelPing()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	brokerCtx, cancel := context.WithCancel(context.Background())
	return &RedisBroker{
		rdb:    rdb,
		prefix: prefix,
		ID:     uuid.New().String(),
		ctx:    brokerCtx,
		cancel: cancel,
	}, nil
}

func (b *RedisBroker) channelName(topic shared.PubSubChannel) string {
	return b.prefix + string(topic)
}

func (b *RedisBroker) Publish(ctx context.Context, message shared.PubSubMessage) error {
	raw, err := encodeEnvelope(b.ID, message)
	if err != nil {
		return err
	}
	return b.rdb.Publish(ctx, b.channelName(message.GetChannel()), raw).Err()
}

func (b *RedisBroker) Subscribe(topic shared.PubSubChannel) (<-chan map[string]any, error) {
	sub := b.rdb.Subscribe(b.ctx, b.channelName(topic))

	// ensures subscription actually started
	if _, err := sub.Receive(b.ctx); err != nil {
		_ = sub.Close()
		return nil, fmt.Errorf("redis subscribe: %w", err)
	}

	b.mu.Lock()
	b.subs = append(b.subs, sub)
	b.mu.Unlock()

	out := make(chan map[string]any, subscriberBuffer)
	b.wg.Go(func() {
		defer close(out)
		ch := sub.Channel()
		for {
			select {
			case <-b.ctx.Done():
				return
			case m, ok := <-ch:
				if !ok || m == nil {
					return
				}
				if envelope, ok := decodeEnvelope(m.Payload, b.ID, false); ok {
					deliver(out, topic, envelope.Payload)
				}
			}
		}
	})

	return out, nil
}

func (b *RedisBroker) Close() error {
	b.cancel()

	b.mu.Lock()
	for _, sub := range b.subs {
		_ = sub.Close()
	}
	b.subs = nil
	b.mu.Unlock()

	b.wg.Wait()
	return b.rdb.Close()
}
