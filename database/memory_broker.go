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
	"sync"

	"github.com/l3montree-dev/supplyguard/shared"
)

// MemoryBroker delivers messages inside one process.
// It is used for single instance deployments and tests.
type MemoryBroker struct {
	mu          sync.RWMutex
	subscribers map[shared.PubSubChannel][]chan map[string]any
	closed      bool
}

var _ shared.PubSubBroker = (*MemoryBroker)(nil)

func NewMemoryBroker() *MemoryBroker {
	return &MemoryBroker{
		subscribers: make(map[shared.PubSubChannel][]chan map[string]any),
	}
}

func (b *MemoryBroker) Publish(ctx context.Context, message shared.PubSubMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, ch := range b.subscribers[message.GetChannel()] {
		deliver(ch, message.GetChannel(), message.GetPayload())
	}
	return nil
}

func (b *MemoryBroker) Subscribe(topic shared.PubSubChannel) (<-chan map[string]any, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan map[string]any, subscriberBuffer)
	if b.closed {
		close(ch)
		return ch, nil
	}
	b.subscribers[topic] = append(b.subscribers[topic], ch)
	return ch, nil
}

func (b *MemoryBroker) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true
	for topic, chs := range b.subscribers {
		for _, ch := range chs {
			close(ch)
		}
		delete(b.subscribers, topic)
	}
	return nil
}
