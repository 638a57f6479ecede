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
	"testing"
	"time"

	"github.com/l3montree-dev/supplyguard/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

func receive(t *testing.T, ch <-chan map[string]any) map[string]any {
	t.Helper()
	select {
	case payload := <-ch:
		return payload
	case <-time.After(10 * time.Second):
		t.Fatal("no message received")
		return nil
	}
}

func TestMemoryBroker(t *testing.T) {
	ctx := context.Background()

	t.Run("should deliver to every subscriber of the topic", func(t *testing.T) {
		broker := NewMemoryBroker()
		a, err := broker.Subscribe(shared.EntityInvalidatedChannel)
		require.NoError(t, err)
		b, err := broker.Subscribe(shared.EntityInvalidatedChannel)
		require.NoError(t, err)
		other, err := broker.Subscribe(shared.PolicyChangeChannel)
		require.NoError(t, err)

		require.NoError(t, broker.Publish(ctx, shared.NewEntityInvalidatedMessage("Supplier")))

		assert.Equal(t, receive(t, a), receive(t, b))
		assert.Empty(t, other)
	})

	t.Run("should close the subscriber channels", func(t *testing.T) {
		broker := NewMemoryBroker()
		ch, err := broker.Subscribe(shared.EntityInvalidatedChannel)
		require.NoError(t, err)
		require.NoError(t, broker.Close())
		require.NoError(t, broker.Close())

		_, open := <-ch
		assert.False(t, open)
	})

	t.Run("should not publish with a cancelled context", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		assert.Error(t, NewMemoryBroker().Publish(cancelled, shared.NewEntityInvalidatedMessage("Supplier")))
	})
}

func TestNewBroker(t *testing.T) {
	t.Run("should need a pool for the postgres driver", func(t *testing.T) {
		_, err := NewBroker(context.Background(), "postgres", nil)
		assert.Error(t, err)
	})

	t.Run("should reject unknown drivers", func(t *testing.T) {
		_, err := NewBroker(context.Background(), "kafka", nil)
		assert.ErrorContains(t, err, `unknown broker driver "kafka"`)
	})

	t.Run("should create the memory broker", func(t *testing.T) {
		broker, err := NewBroker(context.Background(), "memory", nil)
		require.NoError(t, err)
		assert.IsType(t, &MemoryBroker{}, broker)
	})
}

func TestPostgreSQLBroker(t *testing.T) {
	if testing.Short() {
		t.Skip("needs a docker daemon")
	}
	ctx := context.Background()

	postgresC, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("supplyguard"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		postgres.BasicWaitStrategies(),
	)
	t.Cleanup(func() {
		if err := testcontainers.TerminateContainer(postgresC); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	})
	require.NoError(t, err)

	host, err := postgresC.Host(ctx)
	require.NoError(t, err)
	port, err := postgresC.MappedPort(ctx, "5432")
	require.NoError(t, err)

	pool, err := NewPgxConnPool(ctx, PoolConfig{
		User:         "user",
		Password:     "password",
		Host:         host,
		Port:         port.Port(),
		DBName:       "supplyguard",
		SSLMode:      "disable",
		MaxOpenConns: 4,
	})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	db, err := NewGormDB(pool)
	require.NoError(t, err)
	require.NoError(t, RunMigrationsWithDB(db))

	// two brokers on one database behave like two instances
	sender := NewPostgreSQLBroker(pool)
	receiver := NewPostgreSQLBroker(pool)
	t.Cleanup(func() {
		sender.Close()   // nolint
		receiver.Close() // nolint
	})

	ch, err := receiver.Subscribe(shared.EntityInvalidatedChannel)
	require.NoError(t, err)
	own, err := sender.Subscribe(shared.EntityInvalidatedChannel)
	require.NoError(t, err)

	require.NoError(t, sender.Publish(ctx, shared.NewEntityInvalidatedMessage("Supplier")))

	payload := receive(t, ch)
	assert.Equal(t, "Supplier", payload["entity"])
	assert.True(t, receiver.IsHealthy(ctx))
	assert.Equal(t, []shared.PubSubChannel{shared.EntityInvalidatedChannel}, receiver.GetActiveTopics())

	// the sender ignores its own messages
	select {
	case <-own:
		t.Fatal("sender received its own message")
	case <-time.After(500 * time.Millisecond):
	}
}
