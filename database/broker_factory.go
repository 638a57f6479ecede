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
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/l3montree-dev/supplyguard/shared"
	"go.uber.org/fx"
)

type closableBroker interface {
	shared.PubSubBroker
	Close() error
}

// BrokerFactory selects the broker driver from BROKER_DRIVER (postgres, redis or memory).
// The broker is closed when the application stops.
func BrokerFactory(lc fx.Lifecycle, pool *pgxpool.Pool) (shared.PubSubBroker, error) {
	broker, err := NewBroker(context.Background(), os.Getenv("BROKER_DRIVER"), pool)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return broker.Close()
		},
	})
	return broker, nil
}

func NewBroker(ctx context.Context, driver string, pool *pgxpool.Pool) (closableBroker, error) {
	switch driver {
	case "", "postgres":
		if pool == nil {
			return nil, fmt.Errorf("postgres broker needs a connection pool")
		}
		slog.Info("using postgres broker")
		return NewPostgreSQLBroker(pool), nil
	case "redis":
		slog.Info("using redis broker", "addr", os.Getenv("REDIS_ADDR"))
		return NewRedisBroker(ctx, os.Getenv("REDIS_ADDR"), shared.GetEnvOr("REDIS_CHANNEL_PREFIX", "supplyguard:"))
	case "memory":
		slog.Info("using in-memory broker")
		return NewMemoryBroker(), nil
	}
	return nil, fmt.Errorf("unknown broker driver %q", driver)
}
