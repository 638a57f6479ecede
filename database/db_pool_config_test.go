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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetPoolConfigFromEnv(t *testing.T) {
	t.Run("should fall back to the defaults", func(t *testing.T) {
		t.Setenv("POSTGRES_HOST", "db")
		t.Setenv("POSTGRES_DB", "supplyguard")

		cfg := GetPoolConfigFromEnv()
		assert.Equal(t, "5432", cfg.Port)
		assert.Equal(t, "disable", cfg.SSLMode)
		assert.Equal(t, int32(10), cfg.MaxOpenConns)
		assert.Equal(t, int32(2), cfg.MinConns)
		assert.Equal(t, time.Hour, cfg.ConnMaxLifetime)
		assert.Equal(t, 15*time.Minute, cfg.ConnMaxIdleTime)
		assert.NoError(t, cfg.Validate())
	})

	t.Run("should read valid bounds and ignore invalid ones", func(t *testing.T) {
		t.Setenv("DB_MAX_OPEN_CONNS", "30")
		t.Setenv("DB_MIN_CONNS", "-1")
		t.Setenv("DB_CONN_MAX_LIFETIME", "5m")
		t.Setenv("DB_CONN_MAX_IDLE_TIME", "soon")

		cfg := GetPoolConfigFromEnv()
		assert.Equal(t, int32(30), cfg.MaxOpenConns)
		assert.Equal(t, int32(2), cfg.MinConns)
		assert.Equal(t, 5*time.Minute, cfg.ConnMaxLifetime)
		assert.Equal(t, 15*time.Minute, cfg.ConnMaxIdleTime)
	})
}

func TestPoolConfig(t *testing.T) {
	t.Run("should escape credentials in the dsn", func(t *testing.T) {
		cfg := PoolConfig{User: "sg", Password: "p@ss/word", Host: "db", Port: "5432", DBName: "supplyguard", SSLMode: "disable"}
		assert.Equal(t, "postgres://sg:p%40ss%2Fword@db:5432/supplyguard?sslmode=disable", cfg.DSN())
	})

	t.Run("should reject a missing host", func(t *testing.T) {
		assert.Error(t, PoolConfig{DBName: "supplyguard", MaxOpenConns: 1}.Validate())
	})

	t.Run("should reject more idle than open connections", func(t *testing.T) {
		cfg := PoolConfig{Host: "db", DBName: "supplyguard", MaxOpenConns: 1, MinConns: 2}
		assert.ErrorContains(t, cfg.Validate(), "DB_MIN_CONNS")
	})
}
