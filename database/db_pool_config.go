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
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/l3montree-dev/supplyguard/shared"
)

// PoolConfig describes where the postgres instance lives and how many
// connections the pgx pool keeps towards it.
type PoolConfig struct {
	User     string
	Password string
	Host     string
	Port     string
	DBName   string
	SSLMode  string

	MaxOpenConns    int32
	MinConns        int32
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// DSN renders the config as a postgres:// url. User and password are escaped.
func (c PoolConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     c.Host + ":" + c.Port,
		Path:     "/" + c.DBName,
		RawQuery: url.Values{"sslmode": []string{c.SSLMode}}.Encode(),
	}
	return u.String()
}

// Validate fails if the bounds of the pool contradict each other.
func (c PoolConfig) Validate() error {
	if c.Host == "" || c.DBName == "" {
		return fmt.Errorf("POSTGRES_HOST and POSTGRES_DB are required")
	}
	if c.MinConns > c.MaxOpenConns {
		return fmt.Errorf("DB_MIN_CONNS (%d) exceeds DB_MAX_OPEN_CONNS (%d)", c.MinConns, c.MaxOpenConns)
	}
	return nil
}

// GetPoolConfigFromEnv reads POSTGRES_USER, POSTGRES_PASSWORD, POSTGRES_HOST,
// POSTGRES_PORT (5432), POSTGRES_DB and POSTGRES_SSLMODE (disable) plus the
// pool bounds DB_MAX_OPEN_CONNS (10), DB_MIN_CONNS (2),
// DB_CONN_MAX_LIFETIME (1h) and DB_CONN_MAX_IDLE_TIME (15m).
// Unparsable bounds are logged and replaced by their default.
func GetPoolConfigFromEnv() PoolConfig {
	return PoolConfig{
		User:     os.Getenv("POSTGRES_USER"),
		Password: os.Getenv("POSTGRES_PASSWORD"),
		Host:     os.Getenv("POSTGRES_HOST"),
		Port:     shared.GetEnvOr("POSTGRES_PORT", "5432"),
		DBName:   os.Getenv("POSTGRES_DB"),
		SSLMode:  shared.GetEnvOr("POSTGRES_SSLMODE", "disable"),

		MaxOpenConns:    envInt32("DB_MAX_OPEN_CONNS", 10, 1),
		MinConns:        envInt32("DB_MIN_CONNS", 2, 0),
		ConnMaxLifetime: envDuration("DB_CONN_MAX_LIFETIME", time.Hour),
		ConnMaxIdleTime: envDuration("DB_CONN_MAX_IDLE_TIME", 15*time.Minute),
	}
}

func envInt32(key string, fallback, lowest int32) int32 {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || int32(v) < lowest {
		slog.Warn("ignoring invalid pool setting", "key", key, "value", raw, "default", fallback)
		return fallback
	}
	return int32(v)
}

func envDuration(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := time.ParseDuration(raw)
	if err != nil || v <= 0 {
		slog.Warn("ignoring invalid pool setting", "key", key, "value", raw, "default", fallback)
		return fallback
	}
	return v
}
