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

package router

import (
	"database/sql"
	"os"
	"runtime"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/l3montree-dev/supplyguard/cmd/supplyguard/api"
	"github.com/l3montree-dev/supplyguard/database"
	"github.com/l3montree-dev/supplyguard/shared"
	"github.com/labstack/echo/v4"
)

type InfoResponse struct {
	Build    BuildInfo    `json:"build"`
	Runtime  RuntimeInfo  `json:"runtime"`
	Process  ProcessInfo  `json:"process"`
	Database DatabaseInfo `json:"database"`
	Broker   string       `json:"broker"`
	Storage  string       `json:"documentStore"`
}

type BuildInfo struct {
	Version   string `json:"version,omitempty"`
	Commit    string `json:"commit,omitempty"`
	Branch    string `json:"branch,omitempty"`
	BuildDate string `json:"buildDate,omitempty"`
}

// ProcessInfo holds process-level diagnostics
type ProcessInfo struct {
	PID           int    `json:"pid"`
	Hostname      string `json:"hostname,omitempty"`
	UptimeSeconds int    `json:"uptimeSeconds"`
}

type RuntimeInfo struct {
	GoVersion     string   `json:"goVersion,omitempty"`
	NumGoroutines int      `json:"numGoroutines,omitempty"`
	Mem           MemStats `json:"mem,omitempty"`
}

type MemStats struct {
	Alloc      uint64 `json:"alloc"`
	TotalAlloc uint64 `json:"totalAlloc"`
	Sys        uint64 `json:"sys"`
	HeapAlloc  uint64 `json:"heapAlloc"`
}

// PoolInfo exposes the pool configuration without credentials.
type PoolInfo struct {
	DBName          string `json:"dbName,omitempty"`
	MaxOpenConns    int32  `json:"maxOpenConns,omitempty"`
	ConnMaxLifetime string `json:"connMaxLifetime,omitempty"`
	ConnMaxIdleTime string `json:"connMaxIdleTime,omitempty"`

	TotalConns    int `json:"totalConns,omitempty"`
	IdleConns     int `json:"idleConns,omitempty"`
	AcquiredConns int `json:"acquiredConns,omitempty"`
	MaxConns      int `json:"maxConns,omitempty"`
}

type DatabaseInfo struct {
	sql.DBStats
	Status string  `json:"status"`
	Error  *string `json:"error,omitempty"`

	MigrationVersion *uint   `json:"migrationVersion,omitempty"`
	MigrationDirty   *bool   `json:"migrationDirty,omitempty"`
	MigrationError   *string `json:"migrationError,omitempty"`

	Pool *PoolInfo `json:"pool,omitempty"`
}

func databaseInfo(db shared.DB, pool *pgxpool.Pool) DatabaseInfo {
	poolCfg := database.GetPoolConfigFromEnv()
	poolInfo := PoolInfo{
		DBName:          poolCfg.DBName,
		MaxOpenConns:    poolCfg.MaxOpenConns,
		ConnMaxLifetime: poolCfg.ConnMaxLifetime.String(),
		ConnMaxIdleTime: poolCfg.ConnMaxIdleTime.String(),
	}
	info := DatabaseInfo{Status: "unknown", Pool: &poolInfo}

	sqlDB, err := db.DB()
	if err != nil {
		errMsg := "failed to get database instance"
		info.Status = "unhealthy"
		info.Error = &errMsg
		return info
	}
	if err := sqlDB.Ping(); err != nil {
		errMsg := "database ping failed"
		info.Status = "unhealthy"
		info.Error = &errMsg
		return info
	}
	info.Status = "healthy"

	if pool != nil {
		stats := pool.Stat()
		info.OpenConnections = int(stats.TotalConns())
		info.InUse = int(stats.AcquiredConns())
		info.Idle = int(stats.IdleConns())
		info.MaxOpenConnections = int(stats.MaxConns())

		poolInfo.TotalConns = int(stats.TotalConns())
		poolInfo.IdleConns = int(stats.IdleConns())
		poolInfo.AcquiredConns = int(stats.AcquiredConns())
		poolInfo.MaxConns = int(stats.MaxConns())
	} else {
		info.DBStats = sqlDB.Stats()
	}

	if version, dirty, err := database.GetMigrationVersionWithDB(db); err == nil {
		info.MigrationVersion = &version
		info.MigrationDirty = &dirty
	} else {
		errStr := err.Error()
		info.MigrationError = &errStr
	}
	return info
}

func infoHandler(db shared.DB, pool *pgxpool.Pool, documents shared.DocumentStore) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		var mem runtime.MemStats
		runtime.ReadMemStats(&mem)

		resp := InfoResponse{
			Build: BuildInfo{
				Version:   api.Version,
				Commit:    api.Commit,
				Branch:    api.Branch,
				BuildDate: api.BuildDate,
			},
			Runtime: RuntimeInfo{
				GoVersion:     runtime.Version(),
				NumGoroutines: runtime.NumGoroutine(),
				Mem: MemStats{
					Alloc:      mem.Alloc,
					TotalAlloc: mem.TotalAlloc,
					Sys:        mem.Sys,
					HeapAlloc:  mem.HeapAlloc,
				},
			},
			Process: ProcessInfo{
				PID:           os.Getpid(),
				UptimeSeconds: int(time.Since(api.StartedAt).Seconds()),
			},
			Database: databaseInfo(db, pool),
			Broker:   shared.GetEnvOr("BROKER_DRIVER", "postgres"),
			Storage:  documents.Driver(),
		}
		if host, _ := os.Hostname(); host != "" {
			resp.Process.Hostname = host
		}
		return ctx.JSON(200, resp)
	}
}
