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

// Package databasetest provides an in-memory database for unit tests.
package databasetest

import (
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/l3montree-dev/supplyguard/database/models"
	"github.com/l3montree-dev/supplyguard/shared"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// AllModels lists every table of the application in creation order.
var AllModels = []any{
	&models.Supplier{},
	&models.RiskFactor{},
	&models.EsgReportItem{},
	&models.SupplyChainNode{},
	&models.SupplyChainRoute{},
	&models.UserSettings{},
	&models.Profile{},
	&models.Alert{},
}

// NewSQLiteDB opens a private in-memory database with all tables migrated.
func NewSQLiteDB(t testing.TB) shared.DB {
	t.Helper()

	// every test gets its own named database, a single connection keeps it alive
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(AllModels...))
	return db
}
