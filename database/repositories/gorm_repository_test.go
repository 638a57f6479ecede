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

package repositories

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/l3montree-dev/supplyguard/database/databasetest"
	"github.com/l3montree-dev/supplyguard/database/models"
	"github.com/l3montree-dev/supplyguard/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func supplier(name, status string, risk int) models.Supplier {
	return models.Supplier{Name: name, Category: "Logistics", Location: "Berlin", Status: status, RiskScore: risk}
}

func TestGormRepository(t *testing.T) {
	ctx := context.Background()
	repository := NewSupplierRepository(databasetest.NewSQLiteDB(t))

	for _, s := range []models.Supplier{supplier("Beta", "active", 10), supplier("Alpha", "pending", 70), supplier("Gamma", "active", 40)} {
		require.NoError(t, repository.Insert(ctx, &s))
		assert.NotEqual(t, uuid.Nil, s.ID)
	}

	t.Run("should filter and order", func(t *testing.T) {
		rows, err := repository.Select(ctx, []shared.Filter{shared.Eq("status", "active")}, shared.Desc("risk_score"))
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, "Gamma", rows[0].Name)
		assert.Equal(t, "Beta", rows[1].Name)
	})

	t.Run("should page with the total of all matching rows", func(t *testing.T) {
		page, err := repository.SelectPage(ctx, nil, shared.Asc("name"), shared.PageInfo{Page: 2, PageSize: 2})
		require.NoError(t, err)
		assert.EqualValues(t, 3, page.Total)
		require.Len(t, page.Data, 1)
		assert.Equal(t, "Gamma", page.Data[0].Name)
		assert.False(t, page.HasNext())
	})

	t.Run("should match case insensitive with contains", func(t *testing.T) {
		rows, err := repository.Select(ctx, []shared.Filter{{Column: "name", Operator: shared.FilterContains, Value: "AMM"}}, nil)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "Gamma", rows[0].Name)
	})

	t.Run("should update and read back the row", func(t *testing.T) {
		rows, err := repository.Select(ctx, []shared.Filter{shared.Eq("name", "Alpha")}, nil)
		require.NoError(t, err)
		require.Len(t, rows, 1)

		updated, err := repository.Update(ctx, rows[0].ID, map[string]any{"verified": true})
		require.NoError(t, err)
		assert.True(t, updated.Verified)
		assert.Equal(t, "Alpha", updated.Name)
	})

	t.Run("should return not found for unknown ids", func(t *testing.T) {
		var notFound *shared.NotFoundError

		_, err := repository.Update(ctx, uuid.New(), map[string]any{"verified": true})
		assert.True(t, errors.As(err, &notFound))

		err = repository.Delete(ctx, uuid.New())
		assert.True(t, errors.As(err, &notFound))
	})
}

func newMockDB(t *testing.T) (shared.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	return db, mock
}

func TestGormRepositoryErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("should wrap driver failures into a transport error", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(`SELECT \* FROM "suppliers"`).WillReturnError(errors.New("connection refused"))

		_, err := NewSupplierRepository(db).Select(ctx, nil, nil)

		var transportErr *shared.TransportError
		require.True(t, errors.As(err, &transportErr))
		assert.Equal(t, "select", transportErr.Op)
		assert.Equal(t, "suppliers", transportErr.Table)
		// the driver message is passed through
		assert.Equal(t, "connection refused", err.Error())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("should map a foreign key violation to a conflict", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectExec(`DELETE FROM "supply_chain_nodes"`).WillReturnError(&pgconn.PgError{Code: "23503", Message: "violates foreign key constraint"})

		err := NewSupplyChainNodeRepository(db).Delete(ctx, uuid.New())

		var conflict *shared.ConflictError
		require.True(t, errors.As(err, &conflict))
		assert.Equal(t, "violates foreign key constraint", conflict.Reason)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("should report an update without affected rows as not found", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectExec(`UPDATE "risk_factors"`).WillReturnResult(sqlmock.NewResult(0, 0))

		_, err := NewRiskFactorRepository(db).Update(ctx, uuid.New(), map[string]any{"status": "closed"})

		var notFound *shared.NotFoundError
		assert.True(t, errors.As(err, &notFound))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
