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
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/l3montree-dev/supplyguard/monitoring"
	"github.com/l3montree-dev/supplyguard/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/schema"
)

// GormRepository implements shared.ResourceClient for a single table.
type GormRepository[ID comparable, T schema.Tabler] struct {
	db *gorm.DB
}

func newGormRepository[ID comparable, T schema.Tabler](db *gorm.DB) *GormRepository[ID, T] {
	return &GormRepository[ID, T]{
		db: db,
	}
}

func (g *GormRepository[ID, T]) Table() string {
	var t T
	return t.TableName()
}

func (g *GormRepository[ID, T]) GetDB(ctx context.Context, tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx.WithContext(ctx)
	}

	return g.db.WithContext(ctx)
}

func (g *GormRepository[ID, T]) Select(ctx context.Context, filters []shared.Filter, order *shared.Order) ([]T, error) {
	defer g.observe("select", time.Now())

	var ts []T
	err := applyOrder(applyFilters(g.GetDB(ctx, nil).Model(new(T)), filters), order).Find(&ts).Error
	if err != nil {
		return nil, g.wrapError("select", err)
	}
	return ts, nil
}

func (g *GormRepository[ID, T]) SelectPage(ctx context.Context, filters []shared.Filter, order *shared.Order, pageInfo shared.PageInfo) (shared.Paged[T], error) {
	defer g.observe("select_page", time.Now())

	var total int64
	if err := applyFilters(g.GetDB(ctx, nil).Model(new(T)), filters).Count(&total).Error; err != nil {
		return shared.Paged[T]{}, g.wrapError("select_page", err)
	}

	var ts []T
	q := applyOrder(applyFilters(g.GetDB(ctx, nil).Model(new(T)), filters), order)
	if err := pageInfo.ApplyOnDB(q).Find(&ts).Error; err != nil {
		return shared.Paged[T]{}, g.wrapError("select_page", err)
	}
	return shared.NewPaged(pageInfo, total, ts), nil
}

func (g *GormRepository[ID, T]) Insert(ctx context.Context, t *T) error {
	defer g.observe("insert", time.Now())

	if err := g.GetDB(ctx, nil).Create(t).Error; err != nil {
		return g.wrapError("insert", err)
	}
	return nil
}

// Update applies the patch to the row and reads it back.
// A patch that matches no row yields a shared.NotFoundError.
func (g *GormRepository[ID, T]) Update(ctx context.Context, id ID, patch map[string]any) (T, error) {
	defer g.observe("update", time.Now())

	var t T
	res := g.GetDB(ctx, nil).Model(new(T)).Where("id = ?", id).Updates(patch)
	if res.Error != nil {
		return t, g.wrapError("update", res.Error)
	}
	if res.RowsAffected == 0 {
		return t, &shared.NotFoundError{Entity: g.Table(), ID: fmt.Sprint(id)}
	}

	if err := g.GetDB(ctx, nil).First(&t, "id = ?", id).Error; err != nil {
		return t, g.wrapError("update", err)
	}
	return t, nil
}

func (g *GormRepository[ID, T]) Delete(ctx context.Context, id ID) error {
	defer g.observe("delete", time.Now())

	res := g.GetDB(ctx, nil).Delete(new(T), "id = ?", id)
	if res.Error != nil {
		return g.wrapError("delete", res.Error)
	}
	if res.RowsAffected == 0 {
		return &shared.NotFoundError{Entity: g.Table(), ID: fmt.Sprint(id)}
	}
	return nil
}

func (g *GormRepository[ID, T]) Upsert(ctx context.Context, t *T, conflictingColumns []string, updateOnly []string) error {
	defer g.observe("upsert", time.Now())

	columns := make([]clause.Column, 0, len(conflictingColumns))
	for _, c := range conflictingColumns {
		columns = append(columns, clause.Column{Name: c})
	}

	onConflict := clause.OnConflict{Columns: columns, UpdateAll: true}
	if len(updateOnly) > 0 {
		onConflict = clause.OnConflict{Columns: columns, DoUpdates: clause.AssignmentColumns(updateOnly)}
	}

	if err := g.GetDB(ctx, nil).Clauses(onConflict).Create(t).Error; err != nil {
		return g.wrapError("upsert", err)
	}
	return nil
}

func (g *GormRepository[ID, T]) Transaction(ctx context.Context, f func(tx *gorm.DB) error) error {
	return g.GetDB(ctx, nil).Transaction(f)
}

func (g *GormRepository[ID, T]) observe(op string, start time.Time) {
	monitoring.ResourceClientDuration.WithLabelValues(g.Table(), op).Observe(time.Since(start).Seconds())
}

// wrapError maps driver errors onto the error taxonomy of the gateways.
// The message of the driver is kept.
func (g *GormRepository[ID, T]) wrapError(op string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &shared.NotFoundError{Entity: g.Table()}
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23503": // FK violation
			return &shared.ConflictError{Entity: g.Table(), Reason: pgErr.Message}
		case "23505": // unique violation
			return &shared.ConflictError{Entity: g.Table(), Reason: pgErr.Message}
		}
	}

	monitoring.ResourceClientErrors.WithLabelValues(g.Table(), op).Inc()
	return shared.NewTransportError(op, g.Table(), err)
}

func applyFilters(db *gorm.DB, filters []shared.Filter) *gorm.DB {
	for _, f := range filters {
		column := clause.Column{Name: f.Column}
		switch f.Operator {
		case shared.FilterNotEquals:
			db = db.Where(clause.Neq{Column: column, Value: f.Value})
		case shared.FilterIn:
			db = db.Where(clause.IN{Column: column, Values: toValues(f.Value)})
		case shared.FilterContains:
			db = db.Where(clause.Expr{
				SQL:  "LOWER(?) LIKE ?",
				Vars: []any{column, "%" + strings.ToLower(fmt.Sprint(f.Value)) + "%"},
			})
		default:
			db = db.Where(clause.Eq{Column: column, Value: f.Value})
		}
	}
	return db
}

func applyOrder(db *gorm.DB, order *shared.Order) *gorm.DB {
	if order == nil {
		return db
	}
	return db.Order(clause.OrderByColumn{Column: clause.Column{Name: order.Column}, Desc: order.Descending})
}

func toValues(v any) []any {
	switch values := v.(type) {
	case []any:
		return values
	case []string:
		res := make([]any, len(values))
		for i, s := range values {
			res[i] = s
		}
		return res
	}
	return []any{v}
}
