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

// Package gateway maps wire rows to entities and back and is the only
// layer talking to the resource clients.
package gateway

import (
	"context"
	"fmt"

	"github.com/l3montree-dev/supplyguard/shared"
)

// Descriptor configures a Gateway for one entity.
type Descriptor[R any, E any, P any] struct {
	// Entity is the human readable name, used in errors and notifications
	Entity string
	// Order is the default order every list is returned in
	Order          *shared.Order
	ToEntity       func(R) E
	ToRow          func(E) R
	PatchToColumns func(P) map[string]any
	// Normalize applies the default substitution of an entity before it is validated.
	// Optional.
	Normalize func(E) E
}

type Gateway[ID comparable, R any, E any, P any] struct {
	client     shared.ResourceClient[ID, R]
	descriptor Descriptor[R, E, P]
}

func NewGateway[ID comparable, R any, E any, P any](client shared.ResourceClient[ID, R], descriptor Descriptor[R, E, P]) *Gateway[ID, R, E, P] {
	return &Gateway[ID, R, E, P]{
		client:     client,
		descriptor: descriptor,
	}
}

func (g *Gateway[ID, R, E, P]) Entity() string {
	return g.descriptor.Entity
}

func (g *Gateway[ID, R, E, P]) FetchAll(ctx context.Context, filters ...shared.Filter) ([]E, error) {
	rows, err := g.client.Select(ctx, filters, g.descriptor.Order)
	if err != nil {
		return nil, err
	}
	return g.toEntities(rows), nil
}

func (g *Gateway[ID, R, E, P]) FetchPage(ctx context.Context, pageInfo shared.PageInfo, filters ...shared.Filter) (shared.Paged[E], error) {
	page, err := g.client.SelectPage(ctx, filters, g.descriptor.Order, pageInfo)
	if err != nil {
		return shared.Paged[E]{}, err
	}
	return shared.MapPaged(page, g.descriptor.ToEntity), nil
}

// FetchOne expects exactly one row with the id.
func (g *Gateway[ID, R, E, P]) FetchOne(ctx context.Context, id ID) (E, error) {
	var e E
	rows, err := g.client.Select(ctx, []shared.Filter{shared.Eq("id", id)}, nil)
	if err != nil {
		return e, err
	}

	switch len(rows) {
	case 0:
		return e, &shared.NotFoundError{Entity: g.descriptor.Entity, ID: fmt.Sprint(id)}
	case 1:
		return g.descriptor.ToEntity(rows[0]), nil
	default:
		return e, &shared.AmbiguousError{Entity: g.descriptor.Entity, Count: len(rows)}
	}
}

// Create validates the entity and inserts it. Server assigned fields of the
// entity are ignored.
func (g *Gateway[ID, R, E, P]) Create(ctx context.Context, entity E) (E, error) {
	var created E
	if g.descriptor.Normalize != nil {
		entity = g.descriptor.Normalize(entity)
	}
	if err := Validate(entity); err != nil {
		return created, err
	}

	row := g.descriptor.ToRow(entity)
	if err := g.client.Insert(ctx, &row); err != nil {
		return created, err
	}
	return g.descriptor.ToEntity(row), nil
}

// Update writes the provided fields of the patch only.
// An empty patch does not hit the client for a write.
func (g *Gateway[ID, R, E, P]) Update(ctx context.Context, id ID, patch P) (E, error) {
	if err := Validate(patch); err != nil {
		var e E
		return e, err
	}

	columns := g.descriptor.PatchToColumns(patch)
	if len(columns) == 0 {
		return g.FetchOne(ctx, id)
	}
	return g.updateColumns(ctx, id, columns)
}

func (g *Gateway[ID, R, E, P]) Remove(ctx context.Context, id ID) error {
	return g.client.Delete(ctx, id)
}

// updateColumns is the building block of the named actions.
func (g *Gateway[ID, R, E, P]) updateColumns(ctx context.Context, id ID, columns map[string]any) (E, error) {
	row, err := g.client.Update(ctx, id, columns)
	if err != nil {
		var e E
		return e, err
	}
	return g.descriptor.ToEntity(row), nil
}

func (g *Gateway[ID, R, E, P]) toEntities(rows []R) []E {
	entities := make([]E, 0, len(rows))
	for _, row := range rows {
		entities = append(entities, g.descriptor.ToEntity(row))
	}
	return entities
}

// Validate runs the validator tags of v and returns a *shared.ValidationError on failure.
func Validate(v any) error {
	if err := shared.V.Struct(v); err != nil {
		return shared.ValidationErrorFromValidator(err)
	}
	return nil
}
