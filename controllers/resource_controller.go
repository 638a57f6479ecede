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

package controllers

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/l3montree-dev/supplyguard/shared"
	"github.com/l3montree-dev/supplyguard/synchronization"
	"github.com/labstack/echo/v4"
)

type pageFetcher[E any] interface {
	FetchPage(ctx context.Context, pageInfo shared.PageInfo, filters ...shared.Filter) (shared.Paged[E], error)
	FetchOne(ctx context.Context, id uuid.UUID) (E, error)
}

// ResourceController is the json api of one entity. Reads page through the
// gateway, writes go through the hook so every cache gets invalidated.
type ResourceController[E any, P any] struct {
	gateway pageFetcher[E]
	track   listTrack[E, P]
	// filters maps query parameters to the columns they filter by equality
	filters map[string]string
}

func NewResourceController[E any, P any](gateway pageFetcher[E], track listTrack[E, P], filters map[string]string) *ResourceController[E, P] {
	return &ResourceController[E, P]{gateway: gateway, track: track, filters: filters}
}

// @Summary List a page of the resource
// @Param page query int false "Page number (default: 1)"
// @Param pageSize query int false "Page size (default: 10, max: 100)"
func (c *ResourceController[E, P]) List(ctx shared.Context) error {
	var filters []shared.Filter
	for param, column := range c.filters {
		if v := ctx.QueryParam(param); v != "" {
			filters = append(filters, shared.Eq(column, v))
		}
	}

	page, err := c.gateway.FetchPage(ctx.Request().Context(), shared.GetPageInfo(ctx), filters...)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, page)
}

func (c *ResourceController[E, P]) Read(ctx shared.Context) error {
	id, err := parseID(ctx)
	if err != nil {
		return err
	}
	entity, err := c.gateway.FetchOne(ctx.Request().Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, entity)
}

func (c *ResourceController[E, P]) Create(ctx shared.Context) error {
	var entity E
	if err := ctx.Bind(&entity); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "could not bind request").WithInternal(err)
	}
	created, _, err := c.track.Create(ctx.Request().Context(), entity)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, created)
}

func (c *ResourceController[E, P]) Update(ctx shared.Context) error {
	id, err := parseID(ctx)
	if err != nil {
		return err
	}
	var patch P
	if err := ctx.Bind(&patch); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "could not bind request").WithInternal(err)
	}
	updated, _, err := c.track.Update(ctx.Request().Context(), id, patch)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, updated)
}

func (c *ResourceController[E, P]) Delete(ctx shared.Context) error {
	id, err := parseID(ctx)
	if err != nil {
		return err
	}
	if _, err := c.track.Remove(ctx.Request().Context(), id); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

// Action serves a named mutation of one row.
func Action[E any](fn func(ctx context.Context, id uuid.UUID) (E, synchronization.Notification, error)) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		id, err := parseID(ctx)
		if err != nil {
			return err
		}
		entity, _, err := fn(ctx.Request().Context(), id)
		if err != nil {
			return err
		}
		return ctx.JSON(http.StatusOK, entity)
	}
}
