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
	"context"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/l3montree-dev/supplyguard/cmd/supplyguard/api"
	"github.com/l3montree-dev/supplyguard/middlewares"
	"github.com/l3montree-dev/supplyguard/shared"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type APIV1Router struct {
	*echo.Group
}

func NewAPIV1Router(srv api.Server,
	db shared.DB,
	pool *pgxpool.Pool,
	documents shared.DocumentStore,
	tokens *middlewares.SessionTokens,
	roles middlewares.RoleResolver,
) APIV1Router {
	apiV1Router := srv.Echo.Group("/api/v1", middlewares.SessionMiddleware(tokens, roles))

	apiV1Router.GET("/info", infoHandler(db, pool, documents))
	apiV1Router.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	apiV1Router.GET("/health", healthHandler(db))
	return APIV1Router{Group: apiV1Router}
}

type healthStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// healthHandler answers 503 as soon as the database does not respond within
// two seconds.
func healthHandler(db shared.DB) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return ctx.JSON(http.StatusServiceUnavailable, healthStatus{Status: "unhealthy", Error: "failed to get database instance"})
		}

		pingCtx, cancel := context.WithTimeout(ctx.Request().Context(), 2*time.Second)
		defer cancel()
		if err := sqlDB.PingContext(pingCtx); err != nil {
			return ctx.JSON(http.StatusServiceUnavailable, healthStatus{Status: "unhealthy", Error: "database ping failed"})
		}
		return ctx.JSON(http.StatusOK, healthStatus{Status: "healthy"})
	}
}
