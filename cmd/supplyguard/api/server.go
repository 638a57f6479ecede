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

package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/l3montree-dev/supplyguard/middlewares"
	"github.com/l3montree-dev/supplyguard/shared"
	"github.com/l3montree-dev/supplyguard/templates"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// Filled at build time
var (
	Version   string
	Commit    string
	Branch    string
	BuildDate string
)

var StartedAt = time.Now()

type Server struct {
	Echo *echo.Echo
}

func NewServer(lc fx.Lifecycle, renderer *templates.Renderer) Server {
	e := middlewares.Server()
	e.Renderer = renderer
	if os.Getenv("ENABLE_PROFILING") == "true" {
		middlewares.AddProfileEndpoints(e)
	}

	addr := shared.GetEnvOr("LISTEN_ADDR", ":8080")
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				slog.Info("starting server", "addr", addr)
				if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
					slog.Error("server stopped", "err", err)
					os.Exit(1)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return e.Shutdown(ctx)
		},
	})
	return Server{Echo: e}
}

var Module = fx.Options(
	fx.Provide(templates.NewRenderer),
	fx.Provide(NewServer),
	fx.Provide(func(s Server) *echo.Echo { return s.Echo }),
)
