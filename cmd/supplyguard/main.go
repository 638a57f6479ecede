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

package main

import (
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/l3montree-dev/supplyguard/accesscontrol"
	"github.com/l3montree-dev/supplyguard/blob"
	"github.com/l3montree-dev/supplyguard/cmd/supplyguard/api"
	"github.com/l3montree-dev/supplyguard/controllers"
	"github.com/l3montree-dev/supplyguard/database"
	"github.com/l3montree-dev/supplyguard/database/repositories"
	"github.com/l3montree-dev/supplyguard/gateway"
	"github.com/l3montree-dev/supplyguard/middlewares"
	"github.com/l3montree-dev/supplyguard/router"
	"github.com/l3montree-dev/supplyguard/shared"
	"github.com/l3montree-dev/supplyguard/synchronization"
	"github.com/l3montree-dev/supplyguard/telemetry"
	"go.uber.org/fx"

	_ "github.com/lib/pq"
)

var release string // Will be filled at build time

// main serves the dashboard pages below / and the JSON API below /api/v1.
// Environment variables are documented in .env.example.
func main() {
	shared.LoadConfig() // nolint: errcheck
	shared.InitLogger()

	if os.Getenv("ERROR_TRACKING_DSN") != "" {
		initSentry()

		// Catch panics
		defer func() {
			if err := recover(); err != nil {
				sentry.CurrentHub().Recover(err)
				// Wait for events to be send to server
				sentry.Flush(time.Second * 5)
			}
		}()
	}

	db, pool, err := database.DatabaseFactory()
	if err != nil {
		slog.Error("could not connect to the database", "err", err)
		panic(errors.New("failed to setup database connection"))
	}

	if os.Getenv("DISABLE_AUTOMIGRATE") != "true" {
		slog.Info("running database migrations...")
		if err := database.RunMigrationsWithDB(db); err != nil {
			slog.Error("failed to run database migrations", "error", err)
			panic(errors.New("failed to run database migrations"))
		}
	} else {
		slog.Info("automatic migrations disabled via DISABLE_AUTOMIGRATE=true")
	}

	fx.New(
		fx.Supply(db, pool),
		fx.Provide(database.BrokerFactory),
		telemetry.Module(middlewares.ServiceName, release),
		api.Module,
		AllModules,

		// we need to invoke all routers to register their routes
		fx.Invoke(func(router.APIV1Router) {}),
		fx.Invoke(func(router.ResourceRouter) {}),
		fx.Invoke(func(router.PageRouter) {}),
		// the registry listens for invalidations of other instances
		fx.Invoke(func(*synchronization.Registry) {}),
	).Run()
}

func initSentry() {
	environment := os.Getenv("ENVIRONMENT")
	if environment == "" {
		environment = "dev"
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:         os.Getenv("ERROR_TRACKING_DSN"),
		Environment: environment,
		Release:     release,

		// In debug mode, the debug information is printed to stdout to help you
		// understand what Sentry is doing.
		Debug: environment == "dev",

		AttachStacktrace: true,
		SendDefaultPII:   false,
	})
	if err != nil {
		slog.Error("could not initialize error tracking", "err", err)
	}
}

// AllModules combines the modules between the database and the routers
var AllModules = fx.Options(
	repositories.Module,
	gateway.Module,
	blob.Module,
	synchronization.Module,
	accesscontrol.AccessControlModule,
	controllers.ControllerModule,
	router.RouterModule,
)
