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

package middlewares

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/l3montree-dev/supplyguard/monitoring"
	"github.com/l3montree-dev/supplyguard/shared"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"
)

const ServiceName = "supplyguard"

func registerMiddlewares(e *echo.Echo) {
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(otelecho.Middleware(ServiceName))
	e.Use(logger())
	e.Use(recovermiddleware())
	e.Use(RateLimit(rate.Limit(shared.GetEnvFloatOr("RATE_LIMIT_PER_SECOND", 20)), 60))

	e.HTTPErrorHandler = func(err error, ctx echo.Context) {
		// do the logging straight inside the error handler
		// this keeps controller methods clean
		he := ToHTTPError(err)
		if he.Code >= http.StatusInternalServerError {
			slog.Error(err.Error(), "method", ctx.Request().Method, "path", ctx.Request().URL)
		} else {
			slog.Warn(err.Error(), "method", ctx.Request().Method, "path", ctx.Request().URL, "status", he.Code)
		}

		if ctx.Response().Committed {
			return
		}

		if ctx.Request().Method == http.MethodHead {
			if err := ctx.NoContent(he.Code); err != nil {
				slog.Error("could not send error response", "error", err)
			}
			return
		}

		message := he.Message
		if m, ok := message.(string); ok {
			message = echo.Map{"message": m}
		}

		if WantsHTML(ctx) && e.Renderer != nil {
			if err := ctx.Render(he.Code, "error", echo.Map{
				"Title":  http.StatusText(he.Code),
				"Active": ctx.Request().URL.Path,
				"View":   echo.Map{"Code": he.Code, "Message": he.Message},
			}); err != nil {
				slog.Error("could not render error page", "error", err)
			}
			return
		}
		if err := ctx.JSON(he.Code, message); err != nil {
			slog.Error("could not send error response", "error", err)
		}
	}
}

// ToHTTPError maps the typed errors of the gateways to a status code.
func ToHTTPError(err error) *echo.HTTPError {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he
	}

	var (
		validationErr *shared.ValidationError
		notFoundErr   *shared.NotFoundError
		conflictErr   *shared.ConflictError
		ambiguousErr  *shared.AmbiguousError
		transportErr  *shared.TransportError
	)
	switch {
	case errors.As(err, &validationErr):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, validationErr.Fields).SetInternal(err)
	case errors.As(err, &notFoundErr):
		return echo.NewHTTPError(http.StatusNotFound, notFoundErr.Error()).SetInternal(err)
	case errors.As(err, &conflictErr):
		return echo.NewHTTPError(http.StatusConflict, conflictErr.Error()).SetInternal(err)
	case errors.As(err, &ambiguousErr):
		monitoring.Alert("ambiguous result", err)
		return echo.NewHTTPError(http.StatusInternalServerError, ambiguousErr.Error()).SetInternal(err)
	case errors.As(err, &transportErr):
		return echo.NewHTTPError(http.StatusBadGateway, transportErr.Error()).SetInternal(err)
	}
	monitoring.Alert("unexpected error", err)
	return echo.NewHTTPError(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)).SetInternal(err)
}

// WantsHTML is true for requests outside of the json api.
func WantsHTML(ctx echo.Context) bool {
	if strings.HasPrefix(ctx.Request().URL.Path, "/api/") {
		return false
	}
	accept := ctx.Request().Header.Get(echo.HeaderAccept)
	return accept == "" || strings.Contains(accept, echo.MIMETextHTML) || strings.Contains(accept, "*/*")
}

func logger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			now := time.Now()

			err := next(ctx)

			if err == nil && ctx.Request().URL.Path != "/api/v1/health" {
				attrs := []any{"method", ctx.Request().Method, "url", ctx.Request().URL, "status", ctx.Response().Status, "duration", time.Since(now)}
				// set by otelecho when tracing is enabled
				if span := trace.SpanContextFromContext(ctx.Request().Context()); span.HasTraceID() {
					attrs = append(attrs, "traceID", span.TraceID().String())
				}
				slog.Info("handled request", attrs...)
			}
			return err
		}
	}
}

func recovermiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					monitoring.RecoverAndAlert("recovered from panic in request handler", r)
					err = echo.NewHTTPError(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
				}
			}()
			return next(ctx)
		}
	}
}

// RateLimit limits the requests per client ip. burst requests are allowed at once.
func RateLimit(limit rate.Limit, burst int) echo.MiddlewareFunc {
	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Skipper: func(ctx echo.Context) bool {
			return strings.HasPrefix(ctx.Request().URL.Path, "/api/v1/health")
		},
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
			Rate:      limit,
			Burst:     burst,
			ExpiresIn: 3 * time.Minute,
		}),
		IdentifierExtractor: func(ctx echo.Context) (string, error) {
			return ctx.RealIP(), nil
		},
		DenyHandler: func(ctx echo.Context, identifier string, err error) error {
			return echo.NewHTTPError(http.StatusTooManyRequests, "too many requests")
		},
	})
}

func Server() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Logger.SetLevel(99)
	registerMiddlewares(e)
	return e
}
