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
	"log/slog"
	"net/http"

	"github.com/l3montree-dev/supplyguard/accesscontrol"
	"github.com/l3montree-dev/supplyguard/shared"
	"github.com/labstack/echo/v4"
)

// AccessControl rejects requests whose profile role may not perform act on obj.
func AccessControl(rbac *accesscontrol.RBAC, obj accesscontrol.Object, act accesscontrol.Action) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			role := shared.GetRole(ctx)
			allowed, err := rbac.IsAllowed(role, obj, act)
			if err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, "could not determine if the user has access").WithInternal(err)
			}
			if !allowed {
				slog.Warn("access denied", "user", shared.GetUserID(ctx), "role", role, "object", obj, "action", act)
				return echo.NewHTTPError(http.StatusForbidden, "your role "+role+" is not allowed to "+string(act)+" "+string(obj))
			}
			return next(ctx)
		}
	}
}
