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
	"github.com/l3montree-dev/supplyguard/accesscontrol"
	"github.com/l3montree-dev/supplyguard/controllers"
	"github.com/l3montree-dev/supplyguard/middlewares"
	"github.com/l3montree-dev/supplyguard/shared"
	"github.com/labstack/echo/v4"
)

type ResourceRouter struct {
	*echo.Group
}

type resourceController interface {
	List(ctx shared.Context) error
	Read(ctx shared.Context) error
	Create(ctx shared.Context) error
	Update(ctx shared.Context) error
	Delete(ctx shared.Context) error
}

func registerResource(g *echo.Group, path string, rbac *accesscontrol.RBAC, obj accesscontrol.Object, c resourceController) {
	read := g.Group(path, middlewares.AccessControl(rbac, obj, accesscontrol.ActionRead))
	read.GET("", c.List)
	read.GET("/:id", c.Read)

	write := g.Group(path, middlewares.AccessControl(rbac, obj, accesscontrol.ActionWrite))
	write.POST("", c.Create)
	write.PATCH("/:id", c.Update)
	write.DELETE("/:id", c.Delete)
}

// @Summary whoami
// @Success 200 {object} object{userID=string,role=string}
// @Router /whoami [get]
func whoami(ctx echo.Context) error {
	return ctx.JSON(200, map[string]string{
		"userID": shared.GetUserID(ctx),
		"role":   shared.GetRole(ctx),
	})
}

func NewResourceRouter(apiV1Router APIV1Router, rbac *accesscontrol.RBAC, c *controllers.APIController) ResourceRouter {
	sessionRouter := apiV1Router.Group.Group("", middlewares.RequireSession(controllers.AuthPath))
	sessionRouter.GET("/whoami", whoami)

	registerResource(sessionRouter, "/suppliers", rbac, accesscontrol.ObjectSupplier, c.Suppliers)
	registerResource(sessionRouter, "/risk-factors", rbac, accesscontrol.ObjectRiskFactor, c.RiskFactors)
	registerResource(sessionRouter, "/esg-reports", rbac, accesscontrol.ObjectEsgReport, c.EsgReports)
	registerResource(sessionRouter, "/system-nodes", rbac, accesscontrol.ObjectSystemFlow, c.Nodes)
	registerResource(sessionRouter, "/system-connections", rbac, accesscontrol.ObjectSystemFlow, c.Connections)
	registerResource(sessionRouter, "/alerts", rbac, accesscontrol.ObjectAlert, c.Alerts)

	sessionRouter.POST("/esg-reports/:id/verify", c.VerifyEsgReport, middlewares.AccessControl(rbac, accesscontrol.ObjectEsgReport, accesscontrol.ActionVerify))
	sessionRouter.GET("/alerts/counts", c.AlertCounts, middlewares.AccessControl(rbac, accesscontrol.ObjectAlert, accesscontrol.ActionRead))
	sessionRouter.POST("/alerts/:id/acknowledge", c.AcknowledgeAlert, middlewares.AccessControl(rbac, accesscontrol.ObjectAlert, accesscontrol.ActionWrite))
	sessionRouter.POST("/alerts/:id/resolve", c.ResolveAlert, middlewares.AccessControl(rbac, accesscontrol.ObjectAlert, accesscontrol.ActionWrite))

	// settings and profile always belong to the session user
	sessionRouter.GET("/settings", c.GetSettings)
	sessionRouter.PUT("/settings", c.SaveSettings)
	sessionRouter.GET("/profile", c.GetProfile)
	sessionRouter.PUT("/profile", c.SaveProfile)

	return ResourceRouter{Group: sessionRouter}
}
