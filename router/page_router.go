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
	"github.com/l3montree-dev/supplyguard/blob"
	"github.com/l3montree-dev/supplyguard/cmd/supplyguard/api"
	"github.com/l3montree-dev/supplyguard/controllers"
	"github.com/l3montree-dev/supplyguard/middlewares"
	"github.com/l3montree-dev/supplyguard/pages"
	"github.com/l3montree-dev/supplyguard/shared"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type PageRouter struct {
	*echo.Group
}

type mutationController interface {
	Create(ctx shared.Context) error
	Update(ctx shared.Context) error
	Delete(ctx shared.Context) error
}

// registerMutations adds the form posts of a crud page. Delete is a post too,
// browsers have no other form method.
func registerMutations(g *echo.Group, path string, rbac *accesscontrol.RBAC, obj accesscontrol.Object, c mutationController) {
	write := g.Group(path, middlewares.AccessControl(rbac, obj, accesscontrol.ActionWrite))
	write.POST("", c.Create)
	write.POST("/:id", c.Update)
	write.POST("/:id/delete", c.Delete)
}

type PageRouterParams struct {
	fx.In

	Server    api.Server
	Tokens    *middlewares.SessionTokens
	Roles     middlewares.RoleResolver
	RBAC      *accesscontrol.RBAC
	Auth      *controllers.AuthController
	Dashboard *controllers.DashboardController
	Suppliers *controllers.SupplierController
	Risks     *controllers.RiskFactorController
	Reports   *controllers.EsgReportController
	Alerts    *controllers.AlertController
	Flow      *controllers.SystemFlowController
	Settings  *controllers.SettingsController
	Documents *controllers.DocumentController
}

func NewPageRouter(p PageRouterParams) PageRouter {
	root := p.Server.Echo.Group("", middlewares.SessionMiddleware(p.Tokens, p.Roles))
	root.GET(controllers.AuthPath, p.Auth.Page)
	root.POST(controllers.AuthPath, p.Auth.SignIn)
	root.POST(controllers.AuthPath+"/logout", p.Auth.SignOut)

	rbac := p.RBAC
	read := func(obj accesscontrol.Object) echo.MiddlewareFunc {
		return middlewares.AccessControl(rbac, obj, accesscontrol.ActionRead)
	}
	write := func(obj accesscontrol.Object) echo.MiddlewareFunc {
		return middlewares.AccessControl(rbac, obj, accesscontrol.ActionWrite)
	}

	app := root.Group("", middlewares.RequireSession(controllers.AuthPath))
	app.GET(pages.DashboardPath, p.Dashboard.Page)
	app.GET(blob.DocumentsPath+"*", p.Documents.Get, read(accesscontrol.ObjectEsgReport))

	app.GET(pages.SuppliersPath, p.Suppliers.Page, read(accesscontrol.ObjectSupplier))
	registerMutations(app, pages.SuppliersPath, rbac, accesscontrol.ObjectSupplier, p.Suppliers)

	app.GET(pages.RiskAnalysisPath, p.Risks.Page, read(accesscontrol.ObjectRiskFactor))
	registerMutations(app, pages.RiskAnalysisPath, rbac, accesscontrol.ObjectRiskFactor, p.Risks)

	app.GET(pages.EsgReportsPath, p.Reports.Page, read(accesscontrol.ObjectEsgReport))
	registerMutations(app, pages.EsgReportsPath, rbac, accesscontrol.ObjectEsgReport, p.Reports)
	app.POST(pages.EsgReportsPath+"/:id/verify", p.Reports.Verify, middlewares.AccessControl(rbac, accesscontrol.ObjectEsgReport, accesscontrol.ActionVerify))
	app.POST(pages.EsgReportsPath+"/:id/document", p.Reports.Upload, write(accesscontrol.ObjectEsgReport), controllers.DocumentBodyLimit)

	app.GET(pages.AlertsPath, p.Alerts.Page, read(accesscontrol.ObjectAlert))
	registerMutations(app, pages.AlertsPath, rbac, accesscontrol.ObjectAlert, p.Alerts)
	app.POST(pages.AlertsPath+"/:id/acknowledge", p.Alerts.Acknowledge, write(accesscontrol.ObjectAlert))
	app.POST(pages.AlertsPath+"/:id/resolve", p.Alerts.Resolve, write(accesscontrol.ObjectAlert))

	app.GET(pages.SystemFlowPath, p.Flow.Page, read(accesscontrol.ObjectSystemFlow))
	registerMutations(app, pages.NodesPath, rbac, accesscontrol.ObjectSystemFlow, p.Flow.Nodes)
	registerMutations(app, pages.ConnectionsPath, rbac, accesscontrol.ObjectSystemFlow, p.Flow.Connections)

	app.GET(pages.SettingsPath, p.Settings.Page)
	app.POST(pages.SettingsPath, p.Settings.SaveSettings)
	app.POST(pages.ProfilePath, p.Settings.SaveProfile)

	return PageRouter{Group: app}
}
