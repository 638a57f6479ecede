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
	"log/slog"
	"net/http"

	"github.com/l3montree-dev/supplyguard/pages"
	"github.com/l3montree-dev/supplyguard/shared"
	"github.com/l3montree-dev/supplyguard/synchronization"
)

type DashboardController struct {
	pageController
	sources pages.DashboardSources
}

func NewDashboardController(suppliers *synchronization.SupplierHook, riskFactors *synchronization.RiskFactorHook, reports *synchronization.EsgReportHook, alerts *synchronization.AlertHook, inbox *synchronization.Inbox) *DashboardController {
	return &DashboardController{
		pageController: pageController{inbox: inbox},
		sources: pages.DashboardSources{
			Suppliers:   suppliers,
			RiskFactors: riskFactors,
			EsgReports:  reports,
			Alerts:      alerts,
		},
	}
}

// Page renders the rollups of the loaded lists. A failing list is shown
// inline, the other cards still render.
func (c *DashboardController) Page(ctx shared.Context) error {
	view, err := pages.LoadDashboard(ctx.Request().Context(), c.sources)
	if err != nil {
		slog.Warn("could not load every dashboard source", "err", err)
	}
	return c.render(ctx, http.StatusOK, "dashboard", view.Title, view)
}
