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

	"github.com/l3montree-dev/supplyguard/dtos"
	"github.com/l3montree-dev/supplyguard/pages"
	"github.com/l3montree-dev/supplyguard/presentation"
	"github.com/l3montree-dev/supplyguard/synchronization"
)

type RiskFactorController struct {
	*crudController[dtos.RiskFactorDTO, dtos.RiskFactorPatchRequest, *pages.RiskAnalysisView]
}

func NewRiskFactorController(hook *synchronization.RiskFactorHook, inbox *synchronization.Inbox) *RiskFactorController {
	return &RiskFactorController{crudController: &crudController[dtos.RiskFactorDTO, dtos.RiskFactorPatchRequest, *pages.RiskAnalysisView]{
		pageController: pageController{inbox: inbox},
		track:          hook,
		basePath:       pages.RiskAnalysisPath,
		pagePath:       pages.RiskAnalysisPath,
		template:       "risk_analysis",
		title:          "Risk Analysis",
		createTitle:    "Add Risk Factor",
		editTitle:      "Edit Risk Factor",
		form:           func(context.Context) presentation.Form { return pages.RiskFactorForm },
		page: func(ctx context.Context, state pages.State) *pages.RiskAnalysisView {
			view := pages.RiskAnalysisPage(state, hook.List(ctx))
			return &view
		},
	}}
}
