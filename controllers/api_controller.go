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
	"net/http"

	"github.com/l3montree-dev/supplyguard/dtos"
	"github.com/l3montree-dev/supplyguard/gateway"
	"github.com/l3montree-dev/supplyguard/shared"
	"github.com/l3montree-dev/supplyguard/synchronization"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type APIControllerParams struct {
	fx.In

	SupplierGateway    *gateway.SupplierGateway
	RiskFactorGateway  *gateway.RiskFactorGateway
	EsgReportGateway   *gateway.EsgReportGateway
	NodeGateway        *gateway.SystemNodeGateway
	ConnectionGateway  *gateway.SystemConnectionGateway
	AlertGateway       *gateway.AlertGateway
	SupplierHook       *synchronization.SupplierHook
	RiskFactorHook     *synchronization.RiskFactorHook
	EsgReportHook      *synchronization.EsgReportHook
	NodeHook           *synchronization.SystemNodeHook
	ConnectionHook     *synchronization.SystemConnectionHook
	AlertHook          *synchronization.AlertHook
	SettingsHook       *synchronization.SettingsHook
	ProfileHook        *synchronization.ProfileHook
	SettingsController *SettingsController
}

// APIController bundles the json resources mounted under /api/v1.
type APIController struct {
	Suppliers   *ResourceController[dtos.SupplierDTO, dtos.SupplierPatchRequest]
	RiskFactors *ResourceController[dtos.RiskFactorDTO, dtos.RiskFactorPatchRequest]
	EsgReports  *ResourceController[dtos.EsgReportDTO, dtos.EsgReportPatchRequest]
	Nodes       *ResourceController[dtos.SystemNodeDTO, dtos.SystemNodePatchRequest]
	Connections *ResourceController[dtos.SystemConnectionDTO, dtos.SystemConnectionPatchRequest]
	Alerts      *ResourceController[dtos.AlertDTO, dtos.AlertPatchRequest]

	VerifyEsgReport  echo.HandlerFunc
	AcknowledgeAlert echo.HandlerFunc
	ResolveAlert     echo.HandlerFunc

	alertGateway *gateway.AlertGateway
	settings     *synchronization.SettingsHook
	profiles     *synchronization.ProfileHook
	settingsPage *SettingsController
}

func NewAPIController(p APIControllerParams) *APIController {
	return &APIController{
		Suppliers:   NewResourceController[dtos.SupplierDTO, dtos.SupplierPatchRequest](p.SupplierGateway, p.SupplierHook, map[string]string{"status": "status", "category": "category"}),
		RiskFactors: NewResourceController[dtos.RiskFactorDTO, dtos.RiskFactorPatchRequest](p.RiskFactorGateway, p.RiskFactorHook, map[string]string{"severity": "severity", "status": "status"}),
		EsgReports:  NewResourceController[dtos.EsgReportDTO, dtos.EsgReportPatchRequest](p.EsgReportGateway, p.EsgReportHook, map[string]string{"type": "type", "status": "status"}),
		Nodes:       NewResourceController[dtos.SystemNodeDTO, dtos.SystemNodePatchRequest](p.NodeGateway, p.NodeHook, map[string]string{"type": "facility_type", "status": "status"}),
		Connections: NewResourceController[dtos.SystemConnectionDTO, dtos.SystemConnectionPatchRequest](p.ConnectionGateway, p.ConnectionHook, map[string]string{"sourceId": "origin_id", "targetId": "destination_id"}),
		Alerts:      NewResourceController[dtos.AlertDTO, dtos.AlertPatchRequest](p.AlertGateway, p.AlertHook, map[string]string{"status": "status", "severity": "severity"}),

		VerifyEsgReport:  Action(p.EsgReportHook.Verify),
		AcknowledgeAlert: Action(p.AlertHook.Acknowledge),
		ResolveAlert:     Action(p.AlertHook.Resolve),

		alertGateway: p.AlertGateway,
		settings:     p.SettingsHook,
		profiles:     p.ProfileHook,
		settingsPage: p.SettingsController,
	}
}

// AlertCounts returns the number of alerts per status.
func (c *APIController) AlertCounts(ctx shared.Context) error {
	counts, err := c.alertGateway.CountByStatus(ctx.Request().Context())
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, counts)
}

func (c *APIController) GetSettings(ctx shared.Context) error {
	state := c.settings.Get(ctx.Request().Context(), shared.GetUserID(ctx))
	if state.Err != nil && !state.HasData() {
		return state.Err
	}
	return ctx.JSON(http.StatusOK, state.Data)
}

func (c *APIController) SaveSettings(ctx shared.Context) error {
	var patch dtos.UserSettingsPatchRequest
	if err := ctx.Bind(&patch); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "could not bind request").WithInternal(err)
	}
	settings, _, err := c.settings.Save(ctx.Request().Context(), shared.GetUserID(ctx), patch)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, settings)
}

func (c *APIController) GetProfile(ctx shared.Context) error {
	state := c.profiles.Get(ctx.Request().Context(), shared.GetUserID(ctx))
	if state.Err != nil && !state.HasData() {
		return state.Err
	}
	return ctx.JSON(http.StatusOK, state.Data)
}

func (c *APIController) SaveProfile(ctx shared.Context) error {
	var patch dtos.UserProfilePatchRequest
	if err := ctx.Bind(&patch); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "could not bind request").WithInternal(err)
	}
	if err := c.settingsPage.guardRole(ctx, &patch); err != nil {
		return err
	}
	profile, _, err := c.profiles.Save(ctx.Request().Context(), shared.GetUserID(ctx), patch)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, profile)
}
