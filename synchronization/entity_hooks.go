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

package synchronization

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/l3montree-dev/supplyguard/dtos"
	"github.com/l3montree-dev/supplyguard/gateway"
)

var (
	OperationVerify         = Operation{Name: "verify", Verb: "verify", Past: "verified"}
	OperationAttachDocument = Operation{Name: "attach_document", Verb: "upload the document of", Past: "document uploaded"}
	OperationAcknowledge    = Operation{Name: "acknowledge", Verb: "acknowledge", Past: "acknowledged"}
	OperationResolve        = Operation{Name: "resolve", Verb: "resolve", Past: "resolved"}
)

type SupplierHook struct {
	*Hook[uuid.UUID, dtos.SupplierDTO, dtos.SupplierPatchRequest]
}

func NewSupplierHook(g *gateway.SupplierGateway, config Config) *SupplierHook {
	return &SupplierHook{Hook: NewHook(g, config)}
}

type RiskFactorHook struct {
	*Hook[uuid.UUID, dtos.RiskFactorDTO, dtos.RiskFactorPatchRequest]
}

func NewRiskFactorHook(g *gateway.RiskFactorGateway, config Config) *RiskFactorHook {
	return &RiskFactorHook{Hook: NewHook(g, config)}
}

type EsgReportHook struct {
	*Hook[uuid.UUID, dtos.EsgReportDTO, dtos.EsgReportPatchRequest]
	gateway *gateway.EsgReportGateway
}

func NewEsgReportHook(g *gateway.EsgReportGateway, config Config) *EsgReportHook {
	return &EsgReportHook{Hook: NewHook(g, config), gateway: g}
}

func (h *EsgReportHook) Verify(ctx context.Context, id uuid.UUID) (dtos.EsgReportDTO, Notification, error) {
	return h.Action(ctx, OperationVerify, func(ctx context.Context) (dtos.EsgReportDTO, error) {
		return h.gateway.Verify(ctx, id)
	})
}

func (h *EsgReportHook) AttachDocument(ctx context.Context, id uuid.UUID, fileName, contentType string, body io.Reader) (dtos.EsgReportDTO, Notification, error) {
	return h.Action(ctx, OperationAttachDocument, func(ctx context.Context) (dtos.EsgReportDTO, error) {
		return h.gateway.AttachDocument(ctx, id, fileName, contentType, body)
	})
}

type SystemNodeHook struct {
	*Hook[uuid.UUID, dtos.SystemNodeDTO, dtos.SystemNodePatchRequest]
}

func NewSystemNodeHook(g *gateway.SystemNodeGateway, config Config) *SystemNodeHook {
	return &SystemNodeHook{Hook: NewHook(g, config)}
}

type SystemConnectionHook struct {
	*Hook[uuid.UUID, dtos.SystemConnectionDTO, dtos.SystemConnectionPatchRequest]
}

func NewSystemConnectionHook(g *gateway.SystemConnectionGateway, config Config) *SystemConnectionHook {
	return &SystemConnectionHook{Hook: NewHook(g, config)}
}

type AlertHook struct {
	*Hook[uuid.UUID, dtos.AlertDTO, dtos.AlertPatchRequest]
	gateway *gateway.AlertGateway
}

func NewAlertHook(g *gateway.AlertGateway, config Config) *AlertHook {
	return &AlertHook{Hook: NewHook(g, config), gateway: g}
}

func (h *AlertHook) Acknowledge(ctx context.Context, id uuid.UUID) (dtos.AlertDTO, Notification, error) {
	return h.Action(ctx, OperationAcknowledge, func(ctx context.Context) (dtos.AlertDTO, error) {
		return h.gateway.Acknowledge(ctx, id)
	})
}

func (h *AlertHook) Resolve(ctx context.Context, id uuid.UUID) (dtos.AlertDTO, Notification, error) {
	return h.Action(ctx, OperationResolve, func(ctx context.Context) (dtos.AlertDTO, error) {
		return h.gateway.Resolve(ctx, id)
	})
}

type SettingsHook struct {
	*DocumentHook[string, dtos.UserSettingsDTO, dtos.UserSettingsPatchRequest]
}

func NewSettingsHook(g *gateway.SettingsGateway, config Config) *SettingsHook {
	return &SettingsHook{DocumentHook: NewDocumentHook("Settings", g.GetSettings, g.SaveSettings, config)}
}

type ProfileHook struct {
	*DocumentHook[string, dtos.UserProfileDTO, dtos.UserProfilePatchRequest]
}

func NewProfileHook(g *gateway.SettingsGateway, config Config) *ProfileHook {
	return &ProfileHook{DocumentHook: NewDocumentHook("Profile", g.GetProfile, g.SaveProfile, config)}
}
