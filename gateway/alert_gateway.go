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

package gateway

import (
	"context"

	"github.com/google/uuid"
	"github.com/l3montree-dev/supplyguard/database/models"
	"github.com/l3montree-dev/supplyguard/dtos"
	"github.com/l3montree-dev/supplyguard/shared"
	"github.com/l3montree-dev/supplyguard/transformer"
)

type AlertGateway struct {
	*Gateway[uuid.UUID, models.Alert, dtos.AlertDTO, dtos.AlertPatchRequest]
	alerts shared.AlertRepository
}

func NewAlertGateway(repository shared.AlertRepository) *AlertGateway {
	return &AlertGateway{
		Gateway: NewGateway(repository, Descriptor[models.Alert, dtos.AlertDTO, dtos.AlertPatchRequest]{
			Entity:         "Alert",
			Order:          shared.Desc("timestamp"),
			ToEntity:       transformer.AlertModelToDTO,
			ToRow:          transformer.AlertDTOToModel,
			PatchToColumns: transformer.AlertPatchToColumns,
			Normalize:      transformer.NormalizeAlert,
		}),
		alerts: repository,
	}
}

func (g *AlertGateway) Acknowledge(ctx context.Context, id uuid.UUID) (dtos.AlertDTO, error) {
	return g.updateColumns(ctx, id, map[string]any{"status": dtos.AlertStatusAcknowledged})
}

func (g *AlertGateway) Resolve(ctx context.Context, id uuid.UUID) (dtos.AlertDTO, error) {
	return g.updateColumns(ctx, id, map[string]any{"status": dtos.AlertStatusResolved})
}

// CountByStatus contains every known status, including the ones without alerts.
func (g *AlertGateway) CountByStatus(ctx context.Context) (map[string]int64, error) {
	counts, err := g.alerts.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	res := make(map[string]int64, len(dtos.AlertStatuses))
	for _, status := range dtos.AlertStatuses {
		res[status] = counts[status]
	}
	return res, nil
}
