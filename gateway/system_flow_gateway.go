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
	"fmt"

	"github.com/google/uuid"
	"github.com/l3montree-dev/supplyguard/database/models"
	"github.com/l3montree-dev/supplyguard/dtos"
	"github.com/l3montree-dev/supplyguard/shared"
	"github.com/l3montree-dev/supplyguard/transformer"
)

type SystemNodeGateway struct {
	*Gateway[uuid.UUID, models.SupplyChainNode, dtos.SystemNodeDTO, dtos.SystemNodePatchRequest]
	routes shared.SupplyChainRouteRepository
}

func NewSystemNodeGateway(nodes shared.SupplyChainNodeRepository, routes shared.SupplyChainRouteRepository) *SystemNodeGateway {
	return &SystemNodeGateway{
		Gateway: NewGateway(nodes, Descriptor[models.SupplyChainNode, dtos.SystemNodeDTO, dtos.SystemNodePatchRequest]{
			Entity:         "System node",
			Order:          shared.Asc("name"),
			ToEntity:       transformer.SystemNodeModelToDTO,
			ToRow:          transformer.SystemNodeDTOToModel,
			PatchToColumns: transformer.SystemNodePatchToColumns,
		}),
		routes: routes,
	}
}

// Remove rejects the deletion of a node that is still referenced by a connection.
func (g *SystemNodeGateway) Remove(ctx context.Context, id uuid.UUID) error {
	n, err := g.routes.CountByNode(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return &shared.ConflictError{
			Entity: g.Entity(),
			Reason: fmt.Sprintf("node is still referenced by %d connection(s)", n),
		}
	}
	return g.Gateway.Remove(ctx, id)
}

type SystemConnectionGateway struct {
	*Gateway[uuid.UUID, models.SupplyChainRoute, dtos.SystemConnectionDTO, dtos.SystemConnectionPatchRequest]
	nodes shared.SupplyChainNodeRepository
}

func NewSystemConnectionGateway(routes shared.SupplyChainRouteRepository, nodes shared.SupplyChainNodeRepository) *SystemConnectionGateway {
	return &SystemConnectionGateway{
		Gateway: NewGateway(routes, Descriptor[models.SupplyChainRoute, dtos.SystemConnectionDTO, dtos.SystemConnectionPatchRequest]{
			Entity:         "System connection",
			Order:          shared.Asc("created_at"),
			ToEntity:       transformer.SystemConnectionModelToDTO,
			ToRow:          transformer.SystemConnectionDTOToModel,
			PatchToColumns: transformer.SystemConnectionPatchToColumns,
		}),
		nodes: nodes,
	}
}

func (g *SystemConnectionGateway) Create(ctx context.Context, connection dtos.SystemConnectionDTO) (dtos.SystemConnectionDTO, error) {
	if err := Validate(connection); err != nil {
		return connection, err
	}
	if err := g.checkEndpoints(ctx, connection.SourceID, connection.TargetID); err != nil {
		return connection, err
	}
	return g.Gateway.Create(ctx, connection)
}

// Update checks the endpoints of the connection after the patch is applied.
func (g *SystemConnectionGateway) Update(ctx context.Context, id uuid.UUID, patch dtos.SystemConnectionPatchRequest) (dtos.SystemConnectionDTO, error) {
	if patch.SourceID == nil && patch.TargetID == nil {
		return g.Gateway.Update(ctx, id, patch)
	}

	current, err := g.FetchOne(ctx, id)
	if err != nil {
		return current, err
	}

	source, target := current.SourceID, current.TargetID
	if patch.SourceID != nil {
		source = *patch.SourceID
	}
	if patch.TargetID != nil {
		target = *patch.TargetID
	}
	if err := g.checkEndpoints(ctx, source, target); err != nil {
		return current, err
	}
	return g.Gateway.Update(ctx, id, patch)
}

func (g *SystemConnectionGateway) checkEndpoints(ctx context.Context, source, target uuid.UUID) error {
	if source == target {
		return shared.NewValidationError("targetId", "Must differ from the source node")
	}

	rows, err := g.nodes.Select(ctx, []shared.Filter{{
		Column:   "id",
		Operator: shared.FilterIn,
		Value:    []any{source, target},
	}}, nil)
	if err != nil {
		return err
	}

	found := make(map[uuid.UUID]bool, len(rows))
	for _, row := range rows {
		found[row.ID] = true
	}

	fields := map[string]string{}
	if !found[source] {
		fields["sourceId"] = "Must reference an existing node"
	}
	if !found[target] {
		fields["targetId"] = "Must reference an existing node"
	}
	if len(fields) > 0 {
		return &shared.ValidationError{Fields: fields}
	}
	return nil
}
