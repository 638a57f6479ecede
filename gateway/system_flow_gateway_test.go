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
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/l3montree-dev/supplyguard/database/databasetest"
	"github.com/l3montree-dev/supplyguard/database/repositories"
	"github.com/l3montree-dev/supplyguard/dtos"
	"github.com/l3montree-dev/supplyguard/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSystemFlowGateways(t *testing.T) {
	ctx := context.Background()
	db := databasetest.NewSQLiteDB(t)
	nodeRepository := repositories.NewSupplyChainNodeRepository(db)
	routeRepository := repositories.NewSupplyChainRouteRepository(db)
	nodes := NewSystemNodeGateway(nodeRepository, routeRepository)
	connections := NewSystemConnectionGateway(routeRepository, nodeRepository)

	warehouse, err := nodes.Create(ctx, dtos.SystemNodeDTO{Name: "Central Warehouse", Type: "warehouse", Status: "active"})
	require.NoError(t, err)
	factory, err := nodes.Create(ctx, dtos.SystemNodeDTO{Name: "Assembly Plant", Type: "factory", Description: "Final assembly", Status: "maintenance"})
	require.NoError(t, err)
	assert.Equal(t, "", warehouse.Description)
	assert.Equal(t, "Final assembly", factory.Description)

	connection, err := connections.Create(ctx, dtos.SystemConnectionDTO{
		SourceID:    factory.ID,
		TargetID:    warehouse.ID,
		Type:        "supply_chain",
		Description: "Truck",
	})
	require.NoError(t, err)

	t.Run("should reject a connection to an unknown node", func(t *testing.T) {
		_, err := connections.Create(ctx, dtos.SystemConnectionDTO{
			SourceID:    factory.ID,
			TargetID:    uuid.New(),
			Type:        "api",
			Description: "REST",
		})
		var validationErr *shared.ValidationError
		require.True(t, errors.As(err, &validationErr))
		assert.Contains(t, validationErr.Fields, "targetId")
		assert.NotContains(t, validationErr.Fields, "sourceId")
	})

	t.Run("should reject a connection from a node to itself", func(t *testing.T) {
		_, err := connections.Create(ctx, dtos.SystemConnectionDTO{SourceID: factory.ID, TargetID: factory.ID, Type: "api", Description: "loop"})
		assert.True(t, shared.IsValidationError(err))
	})

	t.Run("should reject re-pointing a connection to an unknown node", func(t *testing.T) {
		_, err := connections.Update(ctx, connection.ID, dtos.SystemConnectionPatchRequest{SourceID: shared.Ptr(uuid.New())})
		assert.True(t, shared.IsValidationError(err))
	})

	t.Run("should update the description of a connection", func(t *testing.T) {
		updated, err := connections.Update(ctx, connection.ID, dtos.SystemConnectionPatchRequest{Description: shared.Ptr("Rail")})
		require.NoError(t, err)
		assert.Equal(t, "Rail", updated.Description)
		assert.Equal(t, factory.ID, updated.SourceID)
	})

	t.Run("should reject deleting a referenced node", func(t *testing.T) {
		err := nodes.Remove(ctx, warehouse.ID)
		assert.True(t, shared.IsConflict(err))

		_, err = nodes.FetchOne(ctx, warehouse.ID)
		assert.NoError(t, err)
	})

	t.Run("should delete a node once its connections are gone", func(t *testing.T) {
		require.NoError(t, connections.Remove(ctx, connection.ID))
		require.NoError(t, nodes.Remove(ctx, warehouse.ID))

		all, err := nodes.FetchAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.Equal(t, factory.ID, all[0].ID)
	})
}
