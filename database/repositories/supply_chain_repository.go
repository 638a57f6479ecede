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

package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/l3montree-dev/supplyguard/database/models"
	"github.com/l3montree-dev/supplyguard/shared"
)

type supplyChainNodeRepository struct {
	*GormRepository[uuid.UUID, models.SupplyChainNode]
}

var _ shared.SupplyChainNodeRepository = (*supplyChainNodeRepository)(nil)

func NewSupplyChainNodeRepository(db shared.DB) *supplyChainNodeRepository {
	return &supplyChainNodeRepository{
		GormRepository: newGormRepository[uuid.UUID, models.SupplyChainNode](db),
	}
}

type supplyChainRouteRepository struct {
	*GormRepository[uuid.UUID, models.SupplyChainRoute]
}

var _ shared.SupplyChainRouteRepository = (*supplyChainRouteRepository)(nil)

func NewSupplyChainRouteRepository(db shared.DB) *supplyChainRouteRepository {
	return &supplyChainRouteRepository{
		GormRepository: newGormRepository[uuid.UUID, models.SupplyChainRoute](db),
	}
}

func (r *supplyChainRouteRepository) CountByNode(ctx context.Context, nodeID uuid.UUID) (int64, error) {
	defer r.observe("count_by_node", time.Now())

	var count int64
	err := r.GetDB(ctx, nil).Model(&models.SupplyChainRoute{}).
		Where("origin_id = ? OR destination_id = ?", nodeID, nodeID).
		Count(&count).Error
	if err != nil {
		return 0, r.wrapError("count_by_node", err)
	}
	return count, nil
}
