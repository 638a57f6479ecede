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

type alertRepository struct {
	*GormRepository[uuid.UUID, models.Alert]
}

var _ shared.AlertRepository = (*alertRepository)(nil)

func NewAlertRepository(db shared.DB) *alertRepository {
	return &alertRepository{
		GormRepository: newGormRepository[uuid.UUID, models.Alert](db),
	}
}

func (r *alertRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	defer r.observe("count_by_status", time.Now())

	var rows []struct {
		Status string
		Count  int64
	}
	err := r.GetDB(ctx, nil).Model(&models.Alert{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, r.wrapError("count_by_status", err)
	}

	res := make(map[string]int64, len(rows))
	for _, row := range rows {
		res[row.Status] = row.Count
	}
	return res, nil
}
