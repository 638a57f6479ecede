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

package dtos

import (
	"time"

	"github.com/google/uuid"
)

var (
	NodeTypes       = []string{"warehouse", "factory", "supplier", "distribution", "ai", "blockchain"}
	NodeStatuses    = []string{"active", "inactive", "maintenance", "error"}
	ConnectionTypes = []string{"data_flow", "supply_chain", "blockchain", "api", "dependency"}
)

type SystemNodeDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name" validate:"required,min=2"`
	Type        string    `json:"type" validate:"required,oneof=warehouse factory supplier distribution ai blockchain"`
	Description string    `json:"description"`
	Status      string    `json:"status" validate:"required,oneof=active inactive maintenance error"`
	Latitude    float64   `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude   float64   `json:"longitude" validate:"gte=-180,lte=180"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type SystemNodePatchRequest struct {
	Name        *string  `json:"name" validate:"omitempty,min=2"`
	Type        *string  `json:"type" validate:"omitempty,oneof=warehouse factory supplier distribution ai blockchain"`
	Description *string  `json:"description"`
	Status      *string  `json:"status" validate:"omitempty,oneof=active inactive maintenance error"`
	Latitude    *float64 `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude   *float64 `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
}

// SystemConnectionDTO is a directed edge between two system nodes.
type SystemConnectionDTO struct {
	ID          uuid.UUID `json:"id"`
	SourceID    uuid.UUID `json:"sourceId" validate:"required"`
	TargetID    uuid.UUID `json:"targetId" validate:"required"`
	Type        string    `json:"type" validate:"required,oneof=data_flow supply_chain blockchain api dependency"`
	Description string    `json:"description" validate:"required"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type SystemConnectionPatchRequest struct {
	SourceID    *uuid.UUID `json:"sourceId"`
	TargetID    *uuid.UUID `json:"targetId"`
	Type        *string    `json:"type" validate:"omitempty,oneof=data_flow supply_chain blockchain api dependency"`
	Description *string    `json:"description" validate:"omitempty,min=1"`
}
