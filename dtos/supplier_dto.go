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

var SupplierStatuses = []string{"active", "inactive", "pending", "suspended"}

type SupplierDTO struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name" validate:"required,min=2"`
	Category     string    `json:"category" validate:"required"`
	Location     string    `json:"location" validate:"required"`
	Status       string    `json:"status" validate:"required,oneof=active inactive pending suspended"`
	RiskScore    int       `json:"riskScore" validate:"gte=0,lte=100"`
	Verified     bool      `json:"verified"`
	ContactEmail string    `json:"contactEmail" validate:"required,email"`
	ContactPhone string    `json:"contactPhone" validate:"required,min=5"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type SupplierPatchRequest struct {
	Name         *string `json:"name" validate:"omitempty,min=2"`
	Category     *string `json:"category" validate:"omitempty,min=1"`
	Location     *string `json:"location" validate:"omitempty,min=1"`
	Status       *string `json:"status" validate:"omitempty,oneof=active inactive pending suspended"`
	RiskScore    *int    `json:"riskScore" validate:"omitempty,gte=0,lte=100"`
	Verified     *bool   `json:"verified"`
	ContactEmail *string `json:"contactEmail" validate:"omitempty,email"`
	ContactPhone *string `json:"contactPhone" validate:"omitempty,min=5"`
}
