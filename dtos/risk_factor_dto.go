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
	RiskSeverities = []string{"low", "medium", "high", "critical"}
	RiskStatuses   = []string{"active", "mitigated", "monitoring", "closed"}
)

type RiskFactorDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name" validate:"required,min=2"`
	Description string    `json:"description" validate:"required,min=5"`
	Category    string    `json:"category" validate:"required"`
	Severity    string    `json:"severity" validate:"required,oneof=low medium high critical"`
	Status      string    `json:"status" validate:"required,oneof=active mitigated monitoring closed"`
	Impact      int       `json:"impact" validate:"gte=1,lte=10"`
	Probability int       `json:"probability" validate:"gte=1,lte=10"`
	// RiskScore is derived from impact and probability
	RiskScore int       `json:"riskScore"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ComputeRiskScore is impact times probability, in the range 1..100.
func ComputeRiskScore(impact, probability int) int {
	return impact * probability
}

type RiskFactorPatchRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=2"`
	Description *string `json:"description" validate:"omitempty,min=5"`
	Category    *string `json:"category" validate:"omitempty,min=1"`
	Severity    *string `json:"severity" validate:"omitempty,oneof=low medium high critical"`
	Status      *string `json:"status" validate:"omitempty,oneof=active mitigated monitoring closed"`
	Impact      *int    `json:"impact" validate:"omitempty,gte=1,lte=10"`
	Probability *int    `json:"probability" validate:"omitempty,gte=1,lte=10"`
}
