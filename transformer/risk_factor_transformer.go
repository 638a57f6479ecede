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

package transformer

import (
	"github.com/l3montree-dev/supplyguard/database/models"
	"github.com/l3montree-dev/supplyguard/dtos"
)

const defaultRiskRating = 5

func RiskFactorModelToDTO(m models.RiskFactor) dtos.RiskFactorDTO {
	return dtos.RiskFactorDTO{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		Category:    m.Category,
		Severity:    m.Severity,
		Status:      m.Status,
		Impact:      m.Impact,
		Probability: m.Probability,
		RiskScore:   dtos.ComputeRiskScore(m.Impact, m.Probability),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func RiskFactorDTOToModel(d dtos.RiskFactorDTO) models.RiskFactor {
	return models.RiskFactor{
		Name:        d.Name,
		Description: d.Description,
		Category:    d.Category,
		Severity:    d.Severity,
		Status:      d.Status,
		Impact:      d.Impact,
		Probability: d.Probability,
	}
}

// NormalizeRiskFactor fills impact and probability with the default rating.
func NormalizeRiskFactor(d dtos.RiskFactorDTO) dtos.RiskFactorDTO {
	if d.Impact == 0 {
		d.Impact = defaultRiskRating
	}
	if d.Probability == 0 {
		d.Probability = defaultRiskRating
	}
	return d
}

func RiskFactorPatchToColumns(p dtos.RiskFactorPatchRequest) map[string]any {
	columns := map[string]any{}
	if p.Name != nil {
		columns["name"] = *p.Name
	}
	if p.Description != nil {
		columns["description"] = *p.Description
	}
	if p.Category != nil {
		columns["category"] = *p.Category
	}
	if p.Severity != nil {
		columns["severity"] = *p.Severity
	}
	if p.Status != nil {
		columns["status"] = *p.Status
	}
	if p.Impact != nil {
		columns["impact"] = *p.Impact
	}
	if p.Probability != nil {
		columns["probability"] = *p.Probability
	}
	return columns
}
