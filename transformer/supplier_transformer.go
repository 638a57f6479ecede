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

func SupplierModelToDTO(m models.Supplier) dtos.SupplierDTO {
	return dtos.SupplierDTO{
		ID:           m.ID,
		Name:         m.Name,
		Category:     m.Category,
		Location:     m.Location,
		Status:       m.Status,
		RiskScore:    m.RiskScore,
		Verified:     m.Verified,
		ContactEmail: m.ContactEmail,
		ContactPhone: m.ContactPhone,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// SupplierDTOToModel leaves the server assigned fields empty.
func SupplierDTOToModel(d dtos.SupplierDTO) models.Supplier {
	return models.Supplier{
		Name:         d.Name,
		Category:     d.Category,
		Location:     d.Location,
		Status:       d.Status,
		RiskScore:    d.RiskScore,
		Verified:     d.Verified,
		ContactEmail: d.ContactEmail,
		ContactPhone: d.ContactPhone,
	}
}

func SupplierPatchToColumns(p dtos.SupplierPatchRequest) map[string]any {
	columns := map[string]any{}
	if p.Name != nil {
		columns["name"] = *p.Name
	}
	if p.Category != nil {
		columns["category"] = *p.Category
	}
	if p.Location != nil {
		columns["location"] = *p.Location
	}
	if p.Status != nil {
		columns["status"] = *p.Status
	}
	if p.RiskScore != nil {
		columns["risk_score"] = *p.RiskScore
	}
	if p.Verified != nil {
		columns["verified"] = *p.Verified
	}
	if p.ContactEmail != nil {
		columns["contact_email"] = *p.ContactEmail
	}
	if p.ContactPhone != nil {
		columns["contact_phone"] = *p.ContactPhone
	}
	return columns
}
