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
	"github.com/google/uuid"
	"github.com/l3montree-dev/supplyguard/database/models"
	"github.com/l3montree-dev/supplyguard/dtos"
	"github.com/l3montree-dev/supplyguard/shared"
	"github.com/l3montree-dev/supplyguard/transformer"
)

type SupplierGateway struct {
	*Gateway[uuid.UUID, models.Supplier, dtos.SupplierDTO, dtos.SupplierPatchRequest]
}

func NewSupplierGateway(repository shared.SupplierRepository) *SupplierGateway {
	return &SupplierGateway{
		Gateway: NewGateway(repository, Descriptor[models.Supplier, dtos.SupplierDTO, dtos.SupplierPatchRequest]{
			Entity:         "Supplier",
			Order:          shared.Asc("name"),
			ToEntity:       transformer.SupplierModelToDTO,
			ToRow:          transformer.SupplierDTOToModel,
			PatchToColumns: transformer.SupplierPatchToColumns,
		}),
	}
}

type RiskFactorGateway struct {
	*Gateway[uuid.UUID, models.RiskFactor, dtos.RiskFactorDTO, dtos.RiskFactorPatchRequest]
}

func NewRiskFactorGateway(repository shared.RiskFactorRepository) *RiskFactorGateway {
	return &RiskFactorGateway{
		Gateway: NewGateway(repository, Descriptor[models.RiskFactor, dtos.RiskFactorDTO, dtos.RiskFactorPatchRequest]{
			Entity:         "Risk factor",
			Order:          shared.Desc("created_at"),
			ToEntity:       transformer.RiskFactorModelToDTO,
			ToRow:          transformer.RiskFactorDTOToModel,
			PatchToColumns: transformer.RiskFactorPatchToColumns,
			Normalize:      transformer.NormalizeRiskFactor,
		}),
	}
}
