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

package models

import "github.com/google/uuid"

// SupplyChainRoute connects two supply chain nodes.
// The foreign keys are declared ON DELETE RESTRICT in the migrations.
type SupplyChainRoute struct {
	Model
	OriginID           uuid.UUID `json:"origin_id" gorm:"type:uuid;not null;index"`
	DestinationID      uuid.UUID `json:"destination_id" gorm:"type:uuid;not null;index"`
	RouteType          string    `json:"route_type" gorm:"type:text;not null"`
	TransportationMode string    `json:"transportation_mode" gorm:"type:text"`
}

func (SupplyChainRoute) TableName() string {
	return "supply_chain_routes"
}
