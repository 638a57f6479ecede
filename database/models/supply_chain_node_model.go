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

type SupplyChainNode struct {
	Model
	Name         string  `json:"name" gorm:"type:text;not null"`
	FacilityType string  `json:"facility_type" gorm:"type:text;not null"`
	LocationType *string `json:"location_type" gorm:"type:text"`
	Status       string  `json:"status" gorm:"type:text;not null"`
	Latitude     float64 `json:"latitude" gorm:"not null;default:0"`
	Longitude    float64 `json:"longitude" gorm:"not null;default:0"`
}

func (SupplyChainNode) TableName() string {
	return "supply_chain_nodes"
}
