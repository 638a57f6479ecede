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

// the wire names of the node and route tables differ from the domain names:
//   facility_type <-> type, location_type <-> description
//   origin_id <-> sourceId, destination_id <-> targetId,
//   route_type <-> type, transportation_mode <-> description

func SystemNodeModelToDTO(m models.SupplyChainNode) dtos.SystemNodeDTO {
	description := ""
	if m.LocationType != nil {
		description = *m.LocationType
	}
	return dtos.SystemNodeDTO{
		ID:          m.ID,
		Name:        m.Name,
		Type:        m.FacilityType,
		Description: description,
		Status:      m.Status,
		Latitude:    m.Latitude,
		Longitude:   m.Longitude,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func SystemNodeDTOToModel(d dtos.SystemNodeDTO) models.SupplyChainNode {
	description := d.Description
	return models.SupplyChainNode{
		Name:         d.Name,
		FacilityType: d.Type,
		LocationType: &description,
		Status:       d.Status,
		Latitude:     d.Latitude,
		Longitude:    d.Longitude,
	}
}

func SystemNodePatchToColumns(p dtos.SystemNodePatchRequest) map[string]any {
	columns := map[string]any{}
	if p.Name != nil {
		columns["name"] = *p.Name
	}
	if p.Type != nil {
		columns["facility_type"] = *p.Type
	}
	if p.Description != nil {
		columns["location_type"] = *p.Description
	}
	if p.Status != nil {
		columns["status"] = *p.Status
	}
	if p.Latitude != nil {
		columns["latitude"] = *p.Latitude
	}
	if p.Longitude != nil {
		columns["longitude"] = *p.Longitude
	}
	return columns
}

func SystemConnectionModelToDTO(m models.SupplyChainRoute) dtos.SystemConnectionDTO {
	return dtos.SystemConnectionDTO{
		ID:          m.ID,
		SourceID:    m.OriginID,
		TargetID:    m.DestinationID,
		Type:        m.RouteType,
		Description: m.TransportationMode,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func SystemConnectionDTOToModel(d dtos.SystemConnectionDTO) models.SupplyChainRoute {
	return models.SupplyChainRoute{
		OriginID:           d.SourceID,
		DestinationID:      d.TargetID,
		RouteType:          d.Type,
		TransportationMode: d.Description,
	}
}

func SystemConnectionPatchToColumns(p dtos.SystemConnectionPatchRequest) map[string]any {
	columns := map[string]any{}
	if p.SourceID != nil {
		columns["origin_id"] = *p.SourceID
	}
	if p.TargetID != nil {
		columns["destination_id"] = *p.TargetID
	}
	if p.Type != nil {
		columns["route_type"] = *p.Type
	}
	if p.Description != nil {
		columns["transportation_mode"] = *p.Description
	}
	return columns
}
