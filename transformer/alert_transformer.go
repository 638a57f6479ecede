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
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/l3montree-dev/supplyguard/database/models"
	"github.com/l3montree-dev/supplyguard/dtos"
	"gorm.io/datatypes"
)

func AlertModelToDTO(m models.Alert) dtos.AlertDTO {
	var details map[string]any
	if len(m.Details) > 0 {
		details = map[string]any(m.Details)
	}
	return dtos.AlertDTO{
		ID:          m.ID,
		Code:        m.Code,
		Title:       m.Title,
		Description: m.Description,
		Timestamp:   m.Timestamp,
		Severity:    m.Severity,
		Source:      m.Source,
		Type:        m.Type,
		Status:      m.Status,
		Details:     details,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func AlertDTOToModel(d dtos.AlertDTO) models.Alert {
	var details datatypes.JSONMap
	if d.Details != nil {
		details = datatypes.JSONMap(d.Details)
	}
	return models.Alert{
		Code:        d.Code,
		Title:       d.Title,
		Description: d.Description,
		Timestamp:   d.Timestamp,
		Severity:    d.Severity,
		Source:      d.Source,
		Type:        d.Type,
		Status:      d.Status,
		Details:     details,
	}
}

// NormalizeAlert fills status, timestamp and code of a new alert.
func NormalizeAlert(d dtos.AlertDTO) dtos.AlertDTO {
	if d.Status == "" {
		d.Status = dtos.AlertStatusNew
	}
	if d.Timestamp.IsZero() {
		d.Timestamp = time.Now().UTC()
	}
	if d.Code == "" {
		d.Code = NewAlertCode(d.Timestamp)
	}
	return d
}

// NewAlertCode returns a code in the ALT-<year>-<suffix> format of the seeded alerts.
func NewAlertCode(at time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
	return fmt.Sprintf("ALT-%d-%s", at.Year(), suffix)
}

func AlertPatchToColumns(p dtos.AlertPatchRequest) map[string]any {
	columns := map[string]any{}
	if p.Title != nil {
		columns["title"] = *p.Title
	}
	if p.Description != nil {
		columns["description"] = *p.Description
	}
	if p.Severity != nil {
		columns["severity"] = *p.Severity
	}
	if p.Type != nil {
		columns["type"] = *p.Type
	}
	return columns
}
