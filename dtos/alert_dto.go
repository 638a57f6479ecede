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

const (
	AlertStatusNew          = "new"
	AlertStatusAcknowledged = "acknowledged"
	AlertStatusResolved     = "resolved"
)

var (
	AlertSeverities = []string{"low", "medium", "high", "critical"}
	AlertSources    = []string{"system", "ai", "blockchain", "manual"}
	AlertTypes      = []string{"compliance", "risk", "security", "supplier"}
	AlertStatuses   = []string{AlertStatusNew, AlertStatusAcknowledged, AlertStatusResolved}
)

type AlertDTO struct {
	ID          uuid.UUID      `json:"id"`
	Code        string         `json:"code"`
	Title       string         `json:"title" validate:"required,min=2"`
	Description string         `json:"description"`
	Timestamp   time.Time      `json:"timestamp"`
	Severity    string         `json:"severity" validate:"required,oneof=low medium high critical"`
	Source      string         `json:"source" validate:"required,oneof=system ai blockchain manual"`
	Type        string         `json:"type" validate:"required,oneof=compliance risk security supplier"`
	Status      string         `json:"status" validate:"omitempty,oneof=new acknowledged resolved"`
	Details     map[string]any `json:"details,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

type AlertPatchRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=2"`
	Description *string `json:"description"`
	Severity    *string `json:"severity" validate:"omitempty,oneof=low medium high critical"`
	Type        *string `json:"type" validate:"omitempty,oneof=compliance risk security supplier"`
}
