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

import (
	"time"

	"gorm.io/datatypes"
)

type Alert struct {
	Model
	Code        string            `json:"code" gorm:"type:text;uniqueIndex"`
	Title       string            `json:"title" gorm:"type:text;not null"`
	Description string            `json:"description" gorm:"type:text"`
	Timestamp   time.Time         `json:"timestamp" gorm:"not null"`
	Severity    string            `json:"severity" gorm:"type:text;not null"`
	Source      string            `json:"source" gorm:"type:text;not null"`
	Type        string            `json:"type" gorm:"type:text;not null"`
	Status      string            `json:"status" gorm:"type:text;not null"`
	Details     datatypes.JSONMap `json:"details" gorm:"type:jsonb"`
}

func (Alert) TableName() string {
	return "alerts"
}
