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

type RiskFactor struct {
	Model
	Name        string `json:"name" gorm:"type:text;not null"`
	Description string `json:"description" gorm:"type:text"`
	Category    string `json:"category" gorm:"type:text;not null"`
	Severity    string `json:"severity" gorm:"type:text;not null"`
	Status      string `json:"status" gorm:"type:text;not null"`
	Impact      int    `json:"impact" gorm:"not null"`
	Probability int    `json:"probability" gorm:"not null"`
}

func (RiskFactor) TableName() string {
	return "risk_factors"
}
