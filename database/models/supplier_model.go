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

type Supplier struct {
	Model
	Name         string `json:"name" gorm:"type:text;not null"`
	Category     string `json:"category" gorm:"type:text;not null"`
	Location     string `json:"location" gorm:"type:text;not null"`
	Status       string `json:"status" gorm:"type:text;not null"`
	RiskScore    int    `json:"risk_score" gorm:"not null;default:0"`
	Verified     bool   `json:"verified" gorm:"not null;default:false"`
	ContactEmail string `json:"contact_email" gorm:"type:text"`
	ContactPhone string `json:"contact_phone" gorm:"type:text"`
}

func (Supplier) TableName() string {
	return "suppliers"
}
