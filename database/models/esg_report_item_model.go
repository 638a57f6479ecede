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

import "time"

// EsgReportItem is a published, drafted or pending ESG report.
// Scope and DownloadLink are nullable on the wire.
type EsgReportItem struct {
	Model
	Title              string    `json:"title" gorm:"type:text;not null"`
	Date               time.Time `json:"date" gorm:"type:date;not null"`
	Type               string    `json:"type" gorm:"type:text;not null"`
	Status             string    `json:"status" gorm:"type:text;not null"`
	Scope              *string   `json:"scope" gorm:"type:text"`
	DownloadLink       *string   `json:"download_link" gorm:"type:text"`
	BlockchainVerified bool      `json:"blockchain_verified" gorm:"not null;default:false"`
}

func (EsgReportItem) TableName() string {
	return "esg_report_items"
}
