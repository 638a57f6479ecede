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
	DefaultReportScope = "global"
	// MissingDownloadLink is shown for reports without a document.
	MissingDownloadLink = "#"
	DateLayout          = "2006-01-02"
)

var (
	ReportTypes    = []string{"quarterly", "annual", "audit", "disclosure"}
	ReportStatuses = []string{"published", "draft", "pending"}
	ReportScopes   = []string{"global", "regional"}
)

type EsgReportDTO struct {
	ID                 uuid.UUID `json:"id"`
	Title              string    `json:"title" validate:"required,min=5"`
	Date               string    `json:"date" validate:"required,datetime=2006-01-02"`
	Type               string    `json:"type" validate:"required,oneof=quarterly annual audit disclosure"`
	Status             string    `json:"status" validate:"required,oneof=published draft pending"`
	Scope              string    `json:"scope" validate:"omitempty,oneof=global regional"`
	DownloadLink       string    `json:"downloadLink"`
	BlockchainVerified bool      `json:"blockchainVerified"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// HasDocument is false for the "#" placeholder link.
func (r EsgReportDTO) HasDocument() bool {
	return r.DownloadLink != "" && r.DownloadLink != MissingDownloadLink
}

type EsgReportPatchRequest struct {
	Title        *string `json:"title" validate:"omitempty,min=5"`
	Date         *string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Type         *string `json:"type" validate:"omitempty,oneof=quarterly annual audit disclosure"`
	Status       *string `json:"status" validate:"omitempty,oneof=published draft pending"`
	Scope        *string `json:"scope" validate:"omitempty,oneof=global regional"`
	DownloadLink *string `json:"downloadLink"`
}
