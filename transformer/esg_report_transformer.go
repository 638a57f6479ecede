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
	"time"

	"github.com/l3montree-dev/supplyguard/database/models"
	"github.com/l3montree-dev/supplyguard/dtos"
	"github.com/l3montree-dev/supplyguard/shared"
)

// EsgReportModelToDTO substitutes the defaults for missing scope and download link.
func EsgReportModelToDTO(m models.EsgReportItem) dtos.EsgReportDTO {
	scope := dtos.DefaultReportScope
	if m.Scope != nil && *m.Scope != "" {
		scope = *m.Scope
	}

	downloadLink := dtos.MissingDownloadLink
	if m.DownloadLink != nil && *m.DownloadLink != "" {
		downloadLink = *m.DownloadLink
	}

	return dtos.EsgReportDTO{
		ID:                 m.ID,
		Title:              m.Title,
		Date:               m.Date.Format(dtos.DateLayout),
		Type:               m.Type,
		Status:             m.Status,
		Scope:              scope,
		DownloadLink:       downloadLink,
		BlockchainVerified: m.BlockchainVerified,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}

// EsgReportDTOToModel writes "global" for a missing scope and an empty string
// for a missing download link. The "#" placeholder is never persisted.
func EsgReportDTOToModel(d dtos.EsgReportDTO) models.EsgReportItem {
	scope := d.Scope
	if scope == "" {
		scope = dtos.DefaultReportScope
	}

	return models.EsgReportItem{
		Title:              d.Title,
		Date:               parseDate(d.Date),
		Type:               d.Type,
		Status:             d.Status,
		Scope:              &scope,
		DownloadLink:       shared.Ptr(persistedDownloadLink(d.DownloadLink)),
		BlockchainVerified: d.BlockchainVerified,
	}
}

func NormalizeEsgReport(d dtos.EsgReportDTO) dtos.EsgReportDTO {
	if d.Scope == "" {
		d.Scope = dtos.DefaultReportScope
	}
	return d
}

func EsgReportPatchToColumns(p dtos.EsgReportPatchRequest) map[string]any {
	columns := map[string]any{}
	if p.Title != nil {
		columns["title"] = *p.Title
	}
	if p.Date != nil {
		columns["date"] = parseDate(*p.Date)
	}
	if p.Type != nil {
		columns["type"] = *p.Type
	}
	if p.Status != nil {
		columns["status"] = *p.Status
	}
	if p.Scope != nil {
		columns["scope"] = *p.Scope
	}
	if p.DownloadLink != nil {
		columns["download_link"] = persistedDownloadLink(*p.DownloadLink)
	}
	return columns
}

func persistedDownloadLink(link string) string {
	if link == dtos.MissingDownloadLink {
		return ""
	}
	return link
}

// parseDate expects a validated YYYY-MM-DD date.
func parseDate(s string) time.Time {
	t, err := time.Parse(dtos.DateLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
