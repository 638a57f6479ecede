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
	"testing"
	"time"

	"github.com/l3montree-dev/supplyguard/database/models"
	"github.com/l3montree-dev/supplyguard/dtos"
	"github.com/l3montree-dev/supplyguard/shared"
	"github.com/stretchr/testify/assert"
)

func TestEsgReportModelToDTO(t *testing.T) {
	date := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)

	t.Run("should substitute global and # for missing scope and link", func(t *testing.T) {
		dto := EsgReportModelToDTO(models.EsgReportItem{Title: "Q1 Sustainability", Date: date})
		assert.Equal(t, "global", dto.Scope)
		assert.Equal(t, "#", dto.DownloadLink)
		assert.Equal(t, "2024-03-31", dto.Date)
		assert.False(t, dto.HasDocument())
	})

	t.Run("should treat empty strings like missing values", func(t *testing.T) {
		dto := EsgReportModelToDTO(models.EsgReportItem{Date: date, Scope: shared.Ptr(""), DownloadLink: shared.Ptr("")})
		assert.Equal(t, "global", dto.Scope)
		assert.Equal(t, "#", dto.DownloadLink)
	})

	t.Run("should keep stored values", func(t *testing.T) {
		dto := EsgReportModelToDTO(models.EsgReportItem{Date: date, Scope: shared.Ptr("regional"), DownloadLink: shared.Ptr("https://example.com/r.pdf")})
		assert.Equal(t, "regional", dto.Scope)
		assert.Equal(t, "https://example.com/r.pdf", dto.DownloadLink)
		assert.True(t, dto.HasDocument())
	})
}

func TestEsgReportRoundTrip(t *testing.T) {
	row := models.EsgReportItem{
		Title:              "Annual ESG Report",
		Date:               time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC),
		Type:               "annual",
		Status:             "published",
		Scope:              shared.Ptr("regional"),
		DownloadLink:       shared.Ptr("https://example.com/annual.pdf"),
		BlockchainVerified: true,
	}

	assert.Equal(t, row, EsgReportDTOToModel(EsgReportModelToDTO(row)))
}

func TestEsgReportDTOToModel(t *testing.T) {
	t.Run("should never persist the # placeholder", func(t *testing.T) {
		row := EsgReportDTOToModel(dtos.EsgReportDTO{Date: "2024-01-01", DownloadLink: "#"})
		assert.Equal(t, "", *row.DownloadLink)
		assert.Equal(t, "global", *row.Scope)
	})

	t.Run("should map the patch to snake case columns", func(t *testing.T) {
		columns := EsgReportPatchToColumns(dtos.EsgReportPatchRequest{
			Date:         shared.Ptr("2024-06-30"),
			DownloadLink: shared.Ptr("#"),
		})
		assert.Equal(t, map[string]any{
			"date":          time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC),
			"download_link": "",
		}, columns)
	})
}
