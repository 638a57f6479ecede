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

package gateway

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/l3montree-dev/supplyguard/blob"
	"github.com/l3montree-dev/supplyguard/database/models"
	"github.com/l3montree-dev/supplyguard/dtos"
	"github.com/l3montree-dev/supplyguard/shared"
	"github.com/l3montree-dev/supplyguard/transformer"
)

type EsgReportGateway struct {
	*Gateway[uuid.UUID, models.EsgReportItem, dtos.EsgReportDTO, dtos.EsgReportPatchRequest]
	documents shared.DocumentStore
}

func NewEsgReportGateway(repository shared.EsgReportRepository, documents shared.DocumentStore) *EsgReportGateway {
	return &EsgReportGateway{
		Gateway: NewGateway(repository, Descriptor[models.EsgReportItem, dtos.EsgReportDTO, dtos.EsgReportPatchRequest]{
			Entity:         "ESG report",
			Order:          shared.Desc("date"),
			ToEntity:       transformer.EsgReportModelToDTO,
			ToRow:          transformer.EsgReportDTOToModel,
			PatchToColumns: transformer.EsgReportPatchToColumns,
			Normalize:      transformer.NormalizeEsgReport,
		}),
		documents: documents,
	}
}

// Verify marks the report as verified on the blockchain. No other field is touched.
func (g *EsgReportGateway) Verify(ctx context.Context, id uuid.UUID) (dtos.EsgReportDTO, error) {
	return g.updateColumns(ctx, id, map[string]any{"blockchain_verified": true})
}

// AttachDocument stores the file and points the download link of the report to it.
// The document it replaces is deleted. A failed update deletes the new document again.
func (g *EsgReportGateway) AttachDocument(ctx context.Context, id uuid.UUID, fileName string, contentType string, body io.Reader) (dtos.EsgReportDTO, error) {
	report, err := g.FetchOne(ctx, id)
	if err != nil {
		return report, err
	}

	key, err := DocumentKey(id, fileName)
	if err != nil {
		return report, err
	}

	if _, err := g.documents.Put(ctx, key, contentType, body); err != nil {
		return report, err
	}

	link, err := g.documents.URL(ctx, key)
	if err != nil {
		g.discardDocument(ctx, key)
		return report, err
	}
	updated, err := g.updateColumns(ctx, id, map[string]any{"download_link": link})
	if err != nil {
		g.discardDocument(ctx, key)
		return report, err
	}

	if previous, ok := blob.KeyFromURL(report.DownloadLink); ok && previous != key && strings.HasPrefix(previous, documentPrefix(id)) {
		g.discardDocument(ctx, previous)
	}
	return updated, nil
}

func (g *EsgReportGateway) discardDocument(ctx context.Context, key string) {
	if err := g.documents.Delete(context.WithoutCancel(ctx), key); err != nil && !shared.IsNotFound(err) {
		slog.Warn("could not delete document", "key", key, "err", err)
	}
}

func documentPrefix(reportID uuid.UUID) string {
	return fmt.Sprintf("esg-reports/%s/", reportID)
}

// DocumentKey builds the storage key of a report document, e.g.
// esg-reports/<id>/annual-report-2023.pdf
func DocumentKey(reportID uuid.UUID, fileName string) (string, error) {
	ext := strings.ToLower(filepath.Ext(fileName))
	name := slug.Make(strings.TrimSuffix(filepath.Base(fileName), filepath.Ext(fileName)))
	if name == "" {
		return "", shared.NewValidationError("document", "This field is required")
	}
	if ext != "" && !slug.IsSlug(strings.TrimPrefix(ext, ".")) {
		return "", shared.NewValidationError("document", "Invalid value")
	}
	return documentPrefix(reportID) + name + ext, nil
}
