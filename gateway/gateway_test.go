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
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/l3montree-dev/supplyguard/blob"
	"github.com/l3montree-dev/supplyguard/database/databasetest"
	"github.com/l3montree-dev/supplyguard/database/repositories"
	"github.com/l3montree-dev/supplyguard/dtos"
	"github.com/l3montree-dev/supplyguard/mocks"
	"github.com/l3montree-dev/supplyguard/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func acme() dtos.SupplierDTO {
	return dtos.SupplierDTO{
		Name:         "Acme",
		Category:     "Logistics",
		Location:     "Berlin",
		Status:       "active",
		RiskScore:    40,
		Verified:     false,
		ContactEmail: "a@acme.com",
		ContactPhone: "+49 1",
	}
}

func TestSupplierGateway(t *testing.T) {
	ctx := context.Background()
	g := NewSupplierGateway(repositories.NewSupplierRepository(databasetest.NewSQLiteDB(t)))

	t.Run("should create and list a supplier", func(t *testing.T) {
		created, err := g.Create(ctx, acme())
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, created.ID)

		all, err := g.FetchAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.Equal(t, created.ID, all[0].ID)

		expected := acme()
		got := all[0]
		assert.Equal(t, expected.Name, got.Name)
		assert.Equal(t, expected.Category, got.Category)
		assert.Equal(t, expected.Location, got.Location)
		assert.Equal(t, expected.Status, got.Status)
		assert.Equal(t, expected.RiskScore, got.RiskScore)
		assert.Equal(t, expected.Verified, got.Verified)
		assert.Equal(t, expected.ContactEmail, got.ContactEmail)
		assert.Equal(t, expected.ContactPhone, got.ContactPhone)
	})

	t.Run("should ignore a client provided id", func(t *testing.T) {
		s := acme()
		s.Name = "Globex"
		s.ID = uuid.MustParse("11111111-1111-1111-1111-111111111111")
		created, err := g.Create(ctx, s)
		require.NoError(t, err)
		assert.NotEqual(t, s.ID, created.ID)
	})

	t.Run("should return the list in name order", func(t *testing.T) {
		all, err := g.FetchAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, "Acme", all[0].Name)
		assert.Equal(t, "Globex", all[1].Name)
	})

	t.Run("should reject invalid suppliers before writing", func(t *testing.T) {
		s := acme()
		s.Name = "A"
		s.ContactEmail = "not-an-email"
		_, err := g.Create(ctx, s)

		var validationErr *shared.ValidationError
		require.True(t, errors.As(err, &validationErr))
		assert.Equal(t, "Must be at least 2 characters", validationErr.Fields["name"])
		assert.Equal(t, "Must be a valid email address", validationErr.Fields["contactEmail"])

		all, _ := g.FetchAll(ctx)
		assert.Len(t, all, 2)
	})

	t.Run("should only update the patched fields", func(t *testing.T) {
		all, _ := g.FetchAll(ctx)
		updated, err := g.Update(ctx, all[0].ID, dtos.SupplierPatchRequest{Verified: shared.Ptr(true), RiskScore: shared.Ptr(0)})
		require.NoError(t, err)
		assert.True(t, updated.Verified)
		assert.Equal(t, 0, updated.RiskScore)
		assert.Equal(t, "Berlin", updated.Location)
	})

	t.Run("should return the current entity for an empty patch", func(t *testing.T) {
		all, _ := g.FetchAll(ctx)
		same, err := g.Update(ctx, all[0].ID, dtos.SupplierPatchRequest{})
		require.NoError(t, err)
		assert.Equal(t, all[0], same)
	})

	t.Run("should fail with not found", func(t *testing.T) {
		_, err := g.FetchOne(ctx, uuid.New())
		assert.True(t, shared.IsNotFound(err))

		_, err = g.Update(ctx, uuid.New(), dtos.SupplierPatchRequest{Name: shared.Ptr("Initech")})
		assert.True(t, shared.IsNotFound(err))

		assert.True(t, shared.IsNotFound(g.Remove(ctx, uuid.New())))
	})

	t.Run("should remove a supplier", func(t *testing.T) {
		all, _ := g.FetchAll(ctx)
		require.NoError(t, g.Remove(ctx, all[0].ID))
		rest, _ := g.FetchAll(ctx)
		assert.Len(t, rest, 1)
	})

	t.Run("should page through the suppliers", func(t *testing.T) {
		page, err := g.FetchPage(ctx, shared.PageInfo{Page: 1, PageSize: 10})
		require.NoError(t, err)
		assert.Equal(t, int64(1), page.Total)
		assert.False(t, page.HasNext())
		assert.False(t, page.HasPrevious())
	})
}

func TestRiskFactorGateway(t *testing.T) {
	ctx := context.Background()
	g := NewRiskFactorGateway(repositories.NewRiskFactorRepository(databasetest.NewSQLiteDB(t)))

	created, err := g.Create(ctx, dtos.RiskFactorDTO{
		Name:        "Port congestion",
		Description: "Delays at the port of Shanghai",
		Category:    "Logistics",
		Severity:    "high",
		Status:      "active",
		Impact:      8,
		Probability: 6,
	})
	require.NoError(t, err)
	assert.Equal(t, 48, created.RiskScore)

	t.Run("should default impact and probability to 5", func(t *testing.T) {
		created, err := g.Create(ctx, dtos.RiskFactorDTO{
			Name:        "Currency",
			Description: "Exchange rate volatility",
			Category:    "Financial",
			Severity:    "medium",
			Status:      "monitoring",
		})
		require.NoError(t, err)
		assert.Equal(t, 5, created.Impact)
		assert.Equal(t, 5, created.Probability)
		assert.Equal(t, 25, created.RiskScore)
	})

	t.Run("should reject an impact outside of 1..10", func(t *testing.T) {
		_, err := g.Update(ctx, created.ID, dtos.RiskFactorPatchRequest{Impact: shared.Ptr(11)})
		assert.True(t, shared.IsValidationError(err))
	})
}

func TestEsgReportGateway(t *testing.T) {
	ctx := context.Background()
	documents := blob.NewMemoryStore()
	g := NewEsgReportGateway(repositories.NewEsgReportRepository(databasetest.NewSQLiteDB(t)), documents)

	report, err := g.Create(ctx, dtos.EsgReportDTO{
		Title:  "Annual Sustainability Report",
		Date:   "2023-12-31",
		Type:   "annual",
		Status: "published",
	})
	require.NoError(t, err)

	t.Run("should persist the defaults for scope and download link", func(t *testing.T) {
		assert.Equal(t, "global", report.Scope)
		assert.Equal(t, "#", report.DownloadLink)
		assert.False(t, report.BlockchainVerified)
		assert.Equal(t, "2023-12-31", report.Date)
	})

	t.Run("verify should only set blockchain verified", func(t *testing.T) {
		verified, err := g.Verify(ctx, report.ID)
		require.NoError(t, err)
		assert.True(t, verified.BlockchainVerified)
		assert.Equal(t, report.Title, verified.Title)
		assert.Equal(t, report.Type, verified.Type)
		assert.Equal(t, report.Status, verified.Status)
		assert.Equal(t, report.Scope, verified.Scope)
	})

	t.Run("should attach a document", func(t *testing.T) {
		updated, err := g.AttachDocument(ctx, report.ID, "Annual Report 2023.PDF", "application/pdf", strings.NewReader("%PDF"))
		require.NoError(t, err)
		assert.Equal(t, "/documents/esg-reports/"+report.ID.String()+"/annual-report-2023.pdf", updated.DownloadLink)
		assert.True(t, updated.HasDocument())

		body, _, err := documents.Get(ctx, "esg-reports/"+report.ID.String()+"/annual-report-2023.pdf")
		require.NoError(t, err)
		body.Close()
	})

	t.Run("should delete the replaced document", func(t *testing.T) {
		updated, err := g.AttachDocument(ctx, report.ID, "Annual Report 2023 final.pdf", "application/pdf", strings.NewReader("%PDF-2"))
		require.NoError(t, err)
		assert.Equal(t, "/documents/esg-reports/"+report.ID.String()+"/annual-report-2023-final.pdf", updated.DownloadLink)

		_, _, err = documents.Get(ctx, "esg-reports/"+report.ID.String()+"/annual-report-2023.pdf")
		assert.True(t, shared.IsNotFound(err))
		body, _, err := documents.Get(ctx, "esg-reports/"+report.ID.String()+"/annual-report-2023-final.pdf")
		require.NoError(t, err)
		body.Close()
	})

	t.Run("should not store a document for an unknown report", func(t *testing.T) {
		_, err := g.AttachDocument(ctx, uuid.New(), "x.pdf", "application/pdf", strings.NewReader("%PDF"))
		assert.True(t, shared.IsNotFound(err))
	})

	t.Run("should return the reports newest first", func(t *testing.T) {
		_, err := g.Create(ctx, dtos.EsgReportDTO{Title: "Q1 2024 Disclosure", Date: "2024-03-31", Type: "quarterly", Status: "draft", Scope: "regional"})
		require.NoError(t, err)
		all, err := g.FetchAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, "2024-03-31", all[0].Date)
		assert.Equal(t, "regional", all[0].Scope)
	})
}

func TestDocumentKey(t *testing.T) {
	id := uuid.MustParse("6f1d3c5e-0000-4000-8000-000000000000")
	key, err := DocumentKey(id, "../../Supplier Audit.pdf")
	require.NoError(t, err)
	assert.Equal(t, "esg-reports/6f1d3c5e-0000-4000-8000-000000000000/supplier-audit.pdf", key)

	_, err = DocumentKey(id, ".pdf")
	assert.True(t, shared.IsValidationError(err))
}

func TestEsgReportGatewayAttachDocumentFailure(t *testing.T) {
	ctx := context.Background()
	documents := mocks.NewDocumentStore(t)
	g := NewEsgReportGateway(repositories.NewEsgReportRepository(databasetest.NewSQLiteDB(t)), documents)

	report, err := g.Create(ctx, dtos.EsgReportDTO{Title: "Supplier Audit 2024", Date: "2024-02-01", Type: "audit", Status: "pending"})
	require.NoError(t, err)

	documents.On("Put", mock.Anything, "esg-reports/"+report.ID.String()+"/audit.pdf", "application/pdf", mock.Anything).
		Return(shared.DocumentInfo{}, errors.New("bucket unavailable"))

	_, err = g.AttachDocument(ctx, report.ID, "audit.pdf", "application/pdf", strings.NewReader("%PDF"))
	assert.EqualError(t, err, "bucket unavailable")

	unchanged, err := g.FetchOne(ctx, report.ID)
	require.NoError(t, err)
	assert.Equal(t, "#", unchanged.DownloadLink)
}

func TestEsgReportGatewayAttachDocumentRollback(t *testing.T) {
	ctx := context.Background()
	db := databasetest.NewSQLiteDB(t)
	documents := mocks.NewDocumentStore(t)
	g := NewEsgReportGateway(repositories.NewEsgReportRepository(db), documents)

	report, err := g.Create(ctx, dtos.EsgReportDTO{Title: "Supplier Audit 2024", Date: "2024-02-01", Type: "audit", Status: "pending"})
	require.NoError(t, err)
	key := "esg-reports/" + report.ID.String() + "/audit.pdf"

	sqlDB, err := db.DB()
	require.NoError(t, err)

	// the database goes away after the upload, the link can not be stored
	documents.On("Put", mock.Anything, key, "application/pdf", mock.Anything).
		Run(func(mock.Arguments) { sqlDB.Close() }).
		Return(shared.DocumentInfo{Key: key}, nil)
	documents.On("URL", mock.Anything, key).Return("/documents/"+key, nil)
	documents.On("Delete", mock.Anything, key).Return(nil).Once()

	_, err = g.AttachDocument(ctx, report.ID, "audit.pdf", "application/pdf", strings.NewReader("%PDF"))
	assert.Error(t, err)
}
