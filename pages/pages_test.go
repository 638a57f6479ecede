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

package pages

import (
	"context"
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/l3montree-dev/supplyguard/dtos"
	"github.com/l3montree-dev/supplyguard/presentation"
	"github.com/l3montree-dev/supplyguard/synchronization"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loaded[T any](data T) synchronization.QueryState[T] {
	return synchronization.QueryState[T]{Status: synchronization.StatusSuccess, Data: data, UpdatedAt: time.Now()}
}

func suppliers() []dtos.SupplierDTO {
	return []dtos.SupplierDTO{
		{ID: uuid.New(), Name: "Acme", Category: "Logistics", Location: "Berlin", Status: "active", RiskScore: 40, Verified: true, ContactEmail: "a@acme.com", ContactPhone: "+49 1"},
		{ID: uuid.New(), Name: "Globex", Category: "Electronics", Location: "Shenzhen", Status: "pending", RiskScore: 82},
		{ID: uuid.New(), Name: "Initech", Category: "Software", Location: "Austin", Status: "active", RiskScore: 75, Verified: true},
	}
}

func TestStateFromQuery(t *testing.T) {
	state := StateFromQuery(url.Values{"dialog": {"edit"}, "id": {"42"}, "search": {"  acme "}, "tab": {"active"}, "page": {"2"}})
	assert.Equal(t, "edit", state.Dialog)
	assert.Equal(t, "42", state.ID)
	assert.Equal(t, "acme", state.Search)
	assert.Equal(t, "active", state.Tab)
	assert.Equal(t, 2, state.PageInfo.Page)
	assert.Equal(t, 10, state.PageInfo.PageSize)
}

func TestBand(t *testing.T) {
	assert.Equal(t, "Low", Band(29).Text)
	assert.Equal(t, "Moderate", Band(30).Text)
	assert.Equal(t, "High", Band(79).Text)
	assert.Equal(t, "Critical", Band(80).Text)
}

func TestFilterSuppliers(t *testing.T) {
	rows := suppliers()

	assert.Len(t, FilterSuppliers(rows, State{Search: "BERLIN"}), 1)
	assert.Len(t, FilterSuppliers(rows, State{Search: "soft"}), 1)
	assert.Len(t, FilterSuppliers(rows, State{Tab: "active"}), 2)
	assert.Empty(t, FilterSuppliers(rows, State{Tab: "active", Search: "globex"}))
	assert.Len(t, FilterSuppliers(rows, State{Tab: "all"}), 3)
}

func TestSupplierStats(t *testing.T) {
	stats := SupplierStats(suppliers())
	assert.Equal(t, "3", stats[0].Value)
	assert.Equal(t, "2", stats[1].Value)
	assert.Equal(t, "66% of all suppliers", stats[1].Hint)
	// 75 and 82 count as high risk
	assert.Equal(t, "2", stats[2].Value)
}

func TestSupplierPage(t *testing.T) {
	rows := suppliers()

	t.Run("should count the tabs over all suppliers", func(t *testing.T) {
		view := SupplierPage(StateFromQuery(url.Values{"tab": {"active"}, "search": {"acme"}}), loaded(rows))
		require.Len(t, view.Tabs, 5)
		assert.Equal(t, Tab{Label: "All", Value: "all", Count: 3, URL: "/suppliers?search=acme"}, view.Tabs[0])
		assert.True(t, view.Tabs[1].Active)
		assert.Equal(t, 2, view.Tabs[1].Count)
		assert.Equal(t, "/suppliers?search=acme&tab=active", view.Tabs[1].URL)
		assert.Len(t, view.Table.Rows, 1)
	})

	t.Run("should open the edit dialog with the supplier", func(t *testing.T) {
		view := SupplierPage(StateFromQuery(url.Values{"dialog": {"edit"}, "id": {rows[0].ID.String()}}), loaded(rows))
		require.NotNil(t, view.Dialog)
		assert.Equal(t, "Edit Supplier", view.Dialog.Title)
		assert.Equal(t, "/suppliers/"+rows[0].ID.String(), view.Dialog.Action)
		assert.Equal(t, "/suppliers", view.Dialog.CancelURL)
		assert.Equal(t, "Acme", view.Dialog.Fields[0].Value)
		assert.False(t, view.Dialog.Disabled)
	})

	t.Run("should open an empty create dialog", func(t *testing.T) {
		view := SupplierPage(StateFromQuery(url.Values{"dialog": {"create"}}), loaded(rows))
		require.NotNil(t, view.Dialog)
		assert.Equal(t, "", view.Dialog.Fields[0].Value)
		// name is required
		assert.True(t, view.Dialog.Disabled)
	})

	t.Run("should only ask for a confirmation on delete", func(t *testing.T) {
		view := SupplierPage(StateFromQuery(url.Values{"dialog": {"delete"}, "id": {rows[1].ID.String()}}), loaded(rows))
		require.NotNil(t, view.Confirm)
		assert.Equal(t, "/suppliers/"+rows[1].ID.String()+"/delete", view.Confirm.Action)
		assert.Contains(t, view.Confirm.Description, "Globex")
	})

	t.Run("should ignore an unknown id", func(t *testing.T) {
		view := SupplierPage(StateFromQuery(url.Values{"dialog": {"edit"}, "id": {"nope"}}), loaded(rows))
		assert.Nil(t, view.Dialog)
	})

	t.Run("should render the loading state on the first load", func(t *testing.T) {
		view := SupplierPage(State{}, synchronization.QueryState[[]dtos.SupplierDTO]{Status: synchronization.StatusLoading})
		assert.Equal(t, presentation.TableLoading, view.Table.State)
	})
}

func TestRiskAnalysis(t *testing.T) {
	rows := []dtos.RiskFactorDTO{
		{ID: uuid.New(), Name: "Port strike", Category: "Logistics", Severity: "high", Status: "active", Impact: 8, Probability: 6, RiskScore: 48},
		{ID: uuid.New(), Name: "Flood", Category: "Climate", Description: "River flooding near the plant", Severity: "critical", Status: "mitigated", Impact: 10, Probability: 3, RiskScore: 30},
	}

	distribution := SeverityDistribution(rows)
	require.Len(t, distribution, 4)
	assert.Equal(t, SeverityShare{Severity: "high", Label: "High", Count: 1, Percent: 50, Variant: "danger"}, distribution[2])
	assert.Equal(t, 0, distribution[0].Count)

	assert.Len(t, FilterRiskFactors(rows, State{Search: "plant"}), 1)

	stats := RiskFactorStats(rows)
	assert.Equal(t, "50%", stats[2].Value)
	assert.Equal(t, "39", stats[3].Value)

	view := RiskAnalysisPage(State{}, loaded(rows))
	assert.Equal(t, "48", view.Table.Rows[0].Cells[6].Text)
}

func TestEsgReportsPage(t *testing.T) {
	verified := dtos.EsgReportDTO{ID: uuid.New(), Title: "Annual Report 2023", Type: "annual", Status: "published", Scope: "global", DownloadLink: "#", BlockchainVerified: true}
	draft := dtos.EsgReportDTO{ID: uuid.New(), Title: "Q1 Emissions", Type: "quarterly", Status: "draft", Scope: "regional", DownloadLink: "/documents/esg-reports/x.pdf"}

	view := EsgReportsPage(State{}, loaded([]dtos.EsgReportDTO{verified, draft}))
	require.Len(t, view.Table.Rows, 2)
	assert.Equal(t, presentation.Cell{Text: "None"}, view.Table.Rows[0].Cells[6])
	assert.Equal(t, presentation.Cell{Text: "Download", Link: draft.DownloadLink}, view.Table.Rows[1].Cells[6])
	// verify is only offered once
	assert.Len(t, view.Table.Rows[0].Actions, 1)
	assert.Equal(t, "/esg-reports/"+draft.ID.String()+"/verify", view.Table.Rows[1].Actions[1].URL)

	assert.Equal(t, "", EsgReportDefaults(verified)["downloadLink"])

	upload := EsgReportsPage(StateFromQuery(url.Values{"dialog": {"upload"}, "id": {draft.ID.String()}}), loaded([]dtos.EsgReportDTO{draft}))
	require.NotNil(t, upload.Upload)
	assert.Equal(t, "/esg-reports/"+draft.ID.String()+"/document", upload.Upload.Action)
}

func TestAlertsPage(t *testing.T) {
	rows := []dtos.AlertDTO{
		{ID: uuid.New(), Code: "ALT-2023-001", Title: "License expired", Severity: "critical", Status: "new"},
		{ID: uuid.New(), Code: "ALT-2023-002", Title: "Audit due", Severity: "low", Status: "acknowledged"},
		{ID: uuid.New(), Code: "ALT-2023-003", Title: "Audit passed", Severity: "low", Status: "resolved"},
	}

	view := AlertsPage(StateFromQuery(url.Values{"tab": {"new"}}), loaded(rows))
	assert.Equal(t, []int{3, 1, 1, 1}, []int{view.Tabs[0].Count, view.Tabs[1].Count, view.Tabs[2].Count, view.Tabs[3].Count})
	require.Len(t, view.Table.Rows, 1)
	labels := []string{}
	for _, a := range view.Table.Rows[0].Actions {
		labels = append(labels, a.Label)
	}
	assert.Equal(t, []string{"Acknowledge", "Resolve"}, labels)
	assert.Equal(t, "2", view.Stats[0].Value)
	assert.Equal(t, "1", view.Stats[1].Value)
}

func TestGraph(t *testing.T) {
	a := dtos.SystemNodeDTO{ID: uuid.New(), Name: "Factory"}
	b := dtos.SystemNodeDTO{ID: uuid.New(), Name: "Warehouse"}
	c := dtos.SystemNodeDTO{ID: uuid.New(), Name: "Ledger"}
	connections := []dtos.SystemConnectionDTO{
		{ID: uuid.New(), SourceID: a.ID, TargetID: b.ID},
		{ID: uuid.New(), SourceID: b.ID, TargetID: a.ID},
		{ID: uuid.New(), SourceID: a.ID, TargetID: uuid.New()},
	}

	g := NewGraph([]dtos.SystemNodeDTO{a, b, c}, connections)
	assert.Equal(t, 1, g.Degree(a.ID))
	assert.Equal(t, 1, g.Degree(b.ID))
	assert.Equal(t, []dtos.SystemNodeDTO{c}, g.Orphans())
	assert.Equal(t, "Warehouse", g.Name(b.ID))

	view := SystemFlowPage(StateFromQuery(url.Values{"dialog": {"delete"}, "id": {a.ID.String()}}), loaded([]dtos.SystemNodeDTO{a, b, c}), loaded(connections))
	require.NotNil(t, view.Confirm)
	assert.Contains(t, view.Confirm.Description, "still connected")
	assert.Len(t, view.Connections.Rows, 3)
	assert.Equal(t, "/system-flow?dialog=connection-edit&id="+connections[0].ID.String(), view.Connections.Rows[0].EditURL)
	assert.Equal(t, "/system-flow?dialog=connection-create", view.Connections.AddURL)
	assert.Equal(t, "Orphan", view.Table.Rows[2].Cells[4].Text)

	edit := SystemFlowPage(StateFromQuery(url.Values{"dialog": {"connection-edit"}, "id": {connections[0].ID.String()}}), loaded([]dtos.SystemNodeDTO{a, b, c}), loaded(connections))
	require.NotNil(t, edit.Dialog)
	assert.Equal(t, a.ID.String(), edit.Dialog.Fields[0].Value)
	assert.Len(t, edit.Dialog.Fields[0].Options, 3)
}

type fakeLister[E any] struct {
	state synchronization.QueryState[[]E]
}

func (f fakeLister[E]) List(ctx context.Context) synchronization.QueryState[[]E] {
	return f.state
}

func TestComplianceRisk(t *testing.T) {
	assert.Equal(t, "Low", ComplianceRisk(90).Text)
	assert.Equal(t, "Moderate", ComplianceRisk(70).Text)
	assert.Equal(t, "High", ComplianceRisk(69).Text)
}

func TestLoadDashboard(t *testing.T) {
	reports := []dtos.EsgReportDTO{
		{Status: "published", BlockchainVerified: true},
		{Status: "draft"},
	}
	riskFactors := []dtos.RiskFactorDTO{{Status: "mitigated"}, {Status: "active"}, {Status: "active"}, {Status: "closed"}}
	alerts := []dtos.AlertDTO{{Title: "a", Status: "new"}, {Title: "b", Status: "resolved"}}

	sources := DashboardSources{
		Suppliers:   fakeLister[dtos.SupplierDTO]{loaded(suppliers())},
		RiskFactors: fakeLister[dtos.RiskFactorDTO]{loaded(riskFactors)},
		EsgReports:  fakeLister[dtos.EsgReportDTO]{loaded(reports)},
		Alerts:      fakeLister[dtos.AlertDTO]{loaded(alerts)},
	}

	view, err := LoadDashboard(context.Background(), sources)
	require.NoError(t, err)
	// (66 + 50 + 50 + 25) / 4
	assert.Equal(t, 47, view.ComplianceScore)
	assert.Equal(t, "High", view.ComplianceRisk.Text)
	assert.Equal(t, "66%", view.Stats[1].Value)
	assert.Equal(t, "1", view.Stats[6].Value)
	assert.Len(t, view.RecentAlerts.Rows, 1)
	assert.False(t, view.RecentAlerts.HasActions)

	t.Run("should keep the loaded lists when one read fails", func(t *testing.T) {
		failing := sources
		failing.Alerts = fakeLister[dtos.AlertDTO]{synchronization.QueryState[[]dtos.AlertDTO]{Status: synchronization.StatusError, Err: errors.New("connection refused")}}

		view, err := LoadDashboard(context.Background(), failing)
		assert.EqualError(t, err, "connection refused")
		assert.Equal(t, "connection refused", view.Error)
		assert.Equal(t, "3", view.Stats[0].Value)
	})
}
