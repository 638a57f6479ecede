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
	"slices"
	"strconv"

	"github.com/l3montree-dev/supplyguard/dtos"
	"github.com/l3montree-dev/supplyguard/presentation"
	"github.com/l3montree-dev/supplyguard/shared"
	"github.com/l3montree-dev/supplyguard/synchronization"
	"github.com/l3montree-dev/supplyguard/utils"
	"golang.org/x/sync/errgroup"
)

const (
	DashboardPath = "/"
	recentAlerts  = 5
)

type Lister[E any] interface {
	List(ctx context.Context) synchronization.QueryState[[]E]
}

type DashboardSources struct {
	Suppliers   Lister[dtos.SupplierDTO]
	RiskFactors Lister[dtos.RiskFactorDTO]
	EsgReports  Lister[dtos.EsgReportDTO]
	Alerts      Lister[dtos.AlertDTO]
}

type DashboardView struct {
	Title           string
	Stats           []StatCard
	ComplianceScore int
	ComplianceRisk  presentation.Cell
	RecentAlerts    presentation.TableView
	Error           string
}

// ComplianceRisk bands the compliance score. A higher score means a lower risk.
func ComplianceRisk(score int) presentation.Cell {
	switch {
	case score >= 90:
		return presentation.Cell{Text: "Low", Variant: "success"}
	case score >= 70:
		return presentation.Cell{Text: "Moderate", Variant: "warning"}
	}
	return presentation.Cell{Text: "High", Variant: "danger"}
}

// ComplianceScore is the mean of the verified supplier, published report,
// blockchain verified report and mitigated risk factor percentages.
func ComplianceScore(suppliers []dtos.SupplierDTO, riskFactors []dtos.RiskFactorDTO, reports []dtos.EsgReportDTO) int {
	verified := utils.Count(suppliers, func(s dtos.SupplierDTO) bool { return s.Verified })
	published := utils.Count(reports, func(r dtos.EsgReportDTO) bool { return r.Status == "published" })
	onChain := utils.Count(reports, func(r dtos.EsgReportDTO) bool { return r.BlockchainVerified })
	mitigated := utils.Count(riskFactors, func(r dtos.RiskFactorDTO) bool { return r.Status == "mitigated" })

	sum := utils.Percentage(verified, len(suppliers)) +
		utils.Percentage(published, len(reports)) +
		utils.Percentage(onChain, len(reports)) +
		utils.Percentage(mitigated, len(riskFactors))
	return sum / 4
}

// LoadDashboard reads all lists concurrently. The view is filled with
// whatever could be loaded; the returned error is the first failed read.
func LoadDashboard(ctx context.Context, sources DashboardSources) (DashboardView, error) {
	var (
		g           errgroup.Group
		suppliers   synchronization.QueryState[[]dtos.SupplierDTO]
		riskFactors synchronization.QueryState[[]dtos.RiskFactorDTO]
		reports     synchronization.QueryState[[]dtos.EsgReportDTO]
		alerts      synchronization.QueryState[[]dtos.AlertDTO]
	)
	g.Go(func() error {
		suppliers = sources.Suppliers.List(ctx)
		return suppliers.Err
	})
	g.Go(func() error {
		riskFactors = sources.RiskFactors.List(ctx)
		return riskFactors.Err
	})
	g.Go(func() error {
		reports = sources.EsgReports.List(ctx)
		return reports.Err
	})
	g.Go(func() error {
		alerts = sources.Alerts.List(ctx)
		return alerts.Err
	})
	err := g.Wait()

	view := DashboardView{Title: "Dashboard"}
	if err != nil {
		view.Error = err.Error()
	}

	s, r, e, a := suppliers.Data, riskFactors.Data, reports.Data, alerts.Data
	verified := utils.Count(s, func(s dtos.SupplierDTO) bool { return s.Verified })
	highRisk := utils.Count(s, func(s dtos.SupplierDTO) bool { return s.RiskScore >= HighRiskSupplierScore })
	published := utils.Count(e, func(r dtos.EsgReportDTO) bool { return r.Status == "published" })
	onChain := utils.Count(e, func(r dtos.EsgReportDTO) bool { return r.BlockchainVerified })
	mitigated := utils.Count(r, func(r dtos.RiskFactorDTO) bool { return r.Status == "mitigated" })
	open := utils.Filter(a, func(a dtos.AlertDTO) bool { return a.Status != dtos.AlertStatusResolved })

	view.Stats = []StatCard{
		{Label: "Total Suppliers", Value: strconv.Itoa(len(s))},
		{Label: "Verified Suppliers", Value: percent(verified, len(s)), Variant: "success"},
		{Label: "High Risk Suppliers", Value: strconv.Itoa(highRisk), Variant: "danger"},
		{Label: "Published Reports", Value: percent(published, len(e))},
		{Label: "Blockchain Verified", Value: percent(onChain, len(e)), Variant: "success"},
		{Label: "Mitigated Risks", Value: percent(mitigated, len(r))},
		{Label: "Open Alerts", Value: strconv.Itoa(len(open)), Variant: "warning"},
	}
	view.ComplianceScore = ComplianceScore(s, r, e)
	view.ComplianceRisk = ComplianceRisk(view.ComplianceScore)

	// alerts are listed newest first
	recent := open[:min(recentAlerts, len(open))]
	table := AlertTable
	table.AddLabel = ""
	table.SearchPlaceholder = ""
	table.CanDelete = false
	table.RowActions = nil
	table.Columns = slices.DeleteFunc(slices.Clone(table.Columns), func(c presentation.Column[dtos.AlertDTO]) bool {
		return c.Header == "Source"
	})
	view.RecentAlerts = table.Render(presentation.TableInput[dtos.AlertDTO]{
		Page:     shared.PageOf(recent, shared.PageInfo{Page: 1, PageSize: recentAlerts}),
		Loading:  alerts.Status == synchronization.StatusLoading && !alerts.HasData(),
		BasePath: AlertsPath,
	})
	return view, err
}

func percent(part, total int) string {
	return strconv.Itoa(utils.Percentage(part, total)) + "%"
}
