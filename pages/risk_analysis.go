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
	"strconv"

	"github.com/google/uuid"
	"github.com/l3montree-dev/supplyguard/dtos"
	"github.com/l3montree-dev/supplyguard/presentation"
	"github.com/l3montree-dev/supplyguard/synchronization"
	"github.com/l3montree-dev/supplyguard/utils"
)

const RiskAnalysisPath = "/risk-analysis"

var RiskFactorTable = presentation.Table[dtos.RiskFactorDTO]{
	Columns: []presentation.Column[dtos.RiskFactorDTO]{
		{Header: "Name", AccessorKey: "name"},
		{Header: "Category", AccessorKey: "category"},
		{Header: "Severity", AccessorKey: "severity", Cell: func(r dtos.RiskFactorDTO) presentation.Cell {
			return badge(r.Severity, severityVariants)
		}},
		{Header: "Status", AccessorKey: "status", Cell: func(r dtos.RiskFactorDTO) presentation.Cell {
			return badge(r.Status, statusVariants)
		}},
		{Header: "Impact", AccessorKey: "impact"},
		{Header: "Probability", AccessorKey: "probability"},
		{Header: "Risk Score", AccessorKey: "riskScore", Cell: func(r dtos.RiskFactorDTO) presentation.Cell {
			cell := Band(r.RiskScore)
			cell.Text = strconv.Itoa(r.RiskScore)
			return cell
		}},
	},
	RowID:             func(r dtos.RiskFactorDTO) string { return r.ID.String() },
	SearchPlaceholder: "Search risk factors...",
	AddLabel:          "Add Risk Factor",
	CanEdit:           true,
	CanDelete:         true,
}

var RiskFactorForm = presentation.Form{
	SubmitLabel: "Save Risk Factor",
	Fields: []presentation.Field{
		{Name: "name", Label: "Name", Type: presentation.FieldText, Rule: "required,min=2"},
		{Name: "description", Label: "Description", Type: presentation.FieldTextarea, Rule: "required,min=5"},
		{Name: "category", Label: "Category", Type: presentation.FieldText, Placeholder: "Geopolitical", Rule: "required"},
		{Name: "severity", Label: "Severity", Type: presentation.FieldSelect, Options: presentation.OptionsOf(dtos.RiskSeverities), Rule: "required"},
		{Name: "status", Label: "Status", Type: presentation.FieldSelect, Options: presentation.OptionsOf(dtos.RiskStatuses), Rule: "required"},
		{Name: "impact", Label: "Impact", Type: presentation.FieldNumber, Placeholder: "1-10", Rule: "required,gte=1,lte=10", Message: "Impact must be between 1 and 10"},
		{Name: "probability", Label: "Probability", Type: presentation.FieldNumber, Placeholder: "1-10", Rule: "required,gte=1,lte=10", Message: "Probability must be between 1 and 10"},
	},
}

func RiskFactorDefaults(r dtos.RiskFactorDTO) map[string]string {
	return map[string]string{
		"name":        r.Name,
		"description": r.Description,
		"category":    r.Category,
		"severity":    r.Severity,
		"status":      r.Status,
		"impact":      strconv.Itoa(r.Impact),
		"probability": strconv.Itoa(r.Probability),
	}
}

func NewRiskFactorDefaults() map[string]string {
	return map[string]string{"severity": "medium", "status": "active", "impact": "5", "probability": "5"}
}

func FilterRiskFactors(rows []dtos.RiskFactorDTO, state State) []dtos.RiskFactorDTO {
	rows = ByTab(rows, state.Tab, func(r dtos.RiskFactorDTO) string { return r.Severity })
	return Search(rows, state.Search, func(r dtos.RiskFactorDTO) []string {
		return []string{r.Name, r.Category, r.Description}
	})
}

// SeverityShare is one bar of the severity distribution.
type SeverityShare struct {
	Severity string
	Label    string
	Count    int
	Percent  int
	Variant  string
}

func SeverityDistribution(rows []dtos.RiskFactorDTO) []SeverityShare {
	counts := utils.CountBy(rows, func(r dtos.RiskFactorDTO) string { return r.Severity })
	shares := make([]SeverityShare, 0, len(dtos.RiskSeverities))
	for _, s := range dtos.RiskSeverities {
		shares = append(shares, SeverityShare{
			Severity: s,
			Label:    presentation.Humanize(s),
			Count:    counts[s],
			Percent:  utils.Percentage(counts[s], len(rows)),
			Variant:  severityVariants[s],
		})
	}
	return shares
}

func RiskFactorStats(rows []dtos.RiskFactorDTO) []StatCard {
	active := utils.Count(rows, func(r dtos.RiskFactorDTO) bool { return r.Status == "active" })
	mitigated := utils.Count(rows, func(r dtos.RiskFactorDTO) bool { return r.Status == "mitigated" })
	total := utils.Reduce(rows, func(acc int, r dtos.RiskFactorDTO) int { return acc + r.RiskScore }, 0)
	average := 0
	if len(rows) > 0 {
		average = total / len(rows)
	}
	return []StatCard{
		{Label: "Risk Factors", Value: strconv.Itoa(len(rows))},
		{Label: "Active", Value: strconv.Itoa(active), Variant: "danger"},
		{Label: "Mitigated", Value: strconv.Itoa(utils.Percentage(mitigated, len(rows))) + "%", Variant: "success"},
		{Label: "Average Risk Score", Value: strconv.Itoa(average), Hint: "Impact × probability", Variant: Band(average).Variant},
	}
}

type RiskAnalysisView struct {
	ListView
	Distribution []SeverityShare
}

func RiskAnalysisPage(state State, list synchronization.QueryState[[]dtos.RiskFactorDTO]) RiskAnalysisView {
	rows := FilterRiskFactors(list.Data, state)
	view := RiskAnalysisView{
		ListView: ListView{
			Title:    "Risk Analysis",
			BasePath: RiskAnalysisPath,
			Tabs:     Tabs(RiskAnalysisPath, state, list.Data, dtos.RiskSeverities, func(r dtos.RiskFactorDTO) string { return r.Severity }),
			Stats:    RiskFactorStats(list.Data),
			Table:    RiskFactorTable.Render(Input(state, RiskAnalysisPath, list, rows)),
		},
		Distribution: SeverityDistribution(list.Data),
	}
	closeURL := CloseURL(RiskAnalysisPath, state.Query)
	byID := func(r dtos.RiskFactorDTO) uuid.UUID { return r.ID }

	switch state.Dialog {
	case DialogCreate:
		d := presentation.NewDialog(RiskFactorForm)
		d.Open("Add Risk Factor", NewRiskFactorDefaults())
		view.Dialog = NewDialogView(d, RiskAnalysisPath, closeURL)
	case DialogEdit:
		if r, ok := findByID(list.Data, state.ID, byID); ok {
			d := presentation.NewDialog(RiskFactorForm)
			d.Open("Edit Risk Factor", RiskFactorDefaults(r))
			view.Dialog = NewDialogView(d, RiskAnalysisPath+"/"+r.ID.String(), closeURL)
		}
	case DialogDelete:
		if r, ok := findByID(list.Data, state.ID, byID); ok {
			var c presentation.ConfirmDialog
			c.Open("Delete Risk Factor", "Are you sure you want to delete "+r.Name+"? This action cannot be undone.", r.ID.String())
			view.Confirm = NewConfirmView(&c, RiskAnalysisPath+"/"+r.ID.String()+"/delete", closeURL)
		}
	}
	return view
}
