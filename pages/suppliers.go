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

const (
	SuppliersPath = "/suppliers"
	// HighRiskSupplierScore is the cutoff of the "high risk" stat card
	HighRiskSupplierScore = 75
)

var SupplierTable = presentation.Table[dtos.SupplierDTO]{
	Columns: []presentation.Column[dtos.SupplierDTO]{
		{Header: "Name", AccessorKey: "name"},
		{Header: "Category", AccessorKey: "category"},
		{Header: "Location", AccessorKey: "location"},
		{Header: "Status", AccessorKey: "status", Cell: func(s dtos.SupplierDTO) presentation.Cell {
			return badge(s.Status, statusVariants)
		}},
		{Header: "Risk Score", AccessorKey: "riskScore", Cell: func(s dtos.SupplierDTO) presentation.Cell {
			band := Band(s.RiskScore)
			band.Text = strconv.Itoa(s.RiskScore) + " (" + band.Text + ")"
			return band
		}},
		{Header: "Verified", AccessorKey: "verified"},
		{Header: "Contact", AccessorKey: "contactEmail", Cell: func(s dtos.SupplierDTO) presentation.Cell {
			return presentation.Cell{Text: s.ContactEmail, Link: "mailto:" + s.ContactEmail}
		}},
	},
	RowID:             func(s dtos.SupplierDTO) string { return s.ID.String() },
	SearchPlaceholder: "Search suppliers...",
	AddLabel:          "Add Supplier",
	CanEdit:           true,
	CanDelete:         true,
}

var yesNo = []presentation.Option{{Value: "true", Label: "Yes"}, {Value: "false", Label: "No"}}

var SupplierForm = presentation.Form{
	SubmitLabel: "Save Supplier",
	Fields: []presentation.Field{
		{Name: "name", Label: "Name", Type: presentation.FieldText, Placeholder: "Acme Logistics", Rule: "required,min=2"},
		{Name: "category", Label: "Category", Type: presentation.FieldText, Placeholder: "Logistics", Rule: "required"},
		{Name: "location", Label: "Location", Type: presentation.FieldText, Placeholder: "Berlin, Germany", Rule: "required"},
		{Name: "status", Label: "Status", Type: presentation.FieldSelect, Options: presentation.OptionsOf(dtos.SupplierStatuses), Rule: "required"},
		{Name: "riskScore", Label: "Risk Score", Type: presentation.FieldNumber, Placeholder: "0-100", Rule: "required,gte=0,lte=100"},
		{Name: "verified", Label: "Verified", Type: presentation.FieldSelect, Options: yesNo},
		{Name: "contactEmail", Label: "Contact Email", Type: presentation.FieldEmail, Placeholder: "contact@supplier.com", Rule: "required,email"},
		{Name: "contactPhone", Label: "Contact Phone", Type: presentation.FieldText, Placeholder: "+49 30 123456", Rule: "required,min=5"},
	},
}

func SupplierDefaults(s dtos.SupplierDTO) map[string]string {
	return map[string]string{
		"name":         s.Name,
		"category":     s.Category,
		"location":     s.Location,
		"status":       s.Status,
		"riskScore":    strconv.Itoa(s.RiskScore),
		"verified":     strconv.FormatBool(s.Verified),
		"contactEmail": s.ContactEmail,
		"contactPhone": s.ContactPhone,
	}
}

func NewSupplierDefaults() map[string]string {
	return map[string]string{"status": "pending", "riskScore": "0", "verified": "false"}
}

func FilterSuppliers(rows []dtos.SupplierDTO, state State) []dtos.SupplierDTO {
	rows = ByTab(rows, state.Tab, func(s dtos.SupplierDTO) string { return s.Status })
	return Search(rows, state.Search, func(s dtos.SupplierDTO) []string {
		return []string{s.Name, s.Category, s.Location}
	})
}

func SupplierStats(rows []dtos.SupplierDTO) []StatCard {
	verified := utils.Count(rows, func(s dtos.SupplierDTO) bool { return s.Verified })
	highRisk := utils.Count(rows, func(s dtos.SupplierDTO) bool { return s.RiskScore >= HighRiskSupplierScore })
	return []StatCard{
		{Label: "Total Suppliers", Value: strconv.Itoa(len(rows))},
		{Label: "Verified", Value: strconv.Itoa(verified), Hint: strconv.Itoa(utils.Percentage(verified, len(rows))) + "% of all suppliers", Variant: "success"},
		{Label: "High Risk", Value: strconv.Itoa(highRisk), Hint: "Risk score " + strconv.Itoa(HighRiskSupplierScore) + " or above", Variant: "danger"},
	}
}

func SupplierPage(state State, list synchronization.QueryState[[]dtos.SupplierDTO]) ListView {
	rows := FilterSuppliers(list.Data, state)
	view := ListView{
		Title:    "Suppliers",
		BasePath: SuppliersPath,
		Tabs:     Tabs(SuppliersPath, state, list.Data, []string{"active", "pending", "inactive", "suspended"}, func(s dtos.SupplierDTO) string { return s.Status }),
		Stats:    SupplierStats(list.Data),
		Table:    SupplierTable.Render(Input(state, SuppliersPath, list, rows)),
	}
	closeURL := CloseURL(SuppliersPath, state.Query)

	switch state.Dialog {
	case DialogCreate:
		d := presentation.NewDialog(SupplierForm)
		d.Open("Add Supplier", NewSupplierDefaults())
		view.Dialog = NewDialogView(d, SuppliersPath, closeURL)
	case DialogEdit:
		if s, ok := findByID(list.Data, state.ID, func(s dtos.SupplierDTO) uuid.UUID { return s.ID }); ok {
			d := presentation.NewDialog(SupplierForm)
			d.Open("Edit Supplier", SupplierDefaults(s))
			view.Dialog = NewDialogView(d, SuppliersPath+"/"+s.ID.String(), closeURL)
		}
	case DialogDelete:
		if s, ok := findByID(list.Data, state.ID, func(s dtos.SupplierDTO) uuid.UUID { return s.ID }); ok {
			var c presentation.ConfirmDialog
			c.Open("Delete Supplier", "Are you sure you want to delete "+s.Name+"? This action cannot be undone.", s.ID.String())
			view.Confirm = NewConfirmView(&c, SuppliersPath+"/"+s.ID.String()+"/delete", closeURL)
		}
	}
	return view
}

func findByID[E any](rows []E, id string, key func(E) uuid.UUID) (E, bool) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		var zero E
		return zero, false
	}
	return utils.Find(rows, func(e E) bool { return key(e) == parsed })
}
