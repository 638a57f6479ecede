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
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/l3montree-dev/supplyguard/dtos"
	"github.com/l3montree-dev/supplyguard/presentation"
	"github.com/l3montree-dev/supplyguard/synchronization"
	"github.com/l3montree-dev/supplyguard/utils"
)

const AlertsPath = "/alerts"

var AlertTable = presentation.Table[dtos.AlertDTO]{
	Columns: []presentation.Column[dtos.AlertDTO]{
		{Header: "ID", AccessorKey: "code"},
		{Header: "Title", AccessorKey: "title"},
		{Header: "Severity", AccessorKey: "severity", Cell: func(a dtos.AlertDTO) presentation.Cell {
			return badge(a.Severity, severityVariants)
		}},
		{Header: "Type", AccessorKey: "type", Cell: func(a dtos.AlertDTO) presentation.Cell {
			return presentation.Cell{Text: presentation.Humanize(a.Type)}
		}},
		{Header: "Source", AccessorKey: "source", Cell: func(a dtos.AlertDTO) presentation.Cell {
			if a.Source == "ai" {
				return presentation.Cell{Text: "AI"}
			}
			return presentation.Cell{Text: presentation.Humanize(a.Source)}
		}},
		{Header: "Time", AccessorKey: "timestamp", Cell: func(a dtos.AlertDTO) presentation.Cell {
			return presentation.Cell{Text: a.Timestamp.Format("2006-01-02 15:04")}
		}},
		{Header: "Status", AccessorKey: "status", Cell: func(a dtos.AlertDTO) presentation.Cell {
			return badge(a.Status, statusVariants)
		}},
	},
	RowID:             func(a dtos.AlertDTO) string { return a.ID.String() },
	SearchPlaceholder: "Search alerts...",
	AddLabel:          "Create Alert",
	CanDelete:         true,
	RowActions: func(a dtos.AlertDTO) []presentation.Action {
		var actions []presentation.Action
		if a.Status == dtos.AlertStatusNew {
			actions = append(actions, presentation.Action{Label: "Acknowledge", URL: AlertsPath + "/" + a.ID.String() + "/acknowledge", Method: http.MethodPost})
		}
		if a.Status != dtos.AlertStatusResolved {
			actions = append(actions, presentation.Action{Label: "Resolve", URL: AlertsPath + "/" + a.ID.String() + "/resolve", Method: http.MethodPost})
		}
		return actions
	},
}

var AlertForm = presentation.Form{
	SubmitLabel: "Create Alert",
	Fields: []presentation.Field{
		{Name: "title", Label: "Title", Type: presentation.FieldText, Rule: "required,min=2"},
		{Name: "description", Label: "Description", Type: presentation.FieldTextarea},
		{Name: "severity", Label: "Severity", Type: presentation.FieldSelect, Options: presentation.OptionsOf(dtos.AlertSeverities), Rule: "required"},
		{Name: "type", Label: "Type", Type: presentation.FieldSelect, Options: presentation.OptionsOf(dtos.AlertTypes), Rule: "required"},
		{Name: "source", Label: "Source", Type: presentation.FieldSelect, Options: presentation.OptionsOf(dtos.AlertSources), Rule: "required"},
	},
}

func NewAlertDefaults() map[string]string {
	return map[string]string{"severity": "medium", "type": "compliance", "source": "manual"}
}

func FilterAlerts(rows []dtos.AlertDTO, state State) []dtos.AlertDTO {
	rows = ByTab(rows, state.Tab, func(a dtos.AlertDTO) string { return a.Status })
	return Search(rows, state.Search, func(a dtos.AlertDTO) []string { return []string{a.Title, a.Description, a.Code} })
}

func AlertStats(rows []dtos.AlertDTO) []StatCard {
	open := utils.Count(rows, func(a dtos.AlertDTO) bool { return a.Status != dtos.AlertStatusResolved })
	critical := utils.Count(rows, func(a dtos.AlertDTO) bool {
		return a.Severity == "critical" && a.Status != dtos.AlertStatusResolved
	})
	return []StatCard{
		{Label: "Open Alerts", Value: strconv.Itoa(open), Variant: "warning"},
		{Label: "Critical", Value: strconv.Itoa(critical), Variant: "critical"},
	}
}

func AlertsPage(state State, list synchronization.QueryState[[]dtos.AlertDTO]) ListView {
	rows := FilterAlerts(list.Data, state)
	view := ListView{
		Title:    "Alerts",
		BasePath: AlertsPath,
		Tabs:     Tabs(AlertsPath, state, list.Data, dtos.AlertStatuses, func(a dtos.AlertDTO) string { return a.Status }),
		Stats:    AlertStats(list.Data),
		Table:    AlertTable.Render(Input(state, AlertsPath, list, rows)),
	}
	closeURL := CloseURL(AlertsPath, state.Query)

	switch state.Dialog {
	case DialogCreate:
		d := presentation.NewDialog(AlertForm)
		d.Open("Create Alert", NewAlertDefaults())
		view.Dialog = NewDialogView(d, AlertsPath, closeURL)
	case DialogDelete:
		if a, ok := findByID(list.Data, state.ID, func(a dtos.AlertDTO) uuid.UUID { return a.ID }); ok {
			var c presentation.ConfirmDialog
			c.Open("Delete Alert", "Are you sure you want to delete "+a.Code+"? This action cannot be undone.", a.ID.String())
			view.Confirm = NewConfirmView(&c, AlertsPath+"/"+a.ID.String()+"/delete", closeURL)
		}
	}
	return view
}
