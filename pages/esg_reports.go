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

const EsgReportsPath = "/esg-reports"

var EsgReportTable = presentation.Table[dtos.EsgReportDTO]{
	Columns: []presentation.Column[dtos.EsgReportDTO]{
		{Header: "Title", AccessorKey: "title"},
		{Header: "Date", AccessorKey: "date"},
		{Header: "Type", AccessorKey: "type", Cell: func(r dtos.EsgReportDTO) presentation.Cell {
			return presentation.Cell{Text: presentation.Humanize(r.Type)}
		}},
		{Header: "Scope", AccessorKey: "scope", Cell: func(r dtos.EsgReportDTO) presentation.Cell {
			return presentation.Cell{Text: presentation.Humanize(r.Scope)}
		}},
		{Header: "Status", AccessorKey: "status", Cell: func(r dtos.EsgReportDTO) presentation.Cell {
			return badge(r.Status, statusVariants)
		}},
		{Header: "Blockchain", AccessorKey: "blockchainVerified", Cell: func(r dtos.EsgReportDTO) presentation.Cell {
			if r.BlockchainVerified {
				return presentation.Cell{Text: "Verified", Variant: "success"}
			}
			return presentation.Cell{Text: "Unverified", Variant: "secondary"}
		}},
		{Header: "Document", AccessorKey: "downloadLink", Cell: func(r dtos.EsgReportDTO) presentation.Cell {
			if !r.HasDocument() {
				return presentation.Cell{Text: "None"}
			}
			return presentation.Cell{Text: "Download", Link: r.DownloadLink}
		}},
	},
	RowID:             func(r dtos.EsgReportDTO) string { return r.ID.String() },
	SearchPlaceholder: "Search reports...",
	AddLabel:          "Add Report",
	CanEdit:           true,
	CanDelete:         true,
	RowActions: func(r dtos.EsgReportDTO) []presentation.Action {
		actions := []presentation.Action{
			{Label: "Upload Document", URL: EsgReportsPath + "?dialog=" + DialogUpload + "&id=" + r.ID.String(), Method: http.MethodGet},
		}
		if !r.BlockchainVerified {
			actions = append(actions, presentation.Action{Label: "Verify", URL: EsgReportsPath + "/" + r.ID.String() + "/verify", Method: http.MethodPost})
		}
		return actions
	},
}

var EsgReportForm = presentation.Form{
	SubmitLabel: "Save Report",
	Fields: []presentation.Field{
		{Name: "title", Label: "Title", Type: presentation.FieldText, Placeholder: "Annual Sustainability Report", Rule: "required,min=5"},
		{Name: "date", Label: "Date", Type: presentation.FieldText, Placeholder: "YYYY-MM-DD", Rule: "required,datetime=2006-01-02"},
		{Name: "type", Label: "Type", Type: presentation.FieldSelect, Options: presentation.OptionsOf(dtos.ReportTypes), Rule: "required"},
		{Name: "status", Label: "Status", Type: presentation.FieldSelect, Options: presentation.OptionsOf(dtos.ReportStatuses), Rule: "required"},
		{Name: "scope", Label: "Scope", Type: presentation.FieldSelect, Options: presentation.OptionsOf(dtos.ReportScopes)},
		{Name: "downloadLink", Label: "Download Link", Type: presentation.FieldText, Placeholder: "https://", Rule: "omitempty,url"},
	},
}

func EsgReportDefaults(r dtos.EsgReportDTO) map[string]string {
	link := r.DownloadLink
	if !r.HasDocument() {
		link = ""
	}
	return map[string]string{
		"title":        r.Title,
		"date":         r.Date,
		"type":         r.Type,
		"status":       r.Status,
		"scope":        r.Scope,
		"downloadLink": link,
	}
}

func NewEsgReportDefaults() map[string]string {
	return map[string]string{"type": "quarterly", "status": "draft", "scope": dtos.DefaultReportScope}
}

func FilterEsgReports(rows []dtos.EsgReportDTO, state State) []dtos.EsgReportDTO {
	rows = ByTab(rows, state.Tab, func(r dtos.EsgReportDTO) string { return r.Type })
	return Search(rows, state.Search, func(r dtos.EsgReportDTO) []string { return []string{r.Title} })
}

func EsgReportStats(rows []dtos.EsgReportDTO) []StatCard {
	published := utils.Count(rows, func(r dtos.EsgReportDTO) bool { return r.Status == "published" })
	verified := utils.Count(rows, func(r dtos.EsgReportDTO) bool { return r.BlockchainVerified })
	return []StatCard{
		{Label: "Reports", Value: strconv.Itoa(len(rows))},
		{Label: "Published", Value: strconv.Itoa(utils.Percentage(published, len(rows))) + "%", Variant: "success"},
		{Label: "Blockchain Verified", Value: strconv.Itoa(utils.Percentage(verified, len(rows))) + "%", Variant: "success"},
	}
}

// UploadView is the document upload dialog of a report.
type UploadView struct {
	Title     string
	Action    string
	CancelURL string
	Error     string
}

type EsgReportsView struct {
	ListView
	Upload *UploadView
}

func EsgReportsPage(state State, list synchronization.QueryState[[]dtos.EsgReportDTO]) EsgReportsView {
	rows := FilterEsgReports(list.Data, state)
	view := EsgReportsView{ListView: ListView{
		Title:    "ESG Reports",
		BasePath: EsgReportsPath,
		Tabs:     Tabs(EsgReportsPath, state, list.Data, dtos.ReportTypes, func(r dtos.EsgReportDTO) string { return r.Type }),
		Stats:    EsgReportStats(list.Data),
		Table:    EsgReportTable.Render(Input(state, EsgReportsPath, list, rows)),
	}}
	closeURL := CloseURL(EsgReportsPath, state.Query)
	byID := func(r dtos.EsgReportDTO) uuid.UUID { return r.ID }

	switch state.Dialog {
	case DialogCreate:
		d := presentation.NewDialog(EsgReportForm)
		d.Open("Add Report", NewEsgReportDefaults())
		view.Dialog = NewDialogView(d, EsgReportsPath, closeURL)
	case DialogEdit:
		if r, ok := findByID(list.Data, state.ID, byID); ok {
			d := presentation.NewDialog(EsgReportForm)
			d.Open("Edit Report", EsgReportDefaults(r))
			view.Dialog = NewDialogView(d, EsgReportsPath+"/"+r.ID.String(), closeURL)
		}
	case DialogUpload:
		if r, ok := findByID(list.Data, state.ID, byID); ok {
			view.Upload = &UploadView{Title: "Upload document for " + r.Title, Action: EsgReportsPath + "/" + r.ID.String() + "/document", CancelURL: closeURL}
		}
	case DialogDelete:
		if r, ok := findByID(list.Data, state.ID, byID); ok {
			var c presentation.ConfirmDialog
			c.Open("Delete Report", "Are you sure you want to delete "+r.Title+"? This action cannot be undone.", r.ID.String())
			view.Confirm = NewConfirmView(&c, EsgReportsPath+"/"+r.ID.String()+"/delete", closeURL)
		}
	}
	return view
}
