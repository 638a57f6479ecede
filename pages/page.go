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

// Package pages configures the generic table, form and dialog per entity.
// Pages hold no state of their own: everything local to a page (open dialog,
// search text, selected row, tab, page number) is carried in the query.
package pages

import (
	"net/url"
	"strings"

	"github.com/l3montree-dev/supplyguard/presentation"
	"github.com/l3montree-dev/supplyguard/shared"
	"github.com/l3montree-dev/supplyguard/synchronization"
	"github.com/l3montree-dev/supplyguard/utils"
)

const (
	DialogCreate = "create"
	DialogEdit   = "edit"
	DialogDelete = "delete"
	DialogUpload = "upload"
)

// State is the page local state parsed from the query.
type State struct {
	Dialog   string
	ID       string
	Search   string
	Tab      string
	PageInfo shared.PageInfo
	Query    url.Values
}

func StateFromQuery(query url.Values) State {
	return State{
		Dialog:   query.Get("dialog"),
		ID:       query.Get("id"),
		Search:   strings.TrimSpace(query.Get("search")),
		Tab:      query.Get("tab"),
		PageInfo: shared.ParsePageInfo(query.Get("page"), query.Get("pageSize")),
		Query:    query,
	}
}

type Tab struct {
	Label  string
	Value  string
	Count  int
	Active bool
	URL    string
}

type StatCard struct {
	Label   string
	Value   string
	Hint    string
	Variant string
}

type FieldView struct {
	presentation.Field
	Value string
	Error string
}

type DialogView struct {
	Title       string
	Action      string
	SubmitLabel string
	Fields      []FieldView
	Error       string
	Disabled    bool
	CancelURL   string
}

type ConfirmView struct {
	Title       string
	Description string
	Action      string
	CancelURL   string
}

// ListView is the view model of a list page.
type ListView struct {
	Title    string
	BasePath string
	Tabs     []Tab
	Stats    []StatCard
	Table    presentation.TableView
	Dialog   *DialogView
	Confirm  *ConfirmView
}

// ShowDialog replaces the dialog of the view, e.g. with a failed submission.
func (v *ListView) ShowDialog(d *DialogView) {
	v.Dialog = d
	v.Confirm = nil
}

func NewDialogView(d *presentation.Dialog, action, cancelURL string) *DialogView {
	view := &DialogView{
		Title:       d.Title,
		Action:      action,
		SubmitLabel: d.Form.SubmitLabel,
		Error:       d.Error,
		Disabled:    d.SubmitDisabled(),
		CancelURL:   cancelURL,
	}
	if view.SubmitLabel == "" {
		view.SubmitLabel = "Save"
	}
	for _, f := range d.Form.Fields {
		view.Fields = append(view.Fields, FieldView{Field: f, Value: d.Values[f.Name], Error: d.Errors[f.Name]})
	}
	return view
}

func NewConfirmView(c *presentation.ConfirmDialog, action, cancelURL string) *ConfirmView {
	return &ConfirmView{Title: c.Title, Description: c.Description, Action: action, CancelURL: cancelURL}
}

// Input builds the table input of a list track. rows are the already filtered
// entities of state, the list is paginated here.
func Input[E any](state State, basePath string, list synchronization.QueryState[[]E], rows []E) presentation.TableInput[E] {
	return presentation.TableInput[E]{
		Page:     shared.PageOf(rows, state.PageInfo),
		Loading:  list.Status == synchronization.StatusLoading && !list.HasData(),
		Err:      list.Err,
		Search:   state.Search,
		BasePath: basePath,
		Query:    state.Query,
	}
}

// Search keeps the rows where any of the given fields contains term, ignoring case.
func Search[E any](rows []E, term string, fields func(E) []string) []E {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return rows
	}
	return utils.Filter(rows, func(e E) bool {
		for _, f := range fields(e) {
			if strings.Contains(strings.ToLower(f), term) {
				return true
			}
		}
		return false
	})
}

// Tabs counts rows per value. The first tab "all" counts every row.
func Tabs[E any](basePath string, state State, rows []E, values []string, key func(E) string) []Tab {
	counts := utils.CountBy(rows, key)
	active := state.Tab
	if active == "" {
		active = "all"
	}

	tabs := []Tab{{Label: "All", Value: "all", Count: len(rows)}}
	for _, v := range values {
		tabs = append(tabs, Tab{Label: presentation.Humanize(v), Value: v, Count: counts[v]})
	}
	for i := range tabs {
		tabs[i].Active = tabs[i].Value == active
		tabs[i].URL = tabURL(basePath, state.Query, tabs[i].Value)
	}
	return tabs
}

// ByTab keeps the rows of the active tab.
func ByTab[E any](rows []E, tab string, key func(E) string) []E {
	if tab == "" || tab == "all" {
		return rows
	}
	return utils.Filter(rows, func(e E) bool { return key(e) == tab })
}

func tabURL(basePath string, query url.Values, tab string) string {
	q := url.Values{}
	if s := query.Get("search"); s != "" {
		q.Set("search", s)
	}
	if tab != "all" {
		q.Set("tab", tab)
	}
	if len(q) == 0 {
		return basePath
	}
	return basePath + "?" + q.Encode()
}

// CloseURL is the page url without the dialog parameters.
func CloseURL(basePath string, query url.Values) string {
	q := url.Values{}
	for k, v := range query {
		if k == "dialog" || k == "id" {
			continue
		}
		q[k] = v
	}
	if len(q) == 0 {
		return basePath
	}
	return basePath + "?" + q.Encode()
}

// Band maps a score of 0..100 to a risk level. The cutoffs are shared by
// suppliers and risk factors.
func Band(score int) presentation.Cell {
	switch {
	case score < 30:
		return presentation.Cell{Text: "Low", Variant: "success"}
	case score < 60:
		return presentation.Cell{Text: "Moderate", Variant: "warning"}
	case score < 80:
		return presentation.Cell{Text: "High", Variant: "danger"}
	}
	return presentation.Cell{Text: "Critical", Variant: "critical"}
}

func badge(value string, variants map[string]string) presentation.Cell {
	return presentation.Cell{Text: presentation.Humanize(value), Variant: variants[value]}
}

var statusVariants = map[string]string{
	"active":       "success",
	"published":    "success",
	"resolved":     "success",
	"mitigated":    "success",
	"pending":      "warning",
	"monitoring":   "warning",
	"maintenance":  "warning",
	"acknowledged": "warning",
	"draft":        "secondary",
	"inactive":     "secondary",
	"closed":       "secondary",
	"new":          "danger",
	"suspended":    "danger",
	"error":        "danger",
}

var severityVariants = map[string]string{
	"low":      "success",
	"medium":   "warning",
	"high":     "danger",
	"critical": "critical",
}
