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

// Package presentation contains the entity agnostic table, form and dialog
// view models the pages are assembled from.
package presentation

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/go-viper/mapstructure/v2"
	"github.com/l3montree-dev/supplyguard/shared"
)

const (
	LoadingMessage = "Loading..."
	EmptyMessage   = "No data available"
)

// Cell is what a column renders for one row.
type Cell struct {
	Text string
	// Variant selects the badge style, empty renders plain text
	Variant string
	Link    string
}

type Column[E any] struct {
	Header string
	// AccessorKey is the json name of the field shown when Cell is nil
	AccessorKey string
	Cell        func(E) Cell
}

// Table is configured once per page.
type Table[E any] struct {
	Columns           []Column[E]
	RowID             func(E) string
	SearchPlaceholder string
	AddLabel          string
	// CanEdit and CanDelete add the actions column
	CanEdit   bool
	CanDelete bool
	// RowActions renders additional per row actions, e.g. "Verify"
	RowActions func(E) []Action
}

type Action struct {
	Label  string
	URL    string
	Method string
}

type TableInput[E any] struct {
	Page    shared.Paged[E]
	Loading bool
	Err     error
	Search  string
	// BasePath and Query are used to build the links of the table
	BasePath string
	Query    url.Values
}

type TableState string

const (
	TableLoading TableState = "loading"
	TableError   TableState = "error"
	TableEmpty   TableState = "empty"
	TableRows    TableState = "rows"
)

type RowView struct {
	ID        string
	Cells     []Cell
	EditURL   string
	DeleteURL string
	Actions   []Action
}

type PaginationView struct {
	Page        int
	Pages       int
	Total       int64
	HasPrevious bool
	HasNext     bool
	PreviousURL string
	NextURL     string
}

type TableView struct {
	State      TableState
	Message    string
	Headers    []string
	Rows       []RowView
	HasActions bool

	SearchEnabled     bool
	SearchPlaceholder string
	Search            string
	AddLabel          string
	AddURL            string

	Pagination PaginationView
}

func (t Table[E]) Render(in TableInput[E]) TableView {
	view := TableView{
		HasActions:        t.CanEdit || t.CanDelete || t.RowActions != nil,
		SearchEnabled:     t.SearchPlaceholder != "",
		SearchPlaceholder: t.SearchPlaceholder,
		Search:            in.Search,
		AddLabel:          t.AddLabel,
	}
	for _, c := range t.Columns {
		view.Headers = append(view.Headers, c.Header)
	}
	if t.AddLabel != "" {
		view.AddURL = link(in.BasePath, in.Query, "dialog", "create")
	}

	switch {
	case in.Loading:
		view.State = TableLoading
		view.Message = LoadingMessage
		return view
	case in.Err != nil:
		// previous rows stay visible below the error
		view.State = TableError
		view.Message = in.Err.Error()
	case len(in.Page.Data) == 0:
		view.State = TableEmpty
		view.Message = EmptyMessage
	default:
		view.State = TableRows
	}

	for _, row := range in.Page.Data {
		view.Rows = append(view.Rows, t.renderRow(row, in))
	}
	view.Pagination = pagination(in)
	return view
}

func (t Table[E]) renderRow(row E, in TableInput[E]) RowView {
	var fields map[string]any
	r := RowView{}
	if t.RowID != nil {
		r.ID = t.RowID(row)
	}

	for _, c := range t.Columns {
		if c.Cell != nil {
			r.Cells = append(r.Cells, c.Cell(row))
			continue
		}
		if fields == nil {
			fields = Fields(row)
		}
		r.Cells = append(r.Cells, Cell{Text: FormatValue(fields[c.AccessorKey])})
	}

	if t.CanEdit {
		r.EditURL = link(in.BasePath, in.Query, "dialog", "edit", "id", r.ID)
	}
	if t.CanDelete {
		r.DeleteURL = link(in.BasePath, in.Query, "dialog", "delete", "id", r.ID)
	}
	if t.RowActions != nil {
		r.Actions = t.RowActions(row)
	}
	return r
}

func pagination[E any](in TableInput[E]) PaginationView {
	p := PaginationView{
		Page:        in.Page.Page,
		Pages:       in.Page.Pages(),
		Total:       in.Page.Total,
		HasPrevious: in.Page.HasPrevious(),
		HasNext:     in.Page.HasNext(),
	}
	// disabled controls get no link
	if p.HasPrevious {
		p.PreviousURL = link(in.BasePath, in.Query, "page", strconv.Itoa(p.Page-1))
	}
	if p.HasNext {
		p.NextURL = link(in.BasePath, in.Query, "page", strconv.Itoa(p.Page+1))
	}
	return p
}

// Fields returns the json fields of an entity.
func Fields(entity any) map[string]any {
	fields := map[string]any{}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "json",
		Result:  &fields,
	})
	if err != nil {
		return fields
	}
	_ = decoder.Decode(entity)
	return fields
}

func FormatValue(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case bool:
		if v {
			return "Yes"
		}
		return "No"
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	}
	return fmt.Sprint(v)
}

// link returns basePath with the query replaced by the given key value pairs.
// The page parameter is kept.
func link(basePath string, query url.Values, kv ...string) string {
	q := url.Values{}
	for k, v := range query {
		if k == "dialog" || k == "id" {
			continue
		}
		q[k] = v
	}
	for i := 0; i+1 < len(kv); i += 2 {
		q.Set(kv[i], kv[i+1])
	}
	if len(q) == 0 {
		return basePath
	}
	return basePath + "?" + q.Encode()
}
