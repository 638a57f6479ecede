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

package presentation

import (
	"context"
	"errors"
	"net/url"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/l3montree-dev/supplyguard/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type supplier struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	RiskScore int       `json:"riskScore"`
	Verified  bool      `json:"verified"`
}

type supplierPatch struct {
	Name      *string `json:"name"`
	RiskScore *int    `json:"riskScore"`
	Verified  *bool   `json:"verified"`
}

func supplierTable() Table[supplier] {
	return Table[supplier]{
		Columns: []Column[supplier]{
			{Header: "Name", AccessorKey: "name"},
			{Header: "Verified", AccessorKey: "verified"},
			{Header: "Risk", AccessorKey: "riskScore", Cell: func(s supplier) Cell {
				return Cell{Text: "high", Variant: "danger"}
			}},
		},
		RowID:             func(s supplier) string { return s.ID.String() },
		SearchPlaceholder: "Search suppliers...",
		AddLabel:          "Add Supplier",
		CanEdit:           true,
		CanDelete:         true,
	}
}

func TestTable(t *testing.T) {
	table := supplierTable()

	t.Run("should render the loading placeholder", func(t *testing.T) {
		view := table.Render(TableInput[supplier]{Loading: true})
		assert.Equal(t, TableLoading, view.State)
		assert.Equal(t, "Loading...", view.Message)
		assert.Empty(t, view.Rows)
	})

	t.Run("should render the empty state", func(t *testing.T) {
		view := table.Render(TableInput[supplier]{Page: shared.PageOf([]supplier{}, shared.PageInfo{Page: 1, PageSize: 10})})
		assert.Equal(t, TableEmpty, view.State)
		assert.Equal(t, "No data available", view.Message)
	})

	t.Run("should render the fetch error inline and keep the rows", func(t *testing.T) {
		rows := []supplier{{ID: uuid.New(), Name: "Acme"}}
		view := table.Render(TableInput[supplier]{Page: shared.PageOf(rows, shared.PageInfo{Page: 1, PageSize: 10}), Err: errors.New("connection refused")})
		assert.Equal(t, TableError, view.State)
		assert.Equal(t, "connection refused", view.Message)
		assert.Len(t, view.Rows, 1)
	})

	t.Run("should compute the cells of every row", func(t *testing.T) {
		id := uuid.New()
		rows := []supplier{{ID: id, Name: "Acme", RiskScore: 85, Verified: true}}
		view := table.Render(TableInput[supplier]{
			Page:     shared.PageOf(rows, shared.PageInfo{Page: 1, PageSize: 10}),
			BasePath: "/suppliers",
			Query:    url.Values{"search": {"ac"}},
			Search:   "ac",
		})

		require.Len(t, view.Rows, 1)
		assert.Equal(t, TableRows, view.State)
		assert.Equal(t, []string{"Name", "Verified", "Risk"}, view.Headers)
		assert.Equal(t, []Cell{{Text: "Acme"}, {Text: "Yes"}, {Text: "high", Variant: "danger"}}, view.Rows[0].Cells)
		assert.Equal(t, "/suppliers?dialog=edit&id="+id.String()+"&search=ac", view.Rows[0].EditURL)
		assert.Equal(t, "/suppliers?dialog=delete&id="+id.String()+"&search=ac", view.Rows[0].DeleteURL)
		assert.Equal(t, "/suppliers?dialog=create&search=ac", view.AddURL)
		assert.True(t, view.HasActions)
		assert.Equal(t, "ac", view.Search)
	})

	t.Run("should not render an actions column without actions", func(t *testing.T) {
		readOnly := supplierTable()
		readOnly.CanEdit, readOnly.CanDelete = false, false
		view := readOnly.Render(TableInput[supplier]{})
		assert.False(t, view.HasActions)
	})

	t.Run("should only link pagination controls that lead somewhere", func(t *testing.T) {
		rows := make([]supplier, 25)
		first := table.Render(TableInput[supplier]{Page: shared.PageOf(rows, shared.PageInfo{Page: 1, PageSize: 10}), BasePath: "/suppliers"})
		assert.Equal(t, 3, first.Pagination.Pages)
		assert.Empty(t, first.Pagination.PreviousURL)
		assert.Equal(t, "/suppliers?page=2", first.Pagination.NextURL)

		last := table.Render(TableInput[supplier]{Page: shared.PageOf(rows, shared.PageInfo{Page: 3, PageSize: 10}), BasePath: "/suppliers"})
		assert.Len(t, last.Rows, 5)
		assert.Equal(t, "/suppliers?page=2", last.Pagination.PreviousURL)
		assert.Empty(t, last.Pagination.NextURL)
	})
}

func supplierForm() Form {
	return Form{Fields: []Field{
		{Name: "name", Label: "Name", Type: FieldText, Rule: "required,min=2"},
		{Name: "riskScore", Label: "Risk Score", Type: FieldNumber, Rule: "gte=0,lte=100"},
		{Name: "verified", Label: "Verified", Type: FieldSelect, Options: []Option{{Value: "true", Label: "Yes"}, {Value: "false", Label: "No"}}},
	}}
}

func TestFormValidate(t *testing.T) {
	form := supplierForm()

	errs := form.Validate(map[string]string{"name": "A", "riskScore": "101", "verified": "maybe"})
	assert.Equal(t, map[string]string{
		"name":      "Must be at least 2 characters",
		"riskScore": "Must be at most 100",
		"verified":  "Must be one of: Yes, No",
	}, errs)

	assert.Equal(t, "This field is required", form.Validate(map[string]string{})["name"])
	assert.Equal(t, "Must be a number", form.Validate(map[string]string{"name": "Acme", "riskScore": "ten"})["riskScore"])
	assert.Empty(t, form.Validate(map[string]string{"name": "Acme", "riskScore": "40", "verified": "false"}))

	custom := Field{Name: "email", Type: FieldEmail, Rule: "required,email", Message: "Please enter a valid email"}
	assert.Equal(t, "Please enter a valid email", custom.Validate("nope"))
}

func TestDecode(t *testing.T) {
	form := supplierForm()

	patch, err := Decode[supplierPatch](form.Fields, map[string]string{"name": " Acme ", "riskScore": "40", "verified": "true", "ignored": "x"})
	require.NoError(t, err)
	assert.Equal(t, "Acme", *patch.Name)
	assert.Equal(t, 40, *patch.RiskScore)
	assert.True(t, *patch.Verified)

	partial, err := Decode[supplierPatch](form.Fields, map[string]string{"name": "Acme"})
	require.NoError(t, err)
	assert.Nil(t, partial.RiskScore)
	assert.Nil(t, partial.Verified)

	type connection struct {
		SourceID uuid.UUID `json:"sourceId"`
	}
	id := uuid.New()
	c, err := Decode[connection]([]Field{{Name: "sourceId"}}, map[string]string{"sourceId": id.String()})
	require.NoError(t, err)
	assert.Equal(t, id, c.SourceID)
}

func TestHumanize(t *testing.T) {
	assert.Equal(t, "Data Flow", Humanize("data_flow"))
	assert.Equal(t, []Option{{Value: "supply_chain", Label: "Supply Chain"}}, OptionsOf([]string{"supply_chain"}))
}

func TestDialog(t *testing.T) {
	ctx := context.Background()

	t.Run("should never submit while a rule fails", func(t *testing.T) {
		d := NewDialog(supplierForm())
		d.Open("Add Supplier", nil)
		d.Set("name", "A")

		var called atomic.Bool
		err := d.Submit(ctx, func(ctx context.Context, values map[string]string) error {
			called.Store(true)
			return nil
		})
		assert.ErrorIs(t, err, ErrInvalidForm)
		assert.False(t, called.Load())
		assert.Equal(t, DialogOpen, d.Status)
		assert.Equal(t, "Must be at least 2 characters", d.Errors["name"])
		assert.True(t, d.SubmitDisabled())
	})

	t.Run("should reset the fields on open", func(t *testing.T) {
		d := NewDialog(supplierForm())
		d.Open("Edit Supplier", map[string]string{"name": "Acme", "riskScore": "40"})
		d.Set("name", "Changed")
		d.Cancel()
		assert.Equal(t, DialogClosed, d.Status)
		assert.Nil(t, d.Values)

		d.Open("Edit Supplier", map[string]string{"name": "Acme", "riskScore": "40"})
		assert.Equal(t, "Acme", d.Values["name"])
		assert.Equal(t, "", d.Values["verified"])
	})

	t.Run("should close on success", func(t *testing.T) {
		d := NewDialog(supplierForm())
		d.Open("Add Supplier", map[string]string{"name": "Acme"})
		var got map[string]string
		require.NoError(t, d.Submit(ctx, func(ctx context.Context, values map[string]string) error {
			got = values
			return nil
		}))
		assert.Equal(t, "Acme", got["name"])
		assert.Equal(t, DialogClosed, d.Status)
	})

	t.Run("should stay open with the error on failure", func(t *testing.T) {
		d := NewDialog(supplierForm())
		d.Open("Add Supplier", map[string]string{"name": "Acme"})
		err := d.Submit(ctx, func(ctx context.Context, values map[string]string) error {
			return shared.NewValidationError("name", "already taken")
		})
		assert.Error(t, err)
		assert.Equal(t, DialogOpen, d.Status)
		assert.Equal(t, "already taken", d.Errors["name"])
		assert.Equal(t, "Acme", d.Values["name"])
	})

	t.Run("should refuse a second submission while pending", func(t *testing.T) {
		d := NewDialog(supplierForm())
		d.Open("Add Supplier", map[string]string{"name": "Acme"})

		entered := make(chan struct{})
		release := make(chan struct{})
		done := make(chan error)
		go func() {
			done <- d.Submit(ctx, func(ctx context.Context, values map[string]string) error {
				close(entered)
				<-release
				return nil
			})
		}()

		<-entered
		assert.True(t, d.SubmitDisabled())
		assert.ErrorIs(t, d.Submit(ctx, func(ctx context.Context, values map[string]string) error {
			t.Fatal("must not be called")
			return nil
		}), ErrSubmitPending)

		close(release)
		assert.NoError(t, <-done)
	})

	t.Run("should not submit a closed dialog", func(t *testing.T) {
		d := NewDialog(supplierForm())
		assert.ErrorIs(t, d.Submit(ctx, nil), ErrDialogClosed)
	})
}

func TestConfirmDialog(t *testing.T) {
	ctx := context.Background()
	var deleted []string
	deleteFn := func(ctx context.Context, target string) error {
		deleted = append(deleted, target)
		return nil
	}

	var c ConfirmDialog
	assert.ErrorIs(t, c.Confirm(ctx, true, deleteFn), ErrDialogClosed)

	c.Open("Delete Supplier", "This cannot be undone.", "42")
	require.NoError(t, c.Confirm(ctx, false, deleteFn))
	assert.Empty(t, deleted)
	assert.Equal(t, DialogClosed, c.Status)

	c.Open("Delete Supplier", "This cannot be undone.", "42")
	require.NoError(t, c.Confirm(ctx, true, deleteFn))
	assert.Equal(t, []string{"42"}, deleted)
}
