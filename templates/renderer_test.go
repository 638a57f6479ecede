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

package templates

import (
	"bytes"
	"testing"

	"github.com/l3montree-dev/supplyguard/pages"
	"github.com/l3montree-dev/supplyguard/presentation"
	"github.com/l3montree-dev/supplyguard/synchronization"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderer(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	t.Run("should render a list page with its dialog and notifications", func(t *testing.T) {
		var buf bytes.Buffer
		err := r.Render(&buf, "list", Page{
			Title:  "Suppliers",
			Active: "/suppliers",
			UserID: "jane",
			Notifications: []synchronization.Notification{
				{Kind: synchronization.NotificationSuccess, Title: "Success", Message: "Supplier created successfully"},
			},
			View: pages.ListView{
				Stats: []pages.StatCard{{Label: "Total Suppliers", Value: "1"}},
				Table: presentation.TableView{
					State:   presentation.TableRows,
					Headers: []string{"Name"},
					Rows:    []presentation.RowView{{ID: "1", Cells: []presentation.Cell{{Text: "Acme"}}}},
				},
				Dialog: &pages.DialogView{
					Title:       "Add Supplier",
					Action:      "/suppliers",
					SubmitLabel: "Save",
					Fields: []pages.FieldView{
						{Field: presentation.Field{Name: "name", Label: "Name", Type: presentation.FieldText}, Error: "This field is required"},
					},
				},
			},
		}, nil)
		require.NoError(t, err)

		html := buf.String()
		assert.Contains(t, html, "<title>Suppliers | SupplyGuard</title>")
		assert.Contains(t, html, "Supplier created successfully")
		assert.Contains(t, html, "Acme")
		assert.Contains(t, html, "This field is required")
		assert.Contains(t, html, `<a href="/suppliers" class="active">`)
	})

	t.Run("should render the error page from a map", func(t *testing.T) {
		var buf bytes.Buffer
		err := r.Render(&buf, "error", map[string]any{
			"Title":  "Not Found",
			"Active": "/suppliers/1",
			"View":   map[string]any{"Code": 404, "Message": "supplier not found"},
		}, nil)
		require.NoError(t, err)
		assert.Contains(t, buf.String(), "404: supplier not found")
	})

	t.Run("should fail for an unknown template", func(t *testing.T) {
		var buf bytes.Buffer
		assert.Error(t, r.Render(&buf, "unknown", Page{}, nil))
	})

	t.Run("should parse every page view", func(t *testing.T) {
		for _, name := range []string{"list", "risk_analysis", "esg_reports", "system_flow", "dashboard", "settings", "auth", "error"} {
			assert.Contains(t, r.templates, name)
		}
	})
}
