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

package commands

import (
	"bytes"
	"context"
	"testing"

	"github.com/l3montree-dev/supplyguard/database/databasetest"
	"github.com/l3montree-dev/supplyguard/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintListing(t *testing.T) {
	ctx := context.Background()
	g := newGateways(databasetest.NewSQLiteDB(t))
	_, err := g.seed(ctx, defaultSeed(t), func() {})
	require.NoError(t, err)

	t.Run("should render every entity", func(t *testing.T) {
		for _, name := range listingNames() {
			var out bytes.Buffer
			require.NoError(t, printListing(ctx, &out, g, name, shared.ParsePageInfo("1", "5")), name)
			assert.Contains(t, out.String(), "page 1 of", name)
		}
	})

	t.Run("should page the suppliers", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, printListing(ctx, &out, g, "suppliers", shared.ParsePageInfo("2", "2")))
		assert.Contains(t, out.String(), "page 2 of 3, 5 total")
		// ordered by name
		assert.Contains(t, out.String(), "Mekong Textiles")
		assert.NotContains(t, out.String(), "EcoMaterials Inc.")
	})

	t.Run("should reject unknown entities", func(t *testing.T) {
		err := printListing(ctx, &bytes.Buffer{}, g, "customers", shared.ParsePageInfo("1", "5"))
		assert.ErrorContains(t, err, `unknown entity "customers"`)
	})
}
