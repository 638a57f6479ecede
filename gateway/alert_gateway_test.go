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

package gateway

import (
	"context"
	"testing"
	"time"

	"github.com/l3montree-dev/supplyguard/database/databasetest"
	"github.com/l3montree-dev/supplyguard/database/repositories"
	"github.com/l3montree-dev/supplyguard/dtos"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlertGateway(t *testing.T) {
	ctx := context.Background()
	g := NewAlertGateway(repositories.NewAlertRepository(databasetest.NewSQLiteDB(t)))

	older, err := g.Create(ctx, dtos.AlertDTO{
		Title:     "Supplier certification expired",
		Timestamp: time.Date(2023, 6, 14, 9, 0, 0, 0, time.UTC),
		Severity:  "high",
		Source:    "system",
		Type:      "compliance",
		Details:   map[string]any{"supplier": "Acme"},
	})
	require.NoError(t, err)
	assert.Equal(t, dtos.AlertStatusNew, older.Status)
	assert.NotEmpty(t, older.Code)
	assert.Equal(t, "Acme", older.Details["supplier"])

	newer, err := g.Create(ctx, dtos.AlertDTO{
		Title:     "Unusual shipping delay",
		Timestamp: time.Date(2023, 6, 15, 9, 0, 0, 0, time.UTC),
		Severity:  "medium",
		Source:    "ai",
		Type:      "risk",
	})
	require.NoError(t, err)

	all, err := g.FetchAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, newer.ID, all[0].ID)

	acknowledged, err := g.Acknowledge(ctx, older.ID)
	require.NoError(t, err)
	assert.Equal(t, dtos.AlertStatusAcknowledged, acknowledged.Status)
	assert.Equal(t, older.Title, acknowledged.Title)

	resolved, err := g.Resolve(ctx, newer.ID)
	require.NoError(t, err)
	assert.Equal(t, dtos.AlertStatusResolved, resolved.Status)

	counts, err := g.CountByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"new": 0, "acknowledged": 1, "resolved": 1}, counts)
}
