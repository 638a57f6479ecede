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

package shared

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestParsePageInfo(t *testing.T) {
	cases := []struct {
		page, pageSize string
		expected       PageInfo
	}{
		{"", "", PageInfo{Page: 1, PageSize: 10}},
		{"3", "25", PageInfo{Page: 3, PageSize: 25}},
		{"-1", "0", PageInfo{Page: 1, PageSize: 10}},
		{"abc", "1000", PageInfo{Page: 1, PageSize: 100}},
	}
	for _, c := range cases {
		assert.Equal(t, c.expected, ParsePageInfo(c.page, c.pageSize), "page=%q pageSize=%q", c.page, c.pageSize)
	}
}

func TestGetPageInfo(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/suppliers?page=2&pageSize=5&search=%20eco%20", nil)
	ctx := echo.New().NewContext(req, httptest.NewRecorder())

	assert.Equal(t, PageInfo{Page: 2, PageSize: 5}, GetPageInfo(ctx))
	assert.Equal(t, "eco", GetSearch(ctx))
}

func TestPaged(t *testing.T) {
	all := []int{1, 2, 3, 4, 5}

	t.Run("should slice the requested page", func(t *testing.T) {
		p := PageOf(all, PageInfo{Page: 2, PageSize: 2})
		assert.Equal(t, []int{3, 4}, p.Data)
		assert.Equal(t, int64(5), p.Total)
		assert.Equal(t, 3, p.Pages())
		assert.True(t, p.HasPrevious())
		assert.True(t, p.HasNext())
	})

	t.Run("should return an empty page past the end", func(t *testing.T) {
		p := PageOf(all, PageInfo{Page: 9, PageSize: 2})
		assert.Empty(t, p.Data)
		assert.False(t, p.HasNext())
	})

	t.Run("should report a single page for an empty list", func(t *testing.T) {
		p := PageOf([]int{}, PageInfo{Page: 1, PageSize: 10})
		assert.Equal(t, 1, p.Pages())
		assert.False(t, p.HasPrevious())
	})

	t.Run("should fall back to the first page of ten for a zero page info", func(t *testing.T) {
		p := PageOf(all, PageInfo{})
		assert.Len(t, p.Data, 5)
		assert.Equal(t, 1, p.Page)
	})

	t.Run("should keep the paging information when mapping", func(t *testing.T) {
		p := MapPaged(PageOf(all, PageInfo{Page: 1, PageSize: 2}), func(i int) string { return string(rune('a' + i - 1)) })
		assert.Equal(t, []string{"a", "b"}, p.Data)
		assert.Equal(t, int64(5), p.Total)
	})
}

type testSession struct{ userID, role string }

func (s testSession) GetUserID() string { return s.userID }
func (s testSession) GetRole() string   { return s.role }

func TestSession(t *testing.T) {
	ctx := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	assert.Empty(t, GetUserID(ctx))
	assert.Empty(t, GetRole(ctx))

	SetSession(ctx, testSession{userID: "user-1", role: "Viewer"})
	assert.Equal(t, "user-1", GetUserID(ctx))
	assert.Equal(t, "Viewer", GetRole(ctx))
}
