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
	"strconv"
	"strings"

	"gorm.io/gorm"
)

type PageInfo struct {
	PageSize int `json:"pageSize"`
	Page     int `json:"page"`
}

func (p PageInfo) ApplyOnDB(db *gorm.DB) *gorm.DB {
	return db.Offset(p.Offset()).Limit(p.PageSize)
}

func (p PageInfo) Offset() int {
	return (p.Page - 1) * p.PageSize
}

type Paged[T any] struct {
	PageInfo
	Total int64 `json:"total"`
	Data  []T   `json:"data"`
}

func (p Paged[T]) HasPrevious() bool {
	return p.Page > 1
}

func (p Paged[T]) HasNext() bool {
	return int64(p.Page*p.PageSize) < p.Total
}

// Pages returns the number of pages, at least one.
func (p Paged[T]) Pages() int {
	if p.PageSize <= 0 || p.Total == 0 {
		return 1
	}
	return int((p.Total + int64(p.PageSize) - 1) / int64(p.PageSize))
}

func NewPaged[T any](pageInfo PageInfo, total int64, data []T) Paged[T] {
	return Paged[T]{
		PageInfo: pageInfo,
		Total:    total,
		Data:     data,
	}
}

// MapPaged converts the data of a page while keeping the paging information.
func MapPaged[T, U any](p Paged[T], f func(T) U) Paged[U] {
	data := make([]U, len(p.Data))
	for i, d := range p.Data {
		data[i] = f(d)
	}
	return NewPaged(p.PageInfo, p.Total, data)
}

// PageOf slices an in memory list. Pages past the end are empty.
func PageOf[T any](all []T, pageInfo PageInfo) Paged[T] {
	pageInfo = pageInfo.normalize()
	start := min(pageInfo.Offset(), len(all))
	end := min(start+pageInfo.PageSize, len(all))
	return NewPaged(pageInfo, int64(len(all)), all[start:end])
}

func ParsePageInfo(page, pageSize string) PageInfo {
	p, _ := strconv.Atoi(page)
	size, _ := strconv.Atoi(pageSize)
	return PageInfo{Page: p, PageSize: size}.normalize()
}

// normalize replaces out of range values with the first page of ten.
func (p PageInfo) normalize() PageInfo {
	if p.Page <= 0 {
		p.Page = 1
	}
	switch {
	case p.PageSize > 100:
		p.PageSize = 100
	case p.PageSize <= 0:
		p.PageSize = 10
	}
	return p
}

func GetPageInfo(ctx Context) PageInfo {
	return ParsePageInfo(ctx.QueryParam("page"), ctx.QueryParam("pageSize"))
}

func GetSearch(ctx Context) string {
	return strings.TrimSpace(ctx.QueryParam("search"))
}

type FilterOperator string

const (
	FilterEquals    FilterOperator = "eq"
	FilterNotEquals FilterOperator = "neq"
	FilterIn        FilterOperator = "in"
	FilterContains  FilterOperator = "contains" // case insensitive
)

// Filter is a single column predicate of a select. All filters of one select are AND-ed.
type Filter struct {
	Column   string
	Operator FilterOperator
	Value    any
}

func Eq(column string, value any) Filter {
	return Filter{Column: column, Operator: FilterEquals, Value: value}
}

type Order struct {
	Column     string
	Descending bool
}

func Asc(column string) *Order {
	return &Order{Column: column}
}

func Desc(column string) *Order {
	return &Order{Column: column, Descending: true}
}

type AuthSession interface {
	GetUserID() string
	// GetRole is the role of the user profile
	GetRole() string
}

func GetSession(ctx Context) AuthSession {
	s, _ := ctx.Get("session").(AuthSession)
	return s
}

func SetSession(ctx Context, session AuthSession) {
	ctx.Set("session", session)
}

// GetUserID returns the id of the session user or an empty string.
func GetUserID(ctx Context) string {
	s := GetSession(ctx)
	if s == nil {
		return ""
	}
	return s.GetUserID()
}

// GetRole returns the role of the session user or an empty string.
func GetRole(ctx Context) string {
	s := GetSession(ctx)
	if s == nil {
		return ""
	}
	return s.GetRole()
}
