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

package mocks

import (
	"context"
	"io"

	"github.com/l3montree-dev/supplyguard/shared"
	"github.com/stretchr/testify/mock"
)

type DocumentStore struct {
	mock.Mock
}

func (_m *DocumentStore) Put(ctx context.Context, key string, contentType string, body io.Reader) (shared.DocumentInfo, error) {
	ret := _m.Called(ctx, key, contentType, body)
	return ret.Get(0).(shared.DocumentInfo), ret.Error(1)
}

func (_m *DocumentStore) Get(ctx context.Context, key string) (io.ReadCloser, shared.DocumentInfo, error) {
	ret := _m.Called(ctx, key)
	var body io.ReadCloser
	if ret.Get(0) != nil {
		body = ret.Get(0).(io.ReadCloser)
	}
	return body, ret.Get(1).(shared.DocumentInfo), ret.Error(2)
}

func (_m *DocumentStore) Delete(ctx context.Context, key string) error {
	return _m.Called(ctx, key).Error(0)
}

func (_m *DocumentStore) URL(ctx context.Context, key string) (string, error) {
	ret := _m.Called(ctx, key)
	return ret.String(0), ret.Error(1)
}

func (_m *DocumentStore) Driver() string {
	return _m.Called().String(0)
}

// NewDocumentStore creates a new instance of DocumentStore. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewDocumentStore(t interface {
	mock.TestingT
	Cleanup(func())
}) *DocumentStore {
	m := &DocumentStore{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
