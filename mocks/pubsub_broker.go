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

	"github.com/l3montree-dev/supplyguard/shared"
	"github.com/stretchr/testify/mock"
)

type PubSubBroker struct {
	mock.Mock
}

func (_m *PubSubBroker) Publish(ctx context.Context, message shared.PubSubMessage) error {
	ret := _m.Called(ctx, message)
	return ret.Error(0)
}

func (_m *PubSubBroker) Subscribe(topic shared.PubSubChannel) (<-chan map[string]any, error) {
	ret := _m.Called(topic)
	var ch <-chan map[string]any
	if rf, ok := ret.Get(0).(func(shared.PubSubChannel) <-chan map[string]any); ok {
		ch = rf(topic)
	} else if ret.Get(0) != nil {
		ch = ret.Get(0).(<-chan map[string]any)
	}
	return ch, ret.Error(1)
}

// NewPubSubBroker creates a new instance of PubSubBroker. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewPubSubBroker(t interface {
	mock.TestingT
	Cleanup(func())
}) *PubSubBroker {
	m := &PubSubBroker{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
