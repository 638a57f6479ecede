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

package accesscontrol

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/casbin/casbin/v3/persist"
	"github.com/l3montree-dev/supplyguard/shared"
)

// policyWatcher reloads the policy of every instance after one of them
// changed it. The reload callback is installed by casbin through
// SetUpdateCallback once the watcher is attached to an enforcer.
type policyWatcher struct {
	broker   shared.PubSubBroker
	callback atomic.Pointer[func(string)]
}

var _ persist.Watcher = &policyWatcher{}

func newPolicyWatcher(broker shared.PubSubBroker) (*policyWatcher, error) {
	changes, err := broker.Subscribe(shared.PolicyChangeChannel)
	if err != nil {
		return nil, fmt.Errorf("could not subscribe to %s: %w", shared.PolicyChangeChannel, err)
	}

	w := &policyWatcher{broker: broker}
	go func() {
		for range changes {
			if cb := w.callback.Load(); cb != nil {
				(*cb)("policy changed by another instance")
			}
		}
	}()
	return w, nil
}

func (w *policyWatcher) SetUpdateCallback(callback func(string)) error {
	w.callback.Store(&callback)
	return nil
}

// Update is called by the enforcer after every local policy change.
// A failed publish leaves the other instances on their old policy until their
// next restart, so it is logged but does not fail the local change.
func (w *policyWatcher) Update() error {
	if err := w.broker.Publish(context.Background(), shared.NewPolicyChangeMessage()); err != nil {
		slog.Warn("could not announce policy change", "err", err)
	}
	return nil
}

func (w *policyWatcher) Close() {
	w.callback.Store(nil)
}
