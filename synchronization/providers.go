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

package synchronization

import (
	"context"

	"github.com/l3montree-dev/supplyguard/shared"
	"github.com/l3montree-dev/supplyguard/utils"
	"go.uber.org/fx"
)

type hooks struct {
	fx.In

	Suppliers   *SupplierHook
	RiskFactors *RiskFactorHook
	EsgReports  *EsgReportHook
	Nodes       *SystemNodeHook
	Connections *SystemConnectionHook
	Alerts      *AlertHook
	Settings    *SettingsHook
	Profiles    *ProfileHook
}

func newConfig(notifier *Notifier, broker shared.PubSubBroker, synchronizer utils.FireAndForgetSynchronizer) Config {
	return Config{
		Notifier:     notifier,
		Broker:       broker,
		Synchronizer: synchronizer,
		Retry:        DefaultRetryPolicy,
	}
}

func newRegistry(lc fx.Lifecycle, broker shared.PubSubBroker, h hooks) *Registry {
	registry := NewRegistry(h.Suppliers, h.RiskFactors, h.EsgReports, h.Nodes, h.Connections, h.Alerts, h.Settings, h.Profiles)

	ctx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			return registry.Listen(ctx, broker)
		},
		OnStop: func(context.Context) error {
			cancel()
			return nil
		},
	})
	return registry
}

var Module = fx.Options(
	fx.Provide(fx.Annotate(utils.NewFireAndForgetSynchronizer, fx.As(new(utils.FireAndForgetSynchronizer)))),
	fx.Provide(NewNotifier),
	fx.Provide(NewInbox),
	fx.Provide(newConfig),
	fx.Provide(NewSupplierHook),
	fx.Provide(NewRiskFactorHook),
	fx.Provide(NewEsgReportHook),
	fx.Provide(NewSystemNodeHook),
	fx.Provide(NewSystemConnectionHook),
	fx.Provide(NewAlertHook),
	fx.Provide(NewSettingsHook),
	fx.Provide(NewProfileHook),
	fx.Provide(newRegistry),
)
