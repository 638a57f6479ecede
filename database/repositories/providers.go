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

package repositories

import (
	"github.com/l3montree-dev/supplyguard/shared"
	"go.uber.org/fx"
)

// Module provides all repository constructors as their interfaces
var Module = fx.Options(
	fx.Provide(fx.Annotate(NewSupplierRepository, fx.As(new(shared.SupplierRepository)))),
	fx.Provide(fx.Annotate(NewRiskFactorRepository, fx.As(new(shared.RiskFactorRepository)))),
	fx.Provide(fx.Annotate(NewEsgReportRepository, fx.As(new(shared.EsgReportRepository)))),
	fx.Provide(fx.Annotate(NewSupplyChainNodeRepository, fx.As(new(shared.SupplyChainNodeRepository)))),
	fx.Provide(fx.Annotate(NewSupplyChainRouteRepository, fx.As(new(shared.SupplyChainRouteRepository)))),
	fx.Provide(fx.Annotate(NewUserSettingsRepository, fx.As(new(shared.UserSettingsRepository)))),
	fx.Provide(fx.Annotate(NewProfileRepository, fx.As(new(shared.ProfileRepository)))),
	fx.Provide(fx.Annotate(NewAlertRepository, fx.As(new(shared.AlertRepository)))),
)
