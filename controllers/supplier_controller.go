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

package controllers

import (
	"context"

	"github.com/l3montree-dev/supplyguard/dtos"
	"github.com/l3montree-dev/supplyguard/pages"
	"github.com/l3montree-dev/supplyguard/presentation"
	"github.com/l3montree-dev/supplyguard/synchronization"
)

type SupplierController struct {
	*crudController[dtos.SupplierDTO, dtos.SupplierPatchRequest, *pages.ListView]
}

func NewSupplierController(hook *synchronization.SupplierHook, inbox *synchronization.Inbox) *SupplierController {
	return &SupplierController{crudController: &crudController[dtos.SupplierDTO, dtos.SupplierPatchRequest, *pages.ListView]{
		pageController: pageController{inbox: inbox},
		track:          hook,
		basePath:       pages.SuppliersPath,
		pagePath:       pages.SuppliersPath,
		template:       "list",
		title:          "Suppliers",
		createTitle:    "Add Supplier",
		editTitle:      "Edit Supplier",
		form:           func(context.Context) presentation.Form { return pages.SupplierForm },
		page: func(ctx context.Context, state pages.State) *pages.ListView {
			view := pages.SupplierPage(state, hook.List(ctx))
			return &view
		},
	}}
}
