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

	"github.com/google/uuid"
	"github.com/l3montree-dev/supplyguard/dtos"
	"github.com/l3montree-dev/supplyguard/pages"
	"github.com/l3montree-dev/supplyguard/presentation"
	"github.com/l3montree-dev/supplyguard/shared"
	"github.com/l3montree-dev/supplyguard/synchronization"
)

type AlertController struct {
	*crudController[dtos.AlertDTO, dtos.AlertPatchRequest, *pages.ListView]
	hook *synchronization.AlertHook
}

func NewAlertController(hook *synchronization.AlertHook, inbox *synchronization.Inbox) *AlertController {
	return &AlertController{
		hook: hook,
		crudController: &crudController[dtos.AlertDTO, dtos.AlertPatchRequest, *pages.ListView]{
			pageController: pageController{inbox: inbox},
			track:          hook,
			basePath:       pages.AlertsPath,
			pagePath:       pages.AlertsPath,
			template:       "list",
			title:          "Alerts",
			createTitle:    "Add Alert",
			editTitle:      "Edit Alert",
			form:           func(context.Context) presentation.Form { return pages.AlertForm },
			page: func(ctx context.Context, state pages.State) *pages.ListView {
				view := pages.AlertsPage(state, hook.List(ctx))
				return &view
			},
		},
	}
}

func (c *AlertController) Acknowledge(ctx shared.Context) error {
	return c.runAction(ctx, pages.AlertsPath, func(reqCtx context.Context, id uuid.UUID) (synchronization.Notification, error) {
		_, notification, err := c.hook.Acknowledge(reqCtx, id)
		return notification, err
	})
}

func (c *AlertController) Resolve(ctx shared.Context) error {
	return c.runAction(ctx, pages.AlertsPath, func(reqCtx context.Context, id uuid.UUID) (synchronization.Notification, error) {
		_, notification, err := c.hook.Resolve(reqCtx, id)
		return notification, err
	})
}
