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
	"net/http"

	"github.com/l3montree-dev/supplyguard/accesscontrol"
	"github.com/l3montree-dev/supplyguard/dtos"
	"github.com/l3montree-dev/supplyguard/pages"
	"github.com/l3montree-dev/supplyguard/presentation"
	"github.com/l3montree-dev/supplyguard/shared"
	"github.com/l3montree-dev/supplyguard/synchronization"
	"github.com/labstack/echo/v4"
)

type SettingsController struct {
	pageController
	settings *synchronization.SettingsHook
	profiles *synchronization.ProfileHook
	rbac     *accesscontrol.RBAC
}

func NewSettingsController(settings *synchronization.SettingsHook, profiles *synchronization.ProfileHook, rbac *accesscontrol.RBAC, inbox *synchronization.Inbox) *SettingsController {
	return &SettingsController{pageController: pageController{inbox: inbox}, settings: settings, profiles: profiles, rbac: rbac}
}

func (c *SettingsController) view(ctx shared.Context) pages.SettingsView {
	userID := shared.GetUserID(ctx)
	return pages.SettingsPage(c.settings.Get(ctx.Request().Context(), userID), c.profiles.Get(ctx.Request().Context(), userID))
}

func (c *SettingsController) Page(ctx shared.Context) error {
	return c.render(ctx, http.StatusOK, "settings", "Settings", c.view(ctx))
}

func (c *SettingsController) SaveSettings(ctx shared.Context) error {
	userID := shared.GetUserID(ctx)
	d := openDialog(ctx, pages.SettingsForm, "Preferences")
	err := d.Submit(ctx.Request().Context(), func(reqCtx context.Context, values map[string]string) error {
		patch, err := presentation.Decode[dtos.UserSettingsPatchRequest](pages.SettingsForm.Fields, values)
		if err != nil {
			return err
		}
		_, notification, err := c.settings.Save(reqCtx, userID, patch)
		c.notify(ctx, notification)
		return err
	})
	if err != nil {
		view := c.view(ctx)
		view.Settings = pages.NewDialogView(d, pages.SettingsPath, pages.SettingsPath)
		return c.render(ctx, submitStatus(err), "settings", "Settings", view)
	}
	return redirect(ctx, pages.SettingsPath)
}

func (c *SettingsController) SaveProfile(ctx shared.Context) error {
	userID := shared.GetUserID(ctx)
	d := openDialog(ctx, pages.ProfileForm, "Profile")
	err := d.Submit(ctx.Request().Context(), func(reqCtx context.Context, values map[string]string) error {
		patch, err := presentation.Decode[dtos.UserProfilePatchRequest](pages.ProfileForm.Fields, values)
		if err != nil {
			return err
		}
		if err := c.guardRole(ctx, &patch); err != nil {
			return err
		}
		_, notification, err := c.profiles.Save(reqCtx, userID, patch)
		c.notify(ctx, notification)
		return err
	})
	if err != nil {
		view := c.view(ctx)
		view.Profile = pages.NewDialogView(d, pages.ProfilePath, pages.SettingsPath)
		return c.render(ctx, submitStatus(err), "settings", "Settings", view)
	}
	return redirect(ctx, pages.SettingsPath)
}

// guardRole drops an unchanged role from the patch. Changing the role needs
// the role permission.
func (c *SettingsController) guardRole(ctx shared.Context, patch *dtos.UserProfilePatchRequest) error {
	if patch.Role == nil {
		return nil
	}
	if *patch.Role == "" || *patch.Role == shared.GetRole(ctx) {
		patch.Role = nil
		return nil
	}
	allowed, err := c.rbac.IsAllowed(shared.GetRole(ctx), accesscontrol.ObjectRole, accesscontrol.ActionWrite)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "could not determine if the user may change roles").WithInternal(err)
	}
	if !allowed {
		return shared.NewValidationError("role", "Only administrators can change roles")
	}
	return nil
}
