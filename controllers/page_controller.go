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
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/l3montree-dev/supplyguard/middlewares"
	"github.com/l3montree-dev/supplyguard/pages"
	"github.com/l3montree-dev/supplyguard/presentation"
	"github.com/l3montree-dev/supplyguard/shared"
	"github.com/l3montree-dev/supplyguard/synchronization"
	"github.com/l3montree-dev/supplyguard/templates"
	"github.com/labstack/echo/v4"
)

// pageController renders templates and hands notifications to the session
// user. Every page controller embeds it.
type pageController struct {
	inbox *synchronization.Inbox
}

func (c pageController) render(ctx shared.Context, code int, template, title string, view any) error {
	return ctx.Render(code, template, templates.Page{
		Title:         title,
		Active:        ctx.Request().URL.Path,
		UserID:        shared.GetUserID(ctx),
		Role:          shared.GetRole(ctx),
		Notifications: c.inbox.Drain(shared.GetUserID(ctx)),
		View:          view,
	})
}

func (c pageController) notify(ctx shared.Context, notification synchronization.Notification) {
	if notification.Kind == "" {
		return
	}
	c.inbox.Push(shared.GetUserID(ctx), notification)
}

// redirect answers a form post. The browser follows with a GET.
func redirect(ctx shared.Context, url string) error {
	return ctx.Redirect(http.StatusSeeOther, url)
}

func parseID(ctx shared.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusNotFound, "unknown id").WithInternal(err)
	}
	return id, nil
}

// openDialog opens a dialog with the submitted form values.
func openDialog(ctx shared.Context, form presentation.Form, title string) *presentation.Dialog {
	d := presentation.NewDialog(form)
	d.Open(title, nil)
	for _, f := range form.Fields {
		d.Set(f.Name, ctx.FormValue(f.Name))
	}
	return d
}

// submitStatus is the status of a page re-rendered with a failed dialog.
func submitStatus(err error) int {
	if errors.Is(err, presentation.ErrInvalidForm) {
		return http.StatusUnprocessableEntity
	}
	return middlewares.ToHTTPError(err).Code
}

// action is a named mutation of a single row, e.g. verify or resolve.
type action func(ctx context.Context, id uuid.UUID) (synchronization.Notification, error)

// runAction runs the action for the id of the path and redirects back to the
// page. A failure is reported through the notification.
func (c pageController) runAction(ctx shared.Context, back string, fn action) error {
	id, err := parseID(ctx)
	if err != nil {
		return err
	}
	notification, _ := fn(ctx.Request().Context(), id)
	c.notify(ctx, notification)
	return redirect(ctx, back)
}

func stateOf(ctx shared.Context) pages.State {
	return pages.StateFromQuery(ctx.QueryParams())
}
