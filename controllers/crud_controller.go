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

	"github.com/google/uuid"
	"github.com/l3montree-dev/supplyguard/pages"
	"github.com/l3montree-dev/supplyguard/presentation"
	"github.com/l3montree-dev/supplyguard/shared"
	"github.com/l3montree-dev/supplyguard/synchronization"
)

// listTrack is what a crud page needs from a synchronization hook.
type listTrack[E any, P any] interface {
	List(ctx context.Context) synchronization.QueryState[[]E]
	Create(ctx context.Context, entity E) (E, synchronization.Notification, error)
	Update(ctx context.Context, id uuid.UUID, patch P) (E, synchronization.Notification, error)
	Remove(ctx context.Context, id uuid.UUID) (synchronization.Notification, error)
}

// dialogView is a page view which can show a failed dialog.
type dialogView interface {
	ShowDialog(d *pages.DialogView)
}

// crudController serves the create, update and delete forms of one entity
// shown on a page.
type crudController[E any, P any, V dialogView] struct {
	pageController
	track listTrack[E, P]

	// basePath is the path the forms post to, pagePath the page which shows them
	basePath string
	pagePath string
	template string
	title    string

	createTitle string
	editTitle   string
	form        func(ctx context.Context) presentation.Form
	page        func(ctx context.Context, state pages.State) V
}

func (c *crudController[E, P, V]) Page(ctx shared.Context) error {
	view := c.page(ctx.Request().Context(), stateOf(ctx))
	return c.render(ctx, http.StatusOK, c.template, c.title, view)
}

func (c *crudController[E, P, V]) Create(ctx shared.Context) error {
	form := c.form(ctx.Request().Context())
	d := openDialog(ctx, form, c.createTitle)

	err := d.Submit(ctx.Request().Context(), func(reqCtx context.Context, values map[string]string) error {
		entity, err := presentation.Decode[E](form.Fields, values)
		if err != nil {
			return err
		}
		_, notification, err := c.track.Create(reqCtx, entity)
		c.notify(ctx, notification)
		return err
	})
	if err != nil {
		return c.failed(ctx, err, d, c.basePath, pages.DialogCreate, "")
	}
	return redirect(ctx, c.pagePath)
}

func (c *crudController[E, P, V]) Update(ctx shared.Context) error {
	id, err := parseID(ctx)
	if err != nil {
		return err
	}
	form := c.form(ctx.Request().Context())
	d := openDialog(ctx, form, c.editTitle)

	err = d.Submit(ctx.Request().Context(), func(reqCtx context.Context, values map[string]string) error {
		patch, err := presentation.Decode[P](form.Fields, values)
		if err != nil {
			return err
		}
		_, notification, err := c.track.Update(reqCtx, id, patch)
		c.notify(ctx, notification)
		return err
	})
	if err != nil {
		return c.failed(ctx, err, d, c.basePath+"/"+id.String(), pages.DialogEdit, id.String())
	}
	return redirect(ctx, c.pagePath)
}

// Delete only fires with confirm=true. Without it the confirmation is closed.
func (c *crudController[E, P, V]) Delete(ctx shared.Context) error {
	id, err := parseID(ctx)
	if err != nil {
		return err
	}

	var confirm presentation.ConfirmDialog
	confirm.Open("", "", id.String())
	// the outcome reaches the user as notification
	_ = confirm.Confirm(ctx.Request().Context(), ctx.FormValue("confirm") == "true", func(reqCtx context.Context, _ string) error {
		notification, err := c.track.Remove(reqCtx, id)
		c.notify(ctx, notification)
		return err
	})
	return redirect(ctx, c.pagePath)
}

// failed renders the page again with the dialog showing the submitted values
// and the errors.
func (c *crudController[E, P, V]) failed(ctx shared.Context, err error, d *presentation.Dialog, action, dialog, id string) error {
	state := stateOf(ctx)
	state.Dialog = dialog
	state.ID = id
	view := c.page(ctx.Request().Context(), state)
	view.ShowDialog(pages.NewDialogView(d, action, pages.CloseURL(c.pagePath, state.Query)))
	return c.render(ctx, submitStatus(err), c.template, c.title, view)
}
