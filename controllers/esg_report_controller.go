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
	"github.com/l3montree-dev/supplyguard/dtos"
	"github.com/l3montree-dev/supplyguard/pages"
	"github.com/l3montree-dev/supplyguard/presentation"
	"github.com/l3montree-dev/supplyguard/shared"
	"github.com/l3montree-dev/supplyguard/synchronization"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// MaxDocumentSize limits uploaded report documents.
const MaxDocumentSize = 20 << 20

// DocumentBodyLimit rejects upload requests before the multipart form is parsed.
// The extra MiB covers the multipart framing around the document.
var DocumentBodyLimit = middleware.BodyLimit("21M")

type EsgReportController struct {
	*crudController[dtos.EsgReportDTO, dtos.EsgReportPatchRequest, *pages.EsgReportsView]
	hook *synchronization.EsgReportHook
}

func NewEsgReportController(hook *synchronization.EsgReportHook, inbox *synchronization.Inbox) *EsgReportController {
	return &EsgReportController{
		hook: hook,
		crudController: &crudController[dtos.EsgReportDTO, dtos.EsgReportPatchRequest, *pages.EsgReportsView]{
			pageController: pageController{inbox: inbox},
			track:          hook,
			basePath:       pages.EsgReportsPath,
			pagePath:       pages.EsgReportsPath,
			template:       "esg_reports",
			title:          "ESG Reports",
			createTitle:    "Add Report",
			editTitle:      "Edit Report",
			form:           func(context.Context) presentation.Form { return pages.EsgReportForm },
			page: func(ctx context.Context, state pages.State) *pages.EsgReportsView {
				view := pages.EsgReportsPage(state, hook.List(ctx))
				return &view
			},
		},
	}
}

func (c *EsgReportController) Verify(ctx shared.Context) error {
	return c.runAction(ctx, pages.EsgReportsPath, func(reqCtx context.Context, id uuid.UUID) (synchronization.Notification, error) {
		_, notification, err := c.hook.Verify(reqCtx, id)
		return notification, err
	})
}

// Upload stores the "document" file of a multipart form and links it to the report.
func (c *EsgReportController) Upload(ctx shared.Context) error {
	id, err := parseID(ctx)
	if err != nil {
		return err
	}

	file, err := ctx.FormFile("document")
	if err != nil {
		var tooLarge *echo.HTTPError
		if errors.As(err, &tooLarge) {
			return tooLarge
		}
		return echo.NewHTTPError(http.StatusBadRequest, "missing document").WithInternal(err)
	}
	if file.Size > MaxDocumentSize {
		return echo.NewHTTPError(http.StatusRequestEntityTooLarge, "document exceeds 20 MiB")
	}

	src, err := file.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "could not read document").WithInternal(err)
	}
	defer src.Close()

	_, notification, _ := c.hook.AttachDocument(ctx.Request().Context(), id, file.Filename, file.Header.Get(echo.HeaderContentType), src)
	c.notify(ctx, notification)
	return redirect(ctx, pages.EsgReportsPath)
}
