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
	"mime"
	"net/http"
	"path"
	"strconv"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/l3montree-dev/supplyguard/shared"
	"github.com/labstack/echo/v4"
)

// documentTypes keep their content type when served. Every other upload is
// sent as application/octet-stream.
var documentTypes = mapset.NewSet(
	"application/pdf",
	"text/csv",
	"text/plain",
	"image/png",
	"image/jpeg",
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
)

func servedContentType(uploaded string) string {
	mediaType, _, err := mime.ParseMediaType(uploaded)
	if err != nil || !documentTypes.Contains(mediaType) {
		return echo.MIMEOctetStream
	}
	return mediaType
}

type DocumentController struct {
	documents shared.DocumentStore
}

func NewDocumentController(documents shared.DocumentStore) *DocumentController {
	return &DocumentController{documents: documents}
}

// Get streams the document stored under the key of the wildcard path.
func (c *DocumentController) Get(ctx shared.Context) error {
	body, info, err := c.documents.Get(ctx.Request().Context(), ctx.Param("*"))
	if err != nil {
		if shared.IsNotFound(err) {
			return echo.NewHTTPError(http.StatusNotFound, "document not found").WithInternal(err)
		}
		return echo.NewHTTPError(http.StatusBadRequest, "could not read document").WithInternal(err)
	}
	defer body.Close()

	header := ctx.Response().Header()
	if info.Size > 0 {
		header.Set(echo.HeaderContentLength, strconv.FormatInt(info.Size, 10))
	}
	// documents are uploaded by users, never render them on the dashboard origin
	header.Set(echo.HeaderContentDisposition, mime.FormatMediaType("attachment", map[string]string{"filename": path.Base(ctx.Param("*"))}))
	header.Set(echo.HeaderXContentTypeOptions, "nosniff")
	return ctx.Stream(http.StatusOK, servedContentType(info.ContentType), body)
}
