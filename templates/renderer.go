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

// Package templates renders the page view models as html.
package templates

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"

	"github.com/l3montree-dev/supplyguard/synchronization"
	"github.com/labstack/echo/v4"
)

//go:embed views/*.gohtml
var views embed.FS

// Page is the data of the layout. View is the view model of the page.
type Page struct {
	Title         string
	Active        string
	UserID        string
	Role          string
	Notifications []synchronization.Notification
	View          any
}

type Renderer struct {
	templates map[string]*template.Template
}

var _ echo.Renderer = (*Renderer)(nil)

var funcs = template.FuncMap{
	"badge": func(variant string) string {
		if variant == "" {
			return ""
		}
		return "badge badge-" + variant
	},
	"lower": strings.ToLower,
	"active": func(current, path string) bool {
		if path == "/" {
			return current == "/"
		}
		return strings.HasPrefix(current, path)
	},
}

// NewRenderer parses every view together with the layout and the partials.
func NewRenderer() (*Renderer, error) {
	shared := []string{"views/layout.gohtml", "views/partials.gohtml"}
	files, err := fs.Glob(views, "views/*.gohtml")
	if err != nil {
		return nil, err
	}

	r := &Renderer{templates: map[string]*template.Template{}}
	for _, file := range files {
		if file == shared[0] || file == shared[1] {
			continue
		}
		name := strings.TrimSuffix(path.Base(file), ".gohtml")
		t, err := template.New(name).Funcs(funcs).ParseFS(views, append(shared, file)...)
		if err != nil {
			return nil, fmt.Errorf("could not parse template %s: %w", name, err)
		}
		r.templates[name] = t
	}
	return r, nil
}

func (r *Renderer) Render(w io.Writer, name string, data any, c echo.Context) error {
	t, ok := r.templates[name]
	if !ok {
		return fmt.Errorf("template %s not found", name)
	}
	return t.ExecuteTemplate(w, "layout", data)
}
