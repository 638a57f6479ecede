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
	"github.com/l3montree-dev/supplyguard/shared"
	"github.com/l3montree-dev/supplyguard/synchronization"
)

// SystemFlowController serves both tables of the system flow page. Nodes and
// connections post to their own paths but render the same page.
type SystemFlowController struct {
	Nodes       *crudController[dtos.SystemNodeDTO, dtos.SystemNodePatchRequest, *pages.SystemFlowView]
	Connections *crudController[dtos.SystemConnectionDTO, dtos.SystemConnectionPatchRequest, *pages.SystemFlowView]
}

func NewSystemFlowController(nodes *synchronization.SystemNodeHook, connections *synchronization.SystemConnectionHook, inbox *synchronization.Inbox) *SystemFlowController {
	page := func(ctx context.Context, state pages.State) *pages.SystemFlowView {
		view := pages.SystemFlowPage(state, nodes.List(ctx), connections.List(ctx))
		return &view
	}

	return &SystemFlowController{
		Nodes: &crudController[dtos.SystemNodeDTO, dtos.SystemNodePatchRequest, *pages.SystemFlowView]{
			pageController: pageController{inbox: inbox},
			track:          nodes,
			basePath:       pages.NodesPath,
			pagePath:       pages.SystemFlowPath,
			template:       "system_flow",
			title:          "System Flow",
			createTitle:    "Add Node",
			editTitle:      "Edit Node",
			form:           func(context.Context) presentation.Form { return pages.NodeForm },
			page:           page,
		},
		Connections: &crudController[dtos.SystemConnectionDTO, dtos.SystemConnectionPatchRequest, *pages.SystemFlowView]{
			pageController: pageController{inbox: inbox},
			track:          connections,
			basePath:       pages.ConnectionsPath,
			pagePath:       pages.SystemFlowPath,
			template:       "system_flow",
			title:          "System Flow",
			createTitle:    "Add Connection",
			editTitle:      "Edit Connection",
			// the selects list the current nodes
			form: func(ctx context.Context) presentation.Form {
				return pages.ConnectionForm(nodes.List(ctx).Data)
			},
			page: page,
		},
	}
}

func (c *SystemFlowController) Page(ctx shared.Context) error {
	return c.Nodes.Page(ctx)
}
