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

package pages

import (
	"strconv"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/google/uuid"
	"github.com/l3montree-dev/supplyguard/dtos"
	"github.com/l3montree-dev/supplyguard/presentation"
	"github.com/l3montree-dev/supplyguard/shared"
	"github.com/l3montree-dev/supplyguard/synchronization"
)

const (
	SystemFlowPath  = "/system-flow"
	NodesPath       = SystemFlowPath + "/nodes"
	ConnectionsPath = SystemFlowPath + "/connections"
)

// Graph indexes the connections of the system flow diagram by node.
type Graph struct {
	names     map[uuid.UUID]string
	neighbors map[uuid.UUID]mapset.Set[uuid.UUID]
	nodes     []dtos.SystemNodeDTO
}

func NewGraph(nodes []dtos.SystemNodeDTO, connections []dtos.SystemConnectionDTO) Graph {
	g := Graph{
		names:     make(map[uuid.UUID]string, len(nodes)),
		neighbors: make(map[uuid.UUID]mapset.Set[uuid.UUID], len(nodes)),
		nodes:     nodes,
	}
	for _, n := range nodes {
		g.names[n.ID] = n.Name
		g.neighbors[n.ID] = mapset.NewSet[uuid.UUID]()
	}
	for _, c := range connections {
		// dangling endpoints are ignored
		source, ok := g.neighbors[c.SourceID]
		if !ok {
			continue
		}
		target, ok := g.neighbors[c.TargetID]
		if !ok {
			continue
		}
		source.Add(c.TargetID)
		target.Add(c.SourceID)
	}
	return g
}

// Degree is the number of distinct nodes connected to id.
func (g Graph) Degree(id uuid.UUID) int {
	if s, ok := g.neighbors[id]; ok {
		return s.Cardinality()
	}
	return 0
}

// Orphans returns the nodes without any connection, in node order.
func (g Graph) Orphans() []dtos.SystemNodeDTO {
	var orphans []dtos.SystemNodeDTO
	for _, n := range g.nodes {
		if g.Degree(n.ID) == 0 {
			orphans = append(orphans, n)
		}
	}
	return orphans
}

func (g Graph) Name(id uuid.UUID) string {
	if name, ok := g.names[id]; ok {
		return name
	}
	return id.String()
}

func NodeTable(g Graph) presentation.Table[dtos.SystemNodeDTO] {
	return presentation.Table[dtos.SystemNodeDTO]{
		Columns: []presentation.Column[dtos.SystemNodeDTO]{
			{Header: "Name", AccessorKey: "name"},
			{Header: "Type", AccessorKey: "type", Cell: func(n dtos.SystemNodeDTO) presentation.Cell {
				return presentation.Cell{Text: presentation.Humanize(n.Type)}
			}},
			{Header: "Description", AccessorKey: "description"},
			{Header: "Status", AccessorKey: "status", Cell: func(n dtos.SystemNodeDTO) presentation.Cell {
				return badge(n.Status, statusVariants)
			}},
			{Header: "Connections", Cell: func(n dtos.SystemNodeDTO) presentation.Cell {
				degree := g.Degree(n.ID)
				if degree == 0 {
					return presentation.Cell{Text: "Orphan", Variant: "warning"}
				}
				return presentation.Cell{Text: strconv.Itoa(degree)}
			}},
		},
		RowID:             func(n dtos.SystemNodeDTO) string { return n.ID.String() },
		SearchPlaceholder: "Search nodes...",
		AddLabel:          "Add Node",
		CanEdit:           true,
		CanDelete:         true,
	}
}

func ConnectionTable(g Graph) presentation.Table[dtos.SystemConnectionDTO] {
	return presentation.Table[dtos.SystemConnectionDTO]{
		Columns: []presentation.Column[dtos.SystemConnectionDTO]{
			{Header: "Source", Cell: func(c dtos.SystemConnectionDTO) presentation.Cell {
				return presentation.Cell{Text: g.Name(c.SourceID)}
			}},
			{Header: "Target", Cell: func(c dtos.SystemConnectionDTO) presentation.Cell {
				return presentation.Cell{Text: g.Name(c.TargetID)}
			}},
			{Header: "Type", AccessorKey: "type", Cell: func(c dtos.SystemConnectionDTO) presentation.Cell {
				return presentation.Cell{Text: presentation.Humanize(c.Type)}
			}},
			{Header: "Mode", AccessorKey: "description"},
		},
		RowID:     func(c dtos.SystemConnectionDTO) string { return c.ID.String() },
		AddLabel:  "Add Connection",
		CanEdit:   true,
		CanDelete: true,
	}
}

var NodeForm = presentation.Form{
	SubmitLabel: "Save Node",
	Fields: []presentation.Field{
		{Name: "name", Label: "Name", Type: presentation.FieldText, Rule: "required,min=2"},
		{Name: "type", Label: "Type", Type: presentation.FieldSelect, Options: presentation.OptionsOf(dtos.NodeTypes), Rule: "required"},
		{Name: "description", Label: "Description", Type: presentation.FieldTextarea, Placeholder: "Location or purpose"},
		{Name: "status", Label: "Status", Type: presentation.FieldSelect, Options: presentation.OptionsOf(dtos.NodeStatuses), Rule: "required"},
		{Name: "latitude", Label: "Latitude", Type: presentation.FieldNumber, Rule: "gte=-90,lte=90"},
		{Name: "longitude", Label: "Longitude", Type: presentation.FieldNumber, Rule: "gte=-180,lte=180"},
	},
}

// ConnectionForm lists the existing nodes as endpoints.
func ConnectionForm(nodes []dtos.SystemNodeDTO) presentation.Form {
	options := make([]presentation.Option, len(nodes))
	for i, n := range nodes {
		options[i] = presentation.Option{Value: n.ID.String(), Label: n.Name}
	}
	return presentation.Form{
		SubmitLabel: "Save Connection",
		Fields: []presentation.Field{
			{Name: "sourceId", Label: "Source", Type: presentation.FieldSelect, Options: options, Rule: "required"},
			{Name: "targetId", Label: "Target", Type: presentation.FieldSelect, Options: options, Rule: "required"},
			{Name: "type", Label: "Type", Type: presentation.FieldSelect, Options: presentation.OptionsOf(dtos.ConnectionTypes), Rule: "required"},
			{Name: "description", Label: "Transport Mode", Type: presentation.FieldText, Placeholder: "Rail, REST, MQTT ...", Rule: "required"},
		},
	}
}

func NodeDefaults(n dtos.SystemNodeDTO) map[string]string {
	return map[string]string{
		"name":        n.Name,
		"type":        n.Type,
		"description": n.Description,
		"status":      n.Status,
		"latitude":    strconv.FormatFloat(n.Latitude, 'f', -1, 64),
		"longitude":   strconv.FormatFloat(n.Longitude, 'f', -1, 64),
	}
}

func ConnectionDefaults(c dtos.SystemConnectionDTO) map[string]string {
	return map[string]string{
		"sourceId":    c.SourceID.String(),
		"targetId":    c.TargetID.String(),
		"type":        c.Type,
		"description": c.Description,
	}
}

type SystemFlowView struct {
	ListView
	Connections presentation.TableView
	Orphans     []dtos.SystemNodeDTO
}

// SystemFlowPage renders both tables. The dialog parameter is prefixed with
// the table it belongs to, e.g. "connection-edit".
func SystemFlowPage(state State, nodes synchronization.QueryState[[]dtos.SystemNodeDTO], connections synchronization.QueryState[[]dtos.SystemConnectionDTO]) SystemFlowView {
	g := NewGraph(nodes.Data, connections.Data)
	filtered := Search(nodes.Data, state.Search, func(n dtos.SystemNodeDTO) []string {
		return []string{n.Name, n.Type, n.Description}
	})

	nodeTable := NodeTable(g).Render(Input(state, SystemFlowPath, nodes, filtered))
	connectionState := state
	connectionState.PageInfo = shared.PageInfo{Page: 1, PageSize: max(len(connections.Data), 1)}
	connectionTable := ConnectionTable(g).Render(Input(connectionState, SystemFlowPath, connections, connections.Data))
	prefixDialogLinks(&connectionTable, SystemFlowPath, state)

	nodeStatuses := mapset.NewSet[string]()
	for _, n := range nodes.Data {
		nodeStatuses.Add(n.Status)
	}

	view := SystemFlowView{
		ListView: ListView{
			Title:    "System Flow",
			BasePath: SystemFlowPath,
			Table:    nodeTable,
			Stats: []StatCard{
				{Label: "Nodes", Value: strconv.Itoa(len(nodes.Data))},
				{Label: "Connections", Value: strconv.Itoa(len(connections.Data))},
				{Label: "Orphan Nodes", Value: strconv.Itoa(len(g.Orphans())), Variant: "warning"},
				{Label: "Node Statuses", Value: strconv.Itoa(nodeStatuses.Cardinality())},
			},
		},
		Connections: connectionTable,
		Orphans:     g.Orphans(),
	}
	closeURL := CloseURL(SystemFlowPath, state.Query)
	nodeID := func(n dtos.SystemNodeDTO) uuid.UUID { return n.ID }
	connectionID := func(c dtos.SystemConnectionDTO) uuid.UUID { return c.ID }

	switch state.Dialog {
	case DialogCreate:
		d := presentation.NewDialog(NodeForm)
		d.Open("Add Node", map[string]string{"type": "warehouse", "status": "active", "latitude": "0", "longitude": "0"})
		view.Dialog = NewDialogView(d, NodesPath, closeURL)
	case DialogEdit:
		if n, ok := findByID(nodes.Data, state.ID, nodeID); ok {
			d := presentation.NewDialog(NodeForm)
			d.Open("Edit Node", NodeDefaults(n))
			view.Dialog = NewDialogView(d, NodesPath+"/"+n.ID.String(), closeURL)
		}
	case DialogDelete:
		if n, ok := findByID(nodes.Data, state.ID, nodeID); ok {
			description := "Are you sure you want to delete " + n.Name + "? This action cannot be undone."
			if degree := g.Degree(n.ID); degree > 0 {
				description = n.Name + " is still connected to " + strconv.Itoa(degree) + " node(s). Remove its connections first."
			}
			var c presentation.ConfirmDialog
			c.Open("Delete Node", description, n.ID.String())
			view.Confirm = NewConfirmView(&c, NodesPath+"/"+n.ID.String()+"/delete", closeURL)
		}
	case connectionDialog(DialogCreate):
		d := presentation.NewDialog(ConnectionForm(nodes.Data))
		d.Open("Add Connection", map[string]string{"type": "supply_chain"})
		view.Dialog = NewDialogView(d, ConnectionsPath, closeURL)
	case connectionDialog(DialogEdit):
		if c, ok := findByID(connections.Data, state.ID, connectionID); ok {
			d := presentation.NewDialog(ConnectionForm(nodes.Data))
			d.Open("Edit Connection", ConnectionDefaults(c))
			view.Dialog = NewDialogView(d, ConnectionsPath+"/"+c.ID.String(), closeURL)
		}
	case connectionDialog(DialogDelete):
		if c, ok := findByID(connections.Data, state.ID, connectionID); ok {
			var confirm presentation.ConfirmDialog
			confirm.Open("Delete Connection", "Remove the connection from "+g.Name(c.SourceID)+" to "+g.Name(c.TargetID)+"?", c.ID.String())
			view.Confirm = NewConfirmView(&confirm, ConnectionsPath+"/"+c.ID.String()+"/delete", closeURL)
		}
	}
	return view
}

func connectionDialog(dialog string) string {
	return "connection-" + dialog
}

// prefixDialogLinks points the links of the connection table to the
// connection dialogs.
func prefixDialogLinks(view *presentation.TableView, basePath string, state State) {
	q := func(dialog, id string) string {
		query := CloseURL(basePath, state.Query)
		sep := "?"
		if len(query) > len(basePath) {
			sep = "&"
		}
		link := query + sep + "dialog=" + connectionDialog(dialog)
		if id != "" {
			link += "&id=" + id
		}
		return link
	}
	view.AddURL = q(DialogCreate, "")
	for i := range view.Rows {
		view.Rows[i].EditURL = q(DialogEdit, view.Rows[i].ID)
		view.Rows[i].DeleteURL = q(DialogDelete, view.Rows[i].ID)
	}
	// the connection table is not paginated separately
	view.Pagination = presentation.PaginationView{Page: 1, Pages: 1, Total: int64(len(view.Rows))}
}
