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

package commands

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/l3montree-dev/supplyguard/blob"
	"github.com/l3montree-dev/supplyguard/database/repositories"
	"github.com/l3montree-dev/supplyguard/dtos"
	"github.com/l3montree-dev/supplyguard/gateway"
	"github.com/l3montree-dev/supplyguard/shared"
	"github.com/pkg/errors"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

//go:embed seed/default.yaml seed/seed.schema.json
var seedFiles embed.FS

const seedSchemaURL = "https://supplyguard.local/seed.schema.json"

// seedConnection references its nodes by name.
type seedConnection struct {
	Source      string `json:"source"`
	Target      string `json:"target"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

type seedData struct {
	Suppliers   []dtos.SupplierDTO   `json:"suppliers"`
	RiskFactors []dtos.RiskFactorDTO `json:"riskFactors"`
	EsgReports  []dtos.EsgReportDTO  `json:"esgReports"`
	Nodes       []dtos.SystemNodeDTO `json:"nodes"`
	Connections []seedConnection     `json:"connections"`
	Alerts      []dtos.AlertDTO      `json:"alerts"`
}

func (s seedData) total() int {
	return len(s.Suppliers) + len(s.RiskFactors) + len(s.EsgReports) + len(s.Nodes) + len(s.Connections) + len(s.Alerts)
}

func NewSeedCommand() *cobra.Command {
	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Will load the demo data set or the given yaml file",
		Long: `Loads suppliers, risk factors, ESG reports, system nodes, connections and alerts.

Entities that already exist are skipped: suppliers, risk factors and nodes by
name, reports by title and alerts by code. Running the command twice does not
duplicate any row.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			file, _ := cmd.Flags().GetString("file")

			raw, err := readSeedFile(file)
			if err != nil {
				return err
			}
			data, err := parseSeed(raw)
			if err != nil {
				return err
			}

			db, closeDB, err := openDatabase()
			if err != nil {
				return errors.Wrap(err, "could not connect to database")
			}
			defer closeDB()

			bar := progressbar.Default(int64(data.total()), "seeding")
			created, err := newGateways(db).seed(cmd.Context(), data, func() { bar.Add(1) }) // nolint
			if err != nil {
				return err
			}
			slog.Info("seeding done", "created", created, "skipped", data.total()-created)
			return nil
		},
	}

	seedCmd.Flags().StringP("file", "f", "", "Seed file in yaml format. Defaults to the built in demo data set")
	return seedCmd
}

func readSeedFile(path string) ([]byte, error) {
	if path == "" {
		return seedFiles.ReadFile("seed/default.yaml")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "could not read seed file")
	}
	return b, nil
}

func compileSeedSchema() (*jsonschema.Schema, error) {
	b, err := seedFiles.ReadFile("seed/seed.schema.json")
	if err != nil {
		return nil, err
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(b))
	if err != nil {
		return nil, err
	}

	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat()
	if err := compiler.AddResource(seedSchemaURL, doc); err != nil {
		return nil, err
	}
	return compiler.Compile(seedSchemaURL)
}

// parseSeed decodes the yaml document and validates it against the seed schema.
func parseSeed(raw []byte) (seedData, error) {
	var data seedData

	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return data, errors.Wrap(err, "could not parse seed file")
	}
	if doc == nil {
		return data, nil
	}

	// the schema validator works on json values, e.g. float64 instead of int
	b, err := json.Marshal(doc)
	if err != nil {
		return data, errors.Wrap(err, "seed file is not representable as json")
	}
	instance, err := jsonschema.UnmarshalJSON(bytes.NewReader(b))
	if err != nil {
		return data, err
	}

	schema, err := compileSeedSchema()
	if err != nil {
		return data, errors.Wrap(err, "could not compile seed schema")
	}
	if err := schema.Validate(instance); err != nil {
		return data, fmt.Errorf("invalid seed file: %w", err)
	}

	if err := json.Unmarshal(b, &data); err != nil {
		return data, errors.Wrap(err, "could not decode seed file")
	}
	return data, nil
}

// gateways are the entity gateways the commands work with.
type gateways struct {
	suppliers   *gateway.SupplierGateway
	riskFactors *gateway.RiskFactorGateway
	esgReports  *gateway.EsgReportGateway
	nodes       *gateway.SystemNodeGateway
	connections *gateway.SystemConnectionGateway
	alerts      *gateway.AlertGateway
}

func newGateways(db shared.DB) *gateways {
	nodes := repositories.NewSupplyChainNodeRepository(db)
	routes := repositories.NewSupplyChainRouteRepository(db)
	// seeded reports carry no documents
	documents := blob.NewMemoryStore()
	return &gateways{
		suppliers:   gateway.NewSupplierGateway(repositories.NewSupplierRepository(db)),
		riskFactors: gateway.NewRiskFactorGateway(repositories.NewRiskFactorRepository(db)),
		esgReports:  gateway.NewEsgReportGateway(repositories.NewEsgReportRepository(db), documents),
		nodes:       gateway.NewSystemNodeGateway(nodes, routes),
		connections: gateway.NewSystemConnectionGateway(routes, nodes),
		alerts:      gateway.NewAlertGateway(repositories.NewAlertRepository(db)),
	}
}

type creator[E any] interface {
	FetchAll(ctx context.Context, filters ...shared.Filter) ([]E, error)
	Create(ctx context.Context, entity E) (E, error)
}

// createMissing creates the entity unless a row with the same natural key exists.
func createMissing[E any](ctx context.Context, g creator[E], column string, key string, entity E) (E, bool, error) {
	existing, err := g.FetchAll(ctx, shared.Eq(column, key))
	if err != nil {
		return entity, false, err
	}
	if len(existing) > 0 {
		return existing[0], false, nil
	}
	created, err := g.Create(ctx, entity)
	if err != nil {
		return entity, false, errors.Wrapf(err, "could not create %q", key)
	}
	return created, true, nil
}

// seed returns the number of created entities. progress is called once per entity of the data set.
func (s *gateways) seed(ctx context.Context, data seedData, progress func()) (int, error) {
	created := 0
	count := func(ok bool) {
		if ok {
			created++
		}
		progress()
	}

	for _, supplier := range data.Suppliers {
		_, ok, err := createMissing(ctx, s.suppliers, "name", supplier.Name, supplier)
		if err != nil {
			return created, err
		}
		count(ok)
	}
	for _, riskFactor := range data.RiskFactors {
		_, ok, err := createMissing(ctx, s.riskFactors, "name", riskFactor.Name, riskFactor)
		if err != nil {
			return created, err
		}
		count(ok)
	}
	for _, report := range data.EsgReports {
		_, ok, err := createMissing(ctx, s.esgReports, "title", report.Title, report)
		if err != nil {
			return created, err
		}
		count(ok)
	}

	nodeIDs := make(map[string]uuid.UUID, len(data.Nodes))
	for _, node := range data.Nodes {
		n, ok, err := createMissing(ctx, s.nodes, "name", node.Name, node)
		if err != nil {
			return created, err
		}
		nodeIDs[node.Name] = n.ID
		count(ok)
	}

	for _, c := range data.Connections {
		ok, err := s.seedConnection(ctx, nodeIDs, c)
		if err != nil {
			return created, err
		}
		count(ok)
	}

	for _, alert := range data.Alerts {
		ok := true
		var err error
		if alert.Code != "" {
			_, ok, err = createMissing(ctx, s.alerts, "code", alert.Code, alert)
		} else {
			_, err = s.alerts.Create(ctx, alert)
		}
		if err != nil {
			return created, err
		}
		count(ok)
	}
	return created, nil
}

func (s *gateways) seedConnection(ctx context.Context, nodeIDs map[string]uuid.UUID, c seedConnection) (bool, error) {
	source, ok := nodeIDs[c.Source]
	if !ok {
		return false, fmt.Errorf("connection references unknown node %q", c.Source)
	}
	target, ok := nodeIDs[c.Target]
	if !ok {
		return false, fmt.Errorf("connection references unknown node %q", c.Target)
	}

	existing, err := s.connections.FetchAll(ctx, shared.Eq("origin_id", source), shared.Eq("destination_id", target))
	if err != nil {
		return false, err
	}
	if len(existing) > 0 {
		return false, nil
	}

	_, err = s.connections.Create(ctx, dtos.SystemConnectionDTO{
		SourceID:    source,
		TargetID:    target,
		Type:        c.Type,
		Description: c.Description,
	})
	if err != nil {
		return false, errors.Wrapf(err, "could not connect %q to %q", c.Source, c.Target)
	}
	return true, nil
}
