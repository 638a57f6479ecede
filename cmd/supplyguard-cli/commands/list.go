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
	"context"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/l3montree-dev/supplyguard/dtos"
	"github.com/l3montree-dev/supplyguard/shared"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type pageFetcher[E any] interface {
	FetchPage(ctx context.Context, pageInfo shared.PageInfo, filters ...shared.Filter) (shared.Paged[E], error)
}

// listing fetches one page of an entity and renders it into the table writer.
type listing func(ctx context.Context, pageInfo shared.PageInfo, tw table.Writer) (shared.PageInfo, int64, error)

func tableOf[E any](g pageFetcher[E], header table.Row, row func(E) table.Row) listing {
	return func(ctx context.Context, pageInfo shared.PageInfo, tw table.Writer) (shared.PageInfo, int64, error) {
		page, err := g.FetchPage(ctx, pageInfo)
		if err != nil {
			return pageInfo, 0, err
		}
		tw.AppendHeader(header)
		for _, e := range page.Data {
			tw.AppendRow(row(e))
		}
		return page.PageInfo, page.Total, nil
	}
}

var listings = map[string]func(s *gateways) listing{
	"suppliers": func(s *gateways) listing {
		return tableOf(s.suppliers, table.Row{"Name", "Category", "Location", "Status", "Risk", "Verified"}, func(d dtos.SupplierDTO) table.Row {
			return table.Row{d.Name, d.Category, d.Location, d.Status, d.RiskScore, d.Verified}
		})
	},
	"risk-factors": func(s *gateways) listing {
		return tableOf(s.riskFactors, table.Row{"Name", "Category", "Severity", "Status", "Impact", "Probability", "Score"}, func(d dtos.RiskFactorDTO) table.Row {
			return table.Row{d.Name, d.Category, d.Severity, d.Status, d.Impact, d.Probability, d.RiskScore}
		})
	},
	"esg-reports": func(s *gateways) listing {
		return tableOf(s.esgReports, table.Row{"Title", "Date", "Type", "Status", "Scope", "Verified"}, func(d dtos.EsgReportDTO) table.Row {
			return table.Row{text.WrapText(d.Title, 40), d.Date, d.Type, d.Status, d.Scope, d.BlockchainVerified}
		})
	},
	"system-nodes": func(s *gateways) listing {
		return tableOf(s.nodes, table.Row{"ID", "Name", "Type", "Status"}, func(d dtos.SystemNodeDTO) table.Row {
			return table.Row{d.ID, d.Name, d.Type, d.Status}
		})
	},
	"system-connections": func(s *gateways) listing {
		return tableOf(s.connections, table.Row{"Source", "Target", "Type", "Description"}, func(d dtos.SystemConnectionDTO) table.Row {
			return table.Row{d.SourceID, d.TargetID, d.Type, d.Description}
		})
	},
	"alerts": func(s *gateways) listing {
		return tableOf(s.alerts, table.Row{"Code", "Title", "Severity", "Source", "Type", "Status"}, func(d dtos.AlertDTO) table.Row {
			return table.Row{d.Code, text.WrapText(d.Title, 40), d.Severity, d.Source, d.Type, d.Status}
		})
	},
}

func listingNames() []string {
	names := make([]string, 0, len(listings))
	for name := range listings {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func NewListCommand() *cobra.Command {
	listCmd := &cobra.Command{
		Use:       "list <entity>",
		Short:     "Will print one page of the given entity",
		Long:      "Prints one page of the given entity. Entities: " + strings.Join(listingNames(), ", "),
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: listingNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			page, _ := cmd.Flags().GetInt("page")
			pageSize, _ := cmd.Flags().GetInt("page-size")

			db, closeDB, err := openDatabase()
			if err != nil {
				return errors.Wrap(err, "could not connect to database")
			}
			defer closeDB()

			return printListing(cmd.Context(), cmd.OutOrStdout(), newGateways(db), args[0], shared.ParsePageInfo(strconv.Itoa(page), strconv.Itoa(pageSize)))
		},
	}

	listCmd.Flags().Int("page", 1, "Page to print")
	listCmd.Flags().Int("page-size", 20, "Number of rows per page, at most 100")
	return listCmd
}

func printListing(ctx context.Context, w io.Writer, s *gateways, entity string, pageInfo shared.PageInfo) error {
	build, ok := listings[entity]
	if !ok {
		return fmt.Errorf("unknown entity %q", entity)
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleLight)
	tw.SetOutputMirror(w)

	pageInfo, total, err := build(s)(ctx, pageInfo, tw)
	if err != nil {
		return err
	}
	tw.SetCaption("page %d of %d, %d total", pageInfo.Page, shared.Paged[struct{}]{PageInfo: pageInfo, Total: total}.Pages(), total)
	tw.Render()
	return nil
}
