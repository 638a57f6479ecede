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

package shared

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/l3montree-dev/supplyguard/database/models"
)

// ResourceClient is the request/response contract with the table store.
// Every call is a single round trip. Writes are never retried.
type ResourceClient[ID comparable, T any] interface {
	Table() string
	Select(ctx context.Context, filters []Filter, order *Order) ([]T, error)
	SelectPage(ctx context.Context, filters []Filter, order *Order, pageInfo PageInfo) (Paged[T], error)
	Insert(ctx context.Context, row *T) error
	Update(ctx context.Context, id ID, patch map[string]any) (T, error)
	Delete(ctx context.Context, id ID) error
	Upsert(ctx context.Context, row *T, conflictColumns []string, updateOnly []string) error
}

type SupplierRepository interface {
	ResourceClient[uuid.UUID, models.Supplier]
}

type RiskFactorRepository interface {
	ResourceClient[uuid.UUID, models.RiskFactor]
}

type EsgReportRepository interface {
	ResourceClient[uuid.UUID, models.EsgReportItem]
}

type SupplyChainNodeRepository interface {
	ResourceClient[uuid.UUID, models.SupplyChainNode]
}

type SupplyChainRouteRepository interface {
	ResourceClient[uuid.UUID, models.SupplyChainRoute]
	// CountByNode returns the number of routes starting or ending at the node.
	CountByNode(ctx context.Context, nodeID uuid.UUID) (int64, error)
}

type UserSettingsRepository interface {
	ResourceClient[uuid.UUID, models.UserSettings]
}

type ProfileRepository interface {
	ResourceClient[string, models.Profile]
}

type AlertRepository interface {
	ResourceClient[uuid.UUID, models.Alert]
	CountByStatus(ctx context.Context) (map[string]int64, error)
}

// DocumentInfo describes a stored document.
type DocumentInfo struct {
	Key         string
	Size        int64
	ContentType string
}

// DocumentStore keeps uploaded report documents.
type DocumentStore interface {
	Put(ctx context.Context, key string, contentType string, body io.Reader) (DocumentInfo, error)
	Get(ctx context.Context, key string) (io.ReadCloser, DocumentInfo, error)
	Delete(ctx context.Context, key string) error
	// URL returns the link users download the document from.
	URL(ctx context.Context, key string) (string, error)
	Driver() string
}
