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

package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var ResourceClientDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "supplyguard_resource_client_duration_seconds",
	Help:    "Duration of a single round trip to the table store",
	Buckets: prometheus.DefBuckets,
}, []string{"table", "op"})

var ResourceClientErrors = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "supplyguard_resource_client_errors_total",
	Help: "The total number of failed round trips to the table store",
}, []string{"table", "op"})
