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

var ListFetchAmount = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "supplyguard_list_fetch_amount",
	Help: "The total number of list fetches issued by the synchronization hooks",
}, []string{"entity", "result"})

var ListCacheHitAmount = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "supplyguard_list_cache_hit_amount",
	Help: "The total number of list reads served from the cache",
}, []string{"entity"})

var InvalidationAmount = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "supplyguard_invalidation_amount",
	Help: "The total number of list invalidations",
}, []string{"entity", "origin"})

var MutationAmount = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "supplyguard_mutation_amount",
	Help: "The total number of mutations",
}, []string{"entity", "operation", "result"})

var NotificationAmount = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "supplyguard_notification_amount",
	Help: "The total number of user facing notifications",
}, []string{"kind"})
