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

// Package accesscontrol decides which profile role may read or write which
// part of the dashboard.
package accesscontrol

import (
	_ "embed"
	"fmt"
	"log/slog"
	"strings"

	"github.com/casbin/casbin/v3"
	"github.com/casbin/casbin/v3/model"
	"github.com/casbin/casbin/v3/persist"
	stringadapter "github.com/casbin/casbin/v3/persist/string-adapter"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"github.com/l3montree-dev/supplyguard/shared"
)

type Object string

const (
	ObjectSupplier   Object = "supplier"
	ObjectRiskFactor Object = "risk_factor"
	ObjectEsgReport  Object = "esg_report"
	ObjectSystemFlow Object = "system_flow"
	ObjectAlert      Object = "alert"
	// ObjectRole guards changing the role of a profile
	ObjectRole Object = "role"
)

type Action string

const (
	ActionRead   Action = "read"
	ActionWrite  Action = "write"
	ActionVerify Action = "verify"
)

//go:embed rbac_model.conf
var rbacModel string

//go:embed default_policy.csv
var defaultPolicy string

type RBAC struct {
	enforcer *casbin.SyncedEnforcer
}

func roleSubject(role string) string {
	return "role::" + role
}

// IsAllowed reports whether role may perform action on object.
func (r *RBAC) IsAllowed(role string, object Object, action Action) (bool, error) {
	if role == "" {
		return false, nil
	}
	return r.enforcer.Enforce(roleSubject(role), string(object), string(action))
}

// AllowRole grants action on object to role and notifies the other instances.
func (r *RBAC) AllowRole(role string, object Object, action Action) error {
	_, err := r.enforcer.AddPolicy(roleSubject(role), string(object), string(action))
	return err
}

func (r *RBAC) RevokeRole(role string, object Object, action Action) error {
	_, err := r.enforcer.RemovePolicy(roleSubject(role), string(object), string(action))
	return err
}

// NewCasbinRBAC reads the policy from the casbin_rule table. An empty table is
// seeded with the default policy.
func NewCasbinRBAC(db shared.DB, broker shared.PubSubBroker) (*RBAC, error) {
	adapter, err := gormadapter.NewAdapterByDB(db)
	if err != nil {
		return nil, fmt.Errorf("could not create casbin adapter: %w", err)
	}

	enforcer, err := NewEnforcer(adapter)
	if err != nil {
		return nil, err
	}

	if err := seedDefaultPolicy(enforcer); err != nil {
		return nil, err
	}

	if broker != nil {
		watcher, err := newPolicyWatcher(broker)
		if err != nil {
			return nil, err
		}
		if err := enforcer.SetWatcher(watcher); err != nil {
			return nil, fmt.Errorf("could not set watcher: %w", err)
		}
		err = watcher.SetUpdateCallback(func(string) {
			if err := enforcer.LoadPolicy(); err != nil {
				slog.Error("error while loading policy after update", "err", err)
				return
			}
			slog.Debug("policy successfully reloaded after update")
		})
		if err != nil {
			return nil, fmt.Errorf("could not set update callback: %w", err)
		}
	}

	return &RBAC{enforcer: enforcer}, nil
}

// NewStaticRBAC only knows the default policy. Changes are not persisted.
func NewStaticRBAC() (*RBAC, error) {
	enforcer, err := NewEnforcer(stringadapter.NewAdapter(defaultPolicy))
	if err != nil {
		return nil, err
	}
	return &RBAC{enforcer: enforcer}, nil
}

func NewEnforcer(adapter persist.Adapter) (*casbin.SyncedEnforcer, error) {
	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, fmt.Errorf("could not parse rbac model: %w", err)
	}
	return casbin.NewSyncedEnforcer(m, adapter)
}

func seedDefaultPolicy(e *casbin.SyncedEnforcer) error {
	if len(e.GetModel()["p"]["p"].Policy) > 0 {
		return nil
	}

	var p, g [][]string
	for line := range strings.Lines(defaultPolicy) {
		fields := strings.Split(strings.TrimSpace(line), ",")
		for i := range fields {
			fields[i] = strings.TrimSpace(fields[i])
		}
		switch fields[0] {
		case "p":
			p = append(p, fields[1:])
		case "g":
			g = append(g, fields[1:])
		}
	}
	if _, err := e.AddPolicies(p); err != nil {
		return fmt.Errorf("could not seed policies: %w", err)
	}
	if _, err := e.AddGroupingPolicies(g); err != nil {
		return fmt.Errorf("could not seed role inheritance: %w", err)
	}
	slog.Info("seeded default access control policy", "policies", len(p), "roles", len(g))
	return nil
}
