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

package synchronization

import (
	"fmt"
	"log/slog"
	"sync"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/l3montree-dev/supplyguard/monitoring"
	"github.com/l3montree-dev/supplyguard/utils"
)

type NotificationKind string

const (
	NotificationSuccess NotificationKind = "success"
	NotificationError   NotificationKind = "error"
)

// Notification is the user facing outcome of a mutation.
type Notification struct {
	Kind      NotificationKind `json:"kind"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Entity    string           `json:"entity"`
	Operation string           `json:"operation"`
	CreatedAt time.Time        `json:"createdAt"`
}

// Operation names a mutation and how it reads in a notification.
type Operation struct {
	Name string
	// Verb is used in error messages: "Failed to <verb> <entity>"
	Verb string
	// Past is used in success messages: "<Entity> <past> successfully"
	Past string
}

var (
	OperationCreate = Operation{Name: "create", Verb: "create", Past: "created"}
	OperationUpdate = Operation{Name: "update", Verb: "update", Past: "updated"}
	OperationDelete = Operation{Name: "delete", Verb: "delete", Past: "deleted"}
)

func successNotification(entity string, op Operation) Notification {
	return Notification{
		Kind:      NotificationSuccess,
		Title:     "Success",
		Message:   fmt.Sprintf("%s %s successfully", entity, op.Past),
		Entity:    entity,
		Operation: op.Name,
		CreatedAt: time.Now(),
	}
}

func errorNotification(entity string, op Operation, err error) Notification {
	return Notification{
		Kind:      NotificationError,
		Title:     "Error",
		Message:   fmt.Sprintf("Failed to %s %s: %s", op.Verb, lowerEntity(entity), err.Error()),
		Entity:    entity,
		Operation: op.Name,
		CreatedAt: time.Now(),
	}
}

// lowerEntity lowercases the first letter unless the name starts with an acronym ("ESG report").
func lowerEntity(entity string) string {
	first, size := utf8.DecodeRuneInString(entity)
	if size == 0 {
		return entity
	}
	if second, _ := utf8.DecodeRuneInString(entity[size:]); unicode.IsUpper(second) {
		return entity
	}
	return string(unicode.ToLower(first)) + entity[size:]
}

// Notifier delivers notifications to its listeners without blocking the mutation.
type Notifier struct {
	mu           sync.RWMutex
	listeners    []func(Notification)
	synchronizer utils.FireAndForgetSynchronizer
}

func NewNotifier(synchronizer utils.FireAndForgetSynchronizer) *Notifier {
	n := &Notifier{synchronizer: synchronizer}
	n.OnNotify(logNotification)
	return n
}

func (n *Notifier) OnNotify(listener func(Notification)) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.listeners = append(n.listeners, listener)
}

func (n *Notifier) Notify(notification Notification) {
	monitoring.NotificationAmount.WithLabelValues(string(notification.Kind)).Inc()

	n.mu.RLock()
	listeners := append([]func(Notification){}, n.listeners...)
	n.mu.RUnlock()

	for _, listener := range listeners {
		n.synchronizer.FireAndForget(func() {
			listener(notification)
		})
	}
}

func logNotification(notification Notification) {
	if notification.Kind == NotificationError {
		slog.Warn("mutation failed", "entity", notification.Entity, "operation", notification.Operation, "message", notification.Message)
		return
	}
	slog.Info("mutation succeeded", "entity", notification.Entity, "operation", notification.Operation)
}

// Inbox keeps the undelivered notifications of every user until the next page render.
type Inbox struct {
	mu    sync.Mutex
	cache *expirable.LRU[string, []Notification]
}

const (
	inboxSize = 1000
	inboxTTL  = 5 * time.Minute
	// maxNotificationsPerUser drops the oldest notifications of a user
	maxNotificationsPerUser = 5
)

func NewInbox() *Inbox {
	return &Inbox{cache: expirable.NewLRU[string, []Notification](inboxSize, nil, inboxTTL)}
}

func (i *Inbox) Push(userID string, notification Notification) {
	i.mu.Lock()
	defer i.mu.Unlock()
	pending, _ := i.cache.Get(userID)
	pending = append(pending, notification)
	if len(pending) > maxNotificationsPerUser {
		pending = pending[len(pending)-maxNotificationsPerUser:]
	}
	i.cache.Add(userID, pending)
}

// Drain returns and forgets the pending notifications of the user.
func (i *Inbox) Drain(userID string) []Notification {
	i.mu.Lock()
	defer i.mu.Unlock()
	pending, ok := i.cache.Get(userID)
	if !ok {
		return nil
	}
	i.cache.Remove(userID)
	return pending
}
