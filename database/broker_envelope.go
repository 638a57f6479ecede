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

package database

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/l3montree-dev/supplyguard/shared"
)

// subscriberBuffer is the number of undelivered messages one subscriber may
// lag behind before further messages are dropped for it.
const subscriberBuffer = 100

// brokerEnvelope is what travels over the wire for every networked driver.
type brokerEnvelope struct {
	ID        string               `json:"id"`
	Channel   shared.PubSubChannel `json:"topic"`
	Payload   map[string]any       `json:"payload"`
	Timestamp time.Time            `json:"timestamp"`
	SenderID  string               `json:"sender_id,omitempty"`
}

func encodeEnvelope(senderID string, message shared.PubSubMessage) ([]byte, error) {
	raw, err := json.Marshal(brokerEnvelope{
		ID:        uuid.New().String(),
		Channel:   message.GetChannel(),
		Payload:   message.GetPayload(),
		Timestamp: time.Now(),
		SenderID:  senderID,
	})
	if err != nil {
		return nil, fmt.Errorf("could not encode %s message: %w", message.GetChannel(), err)
	}
	return raw, nil
}

// decodeEnvelope returns false for payloads that are malformed or that were
// sent by self, unless ownMessages is set.
func decodeEnvelope(raw string, self string, ownMessages bool) (brokerEnvelope, bool) {
	var envelope brokerEnvelope
	if err := json.Unmarshal([]byte(raw), &envelope); err != nil {
		slog.Warn("dropping malformed broker message", "err", err)
		return envelope, false
	}
	if envelope.SenderID == self && !ownMessages {
		return envelope, false
	}
	return envelope, true
}

// deliver never blocks. A full subscriber loses the message.
func deliver(ch chan<- map[string]any, topic shared.PubSubChannel, payload map[string]any) {
	select {
	case ch <- payload:
	default:
		slog.Warn("subscriber channel full, dropping message", "topic", topic)
	}
}
