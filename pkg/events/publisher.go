/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package events publishes interface transitions as CloudEvents to NATS JetStream.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/carverauto/ifwatch/pkg/logger"
	"github.com/carverauto/ifwatch/pkg/models"
	"github.com/carverauto/ifwatch/pkg/monitor"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/nats-io/nats.go/jetstream"
)

const (
	// EventTypeTransition is the CloudEvents type of a transition event.
	EventTypeTransition = "com.carverauto.ifwatch.interface.transition"
	eventSource         = "ifwatch/monitor"

	DefaultStream        = "IFWATCH_EVENTS"
	DefaultSubjectPrefix = "ifwatch.interface"
)

// CloudEvent is the CloudEvents 1.0 JSON envelope.
type CloudEvent struct {
	SpecVersion     string      `json:"specversion"`
	ID              string      `json:"id"`
	Source          string      `json:"source"`
	Type            string      `json:"type"`
	DataContentType string      `json:"datacontenttype,omitempty"`
	Subject         string      `json:"subject,omitempty"`
	Time            *time.Time  `json:"time,omitempty"`
	Data            interface{} `json:"data,omitempty"`
}

// TransitionData is the payload of a transition event.
type TransitionData struct {
	Device    string                 `json:"device"`
	SessionID string                 `json:"session_id"`
	Index     int                    `json:"if_index"`
	Interface string                 `json:"interface"`
	ShortName string                 `json:"short_name"`
	Direction monitor.Direction      `json:"direction"`
	From      models.InterfaceStatus `json:"from"`
	To        models.InterfaceStatus `json:"to"`
	Timestamp time.Time              `json:"timestamp"`
}

// JetStreamPublisher is the part of jetstream.JetStream used here.
type JetStreamPublisher interface {
	Publish(ctx context.Context, subject string, payload []byte, opts ...jetstream.PublishOpt) (*jetstream.PubAck, error)
}

// Publisher implements monitor.EventPublisher.
type Publisher struct {
	js     JetStreamPublisher
	prefix string
	clock  clockwork.Clock
	logger logger.Logger
}

// NewPublisher creates a Publisher that sends to <prefix>.<direction>.
func NewPublisher(js JetStreamPublisher, prefix string, clock clockwork.Clock, log logger.Logger) *Publisher {
	if prefix == "" {
		prefix = DefaultSubjectPrefix
	}

	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	return &Publisher{
		js:     js,
		prefix: prefix,
		clock:  clock,
		logger: log,
	}
}

var _ monitor.EventPublisher = (*Publisher)(nil)

// Subject returns the subject a transition in direction is published on.
func (p *Publisher) Subject(direction monitor.Direction) string {
	return p.prefix + "." + string(direction)
}

// PublishTransition publishes one transition. The event id doubles as the
// JetStream message id so redeliveries are deduplicated by the server.
func (p *Publisher) PublishTransition(ctx context.Context, device, sessionID string, t monitor.Transition) error {
	now := p.clock.Now().UTC()

	event := CloudEvent{
		SpecVersion:     "1.0",
		ID:              uuid.New().String(),
		Source:          eventSource,
		Type:            EventTypeTransition,
		DataContentType: "application/json",
		Subject:         p.Subject(t.Direction),
		Time:            &now,
		Data: TransitionData{
			Device:    device,
			SessionID: sessionID,
			Index:     t.Index,
			Interface: t.Name,
			ShortName: models.ShortName(t.Name),
			Direction: t.Direction,
			From:      t.From,
			To:        t.To,
			Timestamp: now,
		},
	}

	eventBytes, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal transition event: %w", err)
	}

	ack, err := p.js.Publish(ctx, event.Subject, eventBytes, jetstream.WithMsgID(event.ID))
	if err != nil {
		return fmt.Errorf("failed to publish transition event: %w", err)
	}

	p.logger.Debug().
		Str("event_id", event.ID).
		Str("subject", event.Subject).
		Uint64("seq", ack.Sequence).
		Msg("Published transition event")

	return nil
}
