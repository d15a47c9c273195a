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

package monitor

import (
	"context"
	"time"

	"github.com/carverauto/ifwatch/pkg/iftable"
	"github.com/carverauto/ifwatch/pkg/models"
)

//go:generate mockgen -destination=mock_monitor.go -package=monitor github.com/carverauto/ifwatch/pkg/monitor SnapshotBuilder,EventPublisher

// SnapshotBuilder polls a device into a snapshot.
type SnapshotBuilder interface {
	Build(ctx context.Context, device *models.DeviceAddress) (iftable.PollResult, error)
}

// EventPublisher forwards transitions to an event bus.
type EventPublisher interface {
	PublishTransition(ctx context.Context, device, sessionID string, t Transition) error
}

// Metrics receives loop observations.
type Metrics interface {
	ObservePoll(result string, elapsed time.Duration, down int)
	ObserveTransition(direction string)
	ObserveNotification(kind string, err error)
	SetSessionActive(active bool)
}

// Poll results reported to Metrics.
const (
	PollOK            = "ok"
	PollFailed        = "failed"
	PollNotConfigured = "not_configured"
)

// Notification kinds reported to Metrics.
const (
	KindAlert  = "alert"
	KindStatus = "status"
	KindNotice = "notice"
	KindDelete = "delete"
)

type nopMetrics struct{}

func (nopMetrics) ObservePoll(string, time.Duration, int) {}
func (nopMetrics) ObserveTransition(string) {}
func (nopMetrics) ObserveNotification(string, error) {}
func (nopMetrics) SetSessionActive(bool) {}
