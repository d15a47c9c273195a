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

// Package iftable builds interface snapshots from the ifTable and
// ipAddrTable of a device.
package iftable

import (
	"context"
	"errors"
	"fmt"

	"github.com/carverauto/ifwatch/pkg/logger"
	"github.com/carverauto/ifwatch/pkg/models"
	"github.com/carverauto/ifwatch/pkg/snmp"
)

// RowCounts records how many rows each walk returned.
type RowCounts struct {
	Names     int `json:"names"`
	Statuses  int `json:"statuses"`
	Addresses int `json:"addresses"`
}

// PollResult is the outcome of one Build. Snapshot is always populated from
// whatever the walks collected; Err is non-nil when any walk failed and then
// wraps ErrPartialData together with the walk errors. Truncated is set when
// any walk stopped at the device's max_rows cap, in which case the snapshot
// may be missing interfaces.
type PollResult struct {
	Snapshot  models.Snapshot
	Rows      RowCounts
	Truncated bool
	Err       error
}

// OK reports whether every walk completed.
func (r PollResult) OK() bool {
	return r.Err == nil
}

// Builder polls a device and joins the results into a Snapshot.
type Builder struct {
	walker snmp.Walker
	logger logger.Logger
}

// NewBuilder creates a Builder backed by walker.
func NewBuilder(walker snmp.Walker, log logger.Logger) *Builder {
	return &Builder{
		walker: walker,
		logger: log,
	}
}

// Build walks ifDescr, ifOperStatus and ipAdEntIfIndex and joins them. The
// only error it returns is ErrNoTargetConfigured; walk failures are reported
// through PollResult.Err.
func (b *Builder) Build(ctx context.Context, device *models.DeviceAddress) (PollResult, error) {
	if !device.Configured() {
		return PollResult{Snapshot: models.Snapshot{}}, ErrNoTargetConfigured
	}

	names := b.walker.WalkTable(ctx, *device, snmp.OIDIfDescr)
	statuses := b.walker.WalkTable(ctx, *device, snmp.OIDIfOperStatus)
	addrs := b.walker.WalkIPToIndex(ctx, *device)

	result := PollResult{
		Snapshot: Join(names.Rows, statuses.Rows, addrs.Rows),
		Rows: RowCounts{
			Names:     names.Received,
			Statuses:  statuses.Received,
			Addresses: addrs.Received,
		},
		Truncated: names.Truncated || statuses.Truncated || addrs.Truncated,
	}

	if result.Truncated {
		b.logger.Warn().
			Str("device", device.Host).
			Int("max_rows", device.WithDefaults().MaxRows).
			Int("names", names.Received).
			Int("statuses", statuses.Received).
			Int("addresses", addrs.Received).
			Msg("Interface table truncated at max_rows")
	}

	if err := errors.Join(names.Err, statuses.Err, addrs.Err); err != nil {
		result.Err = fmt.Errorf("%w: %w", ErrPartialData, err)

		b.logger.Warn().
			Err(err).
			Str("device", device.Host).
			Int("interfaces", len(result.Snapshot)).
			Msg("Interface poll returned partial data")

		return result, nil
	}

	b.logger.Debug().
		Str("device", device.Host).
		Int("interfaces", len(result.Snapshot)).
		Int("addresses", addrs.Received).
		Msg("Interface poll complete")

	return result, nil
}
