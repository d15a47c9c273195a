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
	"fmt"

	"github.com/carverauto/ifwatch/pkg/models"
)

// Direction is the side of the Up/Down boundary an interface moved to.
type Direction string

const (
	DirectionDown Direction = "down"
	DirectionUp   Direction = "up"
)

// Transition is an interface crossing the Up/Down boundary between two polls.
type Transition struct {
	Index     int                    `json:"index"`
	Name      string                 `json:"name"`
	Direction Direction              `json:"direction"`
	From      models.InterfaceStatus `json:"from"`
	To        models.InterfaceStatus `json:"to"`
}

// Text renders the alert line, e.g. "Interface Gi0/1 went DOWN".
func (t Transition) Text() string {
	if t.Direction == DirectionDown {
		return fmt.Sprintf("Interface %s went DOWN", models.ShortName(t.Name))
	}

	return fmt.Sprintf("Interface %s came UP", models.ShortName(t.Name))
}

// DiffResult is the comparison of a poll against the cached one.
type DiffResult struct {
	Transitions []Transition
	Down        []models.InterfaceRecord
}

// Diff compares cur against prev. Only indices present in both snapshots can
// transition, and only between Up and Down; Testing and Unknown never do.
// Down lists every record of cur whose status is Down.
func Diff(prev, cur models.Snapshot) DiffResult {
	result := DiffResult{Down: cur.Down()}

	for _, idx := range cur.Indices() {
		before, ok := prev[idx]
		if !ok {
			continue
		}

		now := cur[idx]

		switch {
		case before.Status == models.StatusUp && now.Status == models.StatusDown:
			result.Transitions = append(result.Transitions, Transition{
				Index: idx, Name: now.Name, Direction: DirectionDown, From: before.Status, To: now.Status,
			})
		case before.Status == models.StatusDown && now.Status == models.StatusUp:
			result.Transitions = append(result.Transitions, Transition{
				Index: idx, Name: now.Name, Direction: DirectionUp, From: before.Status, To: now.Status,
			})
		}
	}

	return result
}
