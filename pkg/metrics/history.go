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

package metrics

import (
	"sync"
	"time"
)

const defaultHistorySize = 100

// PollPoint is one poll as seen by the loop.
type PollPoint struct {
	Timestamp time.Time     `json:"timestamp"`
	Result    string        `json:"result"`
	Duration  time.Duration `json:"duration_ns"`
	Down      int           `json:"down"`
}

// PollHistory is a fixed-size ring of recent polls.
type PollHistory struct {
	mu     sync.RWMutex
	points []PollPoint
	pos    int
	full   bool
}

func NewPollHistory(size int) *PollHistory {
	if size <= 0 {
		size = defaultHistorySize
	}

	return &PollHistory{points: make([]PollPoint, size)}
}

func (h *PollHistory) Add(p PollPoint) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.points[h.pos] = p
	h.pos = (h.pos + 1) % len(h.points)

	if h.pos == 0 {
		h.full = true
	}
}

// Points returns the stored polls oldest first.
func (h *PollHistory) Points() []PollPoint {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if !h.full {
		out := make([]PollPoint, h.pos)
		copy(out, h.points[:h.pos])

		return out
	}

	out := make([]PollPoint, 0, len(h.points))
	out = append(out, h.points[h.pos:]...)
	out = append(out, h.points[:h.pos]...)

	return out
}

// Last returns the most recent poll, or nil when none was recorded.
func (h *PollHistory) Last() *PollPoint {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if !h.full && h.pos == 0 {
		return nil
	}

	idx := (h.pos - 1 + len(h.points)) % len(h.points)
	p := h.points[idx]

	return &p
}
