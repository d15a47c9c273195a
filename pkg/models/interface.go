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

package models

import (
	"sort"
	"strings"
)

// InterfaceStatus is the operational state of an interface as reported by ifOperStatus.
type InterfaceStatus string

const (
	StatusUp      InterfaceStatus = "UP"
	StatusDown    InterfaceStatus = "DOWN"
	StatusTesting InterfaceStatus = "TESTING"
	StatusUnknown InterfaceStatus = "UNKNOWN"
)

// NoIP is displayed for interfaces without an assigned IPv4 address.
const NoIP = "No IP"

// StatusFromCode maps a raw ifOperStatus value. Anything other than 1, 2 or 3,
// including a missing value, is Unknown.
func StatusFromCode(code string) InterfaceStatus {
	switch strings.TrimSpace(code) {
	case "1":
		return StatusUp
	case "2":
		return StatusDown
	case "3":
		return StatusTesting
	default:
		return StatusUnknown
	}
}

// InterfaceRecord is the joined view of one interface in a single poll.
type InterfaceRecord struct {
	Index       int             `json:"index"`
	Name        string          `json:"name"`
	IPAddresses []string        `json:"ip_addresses"`
	Status      InterfaceStatus `json:"status"`
}

// IPDisplay returns the addresses joined for display, or NoIP.
func (r InterfaceRecord) IPDisplay() string {
	if len(r.IPAddresses) == 0 {
		return NoIP
	}

	return strings.Join(r.IPAddresses, ", ")
}

// ShortName is the abbreviated interface name used in alerts and tables.
func (r InterfaceRecord) ShortName() string {
	return ShortName(r.Name)
}

var namePrefixes = []struct{ long, short string }{
	{"GigabitEthernet", "Gi"},
	{"FastEthernet", "Fa"},
	{"TenGigabitEthernet", "Te"},
	{"Serial", "Se"},
	{"Ethernet", "Et"},
}

// ShortName abbreviates common Cisco interface prefixes, e.g.
// GigabitEthernet0/1 becomes Gi0/1. Other names are returned unchanged.
func ShortName(name string) string {
	for _, p := range namePrefixes {
		if strings.HasPrefix(name, p.long) {
			return p.short + strings.TrimPrefix(name, p.long)
		}
	}

	return name
}

// Snapshot is the interface table of a single poll keyed by ifIndex.
type Snapshot map[int]InterfaceRecord

// Indices returns the snapshot keys in ascending order.
func (s Snapshot) Indices() []int {
	indices := make([]int, 0, len(s))
	for idx := range s {
		indices = append(indices, idx)
	}

	sort.Ints(indices)

	return indices
}

// Records returns the records ordered by index.
func (s Snapshot) Records() []InterfaceRecord {
	out := make([]InterfaceRecord, 0, len(s))
	for _, idx := range s.Indices() {
		out = append(out, s[idx])
	}

	return out
}

// Down returns the records whose status is Down, ordered by index.
func (s Snapshot) Down() []InterfaceRecord {
	var out []InterfaceRecord

	for _, idx := range s.Indices() {
		if s[idx].Status == StatusDown {
			out = append(out, s[idx])
		}
	}

	return out
}
