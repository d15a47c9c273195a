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

package iftable

import (
	"sort"
	"strconv"
	"strings"

	"github.com/carverauto/ifwatch/pkg/models"
	"github.com/carverauto/ifwatch/pkg/snmp"
)

var excludedPrefixes = []string{"lo", "null", "voi"}

// Excluded reports whether an interface is loopback, null or voice and is
// therefore left out of snapshots.
func Excluded(name string) bool {
	lower := strings.ToLower(name)

	for _, p := range excludedPrefixes {
		if strings.HasPrefix(lower, p) {
			return true
		}
	}

	return false
}

// Join correlates the three raw tables by ifIndex. Every key of names that
// survives the exclusion filter yields exactly one record; a missing status
// becomes Unknown and a missing address list stays empty.
func Join(names, statuses snmp.RawIndexMap, ipToIndex map[string]string) models.Snapshot {
	addrs := invertAddresses(ipToIndex)
	snapshot := make(models.Snapshot, len(names))

	for idx, name := range names {
		if Excluded(name) {
			continue
		}

		snapshot[idx] = models.InterfaceRecord{
			Index:       idx,
			Name:        name,
			IPAddresses: addrs[idx],
			Status:      models.StatusFromCode(statuses[idx]),
		}
	}

	return snapshot
}

func invertAddresses(ipToIndex map[string]string) map[int][]string {
	out := make(map[int][]string)

	for ip, raw := range ipToIndex {
		idx, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			continue
		}

		out[idx] = append(out[idx], ip)
	}

	for idx := range out {
		sort.Strings(out[idx])
	}

	return out
}
