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
	"strings"

	"github.com/carverauto/ifwatch/pkg/models"
)

const (
	noticeNotConfigured = "No router configured. Use /target <address> to set one, then /start."
	noticeUnreachable   = "Unable to reach router %s. Will keep retrying every %s."
)

// FormatAlert renders the transition alert for one tick.
func FormatAlert(router string, diff DiffResult) string {
	var b strings.Builder

	b.WriteString("INTERFACE STATUS CHANGE ALERT!\n\n")

	for _, t := range diff.Transitions {
		b.WriteString(t.Text())
		b.WriteString("\n")
	}

	b.WriteString("\nCurrently down: ")

	if len(diff.Down) == 0 {
		b.WriteString("none")
	} else {
		b.WriteString(strings.Join(shortNames(diff.Down), ", "))
	}

	fmt.Fprintf(&b, "\n\nRouter: %s", router)

	return b.String()
}

// FormatStatus renders the standing status message.
func FormatStatus(router string, down []models.InterfaceRecord) string {
	if len(down) == 0 {
		return fmt.Sprintf("INTERFACE STATUS REPORT\n\nRouter: %s\n\nAll interfaces UP", router)
	}

	var b strings.Builder

	fmt.Fprintf(&b, "DOWN INTERFACES REPORT\n\nRouter: %s\n\nCurrently down interfaces:\n", router)

	for _, name := range shortNames(down) {
		fmt.Fprintf(&b, "- %s\n", name)
	}

	fmt.Fprintf(&b, "\nTotal: %d interfaces down", len(down))

	return b.String()
}

func shortNames(records []models.InterfaceRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.ShortName()
	}

	return out
}
