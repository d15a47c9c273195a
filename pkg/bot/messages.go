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

package bot

import (
	"fmt"
	"strings"
	"time"

	"github.com/carverauto/ifwatch/pkg/models"
)

const (
	msgQuerying          = "Querying router interfaces..."
	msgNotConfigured     = "No router configured.\nUse /target <host> to set one."
	msgConnectFailed     = "Failed to connect to router %s\nPlease check:\n- Router IP address\n- SNMP community string\n- Network connectivity"
	msgAlreadyMonitoring = "Monitoring is already active for router %s.\nUse /stop before monitoring %s."
	msgStopped           = "Interface monitoring stopped!\n\nRouter: %s\nUse /start to resume monitoring."
	msgNotActive         = "Monitoring is not currently active.\nUse /start to begin monitoring."
	msgQueryFailed       = "Failed to query router at %s\nError: %v"
	msgNoData            = "No interface data found on router %s"
	msgUptime            = "Router uptime - %s\n\n%s"
	msgTargetUsage       = "Usage: /target <host>\nCurrent router: %s"
	msgTargetWhileActive = "Cannot change the router while monitoring is active.\nUse /stop first."
	msgTargetSet         = "Router set to %s\nUse /start to begin monitoring."
	msgInvalidTarget     = "Invalid router address: %v"

	tableRule = 45
)

const commandList = "/start - Start monitoring\n" +
	"/stop - Stop monitoring\n" +
	"/status - Display interface table\n" +
	"/uptime - Show router uptime\n" +
	"/target <host> - Set the router to monitor\n" +
	"/help - Show this message"

func welcomeText(started bool, host string, interval time.Duration) string {
	head := "Interface monitoring started!"
	if !started {
		head = "Interface monitoring restarted!"
	}

	return fmt.Sprintf("%s\n\nCommands:\n%s\n\nMonitoring router: %s\nCheck interval: %d seconds",
		head, commandList, host, int(interval.Seconds()))
}

func helpText() string {
	return "Available commands:\n" + commandList
}

func unknownText() string {
	return "Unknown command found.\n\n" + helpText()
}

// FormatTable renders the interface table shown by /status.
func FormatTable(host string, snap models.Snapshot) string {
	lines := []string{
		"Router Interface Status - " + host,
		strings.Repeat("=", tableRule),
		fmt.Sprintf("%-12s | %-20s | %-8s", "Interface", "IP Address", "Status"),
		strings.Repeat("-", tableRule),
	}

	for _, rec := range snap.Records() {
		lines = append(lines, fmt.Sprintf("%-12s | %-20s | %-8s", rec.ShortName(), rec.IPDisplay(), rec.Status))
	}

	return strings.Join(lines, "\n")
}

// FormatUptime renders d as "3d 4h 5m 6s", dropping leading zero units.
func FormatUptime(d time.Duration) string {
	d = d.Truncate(time.Second)

	days := int(d / (24 * time.Hour))
	d -= time.Duration(days) * 24 * time.Hour
	hours := int(d / time.Hour)
	d -= time.Duration(hours) * time.Hour
	minutes := int(d / time.Minute)
	seconds := int((d - time.Duration(minutes)*time.Minute) / time.Second)

	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh %dm %ds", days, hours, minutes, seconds)
	case hours > 0:
		return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
	case minutes > 0:
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	default:
		return fmt.Sprintf("%ds", seconds)
	}
}
