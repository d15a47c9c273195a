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

// Package ifwatch wires the interface monitor, the chat bot and the
// optional NATS and HTTP surfaces into one service.
package ifwatch

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/carverauto/ifwatch/pkg/events"
	"github.com/carverauto/ifwatch/pkg/logger"
	"github.com/carverauto/ifwatch/pkg/models"
	"github.com/carverauto/ifwatch/pkg/monitor"
	"github.com/carverauto/ifwatch/pkg/notify"
)

const (
	envCommunity = "SNMP_COMMUNITY"
	envPort      = "SNMP_PORT"

	defaultHistorySize = 100
)

var (
	errInvalidConfig   = errors.New("invalid configuration")
	errInvalidInterval = errors.New("monitor interval must be at least one second")
)

// MonitorConfig controls the poll loop.
type MonitorConfig struct {
	Interval models.Duration `json:"interval"`
	// AutoStart begins a session at startup instead of waiting for /start.
	AutoStart   bool   `json:"auto_start"`
	Destination string `json:"destination,omitempty"`
	HistorySize int    `json:"history_size,omitempty"`
}

// Config is the ifwatch configuration file.
type Config struct {
	Device     models.DeviceAddress `json:"device"`
	Monitor    MonitorConfig        `json:"monitor"`
	Chat       notify.Config        `json:"chat"`
	NATS       events.Config        `json:"nats"`
	ListenAddr string               `json:"listen_addr,omitempty"`
	APIKey     string               `json:"api_key,omitempty"`
	Logging    *logger.Config       `json:"logging,omitempty"`
}

// Validate fills defaults, applies the SNMP_COMMUNITY and SNMP_PORT
// environment fallbacks and checks the result.
func (c *Config) Validate() error {
	if err := c.applyEnv(); err != nil {
		return err
	}

	if c.Device.Configured() {
		c.Device = c.Device.WithDefaults()

		if err := c.Device.Validate(); err != nil {
			return fmt.Errorf("%w: device: %w", errInvalidConfig, err)
		}
	}

	if c.Monitor.Interval == 0 {
		c.Monitor.Interval = models.Duration(monitor.DefaultInterval)
	}

	if time.Duration(c.Monitor.Interval) < time.Second {
		return fmt.Errorf("%w: %w", errInvalidConfig, errInvalidInterval)
	}

	if c.Monitor.HistorySize <= 0 {
		c.Monitor.HistorySize = defaultHistorySize
	}

	c.Chat.Normalize()

	if err := c.Chat.Validate(); err != nil {
		return fmt.Errorf("%w: chat: %w", errInvalidConfig, err)
	}

	if c.NATS.Enabled() {
		c.NATS.Normalize()
	}

	if c.Logging == nil {
		c.Logging = logger.DefaultConfig()
	}

	return nil
}

func (c *Config) applyEnv() error {
	if c.Device.Community == "" {
		c.Device.Community = os.Getenv(envCommunity)
	}

	if raw := os.Getenv(envPort); raw != "" && c.Device.Port == 0 {
		port, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("%w: %s=%q", errInvalidConfig, envPort, raw)
		}

		c.Device.Port = port
	}

	return nil
}
