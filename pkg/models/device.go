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
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"
)

const (
	DefaultSNMPPort    = 161
	DefaultCommunity   = "public"
	DefaultSNMPVersion = "2c"
	DefaultSNMPTimeout = Duration(5 * time.Second)
	DefaultSNMPRetries = 1
	DefaultMaxRows     = 64
)

var (
	errUnsupportedVersion = errors.New("unsupported SNMP version")
	errInvalidPort        = errors.New("invalid SNMP port")
	errInvalidMaxRows     = errors.New("max_rows must be positive")
)

// DeviceAddress identifies the SNMP agent being monitored and how to query it.
type DeviceAddress struct {
	Host      string   `json:"host"`
	Port      int      `json:"port,omitempty"`
	Community string   `json:"community,omitempty"`
	Version   string   `json:"version,omitempty"`
	Timeout   Duration `json:"timeout,omitempty"`
	Retries   int      `json:"retries,omitempty"`
	MaxRows   int      `json:"max_rows,omitempty"`
}

// WithDefaults returns a copy with unset fields filled in.
func (d DeviceAddress) WithDefaults() DeviceAddress {
	if d.Port == 0 {
		d.Port = DefaultSNMPPort
	}

	if d.Community == "" {
		d.Community = DefaultCommunity
	}

	if d.Version == "" {
		d.Version = DefaultSNMPVersion
	}

	if d.Timeout == 0 {
		d.Timeout = DefaultSNMPTimeout
	}

	if d.Retries == 0 {
		d.Retries = DefaultSNMPRetries
	}

	if d.MaxRows == 0 {
		d.MaxRows = DefaultMaxRows
	}

	return d
}

// Validate checks the fields that WithDefaults cannot repair. An empty host is
// allowed: the device can be set at runtime.
func (d DeviceAddress) Validate() error {
	switch d.Version {
	case "", "1", "2c":
	default:
		return fmt.Errorf("%w: %q", errUnsupportedVersion, d.Version)
	}

	if d.Port < 0 || d.Port > 65535 {
		return fmt.Errorf("%w: %d", errInvalidPort, d.Port)
	}

	if d.MaxRows < 0 {
		return errInvalidMaxRows
	}

	return nil
}

// Configured reports whether a host has been set.
func (d *DeviceAddress) Configured() bool {
	return d != nil && d.Host != ""
}

// Endpoint returns host:port.
func (d DeviceAddress) Endpoint() string {
	port := d.Port
	if port == 0 {
		port = DefaultSNMPPort
	}

	return net.JoinHostPort(d.Host, strconv.Itoa(port))
}
