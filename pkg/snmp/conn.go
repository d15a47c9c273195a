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

package snmp

import (
	"context"
	"fmt"
	"time"

	"github.com/carverauto/ifwatch/pkg/models"
	"github.com/gosnmp/gosnmp"
)

//go:generate mockgen -destination=mock_snmp.go -package=snmp github.com/carverauto/ifwatch/pkg/snmp Conn,Walker

// Conn is the part of a gosnmp session used by the walker.
type Conn interface {
	BulkWalk(rootOid string, walkFn gosnmp.WalkFunc) error
	Walk(rootOid string, walkFn gosnmp.WalkFunc) error
	Get(oids []string) (*gosnmp.SnmpPacket, error)
	Close() error
}

// Dialer opens a session to a device.
type Dialer func(ctx context.Context, device models.DeviceAddress) (Conn, error)

const defaultMaxRepetitions = 10

type goSNMPConn struct {
	*gosnmp.GoSNMP
}

func (c goSNMPConn) Close() error {
	if c.Conn == nil {
		return nil
	}

	return c.Conn.Close()
}

// DialGoSNMP is the default Dialer. It creates a gosnmp session for the
// device and connects its UDP socket.
func DialGoSNMP(ctx context.Context, device models.DeviceAddress) (Conn, error) {
	device = device.WithDefaults()

	client := &gosnmp.GoSNMP{
		Context:            ctx,
		Target:             device.Host,
		Port:               uint16(device.Port), //nolint:gosec // validated to be within 1-65535
		Community:          device.Community,
		Timeout:            time.Duration(device.Timeout),
		Retries:            device.Retries,
		MaxOids:            gosnmp.MaxOids,
		MaxRepetitions:     defaultMaxRepetitions,
		ExponentialTimeout: true,
	}

	switch device.Version {
	case "1":
		client.Version = gosnmp.Version1
	case "2c":
		client.Version = gosnmp.Version2c
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedVersion, device.Version)
	}

	if err := client.Connect(); err != nil {
		return nil, fmt.Errorf("%w: connect %s: %w", ErrTransport, device.Endpoint(), err)
	}

	return goSNMPConn{GoSNMP: client}, nil
}
