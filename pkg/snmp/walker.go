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

// Package snmp walks indexed MIB tables on a single device and returns the
// raw index to value maps consumed by the interface table builder.
package snmp

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/carverauto/ifwatch/pkg/logger"
	"github.com/carverauto/ifwatch/pkg/models"
	"github.com/gosnmp/gosnmp"
)

// RawIndexMap maps a table row index to its rendered value.
type RawIndexMap map[int]string

// WalkResult is the outcome of a single table walk. Rows holds whatever was
// collected before Err, so a walk that failed after zero rows can be told
// apart from a table that is genuinely empty. Truncated is set when the walk stopped at the device's MaxRows cap rather
// than at the end of the column.
type WalkResult struct {
	Rows      RawIndexMap
	Received  int
	Truncated bool
	Err       error
}

// IPIndexResult is the outcome of walking ipAdEntIfIndex. Rows maps a dotted
// IPv4 address to the decimal ifIndex that owns it.
type IPIndexResult struct {
	Rows      map[string]string
	Received  int
	Truncated bool
	Err       error
}

// Walker queries a device's SNMP agent.
type Walker interface {
	WalkTable(ctx context.Context, device models.DeviceAddress, root string) WalkResult
	WalkIPToIndex(ctx context.Context, device models.DeviceAddress) IPIndexResult
	GetScalar(ctx context.Context, device models.DeviceAddress, oid string) (string, error)
}

// Client is the gosnmp-backed Walker. It opens a new session per call and
// never retries beyond the per-request retries configured on the device.
type Client struct {
	dial   Dialer
	logger logger.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithDialer replaces the session factory, mainly for tests.
func WithDialer(d Dialer) Option {
	return func(c *Client) {
		c.dial = d
	}
}

// NewClient creates a Walker.
func NewClient(log logger.Logger, opts ...Option) *Client {
	c := &Client{
		dial:   DialGoSNMP,
		logger: log,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

var _ Walker = (*Client)(nil)

// WalkTable walks the column rooted at root and keys each value by the last
// OID component. The walk ends at the end of the subtree, after MaxRows rows,
// or at the first index lower than its predecessor. A repeated index
// overwrites the earlier value.
func (c *Client) WalkTable(ctx context.Context, device models.DeviceAddress, root string) WalkResult {
	device = device.WithDefaults()
	result := WalkResult{Rows: make(RawIndexMap)}

	last := -1

	result.Err = c.walk(ctx, device, root, func(pdu gosnmp.SnmpPDU) error {
		idx, err := tableIndex(pdu.Name)
		if err != nil {
			c.logger.Debug().Str("oid", pdu.Name).Msg("Skipping row with non-numeric index")

			return nil
		}

		if idx < last {
			return errEndOfTable
		}

		last = idx

		value, err := renderValue(pdu)
		if errors.Is(err, ErrNoValue) {
			return errEndOfTable
		}

		if err != nil {
			return err
		}

		result.Rows[idx] = value
		result.Received++

		if result.Received >= device.MaxRows {
			result.Truncated = true

			return errEndOfTable
		}

		return nil
	})

	c.logWalk(device, root, result.Received, result.Truncated, result.Err)

	return result
}

// WalkIPToIndex walks ipAdEntIfIndex. The row key is the IPv4 address encoded
// in the last four OID components.
func (c *Client) WalkIPToIndex(ctx context.Context, device models.DeviceAddress) IPIndexResult {
	device = device.WithDefaults()
	result := IPIndexResult{Rows: make(map[string]string)}

	var last []int

	result.Err = c.walk(ctx, device, OIDIPAdEntIfIdx, func(pdu gosnmp.SnmpPDU) error {
		ip, key, ok := ipFromOID(pdu.Name)
		if !ok {
			return nil
		}

		if last != nil && compareOIDKeys(key, last) < 0 {
			return errEndOfTable
		}

		last = key

		value, err := renderValue(pdu)
		if errors.Is(err, ErrNoValue) {
			return errEndOfTable
		}

		if err != nil {
			return err
		}

		result.Rows[ip] = value
		result.Received++

		if result.Received >= device.MaxRows {
			result.Truncated = true

			return errEndOfTable
		}

		return nil
	})

	c.logWalk(device, OIDIPAdEntIfIdx, result.Received, result.Truncated, result.Err)

	return result
}

// GetScalar fetches a single object.
func (c *Client) GetScalar(ctx context.Context, device models.DeviceAddress, oid string) (string, error) {
	device = device.WithDefaults()

	conn, err := c.dial(ctx, device)
	if err != nil {
		return "", transportErr(err)
	}
	defer c.closeConn(conn)

	packet, err := conn.Get([]string{oid})
	if err != nil {
		return "", fmt.Errorf("%w: get %s: %w", ErrTransport, oid, err)
	}

	if packet == nil || len(packet.Variables) == 0 {
		return "", fmt.Errorf("%w: %s", ErrNoValue, oid)
	}

	return renderValue(packet.Variables[0])
}

// Uptime reads sysUpTime and converts the hundredths of a second it reports.
func Uptime(ctx context.Context, w Walker, device models.DeviceAddress) (time.Duration, error) {
	raw, err := w.GetScalar(ctx, device, OIDSysUpTime)
	if err != nil {
		return 0, err
	}

	ticks, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: sysUpTime %q", ErrConvert, raw)
	}

	return time.Duration(ticks) * 10 * time.Millisecond, nil
}

func (c *Client) walk(ctx context.Context, device models.DeviceAddress, root string, fn gosnmp.WalkFunc) error {
	conn, err := c.dial(ctx, device)
	if err != nil {
		return transportErr(err)
	}
	defer c.closeConn(conn)

	walkFn := func(pdu gosnmp.SnmpPDU) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		return fn(pdu)
	}

	if device.Version == "1" {
		err = conn.Walk(root, walkFn)
	} else {
		err = conn.BulkWalk(root, walkFn)
	}

	switch {
	case err == nil, errors.Is(err, errEndOfTable):
		return nil
	case errors.Is(err, ErrConvert):
		return err
	default:
		return fmt.Errorf("%w: walk %s on %s: %w", ErrTransport, root, device.Endpoint(), err)
	}
}

func (c *Client) closeConn(conn Conn) {
	if err := conn.Close(); err != nil {
		c.logger.Debug().Err(err).Msg("Failed to close SNMP session")
	}
}

func (c *Client) logWalk(device models.DeviceAddress, root string, rows int, truncated bool, err error) {
	ev := c.logger.Debug()
	if err != nil {
		ev = c.logger.Warn().Err(err)
	}

	ev.Str("device", device.Host).
		Str("root", root).
		Int("rows", rows).
		Bool("truncated", truncated).
		Msg("SNMP walk finished")
}

func transportErr(err error) error {
	if errors.Is(err, ErrTransport) {
		return err
	}

	return fmt.Errorf("%w: %w", ErrTransport, err)
}

func tableIndex(oid string) (int, error) {
	i := strings.LastIndex(oid, ".")

	return strconv.Atoi(oid[i+1:])
}

// ipFromOID returns the dotted address and its numeric components from the
// last four parts of an OID.
func ipFromOID(oid string) (string, []int, bool) {
	parts := strings.Split(strings.TrimPrefix(oid, "."), ".")
	if len(parts) < ipv4OIDComponent+1 {
		return "", nil, false
	}

	parts = parts[len(parts)-ipv4OIDComponent:]
	key := make([]int, ipv4OIDComponent)

	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 || n > 255 {
			return "", nil, false
		}

		key[i] = n
	}

	return strings.Join(parts, "."), key, true
}

func compareOIDKeys(a, b []int) int {
	for i := range a {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}

			return 1
		}
	}

	return 0
}
