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

import "errors"

var (
	// ErrTransport wraps any network or protocol failure talking to the agent.
	ErrTransport = errors.New("snmp transport error")
	// ErrConvert is returned when a PDU value does not match its declared type.
	ErrConvert = errors.New("snmp value conversion failed")
	// ErrNoValue is returned for noSuchObject, noSuchInstance and endOfMibView responses.
	ErrNoValue = errors.New("snmp object has no value")
	// ErrUnsupportedVersion is returned for versions other than 1 and 2c.
	ErrUnsupportedVersion = errors.New("unsupported SNMP version")

	errEndOfTable = errors.New("end of table")
)
