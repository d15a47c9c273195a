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
	"fmt"

	"github.com/gosnmp/gosnmp"
)

// renderValue converts a PDU value to the string stored in a RawIndexMap.
func renderValue(pdu gosnmp.SnmpPDU) (string, error) {
	switch pdu.Type {
	case gosnmp.OctetString, gosnmp.ObjectDescription, gosnmp.BitString, gosnmp.Opaque:
		b, ok := pdu.Value.([]byte)
		if !ok {
			return "", fmt.Errorf("%w: %s has type %T", ErrConvert, pdu.Name, pdu.Value)
		}

		return string(b), nil
	case gosnmp.IPAddress, gosnmp.ObjectIdentifier:
		s, ok := pdu.Value.(string)
		if !ok {
			return "", fmt.Errorf("%w: %s has type %T", ErrConvert, pdu.Name, pdu.Value)
		}

		return s, nil
	case gosnmp.Integer, gosnmp.Counter32, gosnmp.Gauge32, gosnmp.TimeTicks,
		gosnmp.Counter64, gosnmp.Uinteger32:
		return gosnmp.ToBigInt(pdu.Value).String(), nil
	case gosnmp.NoSuchObject, gosnmp.NoSuchInstance, gosnmp.EndOfMibView, gosnmp.Null:
		return "", fmt.Errorf("%w: %s", ErrNoValue, pdu.Name)
	default:
		return fmt.Sprint(pdu.Value), nil
	}
}
