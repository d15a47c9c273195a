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

// MIB-II objects read by the interface watcher.
const (
	OIDIfDescr       = ".1.3.6.1.2.1.2.2.1.2"
	OIDIfOperStatus  = ".1.3.6.1.2.1.2.2.1.8"
	OIDIPAdEntAddr   = ".1.3.6.1.2.1.4.20.1.1"
	OIDIPAdEntIfIdx  = ".1.3.6.1.2.1.4.20.1.2"
	OIDSysUpTime     = ".1.3.6.1.2.1.1.3.0"
	ipv4OIDComponent = 4
)
