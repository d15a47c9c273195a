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

package notify

import (
	"fmt"
	"strings"
)

// Supported chat providers.
const (
	ProviderSlack    = "slack"
	ProviderTelegram = "telegram"
	ProviderLog      = "log"
)

// Config selects and authenticates the chat provider.
type Config struct {
	Provider      string `json:"provider"`
	SlackBotToken string `json:"slack_bot_token,omitempty"`
	SlackAppToken string `json:"slack_app_token,omitempty"`
	TelegramToken string `json:"telegram_token,omitempty"`
	// APIURL overrides the provider's API endpoint.
	APIURL string `json:"api_url,omitempty"`
	// AllowedDestinations restricts which chats may issue commands. Empty allows all.
	AllowedDestinations []string `json:"allowed_destinations,omitempty"`
}

// Normalize lowercases the provider name and defaults it to log.
func (c *Config) Normalize() {
	c.Provider = strings.ToLower(strings.TrimSpace(c.Provider))
	if c.Provider == "" {
		c.Provider = ProviderLog
	}
}

// Validate checks that the selected provider has its credentials.
func (c *Config) Validate() error {
	switch c.Provider {
	case ProviderLog, "":
		return nil
	case ProviderSlack:
		if c.SlackBotToken == "" || c.SlackAppToken == "" {
			return fmt.Errorf("%w: slack needs slack_bot_token and slack_app_token", ErrMissingToken)
		}
	case ProviderTelegram:
		if c.TelegramToken == "" {
			return fmt.Errorf("%w: telegram needs telegram_token", ErrMissingToken)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownProvider, c.Provider)
	}

	return nil
}

// Allowed reports whether destination may issue commands.
func (c *Config) Allowed(destination string) bool {
	if len(c.AllowedDestinations) == 0 {
		return true
	}

	for _, d := range c.AllowedDestinations {
		if d == destination {
			return true
		}
	}

	return false
}
