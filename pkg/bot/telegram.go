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
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/carverauto/ifwatch/pkg/logger"
	"github.com/carverauto/ifwatch/pkg/notify"
	"github.com/jonboulle/clockwork"
)

const (
	telegramPollTimeout  = 30 * time.Second
	telegramRetryBackoff = 5 * time.Second
)

// UpdateSource long polls for Telegram updates.
type UpdateSource interface {
	GetUpdates(ctx context.Context, offset int64, timeout time.Duration) ([]notify.TelegramUpdate, error)
}

// TelegramTransport receives commands through getUpdates long polling.
type TelegramTransport struct {
	updates   UpdateSource
	responder Responder
	clock     clockwork.Clock
	logger    logger.Logger
}

// NewTelegramTransport creates a transport polling updates. A nil clock
// uses the real clock.
func NewTelegramTransport(updates UpdateSource, responder Responder, clock clockwork.Clock, log logger.Logger) *TelegramTransport {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	return &TelegramTransport{
		updates:   updates,
		responder: responder,
		clock:     clock,
		logger:    log,
	}
}

// Run polls until ctx is cancelled. Failed polls are retried after a pause.
func (t *TelegramTransport) Run(ctx context.Context) error {
	var offset int64

	t.logger.Info().Msg("Telegram bot polling for updates")

	for {
		updates, err := t.updates.GetUpdates(ctx, offset, telegramPollTimeout)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}

			t.logger.Warn().Err(err).Msg("getUpdates failed")

			select {
			case <-ctx.Done():
				return nil
			case <-t.clock.After(telegramRetryBackoff):
			}

			continue
		}

		for _, u := range updates {
			offset = u.UpdateID + 1
			t.dispatch(ctx, u)
		}

		if ctx.Err() != nil {
			return nil
		}
	}
}

func (t *TelegramTransport) dispatch(ctx context.Context, u notify.TelegramUpdate) {
	if u.Message == nil || !strings.HasPrefix(u.Message.Text, "/") {
		return
	}

	chat := strconv.FormatInt(u.Message.Chat.ID, 10)

	if err := t.responder.Respond(ctx, chat, u.Message.Text); err != nil {
		t.logger.Warn().Err(err).Str("chat", chat).Msg("Failed to answer command")
	}
}
