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
	"strings"

	"github.com/carverauto/ifwatch/pkg/logger"
	"github.com/slack-go/slack"
	"github.com/slack-go/slack/socketmode"
)

// SlashCommand is the slash command that takes the subcommand as its text,
// as in "/ifwatch status".
const SlashCommand = "/ifwatch"

// Responder runs a command and delivers its reply.
type Responder interface {
	Respond(ctx context.Context, destination, text string) error
}

type acker interface {
	Ack(req socketmode.Request, payload ...interface{})
}

// SlackTransport receives slash commands over Slack socket mode.
type SlackTransport struct {
	client    *socketmode.Client
	responder Responder
	logger    logger.Logger
}

// NewSlackTransport creates a socket-mode client from the bot and app-level tokens.
func NewSlackTransport(botToken, appToken, apiURL string, responder Responder, log logger.Logger) *SlackTransport {
	opts := []slack.Option{slack.OptionAppLevelToken(appToken)}
	if apiURL != "" {
		opts = append(opts, slack.OptionAPIURL(apiURL))
	}

	api := slack.New(botToken, opts...)

	return &SlackTransport{
		client:    socketmode.New(api),
		responder: responder,
		logger:    log,
	}
}

// Run connects and serves commands until ctx is cancelled.
func (t *SlackTransport) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		errCh <- t.client.RunContext(ctx)
	}()

	t.logger.Info().Msg("Slack bot running in socket mode")

	serveErr := serveSlackEvents(ctx, t.client.Events, t.client, t.responder, t.logger)

	if err := <-errCh; err != nil && ctx.Err() == nil {
		return err
	}

	return serveErr
}

func serveSlackEvents(ctx context.Context, events <-chan socketmode.Event, ack acker, responder Responder, log logger.Logger) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case evt, ok := <-events:
			if !ok {
				return nil
			}

			switch evt.Type {
			case socketmode.EventTypeConnecting:
				log.Debug().Msg("socketmode: connecting")
			case socketmode.EventTypeConnected:
				log.Info().Msg("socketmode: connected")
			case socketmode.EventTypeConnectionError:
				log.Error().Interface("data", evt.Data).Msg("socketmode: connection error")
			case socketmode.EventTypeSlashCommand:
				cmd, ok := evt.Data.(slack.SlashCommand)
				if !ok {
					log.Warn().Msgf("socketmode: unexpected slash command payload %T", evt.Data)

					continue
				}

				if evt.Request != nil {
					ack.Ack(*evt.Request)
				}

				text := slashText(cmd)

				log.Debug().
					Str("channel", cmd.ChannelID).
					Str("user", cmd.UserID).
					Str("command", text).
					Msg("Slash command received")

				if err := responder.Respond(ctx, cmd.ChannelID, text); err != nil {
					log.Warn().Err(err).Str("channel", cmd.ChannelID).Msg("Failed to answer slash command")
				}
			default:
				if evt.Request != nil {
					ack.Ack(*evt.Request)
				}
			}
		}
	}
}

// slashText maps "/ifwatch status" to "status" and "/status" to "/status".
func slashText(cmd slack.SlashCommand) string {
	if strings.EqualFold(cmd.Command, SlashCommand) {
		return cmd.Text
	}

	return strings.TrimSpace(cmd.Command + " " + cmd.Text)
}
