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
	"context"
	"fmt"

	"github.com/carverauto/ifwatch/pkg/logger"
	"github.com/slack-go/slack"
)

// SlackAPI is the part of *slack.Client used by SlackSink.
type SlackAPI interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
	DeleteMessageContext(ctx context.Context, channel, messageTimestamp string) (string, string, error)
}

// SlackSink posts plain-text messages to a Slack channel. The message
// timestamp is used as the handle.
type SlackSink struct {
	api    SlackAPI
	logger logger.Logger
}

// NewSlackSink creates a Sink backed by a Slack Web API client.
func NewSlackSink(api SlackAPI, log logger.Logger) *SlackSink {
	return &SlackSink{api: api, logger: log}
}

var _ Sink = (*SlackSink)(nil)

func (s *SlackSink) Send(ctx context.Context, destination, text string) (MessageHandle, error) {
	_, ts, err := s.api.PostMessageContext(ctx, destination,
		slack.MsgOptionText(text, false),
		slack.MsgOptionDisableLinkUnfurl(),
	)
	if err != nil {
		return "", fmt.Errorf("%w: slack channel %s: %w", ErrSendFailed, destination, err)
	}

	s.logger.Debug().Str("channel", destination).Str("ts", ts).Msg("Posted Slack message")

	return MessageHandle(ts), nil
}

func (s *SlackSink) Delete(ctx context.Context, destination string, handle MessageHandle) error {
	if _, _, err := s.api.DeleteMessageContext(ctx, destination, string(handle)); err != nil {
		return fmt.Errorf("%w: slack channel %s ts %s: %w", ErrDeleteFailed, destination, handle, err)
	}

	return nil
}
