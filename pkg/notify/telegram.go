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
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/carverauto/ifwatch/pkg/logger"
)

// DefaultTelegramAPIURL is the public Bot API endpoint.
const DefaultTelegramAPIURL = "https://api.telegram.org"

// getUpdates long polls hold the request open, so the client timeout must
// exceed the poll timeout.
const defaultTelegramTimeout = 60 * time.Second

var errTelegramAPI = errors.New("telegram api error")

// TelegramClient speaks the subset of the Telegram Bot API used here:
// sendMessage, deleteMessage and getUpdates. It implements Sink.
type TelegramClient struct {
	token   string
	baseURL string
	http    *http.Client
	logger  logger.Logger
}

// TelegramOption configures a TelegramClient.
type TelegramOption func(*TelegramClient)

// WithTelegramAPIURL points the client at another Bot API server.
func WithTelegramAPIURL(u string) TelegramOption {
	return func(c *TelegramClient) {
		if u != "" {
			c.baseURL = u
		}
	}
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(hc *http.Client) TelegramOption {
	return func(c *TelegramClient) {
		c.http = hc
	}
}

// NewTelegramClient creates a client for the bot identified by token.
func NewTelegramClient(token string, log logger.Logger, opts ...TelegramOption) *TelegramClient {
	c := &TelegramClient{
		token:   token,
		baseURL: DefaultTelegramAPIURL,
		http:    &http.Client{Timeout: defaultTelegramTimeout},
		logger:  log,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

var _ Sink = (*TelegramClient)(nil)

type telegramResponse struct {
	OK          bool            `json:"ok"`
	Description string          `json:"description,omitempty"`
	ErrorCode   int             `json:"error_code,omitempty"`
	Result      json.RawMessage `json:"result,omitempty"`
}

// TelegramChat is the chat a message belongs to.
type TelegramChat struct {
	ID int64 `json:"id"`
}

// TelegramMessage is an incoming or sent message.
type TelegramMessage struct {
	MessageID int64        `json:"message_id"`
	Chat      TelegramChat `json:"chat"`
	Text      string       `json:"text"`
}

// TelegramUpdate is one entry returned by getUpdates.
type TelegramUpdate struct {
	UpdateID int64            `json:"update_id"`
	Message  *TelegramMessage `json:"message,omitempty"`
}

func (c *TelegramClient) Send(ctx context.Context, destination, text string) (MessageHandle, error) {
	var msg TelegramMessage

	err := c.call(ctx, "sendMessage", map[string]interface{}{
		"chat_id": destination,
		"text":    text,
	}, &msg)
	if err != nil {
		return "", fmt.Errorf("%w: telegram chat %s: %w", ErrSendFailed, destination, err)
	}

	return MessageHandle(strconv.FormatInt(msg.MessageID, 10)), nil
}

func (c *TelegramClient) Delete(ctx context.Context, destination string, handle MessageHandle) error {
	id, err := strconv.ParseInt(string(handle), 10, 64)
	if err != nil {
		return fmt.Errorf("%w: invalid telegram message id %q", ErrDeleteFailed, handle)
	}

	var ok bool

	if err := c.call(ctx, "deleteMessage", map[string]interface{}{
		"chat_id":    destination,
		"message_id": id,
	}, &ok); err != nil {
		return fmt.Errorf("%w: telegram chat %s message %d: %w", ErrDeleteFailed, destination, id, err)
	}

	return nil
}

// GetUpdates long-polls for updates with an id of at least offset.
func (c *TelegramClient) GetUpdates(ctx context.Context, offset int64, timeout time.Duration) ([]TelegramUpdate, error) {
	var updates []TelegramUpdate

	err := c.call(ctx, "getUpdates", map[string]interface{}{
		"offset":          offset,
		"timeout":         int(timeout.Seconds()),
		"allowed_updates": []string{"message"},
	}, &updates)
	if err != nil {
		return nil, fmt.Errorf("telegram getUpdates: %w", err)
	}

	return updates, nil
}

func (c *TelegramClient) call(ctx context.Context, method string, payload, result interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	endpoint := fmt.Sprintf("%s/bot%s/%s", c.baseURL, c.token, method)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create %s request: %w", method, withoutURL(err))
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("send %s request: %w", method, withoutURL(err))
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.logger.Debug().Err(cerr).Msg("Failed to close telegram response body")
		}
	}()

	var tr telegramResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return fmt.Errorf("decode %s response (status %d): %w", method, resp.StatusCode, err)
	}

	if !tr.OK {
		return fmt.Errorf("%w: %s: %d %s", errTelegramAPI, method, tr.ErrorCode, tr.Description)
	}

	if result == nil || len(tr.Result) == 0 {
		return nil
	}

	return json.Unmarshal(tr.Result, result)
}

// withoutURL drops the request URL from transport errors. The Bot API URL
// embeds the token.
func withoutURL(err error) error {
	var ue *url.Error
	if errors.As(err, &ue) {
		return ue.Err
	}

	return err
}
