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

// Package notify delivers text messages to a chat destination and removes
// previously sent ones.
package notify

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"
)

//go:generate mockgen -destination=mock_sink.go -package=notify github.com/carverauto/ifwatch/pkg/notify Sink

// MaxMessageLength is the longest message accepted by the chat providers.
const MaxMessageLength = 4096

var (
	// ErrSendFailed is returned when the provider rejects a message.
	ErrSendFailed = errors.New("message delivery failed")
	// ErrDeleteFailed is returned when the provider refuses to delete a message.
	ErrDeleteFailed = errors.New("message deletion failed")
	// ErrUnknownProvider is returned for an unsupported chat provider name.
	ErrUnknownProvider = errors.New("unknown chat provider")
	// ErrMissingToken is returned when a provider is selected without credentials.
	ErrMissingToken = errors.New("chat provider token is required")
)

// MessageHandle identifies a delivered message so it can be deleted later.
type MessageHandle string

// Sink sends and deletes chat messages.
type Sink interface {
	Send(ctx context.Context, destination, text string) (MessageHandle, error)
	Delete(ctx context.Context, destination string, handle MessageHandle) error
}

// CodeBlock wraps text in a fenced block so tables keep their alignment.
func CodeBlock(text string) string {
	return "```\n" + text + "\n```"
}

// SplitMessage breaks text into chunks of at most limit bytes, preferring
// line boundaries. Lines longer than limit are cut on rune boundaries.
func SplitMessage(text string, limit int) []string {
	if limit <= 0 || len(text) <= limit {
		return []string{text}
	}

	var (
		chunks []string
		cur    strings.Builder
	)

	flush := func() {
		if cur.Len() > 0 {
			chunks = append(chunks, strings.TrimSuffix(cur.String(), "\n"))
			cur.Reset()
		}
	}

	for _, line := range strings.SplitAfter(text, "\n") {
		for len(line) > limit {
			flush()

			cut := limit
			for cut > 0 && !utf8.RuneStart(line[cut]) {
				cut--
			}

			if cut == 0 {
				cut = limit
			}

			chunks = append(chunks, line[:cut])
			line = line[cut:]
		}

		if cur.Len()+len(line) > limit {
			flush()
		}

		cur.WriteString(line)
	}

	flush()

	return chunks
}
