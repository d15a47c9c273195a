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
	"strings"
	"testing"

	"github.com/carverauto/ifwatch/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitMessageShort(t *testing.T) {
	assert.Equal(t, []string{"hello"}, SplitMessage("hello", MaxMessageLength))
	assert.Equal(t, []string{""}, SplitMessage("", MaxMessageLength))
}

func TestSplitMessageOnLineBoundaries(t *testing.T) {
	line := strings.Repeat("x", 40)
	text := strings.Repeat(line+"\n", 10)

	chunks := SplitMessage(text, 100)

	require.Len(t, chunks, 5)

	for _, c := range chunks {
		assert.LessOrEqual(t, len(c), 100)
		assert.Equal(t, line+"\n"+line, c)
	}
}

func TestSplitMessageLongLine(t *testing.T) {
	text := strings.Repeat("é", 30)

	chunks := SplitMessage(text, 7)

	assert.Equal(t, text, strings.Join(chunks, ""))

	for _, c := range chunks {
		assert.LessOrEqual(t, len(c), 7)
		assert.True(t, strings.HasPrefix(c, "é"))
	}
}

func TestCodeBlock(t *testing.T) {
	assert.Equal(t, "```\na | b\n```", CodeBlock("a | b"))
}

func TestLogSink(t *testing.T) {
	s := NewLogSink(logger.NewTestLogger())

	h1, err := s.Send(context.Background(), "C1", "one")
	require.NoError(t, err)

	h2, err := s.Send(context.Background(), "C1", "two")
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2)
	require.NoError(t, s.Delete(context.Background(), "C1", h1))
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr error
	}{
		{"default log", Config{}, nil},
		{"slack", Config{Provider: ProviderSlack, SlackBotToken: "xoxb", SlackAppToken: "xapp"}, nil},
		{"slack missing app token", Config{Provider: ProviderSlack, SlackBotToken: "xoxb"}, ErrMissingToken},
		{"telegram", Config{Provider: ProviderTelegram, TelegramToken: "123:abc"}, nil},
		{"telegram missing token", Config{Provider: ProviderTelegram}, ErrMissingToken},
		{"unknown", Config{Provider: "irc"}, ErrUnknownProvider},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			cfg.Normalize()

			err := cfg.Validate()
			if tt.wantErr == nil {
				require.NoError(t, err)

				return
			}

			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestConfigAllowed(t *testing.T) {
	open := Config{}
	assert.True(t, open.Allowed("anything"))

	restricted := Config{AllowedDestinations: []string{"C1", "-100"}}
	assert.True(t, restricted.Allowed("-100"))
	assert.False(t, restricted.Allowed("C2"))
}
