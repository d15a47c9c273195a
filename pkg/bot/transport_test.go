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
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/carverauto/ifwatch/pkg/logger"
	"github.com/carverauto/ifwatch/pkg/notify"
	"github.com/jonboulle/clockwork"
	"github.com/slack-go/slack"
	"github.com/slack-go/slack/socketmode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type call struct {
	dest string
	text string
}

type recordingResponder struct {
	mu    sync.Mutex
	calls []call
}

func (r *recordingResponder) Respond(_ context.Context, dest, text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.calls = append(r.calls, call{dest: dest, text: text})

	return nil
}

func (r *recordingResponder) snapshot() []call {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]call(nil), r.calls...)
}

type recordingAcker struct {
	acked []string
}

func (a *recordingAcker) Ack(req socketmode.Request, _ ...interface{}) {
	a.acked = append(a.acked, req.EnvelopeID)
}

func TestServeSlackEvents(t *testing.T) {
	events := make(chan socketmode.Event, 4)
	events <- socketmode.Event{Type: socketmode.EventTypeConnected}
	events <- socketmode.Event{
		Type:    socketmode.EventTypeSlashCommand,
		Data:    slack.SlashCommand{Command: "/ifwatch", Text: "status", ChannelID: "C1"},
		Request: &socketmode.Request{EnvelopeID: "e1"},
	}
	events <- socketmode.Event{
		Type:    socketmode.EventTypeSlashCommand,
		Data:    slack.SlashCommand{Command: "/target", Text: "10.0.0.1", ChannelID: "C2"},
		Request: &socketmode.Request{EnvelopeID: "e2"},
	}
	close(events)

	responder := &recordingResponder{}
	ack := &recordingAcker{}

	err := serveSlackEvents(context.Background(), events, ack, responder, logger.NewTestLogger())
	require.NoError(t, err)

	assert.Equal(t, []string{"e1", "e2"}, ack.acked)
	assert.Equal(t, []call{{dest: "C1", text: "status"}, {dest: "C2", text: "/target 10.0.0.1"}}, responder.snapshot())
}

func TestServeSlackEventsStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := serveSlackEvents(ctx, make(chan socketmode.Event), &recordingAcker{}, &recordingResponder{}, logger.NewTestLogger())
	require.NoError(t, err)
}

var errBadGateway = errors.New("bad gateway")

type scriptedUpdates struct {
	mu      sync.Mutex
	batches [][]notify.TelegramUpdate
	errs    []error
	offsets []int64
}

func (s *scriptedUpdates) GetUpdates(ctx context.Context, offset int64, _ time.Duration) ([]notify.TelegramUpdate, error) {
	s.mu.Lock()
	s.offsets = append(s.offsets, offset)

	if len(s.errs) > 0 {
		err := s.errs[0]
		s.errs = s.errs[1:]
		s.mu.Unlock()

		return nil, err
	}

	if len(s.batches) > 0 {
		b := s.batches[0]
		s.batches = s.batches[1:]
		s.mu.Unlock()

		return b, nil
	}
	s.mu.Unlock()

	<-ctx.Done()

	return nil, ctx.Err()
}

func (s *scriptedUpdates) seenOffsets() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]int64(nil), s.offsets...)
}

func TestTelegramTransportDispatchesCommands(t *testing.T) {
	updates := &scriptedUpdates{batches: [][]notify.TelegramUpdate{{
		{UpdateID: 10, Message: &notify.TelegramMessage{Chat: notify.TelegramChat{ID: 42}, Text: "/status"}},
		{UpdateID: 11, Message: &notify.TelegramMessage{Chat: notify.TelegramChat{ID: 42}, Text: "hello"}},
		{UpdateID: 12},
	}}}
	responder := &recordingResponder{}
	transport := NewTelegramTransport(updates, responder, clockwork.NewFakeClock(), logger.NewTestLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	go func() { done <- transport.Run(ctx) }()

	require.Eventually(t, func() bool { return len(updates.seenOffsets()) == 2 }, time.Second, 5*time.Millisecond)
	cancel()
	require.NoError(t, <-done)

	assert.Equal(t, []call{{dest: "42", text: "/status"}}, responder.snapshot())
	assert.Equal(t, []int64{0, 13}, updates.seenOffsets())
}

func TestTelegramTransportBacksOffOnError(t *testing.T) {
	clock := clockwork.NewFakeClock()
	updates := &scriptedUpdates{errs: []error{errBadGateway}}
	transport := NewTelegramTransport(updates, &recordingResponder{}, clock, logger.NewTestLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)

	go func() { done <- transport.Run(ctx) }()

	require.NoError(t, clock.BlockUntilContext(ctx, 1))
	assert.Len(t, updates.seenOffsets(), 1)

	clock.Advance(telegramRetryBackoff)

	require.Eventually(t, func() bool { return len(updates.seenOffsets()) == 2 }, time.Second, 5*time.Millisecond)
	cancel()
	require.NoError(t, <-done)
}
