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
	"strings"
	"testing"
	"time"

	"github.com/carverauto/ifwatch/pkg/iftable"
	"github.com/carverauto/ifwatch/pkg/logger"
	"github.com/carverauto/ifwatch/pkg/models"
	"github.com/carverauto/ifwatch/pkg/monitor"
	"github.com/carverauto/ifwatch/pkg/notify"
	"github.com/carverauto/ifwatch/pkg/snmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var errTimeout = errors.New("request timeout")

type fixture struct {
	session *MockSession
	builder *monitor.MockSnapshotBuilder
	walker  *snmp.MockWalker
	sink    *notify.MockSink
	handler *Handler
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	f := &fixture{
		session: NewMockSession(ctrl),
		builder: monitor.NewMockSnapshotBuilder(ctrl),
		walker:  snmp.NewMockWalker(ctrl),
		sink:    notify.NewMockSink(ctrl),
	}
	f.handler = NewHandler(f.session, f.builder, f.walker, f.sink, logger.NewTestLogger(), opts...)

	return f
}

func router() models.DeviceAddress {
	return models.DeviceAddress{Host: "192.168.1.1"}.WithDefaults()
}

func okResult() iftable.PollResult {
	return iftable.PollResult{Snapshot: models.Snapshot{
		1: {Index: 1, Name: "GigabitEthernet0/1", IPAddresses: []string{"192.168.1.1"}, Status: models.StatusUp},
		2: {Index: 2, Name: "GigabitEthernet0/2", IPAddresses: []string{}, Status: models.StatusDown},
	}}
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		text string
		name string
		args []string
	}{
		{"/status", "status", []string{}},
		{"  /STATUS@ifwatch_bot  ", "status", []string{}},
		{"target 10.0.0.1", "target", []string{"10.0.0.1"}},
		{"", "", nil},
	}

	for _, tt := range tests {
		cmd := parseCommand(tt.text)
		assert.Equal(t, tt.name, cmd.name, tt.text)
		assert.Equal(t, tt.args, cmd.args, tt.text)
	}
}

func TestStartProbesAndStarts(t *testing.T) {
	f := newFixture(t)
	dev := router()

	f.session.EXPECT().Device().Return(dev, true)
	f.builder.EXPECT().Build(gomock.Any(), &dev).Return(okResult(), nil)
	f.session.EXPECT().Start("chat-1", &dev).Return(true)
	f.session.EXPECT().Interval().Return(time.Minute)

	r, err := f.handler.Handle(context.Background(), "chat-1", "/start")
	require.NoError(t, err)
	require.Len(t, r.Messages, 1)
	assert.True(t, strings.HasPrefix(r.Messages[0], "Interface monitoring started!"))
	assert.Contains(t, r.Messages[0], "Monitoring router: 192.168.1.1")
	assert.Contains(t, r.Messages[0], "Check interval: 60 seconds")
}

func TestStartAgainReportsRestart(t *testing.T) {
	f := newFixture(t)
	dev := router()

	f.session.EXPECT().Device().Return(dev, true)
	f.builder.EXPECT().Build(gomock.Any(), gomock.Any()).Return(okResult(), nil)
	f.session.EXPECT().Start("chat-1", gomock.Any()).Return(false)
	f.session.EXPECT().Interval().Return(30 * time.Second)

	r, err := f.handler.Handle(context.Background(), "chat-1", "/start")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(r.Messages[0], "Interface monitoring restarted!"))
}

func TestStartProbeFailure(t *testing.T) {
	f := newFixture(t)
	dev := router()

	f.session.EXPECT().Device().Return(dev, true)
	f.builder.EXPECT().Build(gomock.Any(), gomock.Any()).Return(iftable.PollResult{
		Snapshot: models.Snapshot{},
		Err:      errTimeout,
	}, nil)

	r, err := f.handler.Handle(context.Background(), "chat-1", "/start")
	require.NoError(t, err)
	assert.Equal(t, "Failed to connect to router 192.168.1.1\nPlease check:\n- Router IP address\n"+
		"- SNMP community string\n- Network connectivity", r.Messages[0])
}

func TestStartNotConfigured(t *testing.T) {
	f := newFixture(t)

	f.session.EXPECT().Device().Return(models.DeviceAddress{}, false)

	r, err := f.handler.Handle(context.Background(), "chat-1", "/start")
	require.NoError(t, err)
	assert.Equal(t, msgNotConfigured, r.Messages[0])
}

func TestStartWithHostRejectedWhileMonitoringOther(t *testing.T) {
	f := newFixture(t)

	f.session.EXPECT().Device().Return(router(), true)
	f.session.EXPECT().IsActive().Return(true)

	r, err := f.handler.Handle(context.Background(), "chat-1", "/start 10.9.9.9")
	require.NoError(t, err)
	assert.Equal(t, "Monitoring is already active for router 192.168.1.1.\nUse /stop before monitoring 10.9.9.9.", r.Messages[0])
}

func TestStartWithHost(t *testing.T) {
	f := newFixture(t)

	f.session.EXPECT().Device().Return(models.DeviceAddress{}, false)
	f.session.EXPECT().IsActive().Return(false)
	f.builder.EXPECT().Build(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, d *models.DeviceAddress) (iftable.PollResult, error) {
			assert.Equal(t, "core-sw1", d.Host)
			assert.Equal(t, models.DefaultCommunity, d.Community)

			return okResult(), nil
		})
	f.session.EXPECT().Start("chat-1", gomock.Any()).Return(true)
	f.session.EXPECT().Interval().Return(time.Minute)

	r, err := f.handler.Handle(context.Background(), "chat-1", "/start core-sw1")
	require.NoError(t, err)
	assert.Contains(t, r.Messages[0], "Monitoring router: core-sw1")
}

func TestStop(t *testing.T) {
	f := newFixture(t)

	f.session.EXPECT().Device().Return(router(), true).Times(2)
	f.session.EXPECT().Stop().Return(true)
	f.session.EXPECT().Stop().Return(false)

	r, err := f.handler.Handle(context.Background(), "chat-1", "/stop")
	require.NoError(t, err)
	assert.Equal(t, "Interface monitoring stopped!\n\nRouter: 192.168.1.1\nUse /start to resume monitoring.", r.Messages[0])

	r, err = f.handler.Handle(context.Background(), "chat-1", "/stop")
	require.NoError(t, err)
	assert.Equal(t, "Monitoring is not currently active.\nUse /start to begin monitoring.", r.Messages[0])
}

func TestStatusTable(t *testing.T) {
	f := newFixture(t)

	f.session.EXPECT().Device().Return(router(), true)
	f.builder.EXPECT().Build(gomock.Any(), gomock.Any()).Return(okResult(), nil)

	r, err := f.handler.Handle(context.Background(), "chat-1", "/status")
	require.NoError(t, err)
	require.Len(t, r.Messages, 1)

	expected := "```\n" +
		"Router Interface Status - 192.168.1.1\n" +
		strings.Repeat("=", 45) + "\n" +
		"Interface    | IP Address           | Status  \n" +
		strings.Repeat("-", 45) + "\n" +
		"Gi0/1        | 192.168.1.1          | UP      \n" +
		"Gi0/2        | No IP                | DOWN    " +
		"\n```"
	assert.Equal(t, expected, r.Messages[0])
}

func TestStatusSplitsLongTables(t *testing.T) {
	f := newFixture(t)

	snap := models.Snapshot{}
	for i := 1; i <= 200; i++ {
		snap[i] = models.InterfaceRecord{Index: i, Name: "GigabitEthernet1/0/" + strings.Repeat("9", 3), Status: models.StatusUp}
	}

	f.session.EXPECT().Device().Return(router(), true)
	f.builder.EXPECT().Build(gomock.Any(), gomock.Any()).Return(iftable.PollResult{Snapshot: snap}, nil)

	r, err := f.handler.Handle(context.Background(), "chat-1", "/status")
	require.NoError(t, err)
	require.Greater(t, len(r.Messages), 1)

	for _, msg := range r.Messages {
		assert.LessOrEqual(t, len(msg), notify.MaxMessageLength)
		assert.True(t, strings.HasPrefix(msg, "```\n"))
		assert.True(t, strings.HasSuffix(msg, "\n```"))
	}
}

func TestStatusEmptyAndFailed(t *testing.T) {
	f := newFixture(t)

	f.session.EXPECT().Device().Return(router(), true).Times(2)
	f.builder.EXPECT().Build(gomock.Any(), gomock.Any()).Return(iftable.PollResult{Snapshot: models.Snapshot{}}, nil)
	f.builder.EXPECT().Build(gomock.Any(), gomock.Any()).Return(iftable.PollResult{Err: errTimeout}, nil)

	r, err := f.handler.Handle(context.Background(), "chat-1", "/status")
	require.NoError(t, err)
	assert.Equal(t, "No interface data found on router 192.168.1.1", r.Messages[0])

	r, err = f.handler.Handle(context.Background(), "chat-1", "/status")
	require.NoError(t, err)
	assert.Equal(t, "Failed to query router at 192.168.1.1\nError: request timeout", r.Messages[0])
}

func TestUptime(t *testing.T) {
	f := newFixture(t)
	dev := router()

	f.session.EXPECT().Device().Return(dev, true)
	f.walker.EXPECT().GetScalar(gomock.Any(), dev, snmp.OIDSysUpTime).Return("9012345", nil)

	r, err := f.handler.Handle(context.Background(), "chat-1", "/uptime")
	require.NoError(t, err)
	assert.Equal(t, "Router uptime - 192.168.1.1\n\n1d 1h 2m 3s", r.Messages[0])
}

func TestTarget(t *testing.T) {
	f := newFixture(t)

	f.session.EXPECT().Device().Return(models.DeviceAddress{}, false).AnyTimes()
	f.session.EXPECT().IsActive().Return(false).AnyTimes()
	f.session.EXPECT().SetDevice(gomock.Any()).Do(func(d *models.DeviceAddress) {
		assert.Equal(t, "10.0.0.254", d.Host)
		assert.Equal(t, models.DefaultSNMPPort, d.Port)
	})

	r, err := f.handler.Handle(context.Background(), "chat-1", "/target")
	require.NoError(t, err)
	assert.Equal(t, "Usage: /target <host>\nCurrent router: none", r.Messages[0])

	r, err = f.handler.Handle(context.Background(), "chat-1", "/target bad_host!")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(r.Messages[0], "Invalid router address"))

	r, err = f.handler.Handle(context.Background(), "chat-1", "/target 10.0.0.254")
	require.NoError(t, err)
	assert.Equal(t, "Router set to 10.0.0.254\nUse /start to begin monitoring.", r.Messages[0])
}

func TestTargetRejectedWhileActive(t *testing.T) {
	f := newFixture(t)

	f.session.EXPECT().Device().Return(router(), true)
	f.session.EXPECT().IsActive().Return(true)

	r, err := f.handler.Handle(context.Background(), "chat-1", "/target 10.0.0.2")
	require.NoError(t, err)
	assert.Equal(t, msgTargetWhileActive, r.Messages[0])
}

func TestHelpAndUnknown(t *testing.T) {
	f := newFixture(t)

	r, err := f.handler.Handle(context.Background(), "chat-1", "/help")
	require.NoError(t, err)
	assert.Contains(t, r.Messages[0], "/status - Display interface table")

	r, err = f.handler.Handle(context.Background(), "chat-1", "/reboot")
	require.ErrorIs(t, err, ErrUnknownCommand)
	assert.True(t, strings.HasPrefix(r.Messages[0], "Unknown command found.\n\nAvailable commands:"))
}

func TestNotAllowed(t *testing.T) {
	f := newFixture(t, WithAllowed(func(dest string) bool { return dest == "ops" }))

	_, err := f.handler.Handle(context.Background(), "random", "/stop")
	require.ErrorIs(t, err, ErrNotAllowed)

	err = f.handler.Respond(context.Background(), "random", "/status")
	require.ErrorIs(t, err, ErrNotAllowed)
}

func TestRespondStatusShowsProgress(t *testing.T) {
	f := newFixture(t)

	gomock.InOrder(
		f.sink.EXPECT().Send(gomock.Any(), "chat-1", "Querying router interfaces...").Return(notify.MessageHandle("p1"), nil),
		f.session.EXPECT().Device().Return(router(), true),
		f.builder.EXPECT().Build(gomock.Any(), gomock.Any()).Return(okResult(), nil),
		f.sink.EXPECT().Delete(gomock.Any(), "chat-1", notify.MessageHandle("p1")).Return(nil),
		f.sink.EXPECT().Send(gomock.Any(), "chat-1", gomock.Any()).Return(notify.MessageHandle("m2"), nil),
	)

	require.NoError(t, f.handler.Respond(context.Background(), "chat-1", "/status"))
}

func TestRespondReportsDeliveryFailure(t *testing.T) {
	f := newFixture(t)

	f.sink.EXPECT().Send(gomock.Any(), "chat-1", gomock.Any()).Return(notify.MessageHandle(""), notify.ErrSendFailed)

	err := f.handler.Respond(context.Background(), "chat-1", "/help")
	require.ErrorIs(t, err, notify.ErrSendFailed)
}

func TestFormatUptime(t *testing.T) {
	assert.Equal(t, "0s", FormatUptime(0))
	assert.Equal(t, "59s", FormatUptime(59*time.Second+900*time.Millisecond))
	assert.Equal(t, "2m 0s", FormatUptime(2*time.Minute))
	assert.Equal(t, "3h 0m 1s", FormatUptime(3*time.Hour+time.Second))
	assert.Equal(t, "10d 0h 0m 0s", FormatUptime(240*time.Hour))
}
