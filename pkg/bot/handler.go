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

// Package bot answers chat commands that control the interface monitor.
package bot

import (
	"context"
	"errors"
	"fmt"
	"net"
	"regexp"
	"strings"
	"time"

	"github.com/carverauto/ifwatch/pkg/logger"
	"github.com/carverauto/ifwatch/pkg/models"
	"github.com/carverauto/ifwatch/pkg/monitor"
	"github.com/carverauto/ifwatch/pkg/notify"
	"github.com/carverauto/ifwatch/pkg/snmp"
)

//go:generate mockgen -destination=mock_bot.go -package=bot github.com/carverauto/ifwatch/pkg/bot Session

var (
	// ErrUnknownCommand is returned by Handle for commands it does not know.
	ErrUnknownCommand = errors.New("unknown command")
	// ErrNotAllowed is returned when a destination may not issue commands.
	ErrNotAllowed = errors.New("destination is not allowed to issue commands")
)

var hostnameRE = regexp.MustCompile(`^[A-Za-z0-9]([A-Za-z0-9.-]*[A-Za-z0-9])?$`)

// Session is the part of the monitor the commands drive.
type Session interface {
	Start(destination string, device *models.DeviceAddress) bool
	Stop() bool
	IsActive() bool
	Device() (models.DeviceAddress, bool)
	SetDevice(device *models.DeviceAddress)
	Interval() time.Duration
}

// Reply is the list of messages answering one command.
type Reply struct {
	Messages []string
}

func reply(msgs ...string) Reply {
	return Reply{Messages: msgs}
}

// Handler parses command text and runs it against the session.
type Handler struct {
	session Session
	builder monitor.SnapshotBuilder
	walker  snmp.Walker
	sink    notify.Sink
	allowed func(destination string) bool
	logger  logger.Logger
}

// Option configures a Handler.
type Option func(*Handler)

// WithAllowed restricts which destinations may issue commands.
func WithAllowed(fn func(destination string) bool) Option {
	return func(h *Handler) {
		if fn != nil {
			h.allowed = fn
		}
	}
}

// NewHandler creates a Handler. builder probes and renders the interface
// table, walker answers uptime queries and sink delivers replies.
func NewHandler(session Session, builder monitor.SnapshotBuilder, walker snmp.Walker,
	sink notify.Sink, log logger.Logger, opts ...Option) *Handler {
	h := &Handler{
		session: session,
		builder: builder,
		walker:  walker,
		sink:    sink,
		allowed: func(string) bool { return true },
		logger:  log,
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

type command struct {
	name string
	args []string
}

// parseCommand accepts "/status", "status", "/status@botname" and is case
// insensitive in the command name.
func parseCommand(text string) command {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return command{}
	}

	name := strings.ToLower(strings.TrimPrefix(fields[0], "/"))
	if i := strings.IndexByte(name, '@'); i >= 0 {
		name = name[:i]
	}

	return command{name: name, args: fields[1:]}
}

// Handle runs the command in text issued from destination.
func (h *Handler) Handle(ctx context.Context, destination, text string) (Reply, error) {
	if !h.allowed(destination) {
		return Reply{}, ErrNotAllowed
	}

	cmd := parseCommand(text)

	switch cmd.name {
	case "start":
		return h.start(ctx, destination, cmd.args), nil
	case "stop":
		return h.stop(), nil
	case "status":
		return h.status(ctx), nil
	case "uptime":
		return h.uptime(ctx), nil
	case "target":
		return h.target(cmd.args), nil
	case "help":
		return reply(helpText()), nil
	default:
		return reply(unknownText()), fmt.Errorf("%w: %q", ErrUnknownCommand, cmd.name)
	}
}

// Respond handles text and delivers the reply to destination. A status
// query shows a progress message that is removed once the table is ready.
func (h *Handler) Respond(ctx context.Context, destination, text string) error {
	var progress notify.MessageHandle

	if parseCommand(text).name == "status" && h.allowed(destination) {
		handle, err := h.sink.Send(ctx, destination, msgQuerying)
		if err != nil {
			h.logger.Warn().Err(err).Str("destination", destination).Msg("Failed to send progress message")
		}

		progress = handle
	}

	r, err := h.Handle(ctx, destination, text)

	switch {
	case errors.Is(err, ErrNotAllowed):
		h.logger.Warn().Str("destination", destination).Msg("Ignoring command from unauthorized destination")

		return err
	case err != nil:
		h.logger.Debug().Err(err).Str("destination", destination).Msg("Command not recognized")
	}

	if progress != "" {
		if err := h.sink.Delete(ctx, destination, progress); err != nil {
			h.logger.Warn().Err(err).Str("destination", destination).Msg("Failed to delete progress message")
		}
	}

	var errs []error

	for _, msg := range r.Messages {
		if _, err := h.sink.Send(ctx, destination, msg); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func (h *Handler) start(ctx context.Context, destination string, args []string) Reply {
	device, configured := h.session.Device()

	if len(args) > 0 {
		if err := validateHost(args[0]); err != nil {
			return reply(fmt.Sprintf(msgInvalidTarget, err))
		}

		if h.session.IsActive() && configured && device.Host != args[0] {
			return reply(fmt.Sprintf(msgAlreadyMonitoring, device.Host, args[0]))
		}

		device.Host = args[0]
		device = device.WithDefaults()
		configured = true
	}

	if !configured {
		return reply(msgNotConfigured)
	}

	result, err := h.builder.Build(ctx, &device)
	if err == nil {
		err = result.Err
	}

	if err != nil {
		h.logger.Warn().Err(err).Str("device", device.Host).Msg("Start probe failed")

		return reply(fmt.Sprintf(msgConnectFailed, device.Host))
	}

	started := h.session.Start(destination, &device)

	return reply(welcomeText(started, device.Host, h.session.Interval()))
}

func (h *Handler) stop() Reply {
	device, _ := h.session.Device()

	if !h.session.Stop() {
		return reply(msgNotActive)
	}

	return reply(fmt.Sprintf(msgStopped, device.Host))
}

func (h *Handler) status(ctx context.Context) Reply {
	device, ok := h.session.Device()
	if !ok {
		return reply(msgNotConfigured)
	}

	result, err := h.builder.Build(ctx, &device)
	if err == nil {
		err = result.Err
	}

	switch {
	case err != nil:
		return reply(fmt.Sprintf(msgQueryFailed, device.Host, err))
	case len(result.Snapshot) == 0:
		return reply(fmt.Sprintf(msgNoData, device.Host))
	}

	table := FormatTable(device.Host, result.Snapshot)

	// leave room for the code fence around each chunk
	limit := notify.MaxMessageLength - len(notify.CodeBlock(""))

	chunks := notify.SplitMessage(table, limit)
	msgs := make([]string, 0, len(chunks))

	for _, chunk := range chunks {
		msgs = append(msgs, notify.CodeBlock(chunk))
	}

	return Reply{Messages: msgs}
}

func (h *Handler) uptime(ctx context.Context) Reply {
	device, ok := h.session.Device()
	if !ok {
		return reply(msgNotConfigured)
	}

	d, err := snmp.Uptime(ctx, h.walker, device)
	if err != nil {
		return reply(fmt.Sprintf(msgQueryFailed, device.Host, err))
	}

	return reply(fmt.Sprintf(msgUptime, device.Host, FormatUptime(d)))
}

func (h *Handler) target(args []string) Reply {
	device, configured := h.session.Device()

	if len(args) == 0 {
		current := "none"
		if configured {
			current = device.Host
		}

		return reply(fmt.Sprintf(msgTargetUsage, current))
	}

	if h.session.IsActive() {
		return reply(msgTargetWhileActive)
	}

	if err := validateHost(args[0]); err != nil {
		return reply(fmt.Sprintf(msgInvalidTarget, err))
	}

	device.Host = args[0]
	device = device.WithDefaults()
	h.session.SetDevice(&device)

	h.logger.Info().Str("device", device.Host).Msg("Router target changed")

	return reply(fmt.Sprintf(msgTargetSet, device.Host))
}

var errInvalidHost = errors.New("not an IP address or hostname")

func validateHost(host string) error {
	if net.ParseIP(host) != nil || hostnameRE.MatchString(host) {
		return nil
	}

	return fmt.Errorf("%w: %q", errInvalidHost, host)
}
