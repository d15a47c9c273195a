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

package ifwatch

import (
	"context"
	"fmt"
	"time"

	"github.com/carverauto/ifwatch/pkg/bot"
	"github.com/carverauto/ifwatch/pkg/events"
	"github.com/carverauto/ifwatch/pkg/httpapi"
	"github.com/carverauto/ifwatch/pkg/iftable"
	"github.com/carverauto/ifwatch/pkg/logger"
	"github.com/carverauto/ifwatch/pkg/metrics"
	"github.com/carverauto/ifwatch/pkg/monitor"
	"github.com/carverauto/ifwatch/pkg/notify"
	"github.com/carverauto/ifwatch/pkg/snmp"
	"github.com/carverauto/ifwatch/pkg/version"
	"github.com/nats-io/nats.go"
	"github.com/slack-go/slack"
	"golang.org/x/sync/errgroup"
)

const defaultStopTimeout = 10 * time.Second

// Runner is a long-running component stopped by cancelling its context.
type Runner interface {
	Run(ctx context.Context) error
}

// Service owns every ifwatch component.
type Service struct {
	config    *Config
	walker    snmp.Walker
	builder   *iftable.Builder
	sink      notify.Sink
	monitor   *monitor.Monitor
	handler   *bot.Handler
	transport Runner
	api       *httpapi.Server
	metrics   *metrics.Collectors
	nc        *nats.Conn
	logger    logger.Logger
}

// Option overrides a component, mainly for tests.
type Option func(*Service)

// WithWalker replaces the gosnmp walker.
func WithWalker(w snmp.Walker) Option {
	return func(s *Service) {
		s.walker = w
	}
}

// WithSink replaces the provider sink and disables the chat transport.
func WithSink(sink notify.Sink) Option {
	return func(s *Service) {
		s.sink = sink
	}
}

// New builds the service from a validated config. When NATS is configured
// the connection is established here so that a bad URL fails startup.
func New(ctx context.Context, cfg *Config, log logger.Logger, opts ...Option) (*Service, error) {
	s := &Service{
		config: cfg,
		logger: log,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.walker == nil {
		s.walker = snmp.NewClient(log)
	}

	s.builder = iftable.NewBuilder(s.walker, log)
	s.metrics = metrics.NewCollectors(cfg.Monitor.HistorySize)

	var updates bot.UpdateSource

	injectedSink := s.sink != nil
	if !injectedSink {
		sink, src, err := newSink(&cfg.Chat, log)
		if err != nil {
			return nil, err
		}

		s.sink, updates = sink, src
	}

	monitorOpts := []monitor.Option{
		monitor.WithInterval(time.Duration(cfg.Monitor.Interval)),
		monitor.WithMetrics(s.metrics),
	}

	if cfg.Device.Configured() {
		device := cfg.Device
		monitorOpts = append(monitorOpts, monitor.WithDevice(&device))
	}

	if cfg.NATS.Enabled() {
		publisher, nc, err := events.Connect(ctx, cfg.NATS, log)
		if err != nil {
			return nil, err
		}

		s.nc = nc
		monitorOpts = append(monitorOpts, monitor.WithPublisher(publisher))
	}

	s.monitor = monitor.New(s.builder, s.sink, log, monitorOpts...)
	s.handler = bot.NewHandler(s.monitor, s.builder, s.walker, s.sink, log, bot.WithAllowed(cfg.Chat.Allowed))

	switch {
	case injectedSink:
	case cfg.Chat.Provider == notify.ProviderSlack:
		s.transport = bot.NewSlackTransport(cfg.Chat.SlackBotToken, cfg.Chat.SlackAppToken, cfg.Chat.APIURL, s.handler, log)
	case updates != nil:
		s.transport = bot.NewTelegramTransport(updates, s.handler, nil, log)
	}

	if cfg.ListenAddr != "" {
		s.api = httpapi.NewServer(cfg.ListenAddr, cfg.APIKey, s.monitor, s.metrics.History(), s.metrics.Registry(), log)
	}

	return s, nil
}

func newSink(cfg *notify.Config, log logger.Logger) (notify.Sink, bot.UpdateSource, error) {
	switch cfg.Provider {
	case notify.ProviderSlack:
		opts := []slack.Option{}
		if cfg.APIURL != "" {
			opts = append(opts, slack.OptionAPIURL(cfg.APIURL))
		}

		return notify.NewSlackSink(slack.New(cfg.SlackBotToken, opts...), log), nil, nil
	case notify.ProviderTelegram:
		tc := notify.NewTelegramClient(cfg.TelegramToken, log, notify.WithTelegramAPIURL(cfg.APIURL))

		return tc, tc, nil
	case notify.ProviderLog, "":
		return notify.NewLogSink(log), nil, nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", notify.ErrUnknownProvider, cfg.Provider)
	}
}

// Monitor returns the interface monitor.
func (s *Service) Monitor() *monitor.Monitor {
	return s.monitor
}

// Handler returns the command handler.
func (s *Service) Handler() *bot.Handler {
	return s.handler
}

// Metrics returns the Prometheus collectors.
func (s *Service) Metrics() *metrics.Collectors {
	return s.metrics
}

// Probe polls the configured device once and logs what it found. A failed
// probe is not fatal; the loop keeps retrying once a session starts.
func (s *Service) Probe(ctx context.Context) (iftable.PollResult, error) {
	device, ok := s.monitor.Device()
	if !ok {
		s.logger.Warn().Msg("No router configured; use /target to set one")

		return iftable.PollResult{}, iftable.ErrNoTargetConfigured
	}

	s.logger.Info().Str("device", device.Host).Msg("Testing SNMP connection")

	result, err := s.builder.Build(ctx, &device)
	if err == nil {
		err = result.Err
	}

	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("device", device.Host).
			Msg("Could not connect to router; connection will be retried when monitoring starts")

		return result, err
	}

	s.logger.Info().
		Str("device", device.Host).
		Int("interfaces", len(result.Snapshot)).
		Msg("Successfully connected to router")

	return result, nil
}

// Run probes the device, optionally starts a session and serves the chat
// transport and HTTP API until ctx is cancelled.
func (s *Service) Run(ctx context.Context) error {
	s.logger.Info().
		Str("version", version.GetFullVersion()).
		Str("device", s.config.Device.Host).
		Dur("interval", s.monitor.Interval()).
		Str("chat", s.config.Chat.Provider).
		Msg("Starting ifwatch")

	_, _ = s.Probe(ctx)

	if s.config.Monitor.AutoStart {
		s.monitor.Start(s.config.Monitor.Destination, nil)
	}

	g, gctx := errgroup.WithContext(ctx)

	if s.transport != nil {
		g.Go(func() error {
			return s.transport.Run(gctx)
		})
	}

	if s.api != nil {
		g.Go(func() error {
			return s.api.ListenAndServe(gctx)
		})
	}

	g.Go(func() error {
		<-gctx.Done()

		return nil
	})

	runErr := g.Wait()

	stopCtx, cancel := context.WithTimeout(context.Background(), defaultStopTimeout)
	defer cancel()

	if err := s.Stop(stopCtx); err != nil && runErr == nil {
		runErr = err
	}

	return runErr
}

// Stop ends the session, waits for the loop and drains NATS.
func (s *Service) Stop(ctx context.Context) error {
	err := s.monitor.Close(ctx)

	if s.nc != nil {
		if drainErr := s.nc.Drain(); drainErr != nil {
			s.logger.Warn().Err(drainErr).Msg("Failed to drain NATS connection")
		}
	}

	s.logger.Info().Msg("ifwatch stopped")

	return err
}
