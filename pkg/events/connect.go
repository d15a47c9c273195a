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

package events

import (
	"context"
	"errors"
	"fmt"

	"github.com/carverauto/ifwatch/pkg/logger"
	"github.com/jonboulle/clockwork"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

var errNATSURLRequired = errors.New("nats url is required")

// Config describes the NATS connection. Publishing is disabled when URL is empty.
type Config struct {
	URL           string `json:"url"`
	Stream        string `json:"stream,omitempty"`
	SubjectPrefix string `json:"subject_prefix,omitempty"`
	CredsFile     string `json:"creds_file,omitempty"`
}

// Enabled reports whether a NATS URL is configured.
func (c *Config) Enabled() bool {
	return c != nil && c.URL != ""
}

// Normalize fills in the default stream and subject prefix.
func (c *Config) Normalize() {
	if c.Stream == "" {
		c.Stream = DefaultStream
	}

	if c.SubjectPrefix == "" {
		c.SubjectPrefix = DefaultSubjectPrefix
	}
}

// StreamConfig returns the stream that captures every transition subject.
func (c *Config) StreamConfig() jetstream.StreamConfig {
	return jetstream.StreamConfig{
		Name:     c.Stream,
		Subjects: []string{c.SubjectPrefix + ".>"},
	}
}

// Connect dials NATS, ensures the stream exists and returns a Publisher
// together with the connection, which the caller must drain on shutdown.
func Connect(ctx context.Context, cfg Config, log logger.Logger) (*Publisher, *nats.Conn, error) {
	if cfg.URL == "" {
		return nil, nil, errNATSURLRequired
	}

	cfg.Normalize()

	opts := []nats.Option{
		nats.Name("ifwatch"),
		nats.ErrorHandler(func(_ *nats.Conn, _ *nats.Subscription, err error) {
			log.Error().Err(err).Msg("NATS error")
		}),
		nats.ConnectHandler(func(nc *nats.Conn) {
			log.Info().Str("url", nc.ConnectedUrl()).Msg("Connected to NATS")
		}),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			log.Warn().Err(err).Msg("NATS disconnected")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info().Str("url", nc.ConnectedUrl()).Msg("NATS reconnected")
		}),
	}

	if cfg.CredsFile != "" {
		opts = append(opts, nats.UserCredentials(cfg.CredsFile))
	}

	nc, err := nats.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()

		return nil, nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	if _, err := js.CreateOrUpdateStream(ctx, cfg.StreamConfig()); err != nil {
		nc.Close()

		return nil, nil, fmt.Errorf("failed to create or update stream %s: %w", cfg.Stream, err)
	}

	return NewPublisher(js, cfg.SubjectPrefix, clockwork.NewRealClock(), log), nc, nil
}
