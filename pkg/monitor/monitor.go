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

// Package monitor runs the single interface monitoring session: it polls the
// configured device on an interval, diffs each snapshot against the previous
// one and reports transitions and the current down set to a chat sink.
package monitor

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/carverauto/ifwatch/pkg/iftable"
	"github.com/carverauto/ifwatch/pkg/logger"
	"github.com/carverauto/ifwatch/pkg/models"
	"github.com/carverauto/ifwatch/pkg/notify"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

// DefaultInterval is the time between polls.
const DefaultInterval = 60 * time.Second

// Monitor owns the session state. Every field below mu is guarded by it, and
// no network call is made while it is held.
type Monitor struct {
	builder   SnapshotBuilder
	sink      notify.Sink
	publisher EventPublisher
	metrics   Metrics
	clock     clockwork.Clock
	interval  time.Duration
	logger    logger.Logger

	done      chan struct{}
	wake      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup

	mu                sync.Mutex
	closed            bool
	active            bool
	loopRunning       bool
	generation        uint64
	sessionID         string
	destination       string
	device            *models.DeviceAddress
	cache             models.Snapshot
	lastHandle        *notify.MessageHandle
	notConfiguredSent bool
	unreachableSent   bool
	lastSnapshot      models.Snapshot
	lastPoll          time.Time
	lastErr           error
}

// Option configures a Monitor.
type Option func(*Monitor)

// WithInterval sets the poll interval. Non-positive values are ignored.
func WithInterval(d time.Duration) Option {
	return func(m *Monitor) {
		if d > 0 {
			m.interval = d
		}
	}
}

// WithClock replaces the wall clock.
func WithClock(c clockwork.Clock) Option {
	return func(m *Monitor) {
		m.clock = c
	}
}

// WithPublisher publishes every transition in addition to the chat alert.
func WithPublisher(p EventPublisher) Option {
	return func(m *Monitor) {
		m.publisher = p
	}
}

// WithMetrics records loop metrics.
func WithMetrics(mt Metrics) Option {
	return func(m *Monitor) {
		if mt != nil {
			m.metrics = mt
		}
	}
}

// WithDevice sets the initial device.
func WithDevice(d *models.DeviceAddress) Option {
	return func(m *Monitor) {
		m.device = copyDevice(d)
	}
}

// New creates an inactive Monitor.
func New(builder SnapshotBuilder, sink notify.Sink, log logger.Logger, opts ...Option) *Monitor {
	m := &Monitor{
		builder:  builder,
		sink:     sink,
		metrics:  nopMetrics{},
		clock:    clockwork.NewRealClock(),
		interval: DefaultInterval,
		logger:   log,
		done:     make(chan struct{}),
		wake:     make(chan struct{}, 1),
		cache:    models.Snapshot{},
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Interval returns the poll interval.
func (m *Monitor) Interval() time.Duration {
	return m.interval
}

// Start activates the session for destination, resetting the cache and the
// status message handle. device replaces the current device when non-nil.
// It reports whether the session went from inactive to active; starting an
// active session re-initializes it and returns false. At most one poll loop
// runs at a time.
func (m *Monitor) Start(destination string, device *models.DeviceAddress) bool {
	m.mu.Lock()

	if m.closed {
		m.mu.Unlock()

		return false
	}

	wasActive := m.active

	m.active = true
	m.generation++
	m.sessionID = uuid.NewString()
	m.destination = destination
	m.cache = models.Snapshot{}
	m.lastHandle = nil
	m.notConfiguredSent = false
	m.unreachableSent = false

	if device != nil {
		m.device = copyDevice(device)
	}

	spawn := !m.loopRunning
	if spawn {
		m.loopRunning = true
		m.wg.Add(1)
	}

	sessionID := m.sessionID
	host := hostOf(m.device)

	m.mu.Unlock()

	m.metrics.SetSessionActive(true)
	m.logger.Info().
		Str("session_id", sessionID).
		Str("device", host).
		Str("destination", destination).
		Bool("restarted", wasActive).
		Msg("Interface monitoring started")

	if spawn {
		go m.loop()
	} else {
		m.signal()
	}

	return !wasActive
}

// Stop deactivates the session and clears the status message handle. The
// loop exits at the top of its next iteration. It reports whether a session
// was active.
func (m *Monitor) Stop() bool {
	m.mu.Lock()

	wasActive := m.active
	m.active = false
	m.generation++
	m.lastHandle = nil
	sessionID := m.sessionID

	m.mu.Unlock()

	if wasActive {
		m.metrics.SetSessionActive(false)
		m.logger.Info().Str("session_id", sessionID).Msg("Interface monitoring stopped")
	}

	m.signal()

	return wasActive
}

// Close stops the session and waits for the loop to exit.
func (m *Monitor) Close(ctx context.Context) error {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()

	m.Stop()

	m.closeOnce.Do(func() {
		close(m.done)
	})

	finished := make(chan struct{})

	go func() {
		m.wg.Wait()
		close(finished)
	}()

	select {
	case <-finished:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("waiting for monitor loop: %w", ctx.Err())
	}
}

// IsActive reports whether a session is running.
func (m *Monitor) IsActive() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.active
}

// CurrentDevice returns the configured device host.
func (m *Monitor) CurrentDevice() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.device.Configured() {
		return "", false
	}

	return m.device.Host, true
}

// Device returns a copy of the configured device.
func (m *Monitor) Device() (models.DeviceAddress, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.device == nil {
		return models.DeviceAddress{}, false
	}

	return *m.device, m.device.Configured()
}

// SetDevice replaces the device. A different host invalidates the cache and
// any poll in flight.
func (m *Monitor) SetDevice(device *models.DeviceAddress) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if hostOf(m.device) != hostOf(device) {
		m.generation++
		m.cache = models.Snapshot{}
		m.lastSnapshot = nil
		m.notConfiguredSent = false
		m.unreachableSent = false
	}

	m.device = copyDevice(device)
}

// LastSnapshot returns the most recent successful snapshot and when it was taken.
func (m *Monitor) LastSnapshot() (models.Snapshot, time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make(models.Snapshot, len(m.lastSnapshot))
	for k, v := range m.lastSnapshot {
		out[k] = v
	}

	return out, m.lastPoll
}

// SessionInfo describes the session for status queries.
type SessionInfo struct {
	Active      bool      `json:"active"`
	Device      string    `json:"device,omitempty"`
	Destination string    `json:"destination,omitempty"`
	SessionID   string    `json:"session_id,omitempty"`
	Interval    string    `json:"interval"`
	LastPoll    time.Time `json:"last_poll,omitempty"`
	LastError   string    `json:"last_error,omitempty"`
	Interfaces  int       `json:"interfaces"`
	Down        int       `json:"down"`
}

// Info returns a consistent view of the session.
func (m *Monitor) Info() SessionInfo {
	m.mu.Lock()
	defer m.mu.Unlock()

	info := SessionInfo{
		Active:      m.active,
		Device:      hostOf(m.device),
		Destination: m.destination,
		SessionID:   m.sessionID,
		Interval:    m.interval.String(),
		LastPoll:    m.lastPoll,
		Interfaces:  len(m.lastSnapshot),
		Down:        len(m.lastSnapshot.Down()),
	}

	if m.lastErr != nil {
		info.LastError = m.lastErr.Error()
	}

	return info
}

func (m *Monitor) signal() {
	select {
	case m.wake <- struct{}{}:
	default:
	}
}

func (m *Monitor) loop() {
	defer m.wg.Done()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		select {
		case <-m.done:
			cancel()
		case <-ctx.Done():
		}
	}()

	for {
		m.mu.Lock()
		if !m.active {
			m.loopRunning = false
			m.mu.Unlock()

			return
		}
		m.mu.Unlock()

		m.tick(ctx)

		select {
		case <-ctx.Done():
			m.mu.Lock()
			m.loopRunning = false
			m.mu.Unlock()

			return
		case <-m.wake:
		case <-m.clock.After(m.interval):
		}
	}
}

// tick runs one poll. State is copied under the lock, the poll and all sink
// calls happen without it, and results are merged only if the session has
// not been stopped or restarted meanwhile.
func (m *Monitor) tick(ctx context.Context) {
	m.mu.Lock()

	if !m.active {
		m.mu.Unlock()

		return
	}

	gen := m.generation
	dest := m.destination
	sessionID := m.sessionID
	device := copyDevice(m.device)

	m.mu.Unlock()

	if !device.Configured() {
		m.metrics.ObservePoll(PollNotConfigured, 0, 0)

		if m.claimNotice(gen, func() *bool { return &m.notConfiguredSent }) {
			m.notify(ctx, KindNotice, dest, noticeNotConfigured)
		}

		return
	}

	start := m.clock.Now()
	res, err := m.builder.Build(ctx, device)
	elapsed := m.clock.Since(start)

	if err == nil && !res.OK() {
		err = res.Err
	}

	if err != nil {
		m.pollFailed(ctx, gen, dest, device.Host, elapsed, err)

		return
	}

	m.mu.Lock()

	if !m.active || m.generation != gen {
		m.mu.Unlock()
		m.logger.Debug().Str("session_id", sessionID).Msg("Discarding poll from a previous session")

		return
	}

	diff := Diff(m.cache, res.Snapshot)
	m.cache = res.Snapshot
	m.lastSnapshot = res.Snapshot
	m.lastPoll = m.clock.Now()
	m.lastErr = nil
	m.unreachableSent = false

	var prevHandle notify.MessageHandle

	hadHandle := m.lastHandle != nil
	if hadHandle {
		prevHandle = *m.lastHandle
	}

	m.mu.Unlock()

	m.metrics.ObservePoll(PollOK, elapsed, len(diff.Down))
	m.logDownSet(device.Host, sessionID, diff)

	if len(diff.Transitions) > 0 {
		m.notify(ctx, KindAlert, dest, FormatAlert(device.Host, diff))
		m.publish(ctx, device.Host, sessionID, diff.Transitions)
	}

	if hadHandle && dest != "" {
		err := m.sink.Delete(ctx, dest, prevHandle)
		m.metrics.ObserveNotification(KindDelete, err)

		if err != nil {
			m.logger.Warn().Err(err).Str("handle", string(prevHandle)).Msg("Failed to delete previous status message")
		}
	}

	handle, ok := m.notify(ctx, KindStatus, dest, FormatStatus(device.Host, diff.Down))
	if !ok {
		return
	}

	m.mu.Lock()

	current := m.active && m.generation == gen
	if current {
		m.lastHandle = &handle
	}

	m.mu.Unlock()

	if current {
		return
	}

	// The session was stopped or restarted while the status was in flight
	// and nothing tracks this handle any more.
	err = m.sink.Delete(ctx, dest, handle)
	m.metrics.ObserveNotification(KindDelete, err)

	if err != nil {
		m.logger.Warn().Err(err).Str("handle", string(handle)).Msg("Failed to delete status message from a stopped session")
	}
}

func (m *Monitor) pollFailed(ctx context.Context, gen uint64, dest, host string, elapsed time.Duration, err error) {
	m.metrics.ObservePoll(PollFailed, elapsed, 0)

	ev := m.logger.Warn()
	if errors.Is(err, iftable.ErrNoTargetConfigured) {
		ev = m.logger.Debug()
	}

	ev.Err(err).Str("device", host).Msg("Interface poll failed; keeping previous baseline")

	m.mu.Lock()
	if m.generation == gen {
		m.lastErr = err
	}
	m.mu.Unlock()

	if m.claimNotice(gen, func() *bool { return &m.unreachableSent }) {
		m.notify(ctx, KindNotice, dest, fmt.Sprintf(noticeUnreachable, host, m.interval))
	}
}

// claimNotice sets the flag returned by field and reports whether it was
// previously unset for the current session.
func (m *Monitor) claimNotice(gen uint64, field func() *bool) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.active || m.generation != gen {
		return false
	}

	flag := field()
	if *flag {
		return false
	}

	*flag = true

	return true
}

func (m *Monitor) notify(ctx context.Context, kind, dest, text string) (notify.MessageHandle, bool) {
	if dest == "" {
		m.logger.Info().Str("kind", kind).Msg(text)

		return "", false
	}

	handle, err := m.sink.Send(ctx, dest, text)
	m.metrics.ObserveNotification(kind, err)

	if err != nil {
		m.logger.Error().Err(err).Str("kind", kind).Str("destination", dest).Msg("Failed to send notification")

		return "", false
	}

	return handle, true
}

func (m *Monitor) publish(ctx context.Context, host, sessionID string, transitions []Transition) {
	for _, t := range transitions {
		m.metrics.ObserveTransition(string(t.Direction))

		if m.publisher == nil {
			continue
		}

		if err := m.publisher.PublishTransition(ctx, host, sessionID, t); err != nil {
			m.logger.Warn().Err(err).Int("index", t.Index).Msg("Failed to publish transition event")
		}
	}
}

func (m *Monitor) logDownSet(host, sessionID string, diff DiffResult) {
	if len(diff.Down) == 0 {
		m.logger.Info().
			Str("device", host).
			Str("session_id", sessionID).
			Int("transitions", len(diff.Transitions)).
			Msg("All interfaces up")

		return
	}

	m.logger.Info().
		Str("device", host).
		Str("session_id", sessionID).
		Strs("down", shortNames(diff.Down)).
		Int("transitions", len(diff.Transitions)).
		Msg("Down interfaces check")
}

func copyDevice(d *models.DeviceAddress) *models.DeviceAddress {
	if d == nil {
		return nil
	}

	c := *d

	return &c
}

func hostOf(d *models.DeviceAddress) string {
	if d == nil {
		return ""
	}

	return d.Host
}
