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

// Package metrics exposes monitor loop observations as Prometheus collectors
// and keeps a short in-memory history of recent polls.
package metrics

import (
	"time"

	"github.com/carverauto/ifwatch/pkg/monitor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const namespace = "ifwatch"

// Collectors implements monitor.Metrics.
type Collectors struct {
	registry *prometheus.Registry
	history  *PollHistory

	polls         *prometheus.CounterVec
	pollDuration  prometheus.Histogram
	transitions   *prometheus.CounterVec
	down          prometheus.Gauge
	notifications *prometheus.CounterVec
	sessionActive prometheus.Gauge
}

var _ monitor.Metrics = (*Collectors)(nil)

// NewCollectors registers all collectors on a fresh registry. historySize
// bounds the number of polls kept by History.
func NewCollectors(historySize int) *Collectors {
	c := &Collectors{
		registry: prometheus.NewRegistry(),
		history:  NewPollHistory(historySize),
		polls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "polls_total",
			Help:      "Number of interface table polls by result.",
		}, []string{"result"}),
		pollDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "poll_duration_seconds",
			Help:      "Time spent polling the device.",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 10),
		}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transitions_total",
			Help:      "Interface status transitions by direction.",
		}, []string{"direction"}),
		down: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "interfaces_down",
			Help:      "Interfaces DOWN in the last successful poll.",
		}),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_total",
			Help:      "Chat notifications by kind and result.",
		}, []string{"kind", "result"}),
		sessionActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "session_active",
			Help:      "1 while a monitoring session is active.",
		}),
	}

	c.registry.MustRegister(
		c.polls,
		c.pollDuration,
		c.transitions,
		c.down,
		c.notifications,
		c.sessionActive,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return c
}

// Registry returns the registry backing the collectors.
func (c *Collectors) Registry() *prometheus.Registry {
	return c.registry
}

// History returns the recent poll history.
func (c *Collectors) History() *PollHistory {
	return c.history
}

func (c *Collectors) ObservePoll(result string, elapsed time.Duration, down int) {
	c.polls.WithLabelValues(result).Inc()
	c.history.Add(PollPoint{
		Timestamp: time.Now(),
		Result:    result,
		Duration:  elapsed,
		Down:      down,
	})

	if result != monitor.PollOK {
		return
	}

	c.pollDuration.Observe(elapsed.Seconds())
	c.down.Set(float64(down))
}

func (c *Collectors) ObserveTransition(direction string) {
	c.transitions.WithLabelValues(direction).Inc()
}

func (c *Collectors) ObserveNotification(kind string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}

	c.notifications.WithLabelValues(kind, result).Inc()
}

func (c *Collectors) SetSessionActive(active bool) {
	if active {
		c.sessionActive.Set(1)

		return
	}

	c.sessionActive.Set(0)
}
