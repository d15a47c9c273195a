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

// Package httpapi serves health, Prometheus metrics and a read-only view of
// the monitoring session.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/carverauto/ifwatch/pkg/logger"
	"github.com/carverauto/ifwatch/pkg/metrics"
	"github.com/carverauto/ifwatch/pkg/models"
	"github.com/carverauto/ifwatch/pkg/monitor"
	"github.com/carverauto/ifwatch/pkg/version"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 5 * time.Second
)

// SessionSource is the part of the monitor the API reads from.
type SessionSource interface {
	Info() monitor.SessionInfo
	LastSnapshot() (models.Snapshot, time.Time)
}

// HistorySource provides recent polls.
type HistorySource interface {
	Points() []metrics.PollPoint
}

// Server is the HTTP surface of ifwatch.
type Server struct {
	addr     string
	apiKey   string
	session  SessionSource
	history  HistorySource
	gatherer prometheus.Gatherer
	logger   logger.Logger
}

// InterfacesResponse is the body of GET /api/v1/interfaces.
type InterfacesResponse struct {
	Device     string                   `json:"device,omitempty"`
	PolledAt   *time.Time               `json:"polled_at,omitempty"`
	Interfaces []models.InterfaceRecord `json:"interfaces"`
	Down       []string                 `json:"down"`
}

// NewServer creates a Server. gatherer and history may be nil.
func NewServer(addr, apiKey string, session SessionSource, history HistorySource,
	gatherer prometheus.Gatherer, log logger.Logger) *Server {
	return &Server{
		addr:     addr,
		apiKey:   apiKey,
		session:  session,
		history:  history,
		gatherer: gatherer,
		logger:   log,
	}
}

// Router builds the route tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(RequestLogger(s.logger))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/version", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, version.Get())
	})

	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(APIKeyMiddleware(s.apiKey, s.logger))
		r.Get("/session", s.getSession)
		r.Get("/interfaces", s.getInterfaces)
		r.Get("/interfaces/{index}", s.getInterface)
		r.Get("/polls", s.getPolls)
	})

	return r
}

// ListenAndServe serves until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)

	go func() {
		s.logger.Info().Str("addr", s.addr).Msg("HTTP API listening")

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}

		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}

func (s *Server) getSession(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.session.Info())
}

func (s *Server) getInterfaces(w http.ResponseWriter, _ *http.Request) {
	snap, polledAt := s.session.LastSnapshot()
	info := s.session.Info()

	resp := InterfacesResponse{
		Device:     info.Device,
		Interfaces: snap.Records(),
		Down:       []string{},
	}

	if !polledAt.IsZero() {
		resp.PolledAt = &polledAt
	}

	for _, rec := range snap.Down() {
		resp.Down = append(resp.Down, rec.ShortName())
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) getInterface(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid interface index")

		return
	}

	snap, _ := s.session.LastSnapshot()

	rec, ok := snap[index]
	if !ok {
		writeError(w, http.StatusNotFound, "interface not found")

		return
	}

	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) getPolls(w http.ResponseWriter, _ *http.Request) {
	points := []metrics.PollPoint{}
	if s.history != nil {
		points = append(points, s.history.Points()...)
	}

	writeJSON(w, http.StatusOK, points)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
