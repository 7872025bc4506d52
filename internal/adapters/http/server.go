package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/aretw0/tally"
	"github.com/aretw0/tally/pkg/domain"
	"github.com/aretw0/tally/pkg/ports"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Engine defines the interface for the calculator core used by the server.
type Engine interface {
	Press(ctx context.Context, state *domain.State, ev domain.Event) (*domain.State, error)
}

// Server exposes calculator sessions over a JSON API. Each session holds one
// calculator state in the injected store; the core itself stays synchronous
// and stateless.
type Server struct {
	engine  Engine
	store   ports.StateStore
	logger  *slog.Logger
	metrics *metrics
}

// PressRequest is the body of POST /sessions/{sessionID}/press.
type PressRequest struct {
	Button string `json:"button"`
}

// SessionResponse mirrors the session state after a request.
type SessionResponse struct {
	SessionID     string `json:"session_id"`
	Display       string `json:"display"`
	Pending       string `json:"pending,omitempty"`
	AwaitingEntry bool   `json:"awaiting_entry"`
	Error         string `json:"error,omitempty"`
}

// NewHandler creates a new HTTP handler for the engine.
func NewHandler(engine Engine, store ports.StateStore, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	server := &Server{
		engine:  engine,
		store:   store,
		logger:  logger,
		metrics: newMetrics(),
	}

	r := chi.NewRouter()
	r.Get("/health", server.GetHealth)
	r.Get("/info", server.GetInfo)
	r.Handle("/metrics", promhttp.HandlerFor(server.metrics.registry, promhttp.HandlerOpts{}))

	r.Route("/sessions", func(r chi.Router) {
		r.Get("/", server.ListSessions)
		r.Route("/{sessionID}", func(r chi.Router) {
			r.Get("/", server.GetSession)
			r.Post("/press", server.Press)
			r.Delete("/", server.DeleteSession)
		})
	})

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Press handles the POST /sessions/{sessionID}/press request.
func (s *Server) Press(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	var body PressRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("Press: Invalid request body", "error", err)
		return
	}

	ev, err := domain.ParseButton(body.Button)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		s.logger.Warn("Press: Unknown button", "button", body.Button)
		return
	}

	state, err := s.store.Load(r.Context(), sessionID)
	if err != nil {
		if !errors.Is(err, domain.ErrSessionNotFound) {
			http.Error(w, "Store error", http.StatusInternalServerError)
			s.logger.Error("Press: Load failed", "error", err, "session_id", sessionID)
			return
		}
		// First press creates the session.
		state = domain.NewState()
	}

	newState, pressErr := s.engine.Press(r.Context(), state, ev)
	s.metrics.presses.WithLabelValues(string(ev.Kind)).Inc()

	// On division by zero newState is already the reset state; persist it so
	// the session recovers, then report the error to the client.
	if err := s.store.Save(r.Context(), sessionID, newState); err != nil {
		http.Error(w, "Store error", http.StatusInternalServerError)
		s.logger.Error("Press: Save failed", "error", err, "session_id", sessionID)
		return
	}

	resp := mapStateToResponse(sessionID, newState)
	status := http.StatusOK
	if pressErr != nil {
		if !errors.Is(pressErr, domain.ErrDivisionByZero) {
			http.Error(w, pressErr.Error(), http.StatusInternalServerError)
			s.logger.Error("Press failed", "error", pressErr)
			return
		}
		s.metrics.divisionByZero.Inc()
		s.logger.Warn("Press: Division by zero", "session_id", sessionID)
		resp.Error = "division_by_zero"
		status = http.StatusUnprocessableEntity
	}

	writeJSON(w, status, resp, s.logger)
}

// GetSession handles the GET /sessions/{sessionID} request.
func (s *Server) GetSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	state, err := s.store.Load(r.Context(), sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			http.Error(w, "Session not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Store error", http.StatusInternalServerError)
		s.logger.Error("GetSession: Load failed", "error", err, "session_id", sessionID)
		return
	}

	writeJSON(w, http.StatusOK, mapStateToResponse(sessionID, state), s.logger)
}

// DeleteSession handles the DELETE /sessions/{sessionID} request.
func (s *Server) DeleteSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	if err := s.store.Delete(r.Context(), sessionID); err != nil {
		http.Error(w, "Store error", http.StatusInternalServerError)
		s.logger.Error("DeleteSession failed", "error", err, "session_id", sessionID)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListSessions handles the GET /sessions request.
func (s *Server) ListSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := s.store.List(r.Context())
	if err != nil {
		http.Error(w, "Store error", http.StatusInternalServerError)
		s.logger.Error("ListSessions failed", "error", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string][]string{"sessions": sessions}, s.logger)
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}, s.logger)
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"app":     "tally-http",
		"version": tally.Version,
	}, s.logger)
}

// -- Metrics --

type metrics struct {
	registry       *prometheus.Registry
	presses        *prometheus.CounterVec
	divisionByZero prometheus.Counter
}

// newMetrics builds a per-handler registry so tests can instantiate the
// server repeatedly without duplicate registration panics.
func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		presses: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tally_presses_total",
				Help: "Total number of processed button presses",
			},
			[]string{"kind"},
		),
		divisionByZero: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "tally_division_by_zero_total",
				Help: "Total number of presses rejected with division by zero",
			},
		),
	}
	m.registry.MustRegister(m.presses, m.divisionByZero)
	return m
}

// -- Helpers --

func writeJSON(w http.ResponseWriter, status int, v any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Response encode failed", "error", err)
	}
}

func mapStateToResponse(sessionID string, state *domain.State) SessionResponse {
	return SessionResponse{
		SessionID:     sessionID,
		Display:       state.Display,
		Pending:       string(state.Pending),
		AwaitingEntry: state.AwaitingEntry,
	}
}
