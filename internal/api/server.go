// Package api serves the city over HTTP. GET endpoints are public
// (read-only snapshot views); POST endpoints require a bearer token.
// All simulation access is serialized through one mutex — the simulation
// itself is single-writer.
package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/seralo/citysim/internal/engine"
	"github.com/seralo/citysim/internal/persistence"
)

// Server serves the city state over HTTP and websocket.
type Server struct {
	Sim      *engine.Simulation
	Store    *persistence.Store // nil disables save/load endpoints
	Port     int
	AdminKey string // Bearer token for POST endpoints. Empty = POST disabled.

	mu  sync.Mutex
	hub *Hub
}

// Start begins serving in a goroutine.
func (s *Server) Start() {
	s.hub = NewHub()

	mux := http.NewServeMux()

	// Public endpoints (GET, read-only).
	mux.HandleFunc("/api/v1/status", s.handleStatus)
	mux.HandleFunc("/api/v1/state", s.handleState)
	mux.HandleFunc("/api/v1/factions", s.handleFactions)
	mux.HandleFunc("/api/v1/history", s.handleHistory)
	mux.HandleFunc("/api/v1/notifications", s.handleNotifications)
	mux.HandleFunc("/api/v1/missions", s.handleMissions)
	mux.HandleFunc("/api/v1/infrastructure", s.handleInfrastructure)
	mux.HandleFunc("/api/v1/saves", s.handleSaves)

	// Websocket tick stream.
	mux.HandleFunc("/api/v1/stream", s.handleStream)

	// Control endpoints (POST, require bearer token).
	mux.HandleFunc("/api/v1/advance", s.adminOnly(s.handleAdvance))
	mux.HandleFunc("/api/v1/pause", s.adminOnly(s.handlePause))
	mux.HandleFunc("/api/v1/save", s.adminOnly(s.handleSave))
	mux.HandleFunc("/api/v1/load", s.adminOnly(s.handleLoad))

	addr := fmt.Sprintf(":%d", s.Port)
	slog.Info("HTTP API starting", "addr", addr, "admin_auth", s.AdminKey != "")

	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()
}

// Tick advances the simulation by one week under the server lock, then
// persists drained notifications and pushes a summary to stream clients.
// The run loop and the advance endpoint both come through here, so ticks
// never interleave.
func (s *Server) Tick() {
	s.mu.Lock()
	s.Sim.AdvanceTime()
	notifs := s.Sim.DrainNotifications()
	summary := s.summaryLocked()
	s.mu.Unlock()

	if s.Store != nil && len(notifs) > 0 {
		events := make([]persistence.Event, len(notifs))
		for i, n := range notifs {
			events[i] = persistence.Event{Week: n.Week, Kind: string(n.Kind), Message: n.Message}
		}
		if err := s.Store.SaveEvents(events); err != nil {
			slog.Warn("failed to persist notifications", "error", err)
		}
	}

	if s.hub != nil {
		s.hub.Broadcast(summary)
	}
}

func (s *Server) adminOnly(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		if s.AdminKey == "" {
			http.Error(w, "control endpoints disabled", http.StatusForbidden)
			return
		}
		auth := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(auth, "Bearer ")
		if !ok || token != s.AdminKey {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
