package dashboard

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"securiwatch/internal/pipeline"
	"securiwatch/internal/types"
)

// EventStore is what the API needs from the persistence layer
type EventStore interface {
	ListEvents(limit int) ([]types.SecurityEvent, error)
	Stats() (*pipeline.Report, error)
}

// Server exposes collected events and statistics as a JSON API
type Server struct {
	store EventStore
	port  string
}

// NewServer creates a dashboard API server on top of a store
func NewServer(store EventStore, port string) *Server {
	return &Server{
		store: store,
		port:  port,
	}
}

// Start starts the HTTP server and blocks
func (s *Server) Start() error {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/events", s.handleEvents)
	mux.HandleFunc("/api/v1/stats", s.handleStats)

	log.Printf("[DASHBOARD] Starting on %s", s.port)
	return http.ListenAndServe(s.port, mux)
}

// handleEvents returns the most recent events as JSON
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	limit := 100
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			limit = l
		}
	}

	events, err := s.store.ListEvents(limit)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if events == nil {
		events = []types.SecurityEvent{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(events)
}

// handleStats returns the aggregated view as JSON
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.store.Stats()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stats)
}
