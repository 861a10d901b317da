package web

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const refreshTimeout = 30 * time.Second

// TournamentEvent is posted by the backend when the tournament changes
type TournamentEvent struct {
	Source string `json:"source"`
	Event  string `json:"event"`
}

func isRelevantSource(source, base string) bool {
	return strings.TrimRight(source, "/") == strings.TrimRight(base, "/")
}

// TournamentWebhookHandler HTTP endpoint that receives a webhook from the tournament backend, used to refresh the
// cached snapshot before its TTL runs out
// Preconditions: HTTP server has been started, receives HTTP ResponseWriter and Http Request
// Postconditions: Responds 200 straight away and refreshes the snapshot in the background. Events for other
// sources are acknowledged and ignored
func (s *Server) TournamentWebhookHandler(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var event TournamentEvent
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		slog.Warn("failed to decode webhook", "error", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	if !isRelevantSource(event.Source, s.source) {
		w.WriteHeader(http.StatusOK)
		return
	}

	slog.Info("tournament event", "source", event.Source, "event", event.Event)

	go func(e TournamentEvent) {
		ctx, cancel := context.WithTimeout(s.lifetime, refreshTimeout)
		defer cancel()
		if err := s.api.RefreshTournament(ctx); err != nil {
			slog.Error("tournament refresh failed", "event", e.Event, "error", err)
		}
	}(event)

	w.WriteHeader(http.StatusOK)
}
