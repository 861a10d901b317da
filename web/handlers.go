/* handlers.go
 * Contains the HTTP handlers for the viewer facing json api. The viewer is identified by the X-Viewer-ID header
 */

package web

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"bracket-viewer/api/api"
	"bracket-viewer/api/bracket"
)

const (
	viewerHeader    = "X-Viewer-ID"
	anonymousViewer = "anonymous"
)

type errorResponse struct {
	Error string `json:"error"`
	Retry bool   `json:"retry,omitempty"` // The client should offer a retry
}

// Routes returns the handler with every route registered
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/brackets", s.BracketsHandler)
	mux.HandleFunc("GET /api/rounds/{key}", s.RoundHandler)
	mux.HandleFunc("GET /api/matchups/{number}", s.MatchupHandler)
	mux.HandleFunc("POST /api/matchups/{number}/skip", s.SkipHandler)
	mux.HandleFunc("POST /webhooks/tournament", s.TournamentWebhookHandler)
	return mux
}

// BracketsHandler lists the navigable brackets and their rounds
func (s *Server) BracketsHandler(w http.ResponseWriter, r *http.Request) {
	overview, err := s.api.GetBracketOverview(r.Context())
	if err != nil {
		writeAPIError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, overview)
}

// RoundHandler returns one round, as the viewer is allowed to see it
func (s *Server) RoundHandler(w http.ResponseWriter, r *http.Request) {
	round, err := s.api.GetRoundByKey(r.Context(), viewerID(r), r.PathValue("key"))
	if err != nil {
		writeAPIError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, round)
}

// MatchupHandler returns one matchup by number
func (s *Server) MatchupHandler(w http.ResponseWriter, r *http.Request) {
	number, ok := parseNumber(w, r)
	if !ok {
		return
	}
	m, err := s.api.GetMatchup(r.Context(), viewerID(r), number)
	if err != nil {
		writeAPIError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

// SkipHandler reveals a matchup for the viewer and returns it with the result showing
func (s *Server) SkipHandler(w http.ResponseWriter, r *http.Request) {
	number, ok := parseNumber(w, r)
	if !ok {
		return
	}
	viewer := viewerID(r)
	if s.limiter != nil && !s.limiter.Allow(viewer) {
		writeJSON(w, http.StatusTooManyRequests, errorResponse{Error: "too many requests, slow down"})
		return
	}

	m, err := s.api.SkipMatchup(r.Context(), viewer, number)
	if err != nil {
		writeAPIError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func viewerID(r *http.Request) string {
	if v := strings.TrimSpace(r.Header.Get(viewerHeader)); v != "" {
		return v
	}
	return anonymousViewer
}

func parseNumber(w http.ResponseWriter, r *http.Request) (int, bool) {
	number, err := strconv.Atoi(r.PathValue("number"))
	if err != nil || number <= 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "matchup number must be a positive integer"})
		return 0, false
	}
	return number, true
}

// writeAPIError maps api errors onto status codes. Upstream failures are the only retryable ones
func writeAPIError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, api.ErrTournamentUnavailable):
		slog.Warn("tournament unavailable", "path", r.URL.Path, "error", err)
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: "failed to load tournament data", Retry: true})
	case errors.Is(err, bracket.ErrInvalidRoundKey):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, api.ErrMatchupNotFound), errors.Is(err, api.ErrRoundNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	default:
		slog.Error("request failed", "path", r.URL.Path, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("failed to write response", "error", err)
	}
}
