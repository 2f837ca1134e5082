package rest

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/rocketscienceinc/battleship-backend/internal/entity"
	"github.com/rocketscienceinc/battleship-backend/internal/repository"
)

const (
	defaultRecentLimit = 10
	maxRecentLimit     = 100
)

type statsResponse struct {
	Lobby   entity.LobbyStats  `json:"lobby"`
	Matches *entity.MatchStats `json:"matches"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func pingHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
}

// statsHandler - live lobby counters together with the recorded match totals.
func (that *Server) statsHandler(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "statsHandler")

	stats, err := that.matches.GetStats(r.Context())
	if err != nil {
		log.Error("failed to get match stats", "error", err)
		that.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Internal Server Error"})

		return
	}

	that.writeJSON(w, http.StatusOK, statsResponse{
		Lobby:   that.lobby.Snapshot(),
		Matches: stats,
	})
}

func (that *Server) recentMatchesHandler(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "recentMatchesHandler")

	limit := defaultRecentLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "limit must be a positive integer"})
			return
		}

		limit = min(parsed, maxRecentLimit)
	}

	matches, err := that.matches.GetRecent(r.Context(), limit)
	if err != nil {
		log.Error("failed to get recent matches", "error", err)
		that.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Internal Server Error"})

		return
	}

	that.writeJSON(w, http.StatusOK, matches)
}

func (that *Server) matchHandler(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "matchHandler")

	roomID := mux.Vars(r)["roomID"]

	match, err := that.matches.GetByID(r.Context(), roomID)
	if errors.Is(err, repository.ErrMatchNotFound) {
		that.writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
		return
	}

	if err != nil {
		log.Error("failed to get match", "roomID", roomID, "error", err)
		that.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Internal Server Error"})

		return
	}

	that.writeJSON(w, http.StatusOK, match)
}

func (that *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}
