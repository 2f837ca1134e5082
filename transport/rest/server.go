package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/rocketscienceinc/battleship-backend/internal/entity"
)

const shutdownTimeout = 5 * time.Second

type lobby interface {
	Snapshot() entity.LobbyStats
}

type matchStore interface {
	GetByID(ctx context.Context, roomID string) (*entity.MatchResult, error)
	GetRecent(ctx context.Context, limit int) ([]*entity.MatchResult, error)
	GetStats(ctx context.Context) (*entity.MatchStats, error)
}

type Server struct {
	logger *slog.Logger

	lobby   lobby
	matches matchStore
}

func New(logger *slog.Logger, lobby lobby, matches matchStore) *Server {
	return &Server{
		logger:  logger.With("component", "rest_server"),
		lobby:   lobby,
		matches: matches,
	}
}

func (that *Server) Router() *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/ping", pingHandler).Methods(http.MethodGet)
	router.HandleFunc("/stats", that.statsHandler).Methods(http.MethodGet)
	router.HandleFunc("/matches/recent", that.recentMatchesHandler).Methods(http.MethodGet)
	router.HandleFunc("/matches/{roomID}", that.matchHandler).Methods(http.MethodGet)

	return router
}

// Start - starts HTTP server, it returns once ctx is done and the server is shut down.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shut down server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
