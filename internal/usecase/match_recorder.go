package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/rocketscienceinc/battleship-backend/internal/entity"
)

const saveTimeout = 5 * time.Second

type matchRepo interface {
	Save(ctx context.Context, result *entity.MatchResult) error
}

// MatchRecorder persists finished matches in the background so that room handling never waits on storage.
type MatchRecorder struct {
	logger  *slog.Logger
	repo    matchRepo
	results chan *entity.MatchResult
}

func NewMatchRecorder(logger *slog.Logger, repo matchRepo, buffer int) *MatchRecorder {
	return &MatchRecorder{
		logger:  logger.With("component", "match_recorder"),
		repo:    repo,
		results: make(chan *entity.MatchResult, buffer),
	}
}

// Record - queues the result for saving. When the buffer is full the result is dropped.
func (that *MatchRecorder) Record(result *entity.MatchResult) {
	select {
	case that.results <- result:
	default:
		that.logger.Warn("match recorder buffer is full, result dropped", "roomID", result.RoomID)
	}
}

// Run - saves queued results until ctx is done, then flushes whatever is still buffered.
func (that *MatchRecorder) Run(ctx context.Context) {
	log := that.logger.With("method", "Run")

	for {
		select {
		case result := <-that.results:
			that.save(ctx, result)
		case <-ctx.Done():
			log.Info("stopping match recorder", "pending", len(that.results))
			that.flush()
			return
		}
	}
}

func (that *MatchRecorder) flush() {
	for {
		select {
		case result := <-that.results:
			that.save(context.Background(), result)
		default:
			return
		}
	}
}

func (that *MatchRecorder) save(ctx context.Context, result *entity.MatchResult) {
	ctx, cancel := context.WithTimeout(ctx, saveTimeout)
	defer cancel()

	if err := that.repo.Save(ctx, result); err != nil {
		that.logger.Error("failed to save match", "roomID", result.RoomID, "error", err)
		return
	}

	that.logger.Debug("match saved", "roomID", result.RoomID, "outcome", result.Outcome, "duration", result.Duration())
}
