package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/battleship-backend/internal/entity"
)

const (
	recentMatchesKey = "matches:recent"
	statsKeyPrefix   = "stats:"
	matchKeyPrefix   = "match:"
)

var ErrMatchNotFound = errors.New("match not found")

type MatchRepository interface {
	Save(ctx context.Context, result *entity.MatchResult) error
	GetByID(ctx context.Context, roomID string) (*entity.MatchResult, error)
	GetRecent(ctx context.Context, limit int) ([]*entity.MatchResult, error)
	GetStats(ctx context.Context) (*entity.MatchStats, error)
}

type dbMatch struct {
	client      *redis.Client
	historySize int64
}

// NewMatchRepository - keeps finished matches in redis, the recent list is capped at historySize.
func NewMatchRepository(client *redis.Client, historySize int) MatchRepository {
	return &dbMatch{
		client:      client,
		historySize: int64(historySize),
	}
}

func (that *dbMatch) Save(ctx context.Context, result *entity.MatchResult) error {
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("could not marshal match: %w", err)
	}

	_, err = that.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, matchKeyPrefix+result.RoomID, resultJSON, 0)
		pipe.LPush(ctx, recentMatchesKey, resultJSON)
		pipe.LTrim(ctx, recentMatchesKey, 0, that.historySize-1)
		pipe.Incr(ctx, statsKeyPrefix+result.Outcome)

		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save match: %w", err)
	}

	return nil
}

func (that *dbMatch) GetByID(ctx context.Context, roomID string) (*entity.MatchResult, error) {
	response, err := that.client.Get(ctx, matchKeyPrefix+roomID).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMatchNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get match by id: %w", err)
	}

	var result entity.MatchResult
	if err = json.Unmarshal([]byte(response), &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal match: %w", err)
	}

	return &result, nil
}

// GetRecent - returns up to limit matches, newest first.
func (that *dbMatch) GetRecent(ctx context.Context, limit int) ([]*entity.MatchResult, error) {
	if limit <= 0 {
		return []*entity.MatchResult{}, nil
	}

	items, err := that.client.LRange(ctx, recentMatchesKey, 0, int64(limit)-1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get recent matches: %w", err)
	}

	results := make([]*entity.MatchResult, 0, len(items))
	for _, item := range items {
		var result entity.MatchResult
		if err = json.Unmarshal([]byte(item), &result); err != nil {
			return nil, fmt.Errorf("failed to unmarshal match: %w", err)
		}

		results = append(results, &result)
	}

	return results, nil
}

func (that *dbMatch) GetStats(ctx context.Context) (*entity.MatchStats, error) {
	var completed, abandoned *redis.StringCmd

	_, err := that.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		completed = pipe.Get(ctx, statsKeyPrefix+entity.OutcomeCompleted)
		abandoned = pipe.Get(ctx, statsKeyPrefix+entity.OutcomeAbandoned)

		return nil
	})
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("failed to get match stats: %w", err)
	}

	stats := &entity.MatchStats{}

	if stats.Completed, err = counter(completed); err != nil {
		return nil, err
	}

	if stats.Abandoned, err = counter(abandoned); err != nil {
		return nil, err
	}

	return stats, nil
}

// counter - a missing key counts as zero.
func counter(cmd *redis.StringCmd) (int64, error) {
	value, err := cmd.Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}

	if err != nil {
		return 0, fmt.Errorf("failed to read counter %s: %w", cmd.Args()[1], err)
	}

	return value, nil
}
