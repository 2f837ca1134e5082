package entity

import "time"

const (
	OutcomeCompleted = "completed"
	OutcomeAbandoned = "abandoned"
)

// MatchResult is the record kept for every room that reached a terminal state.
type MatchResult struct {
	RoomID     string    `json:"room_id"`
	WinnerID   string    `json:"winner_id"`
	WinnerName string    `json:"winner_name"`
	LoserID    string    `json:"loser_id"`
	LoserName  string    `json:"loser_name"`
	Outcome    string    `json:"outcome"`
	Attacks    int       `json:"attacks"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

// NewMatchResult - builds the record of a finished room. loserID is the member that lost or left.
func NewMatchResult(room *Room, loserID, outcome string) *MatchResult {
	result := &MatchResult{
		RoomID:     room.ID,
		Outcome:    outcome,
		Attacks:    room.Attacks,
		StartedAt:  room.CreatedAt,
		FinishedAt: time.Now(),
	}

	if loser := room.Member(loserID); loser != nil {
		result.LoserID = loser.ID
		result.LoserName = loser.Name
	}

	if winner := room.Opponent(loserID); winner != nil {
		result.WinnerID = winner.ID
		result.WinnerName = winner.Name
	}

	return result
}

func (that *MatchResult) Duration() time.Duration {
	return that.FinishedAt.Sub(that.StartedAt)
}

type MatchStats struct {
	Completed int64 `json:"completed"`
	Abandoned int64 `json:"abandoned"`
}

// LobbyStats is a snapshot of the live in-memory state.
type LobbyStats struct {
	Online      int  `json:"online"`
	Waiting     bool `json:"waiting"`
	ActiveRooms int  `json:"active_rooms"`
}
