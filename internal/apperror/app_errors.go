package apperror

import "errors"

var (
	ErrRoomNotFound     = errors.New("room not found")
	ErrPlayerNotFound   = errors.New("player not found")
	ErrNotMember        = errors.New("player is not a member of the room")
	ErrAlreadyReady     = errors.New("player is already ready")
	ErrAlreadyQueued    = errors.New("player is already waiting for a match")
	ErrAlreadyInRoom    = errors.New("player is already in a room")
	ErrNameAlreadySet   = errors.New("name is already set")
	ErrGameIsNotStarted = errors.New("game is not started")
	ErrGameFinished     = errors.New("game is already finished")
	ErrNotYourTurn      = errors.New("it's not your turn")
	ErrInvalidBoard     = errors.New("invalid board")
	ErrInvalidCell      = errors.New("invalid cell index")
	ErrInvalidName      = errors.New("invalid name")
)

// IsStale - reports whether err refers to state the caller is not allowed to touch
// (a missing room, a foreign room or a repeated ready). Such messages are dropped silently.
func IsStale(err error) bool {
	return errors.Is(err, ErrRoomNotFound) ||
		errors.Is(err, ErrPlayerNotFound) ||
		errors.Is(err, ErrNotMember) ||
		errors.Is(err, ErrAlreadyReady) ||
		errors.Is(err, ErrGameIsNotStarted) ||
		errors.Is(err, ErrGameFinished)
}
