package entity

import (
	"testing"

	"github.com/rocketscienceinc/battleship-backend/internal/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fleetBoard places every ship of the fleet on its own row, starting at column 0.
func fleetBoard(t *testing.T) Board {
	t.Helper()

	board := NewBoard()
	for row, ship := range Fleet {
		_, err := board.Place(CellIndex(row, 0), ship.Size, Horizontal)
		require.NoError(t, err)
	}

	return board
}

func newReadyRoom(t *testing.T) *Room {
	t.Helper()

	room := NewRoom(&Player{ID: "a", Name: "Alice"}, &Player{ID: "b"})

	_, err := room.SubmitBoard("a", fleetBoard(t), "")
	require.NoError(t, err)
	_, err = room.SubmitBoard("b", fleetBoard(t), "")
	require.NoError(t, err)
	require.NoError(t, room.Start("a"))

	return room
}

func TestNewRoom(t *testing.T) {
	// Given: a queued player and an arriving player
	first := &Player{ID: "a", Name: "Alice"}
	second := &Player{ID: "b"}

	// When: creating the room
	room := NewRoom(first, second)

	// Then: the id is derived from both ids in arrival order and the room waits for boards
	assert.Equal(t, "room-a-b", room.ID)
	assert.Equal(t, "a", room.Members[0].ID)
	assert.Equal(t, "b", room.Members[1].ID)
	assert.Equal(t, "Alice", room.Members[0].Name)
	assert.Equal(t, DefaultPlayerName, room.Members[1].Name)
	assert.True(t, room.IsWaiting())
}

func TestRoom_SubmitBoard(t *testing.T) {
	t.Run("First board does not start the game", func(t *testing.T) {
		// Given: a new room
		room := NewRoom(&Player{ID: "a"}, &Player{ID: "b"})

		// When: one member submits a board
		bothReady, err := room.SubmitBoard("a", fleetBoard(t), "")

		// Then: the member is ready and the room still waits
		require.NoError(t, err)
		assert.False(t, bothReady)
		assert.True(t, room.Members[0].Ready)
		assert.True(t, room.IsWaiting())
	})

	t.Run("Second board makes both ready", func(t *testing.T) {
		room := NewRoom(&Player{ID: "a"}, &Player{ID: "b"})
		_, err := room.SubmitBoard("a", fleetBoard(t), "")
		require.NoError(t, err)

		bothReady, err := room.SubmitBoard("b", fleetBoard(t), "Bob")

		require.NoError(t, err)
		assert.True(t, bothReady)
		assert.Equal(t, "Bob", room.Members[1].Name)
	})

	t.Run("Board is accepted only once", func(t *testing.T) {
		// Given: a member that is already ready
		room := NewRoom(&Player{ID: "a"}, &Player{ID: "b"})
		_, err := room.SubmitBoard("a", fleetBoard(t), "")
		require.NoError(t, err)

		// When: it submits an empty board
		_, err = room.SubmitBoard("a", NewBoard(), "")

		// Then: ErrAlreadyReady is returned and the original board is kept
		require.ErrorIs(t, err, apperror.ErrAlreadyReady)
		assert.Equal(t, FleetCells(), room.Members[0].Board.ShipCells())
	})

	t.Run("Non member is rejected", func(t *testing.T) {
		room := NewRoom(&Player{ID: "a"}, &Player{ID: "b"})

		_, err := room.SubmitBoard("c", fleetBoard(t), "")

		assert.ErrorIs(t, err, apperror.ErrNotMember)
	})

	t.Run("Wrong board length is rejected", func(t *testing.T) {
		room := NewRoom(&Player{ID: "a"}, &Player{ID: "b"})

		_, err := room.SubmitBoard("a", make(Board, 10), "")

		require.ErrorIs(t, err, apperror.ErrInvalidBoard)
		assert.False(t, room.Members[0].Ready)
	})

	t.Run("Board is copied", func(t *testing.T) {
		// Given: a board owned by the caller
		room := NewRoom(&Player{ID: "a"}, &Player{ID: "b"})
		board := fleetBoard(t)

		// When: the caller mutates it after submitting
		_, err := room.SubmitBoard("a", board, "")
		require.NoError(t, err)
		board[0] = false

		// Then: the stored board is unaffected
		assert.True(t, room.Members[0].Board[0])
	})
}

func TestRoom_Start(t *testing.T) {
	t.Run("Requires both members ready", func(t *testing.T) {
		room := NewRoom(&Player{ID: "a"}, &Player{ID: "b"})

		err := room.Start("a")

		assert.ErrorIs(t, err, apperror.ErrGameIsNotStarted)
	})

	t.Run("Turn owner must be a member", func(t *testing.T) {
		room := NewRoom(&Player{ID: "a"}, &Player{ID: "b"})
		_, _ = room.SubmitBoard("a", fleetBoard(t), "")
		_, _ = room.SubmitBoard("b", fleetBoard(t), "")

		err := room.Start("c")

		assert.ErrorIs(t, err, apperror.ErrNotMember)
	})
}

func TestRoom_Attack(t *testing.T) {
	t.Run("Returns the defender", func(t *testing.T) {
		// Given: a room in active play
		room := newReadyRoom(t)

		// When: a attacks cell 0
		defender, err := room.Attack("a", 0, false)

		// Then: b is the defender and the attack is counted
		require.NoError(t, err)
		assert.Equal(t, "b", defender.ID)
		assert.Equal(t, 1, room.Attacks)
	})

	t.Run("Before both ready", func(t *testing.T) {
		room := NewRoom(&Player{ID: "a"}, &Player{ID: "b"})

		_, err := room.Attack("a", 0, false)

		assert.ErrorIs(t, err, apperror.ErrGameIsNotStarted)
	})

	t.Run("Out of range target", func(t *testing.T) {
		room := newReadyRoom(t)

		_, err := room.Attack("a", CellCount, false)

		assert.ErrorIs(t, err, apperror.ErrInvalidCell)
	})

	t.Run("Turn is advisory when not enforced", func(t *testing.T) {
		// Given: a room where a owns the turn
		room := newReadyRoom(t)

		// When: b attacks anyway
		defender, err := room.Attack("b", 5, false)

		// Then: the attack is accepted
		require.NoError(t, err)
		assert.Equal(t, "a", defender.ID)
	})

	t.Run("Turn is enforced when requested", func(t *testing.T) {
		room := newReadyRoom(t)

		_, err := room.Attack("b", 5, true)
		require.ErrorIs(t, err, apperror.ErrNotYourTurn)

		_, err = room.Attack("a", 5, true)
		require.NoError(t, err)

		// a has an unanswered attack and cannot fire again
		_, err = room.Attack("a", 6, true)
		assert.ErrorIs(t, err, apperror.ErrNotYourTurn)
	})
}

func TestRoom_ReportResult(t *testing.T) {
	t.Run("Hit clears the reporter cell and passes the turn", func(t *testing.T) {
		// Given: a attacked b at cell 0 which holds a ship
		room := newReadyRoom(t)
		_, err := room.Attack("a", 0, false)
		require.NoError(t, err)

		// When: b reports a hit
		attacker, won, err := room.ReportResult("b", 0, true, false)

		// Then: the cell is cleared, the game continues and b owns the turn
		require.NoError(t, err)
		assert.Equal(t, "a", attacker.ID)
		assert.False(t, won)
		assert.False(t, room.Members[1].Board[0])
		assert.Equal(t, FleetCells()-1, room.Members[1].Board.ShipCells())
		assert.Equal(t, "b", room.Turn)
	})

	t.Run("Miss leaves the board untouched", func(t *testing.T) {
		room := newReadyRoom(t)

		_, won, err := room.ReportResult("b", 0, false, false)

		require.NoError(t, err)
		assert.False(t, won)
		assert.True(t, room.Members[1].Board[0])
	})

	t.Run("Clearing every ship cell finishes the room", func(t *testing.T) {
		// Given: a room in active play
		room := newReadyRoom(t)
		var won bool

		// When: b reports a hit on every one of its ship cells
		for index, ship := range fleetBoard(t) {
			if !ship {
				continue
			}

			var err error
			_, won, err = room.ReportResult("b", index, true, false)
			require.NoError(t, err)
		}

		// Then: the room finished and a won
		assert.True(t, won)
		assert.True(t, room.IsFinished())
		assert.Equal(t, "a", room.Winner)
		assert.Empty(t, room.Turn)

		// And: a repeated report cannot win again
		_, _, err := room.ReportResult("b", 0, true, false)
		assert.ErrorIs(t, err, apperror.ErrGameFinished)
	})

	t.Run("Enforced report must answer the pending attack", func(t *testing.T) {
		room := newReadyRoom(t)
		_, err := room.Attack("a", 3, true)
		require.NoError(t, err)

		_, _, err = room.ReportResult("b", 4, true, true)
		require.ErrorIs(t, err, apperror.ErrNotYourTurn)

		_, _, err = room.ReportResult("b", 3, true, true)
		assert.NoError(t, err)
	})

	t.Run("Non member report", func(t *testing.T) {
		room := newReadyRoom(t)

		_, _, err := room.ReportResult("c", 0, true, false)

		assert.ErrorIs(t, err, apperror.ErrNotMember)
	})
}

func TestRoom_Abandon(t *testing.T) {
	t.Run("Abandon during the ready phase", func(t *testing.T) {
		// Given: a room waiting for boards
		room := NewRoom(&Player{ID: "a"}, &Player{ID: "b"})

		// When: a leaves
		survivor, ok := room.Abandon("a")

		// Then: b survives and the room is finished
		require.True(t, ok)
		assert.Equal(t, "b", survivor.ID)
		assert.True(t, room.IsFinished())
	})

	t.Run("Abandon happens once", func(t *testing.T) {
		room := newReadyRoom(t)

		_, ok := room.Abandon("b")
		require.True(t, ok)

		_, ok = room.Abandon("a")
		assert.False(t, ok)
	})
}

func TestNewMatchResult(t *testing.T) {
	// Given: a finished room where b lost
	room := newReadyRoom(t)
	room.Attacks = 30
	_, ok := room.Abandon("b")
	require.True(t, ok)

	// When: building the match record
	result := NewMatchResult(room, "b", OutcomeAbandoned)

	// Then: the winner and loser are resolved from the room
	assert.Equal(t, room.ID, result.RoomID)
	assert.Equal(t, "a", result.WinnerID)
	assert.Equal(t, "Alice", result.WinnerName)
	assert.Equal(t, "b", result.LoserID)
	assert.Equal(t, DefaultPlayerName, result.LoserName)
	assert.Equal(t, 30, result.Attacks)
	assert.GreaterOrEqual(t, result.Duration().Nanoseconds(), int64(0))
}
