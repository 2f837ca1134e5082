package entity

import (
	"testing"

	"github.com/rocketscienceinc/battleship-backend/internal/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoard_Validate(t *testing.T) {
	t.Run("Accepts a full size board", func(t *testing.T) {
		// Given: a board with one entry per cell
		board := NewBoard()

		// When: validating it
		err := board.Validate()

		// Then: no error should be returned
		assert.NoError(t, err)
	})

	t.Run("Rejects a short board", func(t *testing.T) {
		// Given: a board that misses cells
		board := make(Board, CellCount-1)

		// When: validating it
		err := board.Validate()

		// Then: ErrInvalidBoard should be returned
		assert.ErrorIs(t, err, apperror.ErrInvalidBoard)
	})

	t.Run("Rejects a long board", func(t *testing.T) {
		board := make(Board, CellCount+5)

		assert.ErrorIs(t, board.Validate(), apperror.ErrInvalidBoard)
	})
}

func TestBoard_Place(t *testing.T) {
	t.Run("Places a horizontal ship", func(t *testing.T) {
		// Given: an empty board
		board := NewBoard()

		// When: placing a carrier on row 2 starting at column 3
		cells, err := board.Place(CellIndex(2, 3), 5, Horizontal)

		// Then: the five consecutive cells of the row are occupied
		require.NoError(t, err)
		assert.Equal(t, []int{23, 24, 25, 26, 27}, cells)
		assert.Equal(t, 5, board.ShipCells())
	})

	t.Run("Places a vertical ship", func(t *testing.T) {
		board := NewBoard()

		cells, err := board.Place(CellIndex(0, 9), 3, Vertical)

		require.NoError(t, err)
		assert.Equal(t, []int{9, 19, 29}, cells)
	})

	t.Run("Rejects a ship leaving the grid", func(t *testing.T) {
		// Given: an empty board
		board := NewBoard()

		// When: placing a ship that would wrap past the right edge
		_, err := board.Place(CellIndex(0, 8), 4, Horizontal)

		// Then: the placement fails and the board stays empty
		require.ErrorIs(t, err, apperror.ErrInvalidBoard)
		assert.False(t, board.HasShips())
	})

	t.Run("Rejects overlapping ships", func(t *testing.T) {
		// Given: a board with a destroyer at the top left corner
		board := NewBoard()
		_, err := board.Place(0, 2, Horizontal)
		require.NoError(t, err)

		// When: placing a vertical cruiser across it
		_, err = board.Place(1, 3, Vertical)

		// Then: the placement fails and only the destroyer remains
		require.ErrorIs(t, err, apperror.ErrInvalidBoard)
		assert.Equal(t, 2, board.ShipCells())
	})

	t.Run("Rejects a start outside the grid", func(t *testing.T) {
		board := NewBoard()

		_, err := board.Place(CellCount, 2, Horizontal)

		assert.ErrorIs(t, err, apperror.ErrInvalidCell)
	})
}

func TestBoard_Clear(t *testing.T) {
	t.Run("Clearing is idempotent", func(t *testing.T) {
		// Given: a board with a single ship cell
		board := NewBoard()
		board[42] = true

		// When: clearing the same cell twice
		require.NoError(t, board.Clear(42))
		require.NoError(t, board.Clear(42))

		// Then: the board has no ships and nothing else changed
		assert.False(t, board.HasShips())
		assert.Equal(t, 0, board.ShipCells())
	})

	t.Run("Out of range index", func(t *testing.T) {
		board := NewBoard()

		assert.ErrorIs(t, board.Clear(-1), apperror.ErrInvalidCell)
		assert.ErrorIs(t, board.Clear(CellCount), apperror.ErrInvalidCell)
	})
}

func TestFleetCells(t *testing.T) {
	assert.Equal(t, 17, FleetCells())
}
