package entity

import (
	"fmt"

	"github.com/rocketscienceinc/battleship-backend/internal/apperror"
)

const (
	BoardWidth  = 10
	BoardHeight = 10
	CellCount   = BoardWidth * BoardHeight
)

const (
	Horizontal = "horizontal"
	Vertical   = "vertical"
)

// Ship describes one piece of the fleet.
type Ship struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Size int    `json:"size"`
}

// Fleet is the standard set of ships every player places before the game.
var Fleet = []Ship{
	{ID: "carrier", Name: "Carrier", Size: 5},
	{ID: "battleship", Name: "Battleship", Size: 4},
	{ID: "cruiser", Name: "Cruiser", Size: 3},
	{ID: "submarine", Name: "Submarine", Size: 3},
	{ID: "destroyer", Name: "Destroyer", Size: 2},
}

// FleetCells - total number of cells occupied by the standard fleet.
func FleetCells() int {
	total := 0
	for _, ship := range Fleet {
		total += ship.Size
	}

	return total
}

// Board is a row-major grid of cells, true marks a cell occupied by a ship.
type Board []bool

func NewBoard() Board {
	return make(Board, CellCount)
}

// CellIndex - converts grid coordinates to a board index.
func CellIndex(row, col int) int {
	return row*BoardWidth + col
}

func ValidCell(index int) bool {
	return index >= 0 && index < CellCount
}

// Validate - checks that the board has exactly one entry per grid cell.
func (that Board) Validate() error {
	if len(that) != CellCount {
		return fmt.Errorf("%w: expected %d cells, got %d", apperror.ErrInvalidBoard, CellCount, len(that))
	}

	return nil
}

func (that Board) IsShip(index int) bool {
	return ValidCell(index) && index < len(that) && that[index]
}

func (that Board) ShipCells() int {
	count := 0
	for _, cell := range that {
		if cell {
			count++
		}
	}

	return count
}

func (that Board) HasShips() bool {
	for _, cell := range that {
		if cell {
			return true
		}
	}

	return false
}

// Clear - removes the ship flag from a cell. Clearing an empty cell is a no-op.
func (that Board) Clear(index int) error {
	if !ValidCell(index) || index >= len(that) {
		return fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, index)
	}

	that[index] = false

	return nil
}

// Place - puts a ship of the given size starting at start and extending right or down.
// The board is left untouched when the ship would leave the grid or overlap another ship.
func (that Board) Place(start, size int, orientation string) ([]int, error) {
	if !ValidCell(start) || size <= 0 {
		return nil, fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, start)
	}

	row, col := start/BoardWidth, start%BoardWidth
	cells := make([]int, 0, size)

	for i := 0; i < size; i++ {
		r, c := row, col+i
		if orientation == Vertical {
			r, c = row+i, col
		}

		if r >= BoardHeight || c >= BoardWidth {
			return nil, fmt.Errorf("%w: ship leaves the grid at row %d col %d", apperror.ErrInvalidBoard, r, c)
		}

		index := CellIndex(r, c)
		if that.IsShip(index) {
			return nil, fmt.Errorf("%w: cell %d is already occupied", apperror.ErrInvalidBoard, index)
		}

		cells = append(cells, index)
	}

	for _, index := range cells {
		that[index] = true
	}

	return cells, nil
}
