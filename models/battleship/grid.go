package battleship

import "fmt"

const (
	GridRows = 10
	GridCols = 10

	ValidLowerBound = 0
)

type CellState uint8

const (
	CellEmpty CellState = iota
	CellOccupied
	CellHit
	CellMissed
)

func (c CellState) String() string {
	switch c {
	case CellEmpty:
		return "empty"
	case CellOccupied:
		return "occupied"
	case CellHit:
		return "hit"
	case CellMissed:
		return "missed"
	default:
		return fmt.Sprintf("CellState(%d)", uint8(c))
	}
}

// Resolved reports whether the cell has already been fired upon.
func (c CellState) Resolved() bool {
	return c == CellHit || c == CellMissed
}

type Coordinates struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func NewCoordinates(row, col int) Coordinates {
	return Coordinates{Row: row, Col: col}
}

func (c Coordinates) InBounds() bool {
	return c.Row >= ValidLowerBound && c.Row < GridRows && c.Col >= ValidLowerBound && c.Col < GridCols
}

// String labels the cell the way players read the board,
// column letter then row number (e.g. "C4").
func (c Coordinates) String() string {
	if !c.InBounds() {
		return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
	}
	return fmt.Sprintf("%c%d", 'A'+c.Col, c.Row)
}

type Grid [GridRows][GridCols]CellState
