package battleship

import (
	cerr "github.com/saeidalz13/battleship-tcp/internal/error"
)

type ShotResult struct {
	Hit  bool
	Sunk bool

	// Kind is the ship that was hit. Only meaningful when Hit is true.
	Kind ShipKind
}

// Board is one player's grid and fleet. It is owned by a single
// game session and is not safe for concurrent use.
type Board struct {
	grid           Grid
	ships          [FleetSize]Ship
	shipsRemaining int
}

func NewBoard() *Board {
	b := &Board{}
	b.Reset()
	return b
}

// Reset empties every cell and reinstalls the whole fleet unplaced.
func (b *Board) Reset() {
	b.grid = Grid{}
	for i, kind := range Fleet {
		b.ships[i] = newUnplacedShip(kind)
	}
	b.shipsRemaining = FleetSize
}

func (b *Board) Cell(row, col int) CellState {
	if !NewCoordinates(row, col).InBounds() {
		return CellEmpty
	}
	return b.grid[row][col]
}

// Grid returns a copy of the cells.
func (b *Board) Grid() Grid {
	return b.grid
}

func (b *Board) Ships() [FleetSize]Ship {
	return b.ships
}

func (b *Board) Ship(kind ShipKind) (Ship, bool) {
	for _, sh := range b.ships {
		if sh.Kind == kind {
			return sh, true
		}
	}
	return Ship{}, false
}

func (b *Board) ShipsRemaining() int {
	return b.shipsRemaining
}

func (b *Board) IsDefeated() bool {
	return b.shipsRemaining == 0
}

// NextUnplaced returns the lowest-index ship kind still waiting to be placed.
func (b *Board) NextUnplaced() (ShipKind, bool) {
	for _, sh := range b.ships {
		if !sh.placed {
			return sh.Kind, true
		}
	}
	return 0, false
}

func (b *Board) AllPlaced() bool {
	_, pending := b.NextUnplaced()
	return !pending
}

func (b *Board) IsKindUnplaced(kind ShipKind) bool {
	sh := b.unplacedShip(kind)
	return sh != nil
}

func (b *Board) OccupiedCount() int {
	count := 0
	for r := range b.grid {
		for c := range b.grid[r] {
			if b.grid[r][c] == CellOccupied {
				count++
			}
		}
	}
	return count
}

// CanPlace reports whether the ship's span stays on the grid and does not
// overlap an occupied cell. Touching another ship is allowed.
func (b *Board) CanPlace(ship Ship) bool {
	if !ship.Kind.Valid() || ship.Size <= 0 {
		return false
	}
	if ship.Orientation != Horizontal && ship.Orientation != Vertical {
		return false
	}

	for _, pos := range ship.Span() {
		if !pos.InBounds() {
			return false
		}
		if b.grid[pos.Row][pos.Col] == CellOccupied {
			return false
		}
	}
	return true
}

// Place records the anchor and orientation on the unplaced fleet ship of the
// same kind and marks its span occupied. The board is left untouched on error.
func (b *Board) Place(ship Ship) error {
	kind, err := ParseShipKind(uint8(ship.Kind))
	if err != nil {
		return err
	}
	orientation, err := ParseOrientation(uint8(ship.Orientation))
	if err != nil {
		return err
	}

	target := b.unplacedShip(kind)
	if target == nil {
		return cerr.ErrShipKindPlaced(ship.Kind.String())
	}

	// Size comes from the fleet, never from the caller.
	candidate := NewShip(kind, ship.Row, ship.Col, orientation)
	if !b.CanPlace(candidate) {
		return cerr.ErrSpanNotPlaceable(ship.Kind.String(), ship.Row, ship.Col)
	}

	target.Row = candidate.Row
	target.Col = candidate.Col
	target.Orientation = candidate.Orientation
	target.placed = true

	for _, pos := range target.Span() {
		b.grid[pos.Row][pos.Col] = CellOccupied
	}
	return nil
}

// TakeShot resolves a shot at (row, col). Out-of-range coordinates and cells
// that were already fired upon count as a miss and change nothing.
func (b *Board) TakeShot(row, col int) ShotResult {
	if !NewCoordinates(row, col).InBounds() {
		return ShotResult{}
	}

	switch b.grid[row][col] {
	case CellEmpty:
		b.grid[row][col] = CellMissed
		return ShotResult{}

	case CellOccupied:
		b.grid[row][col] = CellHit
		for i := range b.ships {
			sh := &b.ships[i]
			if !sh.Covers(row, col) {
				continue
			}

			result := ShotResult{Hit: true, Kind: sh.Kind}
			if sh.gotHit() {
				b.shipsRemaining--
				result.Sunk = true
			}
			return result
		}
		// An occupied cell always belongs to a placed ship.
		return ShotResult{Hit: true}

	default:
		return ShotResult{}
	}
}

func (b *Board) unplacedShip(kind ShipKind) *Ship {
	for i := range b.ships {
		if b.ships[i].Kind == kind && !b.ships[i].placed {
			return &b.ships[i]
		}
	}
	return nil
}
