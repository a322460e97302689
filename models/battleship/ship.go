package battleship

import (
	"fmt"

	cerr "github.com/saeidalz13/battleship-tcp/internal/error"
)

type ShipKind uint8

// Fleet order is also the order in which players are prompted to place ships.
const (
	Carrier ShipKind = iota
	Battleship
	Cruiser
	Submarine
	Destroyer
)

const FleetSize = 5

var Fleet = [FleetSize]ShipKind{Carrier, Battleship, Cruiser, Submarine, Destroyer}

var shipSizes = [FleetSize]int{
	Carrier:    5,
	Battleship: 4,
	Cruiser:    3,
	Submarine:  3,
	Destroyer:  2,
}

var shipNames = [FleetSize]string{
	Carrier:    "Carrier",
	Battleship: "Battleship",
	Cruiser:    "Cruiser",
	Submarine:  "Submarine",
	Destroyer:  "Destroyer",
}

func ParseShipKind(code uint8) (ShipKind, error) {
	if code >= FleetSize {
		return 0, cerr.ErrInvalidShipKind(code)
	}
	return ShipKind(code), nil
}

func (k ShipKind) Valid() bool {
	return k < FleetSize
}

// Size returns 0 for an unknown kind.
func (k ShipKind) Size() int {
	if !k.Valid() {
		return 0
	}
	return shipSizes[k]
}

func (k ShipKind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("ShipKind(%d)", uint8(k))
	}
	return shipNames[k]
}

type Orientation uint8

const (
	Horizontal Orientation = iota
	Vertical
)

func ParseOrientation(code uint8) (Orientation, error) {
	if code > uint8(Vertical) {
		return 0, cerr.ErrInvalidOrientation(code)
	}
	return Orientation(code), nil
}

func (o Orientation) String() string {
	if o == Vertical {
		return "Vertical"
	}
	return "Horizontal"
}

type Ship struct {
	Kind        ShipKind
	Size        int
	Row         int
	Col         int
	Orientation Orientation
	hits        int
	placed      bool
}

// NewShip describes a placement attempt. The size always follows the kind.
func NewShip(kind ShipKind, row, col int, orientation Orientation) Ship {
	return Ship{
		Kind:        kind,
		Size:        kind.Size(),
		Row:         row,
		Col:         col,
		Orientation: orientation,
	}
}

func newUnplacedShip(kind ShipKind) Ship {
	return NewShip(kind, -1, -1, Horizontal)
}

// Span returns the cells the ship covers from its anchor. Horizontal ships
// extend along columns, vertical ships along rows.
func (sh Ship) Span() []Coordinates {
	span := make([]Coordinates, 0, sh.Size)
	for i := 0; i < sh.Size; i++ {
		if sh.Orientation == Horizontal {
			span = append(span, NewCoordinates(sh.Row, sh.Col+i))
		} else {
			span = append(span, NewCoordinates(sh.Row+i, sh.Col))
		}
	}
	return span
}

func (sh Ship) Covers(row, col int) bool {
	if !sh.placed {
		return false
	}
	if sh.Orientation == Horizontal {
		return row == sh.Row && col >= sh.Col && col < sh.Col+sh.Size
	}
	return col == sh.Col && row >= sh.Row && row < sh.Row+sh.Size
}

func (sh Ship) Hits() int {
	return sh.hits
}

func (sh Ship) IsPlaced() bool {
	return sh.placed
}

func (sh Ship) IsSunk() bool {
	return sh.placed && sh.hits == sh.Size
}

// gotHit returns true only for the hit that sinks the ship.
func (sh *Ship) gotHit() bool {
	if sh.hits >= sh.Size {
		return false
	}
	sh.hits++
	return sh.hits == sh.Size
}
