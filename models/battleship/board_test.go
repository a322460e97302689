package battleship

import (
	"errors"
	"testing"

	cerr "github.com/saeidalz13/battleship-tcp/internal/error"
)

func mustPlace(t *testing.T, b *Board, ship Ship) {
	t.Helper()
	if !b.CanPlace(ship) {
		t.Fatalf("expected %s at (%d,%d) %s to be placeable", ship.Kind, ship.Row, ship.Col, ship.Orientation)
	}
	if err := b.Place(ship); err != nil {
		t.Fatal(err)
	}
}

func placeFleet(t *testing.T, b *Board) {
	t.Helper()
	for i, kind := range Fleet {
		mustPlace(t, b, NewShip(kind, i*2, 0, Horizontal))
	}
}

func TestNewBoard(t *testing.T) {
	b := NewBoard()

	for r := 0; r < GridRows; r++ {
		for c := 0; c < GridCols; c++ {
			if b.Cell(r, c) != CellEmpty {
				t.Fatalf("expected empty cell at (%d,%d)\tgot: %s", r, c, b.Cell(r, c))
			}
		}
	}

	if b.ShipsRemaining() != FleetSize {
		t.Fatalf("expected ships remaining: %d\tgot: %d", FleetSize, b.ShipsRemaining())
	}

	ships := b.Ships()
	for i, kind := range Fleet {
		if ships[i].Kind != kind {
			t.Fatalf("expected ship %d to be %s\tgot: %s", i, kind, ships[i].Kind)
		}
		if ships[i].IsPlaced() {
			t.Fatalf("expected %s to be unplaced", kind)
		}
		if ships[i].Size != kind.Size() {
			t.Fatalf("expected %s size: %d\tgot: %d", kind, kind.Size(), ships[i].Size)
		}
	}

	if b.IsDefeated() {
		t.Fatal("new board must not be defeated")
	}
}

func TestPlaceFullFleet(t *testing.T) {
	b := NewBoard()
	placeFleet(t, b)

	if !b.AllPlaced() {
		t.Fatal("expected all ships to be placed")
	}
	if b.OccupiedCount() != 17 {
		t.Fatalf("expected occupied cells: %d\tgot: %d", 17, b.OccupiedCount())
	}
	if _, pending := b.NextUnplaced(); pending {
		t.Fatal("expected no unplaced ship")
	}
}

func TestCanPlace(t *testing.T) {
	tests := []struct {
		name     string
		existing []Ship
		ship     Ship
		want     bool
	}{
		{
			name: "fits top left horizontal",
			ship: NewShip(Carrier, 0, 0, Horizontal),
			want: true,
		},
		{
			name: "fits bottom right vertical",
			ship: NewShip(Destroyer, 8, 9, Vertical),
			want: true,
		},
		{
			name: "horizontal crosses right edge",
			ship: NewShip(Destroyer, 0, 9, Horizontal),
			want: false,
		},
		{
			name: "vertical crosses bottom edge",
			ship: NewShip(Carrier, 6, 0, Vertical),
			want: false,
		},
		{
			name: "negative row",
			ship: NewShip(Cruiser, -1, 3, Horizontal),
			want: false,
		},
		{
			name: "negative col",
			ship: NewShip(Cruiser, 3, -1, Vertical),
			want: false,
		},
		{
			name:     "overlaps existing ship",
			existing: []Ship{NewShip(Carrier, 2, 2, Horizontal)},
			ship:     NewShip(Battleship, 0, 4, Vertical),
			want:     false,
		},
		{
			name:     "adjacent to existing ship",
			existing: []Ship{NewShip(Carrier, 2, 2, Horizontal)},
			ship:     NewShip(Battleship, 3, 2, Horizontal),
			want:     true,
		},
		{
			name:     "touching end to end",
			existing: []Ship{NewShip(Cruiser, 5, 0, Horizontal)},
			ship:     NewShip(Submarine, 5, 3, Horizontal),
			want:     true,
		},
		{
			name: "unknown kind",
			ship: Ship{Kind: ShipKind(9), Size: 3},
			want: false,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			b := NewBoard()
			for _, sh := range test.existing {
				mustPlace(t, b, sh)
			}

			if got := b.CanPlace(test.ship); got != test.want {
				t.Fatalf("expected CanPlace: %t\tgot: %t", test.want, got)
			}
		})
	}
}

func TestPlaceRejections(t *testing.T) {
	b := NewBoard()
	mustPlace(t, b, NewShip(Destroyer, 0, 0, Horizontal))

	err := b.Place(NewShip(Destroyer, 5, 5, Horizontal))
	if !errors.Is(err, cerr.ErrShipAlreadyPlaced) {
		t.Fatalf("expected error: %v\tgot: %v", cerr.ErrShipAlreadyPlaced, err)
	}

	err = b.Place(NewShip(Cruiser, 0, 1, Vertical))
	if !errors.Is(err, cerr.ErrInvalidPlacement) {
		t.Fatalf("expected error: %v\tgot: %v", cerr.ErrInvalidPlacement, err)
	}

	err = b.Place(Ship{Kind: ShipKind(7), Row: 4, Col: 4})
	if !errors.Is(err, cerr.ErrUnknownShipKind) {
		t.Fatalf("expected error: %v\tgot: %v", cerr.ErrUnknownShipKind, err)
	}

	err = b.Place(NewShip(Cruiser, 4, 4, Orientation(2)))
	if !errors.Is(err, cerr.ErrInvalidPlacement) {
		t.Fatalf("expected error: %v\tgot: %v", cerr.ErrInvalidPlacement, err)
	}

	if b.OccupiedCount() != 2 {
		t.Fatalf("rejected placements must not mutate the board\toccupied: %d", b.OccupiedCount())
	}
	if !b.IsKindUnplaced(Cruiser) {
		t.Fatal("expected cruiser to still be unplaced")
	}
}

func TestPlaceIgnoresCallerSize(t *testing.T) {
	b := NewBoard()
	ship := NewShip(Destroyer, 4, 4, Horizontal)
	ship.Size = 7

	if err := b.Place(ship); err != nil {
		t.Fatalf("expected no error\tgot: %v", err)
	}
	if b.OccupiedCount() != 2 {
		t.Fatalf("expected occupied cells: %d\tgot: %d", 2, b.OccupiedCount())
	}

	placed, ok := b.Ship(Destroyer)
	if !ok || placed.Size != 2 {
		t.Fatalf("expected placed destroyer of size 2\tgot: %+v", placed)
	}
	if b.Cell(4, 6) != CellEmpty {
		t.Fatalf("expected cell (4,6) to stay empty\tgot: %v", b.Cell(4, 6))
	}
}

// Destroyer at A0 horizontal: hit, then hit and sunk.
func TestScenarioSinkDestroyer(t *testing.T) {
	b := NewBoard()
	mustPlace(t, b, NewShip(Destroyer, 0, 0, Horizontal))

	for r := 0; r < GridRows; r++ {
		for c := 0; c < GridCols; c++ {
			occupied := (r == 0 && (c == 0 || c == 1))
			if got := b.Cell(r, c) == CellOccupied; got != occupied {
				t.Fatalf("unexpected occupancy at (%d,%d)\texpected: %t", r, c, occupied)
			}
		}
	}

	first := b.TakeShot(0, 0)
	if !first.Hit || first.Sunk {
		t.Fatalf("expected hit not sunk\tgot: %+v", first)
	}
	if first.Kind != Destroyer {
		t.Fatalf("expected hit kind: %s\tgot: %s", Destroyer, first.Kind)
	}

	second := b.TakeShot(0, 1)
	if !second.Hit || !second.Sunk {
		t.Fatalf("expected hit and sunk\tgot: %+v", second)
	}
	if b.ShipsRemaining() != 4 {
		t.Fatalf("expected ships remaining: %d\tgot: %d", 4, b.ShipsRemaining())
	}
}

func TestScenarioOutOfBoundsDestroyer(t *testing.T) {
	b := NewBoard()
	if b.CanPlace(NewShip(Destroyer, 0, 9, Horizontal)) {
		t.Fatal("expected destroyer at col 9 horizontal to be rejected")
	}
}

func TestScenarioOverlap(t *testing.T) {
	b := NewBoard()
	mustPlace(t, b, NewShip(Cruiser, 3, 3, Vertical))
	if b.CanPlace(NewShip(Submarine, 4, 1, Horizontal)) {
		t.Fatal("expected overlapping submarine to be rejected")
	}
}

func TestTakeShotMiss(t *testing.T) {
	b := NewBoard()
	mustPlace(t, b, NewShip(Carrier, 0, 0, Horizontal))

	for i := 0; i < 3; i++ {
		got := b.TakeShot(5, 5)
		if got.Hit || got.Sunk {
			t.Fatalf("shot %d: expected miss\tgot: %+v", i, got)
		}
		if b.Cell(5, 5) != CellMissed {
			t.Fatalf("expected missed cell\tgot: %s", b.Cell(5, 5))
		}
	}
}

func TestTakeShotResolvedHitCell(t *testing.T) {
	b := NewBoard()
	mustPlace(t, b, NewShip(Destroyer, 0, 0, Horizontal))

	if got := b.TakeShot(0, 0); !got.Hit {
		t.Fatalf("expected hit\tgot: %+v", got)
	}

	again := b.TakeShot(0, 0)
	if again.Hit || again.Sunk {
		t.Fatalf("expected re-shot to score as miss\tgot: %+v", again)
	}
	if b.Cell(0, 0) != CellHit {
		t.Fatalf("expected hit cell to stay hit\tgot: %s", b.Cell(0, 0))
	}

	sh, _ := b.Ship(Destroyer)
	if sh.Hits() != 1 {
		t.Fatalf("expected hits: %d\tgot: %d", 1, sh.Hits())
	}
}

func TestTakeShotOutOfRange(t *testing.T) {
	b := NewBoard()
	placeFleet(t, b)
	before := b.Grid()

	tests := []struct {
		name     string
		row, col int
	}{
		{name: "negative row", row: -1, col: 0},
		{name: "negative col", row: 0, col: -1},
		{name: "row too large", row: GridRows, col: 0},
		{name: "col too large", row: 0, col: GridCols},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := b.TakeShot(test.row, test.col)
			if got.Hit || got.Sunk {
				t.Fatalf("expected miss\tgot: %+v", got)
			}
			if b.Grid() != before {
				t.Fatal("out of range shot mutated the board")
			}
		})
	}
}

func TestSinkEveryShipOnce(t *testing.T) {
	b := NewBoard()
	placeFleet(t, b)

	sunk := 0
	for _, sh := range b.Ships() {
		for _, pos := range sh.Span() {
			if b.IsDefeated() {
				t.Fatal("board defeated before the last ship sank")
			}
			if got := b.TakeShot(pos.Row, pos.Col); got.Sunk {
				sunk++
			}
		}
		// Shooting the wreck again must not sink it twice.
		for _, pos := range sh.Span() {
			if got := b.TakeShot(pos.Row, pos.Col); got.Sunk {
				t.Fatalf("%s sunk twice", sh.Kind)
			}
		}
		if b.ShipsRemaining() != FleetSize-sunk {
			t.Fatalf("expected ships remaining: %d\tgot: %d", FleetSize-sunk, b.ShipsRemaining())
		}
	}

	if sunk != FleetSize {
		t.Fatalf("expected sunk ships: %d\tgot: %d", FleetSize, sunk)
	}
	if !b.IsDefeated() {
		t.Fatal("expected board to be defeated")
	}
	for _, sh := range b.Ships() {
		if !sh.IsSunk() {
			t.Fatalf("expected %s to be sunk", sh.Kind)
		}
	}
	if b.OccupiedCount() != 0 {
		t.Fatalf("expected no occupied cells\tgot: %d", b.OccupiedCount())
	}
}

func TestCoordinatesString(t *testing.T) {
	tests := []struct {
		coords Coordinates
		want   string
	}{
		{coords: NewCoordinates(0, 0), want: "A0"},
		{coords: NewCoordinates(9, 9), want: "J9"},
		{coords: NewCoordinates(4, 2), want: "C4"},
		{coords: NewCoordinates(11, 2), want: "(11,2)"},
	}

	for _, test := range tests {
		if got := test.coords.String(); got != test.want {
			t.Fatalf("expected label: %s\tgot: %s", test.want, got)
		}
	}
}
