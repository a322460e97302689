package error

import (
	"errors"
	"fmt"
)

var (
	ErrPeerDisconnected   = errors.New("peer disconnected")
	ErrShipAlreadyPlaced  = errors.New("no unplaced ship of this kind remains")
	ErrInvalidPlacement   = errors.New("ship span is out of bounds or overlaps another ship")
	ErrUnknownMessageKind = errors.New("unknown message kind")
	ErrUnknownShipKind    = errors.New("unknown ship kind")

	ErrNotYourTurn        = errors.New("it is not your turn")
	ErrNoPlacementPrompt  = errors.New("the server has not asked for a ship yet")
	ErrInvalidCell        = errors.New("invalid cell")
	ErrCellAlreadyFiredAt = errors.New("cell was already fired at")
	ErrInvalidAddress     = errors.New("invalid server address")
)

func ErrPeerDisconnectedFrom(remoteAddr string, cause error) error {
	return fmt.Errorf("%w: %s: %v", ErrPeerDisconnected, remoteAddr, cause)
}

func ErrInvalidMessageKind(kind uint8) error {
	return fmt.Errorf("%w: %d", ErrUnknownMessageKind, kind)
}

func ErrInvalidShipKind(kind uint8) error {
	return fmt.Errorf("%w: %d", ErrUnknownShipKind, kind)
}

func ErrShipKindPlaced(kind string) error {
	return fmt.Errorf("%w:\t%s", ErrShipAlreadyPlaced, kind)
}

func ErrSpanNotPlaceable(kind string, row, col int) error {
	return fmt.Errorf("%w:\t%s at row: %d\tcol: %d", ErrInvalidPlacement, kind, row, col)
}

func ErrXorYOutOfGridBound(row, col int) error {
	return fmt.Errorf("incoming row or col is out of game grid bound\trow: %d\tcol: %d", row, col)
}

func ErrInvalidOrientation(orientation uint8) error {
	return fmt.Errorf("%w: the orientation is not horizontal or vertical:\t%d", ErrInvalidPlacement, orientation)
}

func ErrUnexpectedTextFrame(remoteAddr string) error {
	return fmt.Errorf("expected binary frame from %s, got text", remoteAddr)
}

func ErrInvalidConfig(key string, cause error) error {
	return fmt.Errorf("invalid config value for %s: %w", key, cause)
}

func ErrInvalidCellInput(input string) error {
	return fmt.Errorf("%w %q: use a column letter A-J followed by a row 0-9, e.g. C4", ErrInvalidCell, input)
}

func ErrCellFiredAt(cell string) error {
	return fmt.Errorf("%w: %s", ErrCellAlreadyFiredAt, cell)
}

func ErrShipDoesNotFit(kind, cell, orientation string) error {
	return fmt.Errorf("%s does not fit at %s %s: %w", kind, cell, orientation, ErrInvalidPlacement)
}

func ErrInvalidServerAddress(addr, reason string) error {
	return fmt.Errorf("%w %q: %s", ErrInvalidAddress, addr, reason)
}

func ErrOrientationInput(input string) error {
	return fmt.Errorf("orientation must be h or v, got %q", input)
}
