package client

import (
	"net"
	"strconv"
	"strings"

	cerr "github.com/saeidalz13/battleship-tcp/internal/error"
	mb "github.com/saeidalz13/battleship-tcp/models/battleship"
	mc "github.com/saeidalz13/battleship-tcp/models/connection"
)

const DefaultServerPort = "8080"

// Command is one line of player input. Exactly one of Quit and Msg is set.
type Command struct {
	Quit bool
	Msg  mc.Message
}

// ParseCell reads labels such as "C4": column letter A-J, then row 0-9.
func ParseCell(input string) (mb.Coordinates, error) {
	input = strings.TrimSpace(input)
	if len(input) < 2 {
		return mb.Coordinates{}, cerr.ErrInvalidCellInput(input)
	}

	letter := input[0] | 0x20 // lower case
	if letter < 'a' || letter > 'z' {
		return mb.Coordinates{}, cerr.ErrInvalidCellInput(input)
	}
	row, err := strconv.Atoi(input[1:])
	if err != nil {
		return mb.Coordinates{}, cerr.ErrInvalidCellInput(input)
	}

	pos := mb.NewCoordinates(row, int(letter-'a'))
	if !pos.InBounds() {
		return mb.Coordinates{}, cerr.ErrXorYOutOfGridBound(pos.Row, pos.Col)
	}
	return pos, nil
}

func parseOrientation(input string) (mb.Orientation, bool) {
	switch strings.ToLower(input) {
	case "h", "horizontal":
		return mb.Horizontal, true
	case "v", "vertical":
		return mb.Vertical, true
	default:
		return 0, false
	}
}

// ParseCommand turns a line into a request for the current game state.
// During placement it accepts "<cell> [h|v]", during a turn "<cell>" or
// "fire <cell>". "quit" is accepted at any time. Requests the server would
// reject are refused locally.
func ParseCommand(line string, game *Game) (Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{}, cerr.ErrInvalidCellInput(line)
	}

	switch strings.ToLower(fields[0]) {
	case "q", "quit", "exit":
		return Command{Quit: true}, nil
	case "fire", "f":
		fields = fields[1:]
		if len(fields) == 0 {
			return Command{}, cerr.ErrInvalidCellInput("")
		}
	}

	if kind, ok := game.Prompt(); ok {
		return parsePlacement(fields, kind, game)
	}
	if game.MyTurn() {
		return parseShot(fields, game)
	}
	if game.Over() {
		return Command{Quit: true}, nil
	}
	if !game.Own().AllPlaced() {
		return Command{}, cerr.ErrNoPlacementPrompt
	}
	return Command{}, cerr.ErrNotYourTurn
}

func parsePlacement(fields []string, kind mb.ShipKind, game *Game) (Command, error) {
	pos, err := ParseCell(fields[0])
	if err != nil {
		return Command{}, err
	}

	orientation := mb.Horizontal
	if len(fields) > 1 {
		var ok bool
		if orientation, ok = parseOrientation(fields[1]); !ok {
			return Command{}, cerr.ErrOrientationInput(fields[1])
		}
	}

	if !game.Own().CanPlace(mb.NewShip(kind, pos.Row, pos.Col, orientation)) {
		return Command{}, cerr.ErrShipDoesNotFit(kind.String(), pos.String(), orientation.String())
	}
	return Command{Msg: mc.PlacementRequest{Ship: kind, Row: pos.Row, Col: pos.Col, Orientation: orientation}}, nil
}

func parseShot(fields []string, game *Game) (Command, error) {
	pos, err := ParseCell(fields[0])
	if err != nil {
		return Command{}, err
	}
	if game.Opponent()[pos.Row][pos.Col].Resolved() {
		return Command{}, cerr.ErrCellFiredAt(pos.String())
	}
	return Command{Msg: mc.ShotRequest{Row: pos.Row, Col: pos.Col}}, nil
}

// NormalizeAddress accepts "host" or "host:port" and fills in the default
// game port.
func NormalizeAddress(addr string) (string, error) {
	if strings.TrimSpace(addr) == "" {
		return "", cerr.ErrInvalidServerAddress(addr, "empty address")
	}

	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		host, port = addr, DefaultServerPort
		// a bare IPv6 literal has colons but no port
		if strings.Contains(addr, ":") && net.ParseIP(addr) == nil {
			return "", cerr.ErrInvalidServerAddress(addr, err.Error())
		}
	}

	if host == "" || strings.ContainsAny(host, " /") {
		return "", cerr.ErrInvalidServerAddress(addr, "invalid host")
	}
	if p, err := strconv.Atoi(port); err != nil || p < 1 || p > 65535 {
		return "", cerr.ErrInvalidServerAddress(addr, "invalid port")
	}
	return net.JoinHostPort(host, port), nil
}
