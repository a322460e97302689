package client

import (
	"log/slog"

	mb "github.com/saeidalz13/battleship-tcp/models/battleship"
	mc "github.com/saeidalz13/battleship-tcp/models/connection"
)

// Game is the client's picture of a match: its own fleet as confirmed by the
// server and whatever it has learned about the opponent's grid.
type Game struct {
	own      *mb.Board
	opponent mb.Grid

	prompt   mb.ShipKind
	prompted bool
	myTurn   bool

	over bool
	won  bool
}

func NewGame() *Game {
	return &Game{own: mb.NewBoard()}
}

func (g *Game) Own() *mb.Board {
	return g.own
}

func (g *Game) Opponent() mb.Grid {
	return g.opponent
}

// Prompt returns the ship kind the server is waiting for, if any.
func (g *Game) Prompt() (mb.ShipKind, bool) {
	return g.prompt, g.prompted
}

func (g *Game) MyTurn() bool {
	return g.myTurn
}

func (g *Game) Over() bool {
	return g.over
}

func (g *Game) Won() bool {
	return g.won
}

// Apply folds a server message into the local views and returns the text
// to show the player.
func (g *Game) Apply(msg mc.Message) string {
	switch m := msg.(type) {
	case mc.PlaceShipPrompt:
		g.prompt = m.Ship
		g.prompted = true

	case mc.PlacementResponse:
		if m.Success {
			if err := g.own.Place(mb.NewShip(m.Ship, m.Row, m.Col, m.Orientation)); err != nil {
				slog.Warn("confirmed placement does not apply to local board", "ship", m.Ship.String(), "err", err)
			}
		}

	case mc.TurnNotice:
		g.myTurn = true

	case mc.ShotResult:
		switch m.Board {
		case mc.BoardOwn:
			g.own.TakeShot(m.Row, m.Col)
		case mc.BoardOpponent:
			g.myTurn = false
			g.markOpponent(m)
		}

	case mc.GameOver:
		g.over = true
		g.won = m.Won
		g.myTurn = false

	case mc.Info, mc.PlacementRequest, mc.ShotRequest:
	}
	return msg.DisplayText()
}

// Sent records that a request is in flight so it is not sent twice.
func (g *Game) Sent(msg mc.Message) {
	switch msg.(type) {
	case mc.PlacementRequest:
		g.prompted = false
	case mc.ShotRequest:
		g.myTurn = false
	}
}

func (g *Game) markOpponent(result mc.ShotResult) {
	at := mb.NewCoordinates(result.Row, result.Col)
	if !at.InBounds() || g.opponent[at.Row][at.Col].Resolved() {
		return
	}

	if result.Outcome == mc.OutcomeMiss {
		g.opponent[at.Row][at.Col] = mb.CellMissed
		return
	}
	g.opponent[at.Row][at.Col] = mb.CellHit
}
