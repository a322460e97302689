package connection

import (
	mb "github.com/saeidalz13/battleship-tcp/models/battleship"
)

// Message is implemented only by the types in this file. Consumers
// switch on the concrete type.
type Message interface {
	Kind() Kind
	DisplayText() string
	isMessage()
}

type Info struct {
	Text string
}

type PlacementRequest struct {
	Ship        mb.ShipKind
	Row         int
	Col         int
	Orientation mb.Orientation
}

type PlacementResponse struct {
	Success     bool
	Ship        mb.ShipKind
	Row         int
	Col         int
	Orientation mb.Orientation
	Text        string
}

type ShotRequest struct {
	Row int
	Col int
}

type ShotResult struct {
	Row     int
	Col     int
	Outcome Outcome
	Board   BoardAffected

	// Ship is set when Outcome is OutcomeHit or OutcomeSunk.
	Ship mb.ShipKind
	Text string
}

type TurnNotice struct {
	Text string
}

type GameOver struct {
	Won  bool
	Text string
}

type PlaceShipPrompt struct {
	Ship mb.ShipKind
	Text string
}

func (Info) Kind() Kind              { return KindInfo }
func (PlacementRequest) Kind() Kind  { return KindPlacementRequest }
func (PlacementResponse) Kind() Kind { return KindPlacementResponse }
func (ShotRequest) Kind() Kind       { return KindShotRequest }
func (ShotResult) Kind() Kind        { return KindShotResult }
func (TurnNotice) Kind() Kind        { return KindTurnNotice }
func (GameOver) Kind() Kind          { return KindGameOver }
func (PlaceShipPrompt) Kind() Kind   { return KindPlaceShipPrompt }

func (m Info) DisplayText() string              { return m.Text }
func (m PlacementResponse) DisplayText() string { return m.Text }
func (m ShotResult) DisplayText() string        { return m.Text }
func (m TurnNotice) DisplayText() string        { return m.Text }
func (m GameOver) DisplayText() string          { return m.Text }
func (m PlaceShipPrompt) DisplayText() string   { return m.Text }

func (m PlacementRequest) DisplayText() string {
	return "Placement attempt for " + m.Ship.String() + " at " +
		mb.NewCoordinates(m.Row, m.Col).String() + " " + m.Orientation.String()
}

func (m ShotRequest) DisplayText() string {
	return "Shot at " + mb.NewCoordinates(m.Row, m.Col).String()
}

func (Info) isMessage()              {}
func (PlacementRequest) isMessage()  {}
func (PlacementResponse) isMessage() {}
func (ShotRequest) isMessage()       {}
func (ShotResult) isMessage()        {}
func (TurnNotice) isMessage()        {}
func (GameOver) isMessage()          {}
func (PlaceShipPrompt) isMessage()   {}

func OutcomeOf(result mb.ShotResult) Outcome {
	switch {
	case result.Sunk:
		return OutcomeSunk
	case result.Hit:
		return OutcomeHit
	default:
		return OutcomeMiss
	}
}
