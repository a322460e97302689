package connection

import "fmt"

// Kind is the wire tag of a message.
type Kind uint8

const (
	KindInfo Kind = iota
	KindPlacementRequest
	KindPlacementResponse
	KindShotRequest
	KindShotResult
	KindTurnNotice
	KindGameOver
	KindPlaceShipPrompt
)

func (k Kind) String() string {
	switch k {
	case KindInfo:
		return "Info"
	case KindPlacementRequest:
		return "PlacementRequest"
	case KindPlacementResponse:
		return "PlacementResponse"
	case KindShotRequest:
		return "ShotRequest"
	case KindShotResult:
		return "ShotResult"
	case KindTurnNotice:
		return "TurnNotice"
	case KindGameOver:
		return "GameOver"
	case KindPlaceShipPrompt:
		return "PlaceShipPrompt"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

type Outcome uint8

const (
	OutcomeMiss Outcome = iota
	OutcomeHit
	OutcomeSunk
)

func (o Outcome) String() string {
	switch o {
	case OutcomeHit:
		return "hit"
	case OutcomeSunk:
		return "sunk"
	default:
		return "miss"
	}
}

// BoardAffected tells the receiver of a shot result which of its two
// views to update.
type BoardAffected uint8

const (
	// The receiver's own fleet was fired upon.
	BoardOwn BoardAffected = iota
	// The receiver fired at its opponent.
	BoardOpponent
)
