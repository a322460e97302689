package connection

import (
	"bytes"
	"encoding/binary"
	"io"
	"unicode/utf8"

	cerr "github.com/saeidalz13/battleship-tcp/internal/error"
	mb "github.com/saeidalz13/battleship-tcp/models/battleship"
)

const MaxTextLen = 1024

// record is the fixed wire layout shared by server and client. Field order
// and sizes must not change without changing both ends.
type record struct {
	Kind        uint8
	Success     uint8
	Ship        uint8
	Orientation uint8
	Outcome     uint8
	Board       uint8
	_           [2]byte
	Row         int32
	Col         int32
	TextLen     uint16
	Text        [MaxTextLen]byte
}

// RecordSize is the number of bytes every encoded message occupies.
var RecordSize = binary.Size(record{})

var byteOrder = binary.BigEndian

func Encode(w io.Writer, msg Message) error {
	rec := toRecord(msg)
	return binary.Write(w, byteOrder, &rec)
}

// Decode reads exactly one record. A clean EOF before the first byte is
// returned as io.EOF, a short record as io.ErrUnexpectedEOF.
func Decode(r io.Reader) (Message, error) {
	var rec record
	if err := binary.Read(r, byteOrder, &rec); err != nil {
		return nil, err
	}
	return fromRecord(rec)
}

func Marshal(msg Message) ([]byte, error) {
	buf := bytes.NewBuffer(make([]byte, 0, RecordSize))
	if err := Encode(buf, msg); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func Unmarshal(payload []byte) (Message, error) {
	if len(payload) != RecordSize {
		return nil, io.ErrUnexpectedEOF
	}
	return Decode(bytes.NewReader(payload))
}

func toRecord(msg Message) record {
	rec := record{Kind: uint8(msg.Kind())}
	setText := func(text string) {
		text = truncateText(text)
		rec.TextLen = uint16(copy(rec.Text[:], text))
	}

	switch m := msg.(type) {
	case Info:
		setText(m.Text)

	case PlacementRequest:
		rec.Ship = uint8(m.Ship)
		rec.Row, rec.Col = int32(m.Row), int32(m.Col)
		rec.Orientation = uint8(m.Orientation)
		setText(m.DisplayText())

	case PlacementResponse:
		rec.Success = boolToByte(m.Success)
		rec.Ship = uint8(m.Ship)
		rec.Row, rec.Col = int32(m.Row), int32(m.Col)
		rec.Orientation = uint8(m.Orientation)
		setText(m.Text)

	case ShotRequest:
		rec.Row, rec.Col = int32(m.Row), int32(m.Col)
		setText(m.DisplayText())

	case ShotResult:
		rec.Row, rec.Col = int32(m.Row), int32(m.Col)
		rec.Outcome = uint8(m.Outcome)
		rec.Board = uint8(m.Board)
		rec.Ship = uint8(m.Ship)
		setText(m.Text)

	case TurnNotice:
		setText(m.Text)

	case GameOver:
		rec.Success = boolToByte(m.Won)
		setText(m.Text)

	case PlaceShipPrompt:
		rec.Ship = uint8(m.Ship)
		setText(m.Text)
	}
	return rec
}

func fromRecord(rec record) (Message, error) {
	textLen := int(rec.TextLen)
	if textLen > MaxTextLen {
		textLen = MaxTextLen
	}
	text := string(rec.Text[:textLen])
	row, col := int(rec.Row), int(rec.Col)

	switch Kind(rec.Kind) {
	case KindInfo:
		return Info{Text: text}, nil

	case KindPlacementRequest:
		return PlacementRequest{
			Ship:        mb.ShipKind(rec.Ship),
			Row:         row,
			Col:         col,
			Orientation: mb.Orientation(rec.Orientation),
		}, nil

	case KindPlacementResponse:
		return PlacementResponse{
			Success:     rec.Success != 0,
			Ship:        mb.ShipKind(rec.Ship),
			Row:         row,
			Col:         col,
			Orientation: mb.Orientation(rec.Orientation),
			Text:        text,
		}, nil

	case KindShotRequest:
		return ShotRequest{Row: row, Col: col}, nil

	case KindShotResult:
		return ShotResult{
			Row:     row,
			Col:     col,
			Outcome: Outcome(rec.Outcome),
			Board:   BoardAffected(rec.Board),
			Ship:    mb.ShipKind(rec.Ship),
			Text:    text,
		}, nil

	case KindTurnNotice:
		return TurnNotice{Text: text}, nil

	case KindGameOver:
		return GameOver{Won: rec.Success != 0, Text: text}, nil

	case KindPlaceShipPrompt:
		return PlaceShipPrompt{Ship: mb.ShipKind(rec.Ship), Text: text}, nil

	default:
		return nil, cerr.ErrInvalidMessageKind(rec.Kind)
	}
}

// truncateText cuts text to MaxTextLen bytes without splitting a rune.
func truncateText(text string) string {
	if len(text) <= MaxTextLen {
		return text
	}
	cut := MaxTextLen
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut]
}

func boolToByte(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
