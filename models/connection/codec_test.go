package connection

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"net"
	"strings"
	"testing"
	"testing/iotest"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cerr "github.com/saeidalz13/battleship-tcp/internal/error"
	mb "github.com/saeidalz13/battleship-tcp/models/battleship"
)

func TestRecordSize(t *testing.T) {
	assert.Equal(t, 1042, RecordSize)

	payload, err := Marshal(TurnNotice{Text: "Your turn"})
	require.NoError(t, err)
	assert.Len(t, payload, RecordSize)
}

func TestShotResultCarriesBoardAndOutcome(t *testing.T) {
	sent := ShotResult{
		Row:     3,
		Col:     7,
		Outcome: OutcomeSunk,
		Board:   BoardOwn,
		Ship:    mb.Cruiser,
		Text:    "Your Cruiser at H3 was sunk",
	}

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, sent))

	got, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, sent, got)
}

func TestPlacementRequestTextIsGenerated(t *testing.T) {
	payload, err := Marshal(PlacementRequest{Ship: mb.Battleship, Row: 2, Col: 1, Orientation: mb.Vertical})
	require.NoError(t, err)

	got, err := Unmarshal(payload)
	require.NoError(t, err)

	req, ok := got.(PlacementRequest)
	require.True(t, ok, "expected PlacementRequest, got %T", got)
	assert.Equal(t, mb.Battleship, req.Ship)
	assert.Equal(t, 2, req.Row)
	assert.Equal(t, 1, req.Col)
	assert.Equal(t, mb.Vertical, req.Orientation)
	assert.Equal(t, "Placement attempt for Battleship at B2 Vertical", req.DisplayText())
}

func TestTextTruncatedOnRuneBoundary(t *testing.T) {
	long := strings.Repeat("a", MaxTextLen-1) + "é" + "tail"

	payload, err := Marshal(Info{Text: long})
	require.NoError(t, err)

	got, err := Unmarshal(payload)
	require.NoError(t, err)

	text := got.DisplayText()
	assert.Len(t, text, MaxTextLen-1)
	assert.True(t, utf8.ValidString(text))
}

func TestDecodeAcrossPartialReads(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, GameOver{Won: true, Text: "You win!"}))

	got, err := Decode(iotest.OneByteReader(&buf))
	require.NoError(t, err)
	assert.Equal(t, GameOver{Won: true, Text: "You win!"}, got)
}

func TestDecodeShortRecord(t *testing.T) {
	payload, err := Marshal(Info{Text: "cut"})
	require.NoError(t, err)

	_, err = Decode(bytes.NewReader(payload[:RecordSize/2]))
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)

	_, err = Decode(bytes.NewReader(nil))
	assert.ErrorIs(t, err, io.EOF)
}

func TestUnknownKindKeepsStreamAligned(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, binary.Write(&buf, byteOrder, &record{Kind: 42}))
	require.NoError(t, Encode(&buf, ShotRequest{Row: 1, Col: 1}))

	_, err := Decode(&buf)
	assert.ErrorIs(t, err, cerr.ErrUnknownMessageKind)

	got, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, ShotRequest{Row: 1, Col: 1}, got)
}

func TestStreamConn(t *testing.T) {
	serverSide, clientSide := net.Pipe()
	server := NewStreamConn(serverSide)
	client := NewStreamConn(clientSide)

	go func() {
		_ = client.Send(ShotRequest{Row: 4, Col: 5})
		_ = client.Close()
	}()

	got, err := server.Receive()
	require.NoError(t, err)
	assert.Equal(t, ShotRequest{Row: 4, Col: 5}, got)

	_, err = server.Receive()
	require.Error(t, err)
	assert.ErrorIs(t, err, cerr.ErrPeerDisconnected)
	assert.False(t, IsRecoverable(err))

	var connErr ConnErr
	require.True(t, errors.As(err, &connErr))
	assert.Equal(t, ConnLoopBreak, connErr.Code())

	assert.NoError(t, server.Close())
	assert.NoError(t, server.Close(), "closing twice must be harmless")
}

func TestStreamConnSkipsUnknownKind(t *testing.T) {
	serverSide, clientSide := net.Pipe()
	server := NewStreamConn(serverSide)
	defer server.Close()

	go func() {
		_ = binary.Write(clientSide, byteOrder, &record{Kind: 200})
		_ = Encode(clientSide, Info{Text: "still here"})
		_ = clientSide.Close()
	}()

	_, err := server.Receive()
	require.Error(t, err)
	assert.True(t, IsRecoverable(err))

	got, err := server.Receive()
	require.NoError(t, err)
	assert.Equal(t, Info{Text: "still here"}, got)
}
