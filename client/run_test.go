package client

import (
	"bytes"
	"context"
	"io"
	"net"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mb "github.com/saeidalz13/battleship-tcp/models/battleship"
	mc "github.com/saeidalz13/battleship-tcp/models/connection"
)

// syncBuffer lets the test read output while Run is still writing it.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func startRun(t *testing.T, ctx context.Context) (server mc.Conn, input *io.PipeWriter, out *syncBuffer, errCh <-chan error) {
	t.Helper()
	serverSide, clientSide := net.Pipe()
	inR, inW := io.Pipe()
	out = &syncBuffer{}

	ch := make(chan error, 1)
	go func() {
		ch <- Run(ctx, mc.NewStreamConn(clientSide), inR, out)
	}()
	t.Cleanup(func() {
		inW.Close()
		serverSide.Close()
	})
	return mc.NewStreamConn(serverSide), inW, out, ch
}

func waitRun(t *testing.T, errCh <-chan error) error {
	t.Helper()
	select {
	case err := <-errCh:
		return err
	case <-time.After(3 * time.Second):
		t.Fatal("client did not stop")
	}
	return nil
}

func waitOutput(t *testing.T, out *syncBuffer, want string) {
	t.Helper()
	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), want)
	}, 3*time.Second, 10*time.Millisecond, "expected output to contain %q", want)
}

func TestRunPlacesAndFinishes(t *testing.T) {
	server, input, out, errCh := startRun(t, context.Background())

	require.NoError(t, server.Send(mc.Info{Text: "Welcome Player 1"}))
	require.NoError(t, server.Send(mc.PlaceShipPrompt{Ship: mb.Destroyer, Text: "Place your Destroyer (size 2)"}))
	waitOutput(t, out, placementHint)

	// rejected locally, nothing reaches the server
	_, err := io.WriteString(input, "J0 h\n")
	require.NoError(t, err)
	waitOutput(t, out, "does not fit")
	_, err = io.WriteString(input, "A1 v\n")
	require.NoError(t, err)

	msg, err := server.Receive()
	require.NoError(t, err)
	assert.Equal(t, mc.PlacementRequest{Ship: mb.Destroyer, Row: 1, Col: 0, Orientation: mb.Vertical}, msg)

	require.NoError(t, server.Send(mc.PlacementResponse{Success: true, Ship: mb.Destroyer, Row: 1, Col: 0, Orientation: mb.Vertical, Text: "Destroyer placed at A1 Vertical."}))
	require.NoError(t, server.Send(mc.GameOver{Won: false, Text: "You lose."}))

	require.NoError(t, waitRun(t, errCh))

	output := out.String()
	for _, want := range []string{"Welcome Player 1", "Place your Destroyer (size 2)", "does not fit", "Destroyer placed at A1 Vertical.", "You lose."} {
		assert.True(t, strings.Contains(output, want), "expected output to contain %q", want)
	}
}

func TestRunReportsServerDisconnect(t *testing.T) {
	server, _, out, errCh := startRun(t, context.Background())

	require.NoError(t, server.Send(mc.Info{Text: "Welcome Player 2"}))
	require.NoError(t, server.Close())

	assert.Error(t, waitRun(t, errCh))
	assert.Contains(t, out.String(), "Server disconnected.")
}

func TestRunQuit(t *testing.T) {
	_, input, out, errCh := startRun(t, context.Background())

	_, err := io.WriteString(input, "quit\n")
	require.NoError(t, err)

	require.NoError(t, waitRun(t, errCh))
	assert.Contains(t, out.String(), "Bye.")
}

func TestRunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	_, _, _, errCh := startRun(t, ctx)

	cancel()
	assert.ErrorIs(t, waitRun(t, errCh), context.Canceled)
}
