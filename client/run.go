package client

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"

	mc "github.com/saeidalz13/battleship-tcp/models/connection"
)

const (
	placementHint = "Enter a cell and orientation, e.g. B3 v (h = horizontal, v = vertical)."
	shotHint      = "Enter a cell to fire at, e.g. C4."
)

// Run plays one game against the server on conn, reading commands from in
// and writing everything the player sees to out. Server messages and input
// lines are read on their own goroutines so neither blocks the other.
// It returns nil once the game is over or the player quits.
func Run(ctx context.Context, conn mc.Conn, in io.Reader, out io.Writer) error {
	defer conn.Close()

	done := make(chan struct{})
	defer close(done)

	serverMsgs := make(chan mc.Message)
	serverErr := make(chan error, 1)
	go readServer(conn, serverMsgs, serverErr, done)

	lines := make(chan string)
	go readLines(in, lines, done)

	fmt.Fprintln(out, "Connected to server. Waiting for game to start...")

	game := NewGame()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case err := <-serverErr:
			if game.Over() {
				return nil
			}
			fmt.Fprintln(out, "Server disconnected.")
			return err

		case msg := <-serverMsgs:
			fmt.Fprintln(out, game.Apply(msg))
			show(out, game, msg)
			if game.Over() {
				return nil
			}

		case line, ok := <-lines:
			if !ok {
				// keep following the game without local input
				lines = nil
				continue
			}

			cmd, err := ParseCommand(line, game)
			if err != nil {
				fmt.Fprintln(out, err)
				continue
			}
			if cmd.Quit {
				fmt.Fprintln(out, "Bye.")
				return nil
			}

			if err := conn.Send(cmd.Msg); err != nil {
				fmt.Fprintln(out, "Server disconnected.")
				return err
			}
			game.Sent(cmd.Msg)
			fmt.Fprintln(out, cmd.Msg.DisplayText())
		}
	}
}

func show(out io.Writer, game *Game, msg mc.Message) {
	switch m := msg.(type) {
	case mc.PlaceShipPrompt:
		fmt.Fprintln(out, placementHint)
	case mc.TurnNotice:
		fmt.Fprintln(out, shotHint)
	case mc.PlacementResponse:
		if m.Success {
			renderTo(out, game)
		}
	case mc.ShotResult, mc.GameOver:
		renderTo(out, game)
	case mc.Info, mc.PlacementRequest, mc.ShotRequest:
	}
}

func renderTo(out io.Writer, game *Game) {
	if err := game.Render(out); err != nil {
		slog.Warn("failed to render boards", "err", err)
	}
}

func readServer(conn mc.Conn, msgs chan<- mc.Message, errs chan<- error, done <-chan struct{}) {
	for {
		msg, err := conn.Receive()
		if err != nil {
			if mc.IsRecoverable(err) {
				slog.Debug("skipping unreadable message", "err", err)
				continue
			}
			errs <- err
			return
		}

		select {
		case msgs <- msg:
		case <-done:
			return
		}
	}
}

func readLines(in io.Reader, lines chan<- string, done <-chan struct{}) {
	defer close(lines)

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		select {
		case lines <- scanner.Text():
		case <-done:
			return
		}
	}
}
