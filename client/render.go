package client

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	mb "github.com/saeidalz13/battleship-tcp/models/battleship"
)

const (
	symbolWater = "~"
	symbolShip  = "#"
	symbolHit   = "X"
	symbolMiss  = "O"
)

// Render writes the player's own fleet next to the opponent's grid.
// Unknown opponent cells show as water.
func (g *Game) Render(w io.Writer) error {
	var buffer bytes.Buffer
	tabWriter := tabwriter.NewWriter(&buffer, 2, 0, 1, ' ', 0)

	fmt.Fprint(&buffer, "Your fleet | Opponent\n")

	writeHeader(tabWriter)
	fmt.Fprint(tabWriter, "|\t")
	writeHeader(tabWriter)
	fmt.Fprint(tabWriter, "\n")

	own := g.own.Grid()
	for row := range mb.GridRows {
		writeRow(tabWriter, row, own[row], true)
		fmt.Fprint(tabWriter, "|\t")
		writeRow(tabWriter, row, g.opponent[row], false)
		fmt.Fprint(tabWriter, "\n")
	}

	if err := tabWriter.Flush(); err != nil {
		return err
	}
	_, err := w.Write(buffer.Bytes())
	return err
}

func writeHeader(w io.Writer) {
	fmt.Fprint(w, "\t")
	for col := range mb.GridCols {
		fmt.Fprintf(w, "%c\t", 'A'+col)
	}
}

func writeRow(w io.Writer, row int, cells [mb.GridCols]mb.CellState, showShips bool) {
	fmt.Fprint(w, strconv.Itoa(row)+"\t")
	for _, cell := range cells {
		fmt.Fprint(w, cellSymbol(cell, showShips)+"\t")
	}
}

func cellSymbol(cell mb.CellState, showShips bool) string {
	switch cell {
	case mb.CellOccupied:
		if showShips {
			return symbolShip
		}
		return symbolWater
	case mb.CellHit:
		return symbolHit
	case mb.CellMissed:
		return symbolMiss
	default:
		return symbolWater
	}
}
