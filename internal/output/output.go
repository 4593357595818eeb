// Package output renders boards, command results and game states as text
// diagrams or JSON for adapters.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/lgbarn/silly-chess-go/internal/chess"
	"github.com/lgbarn/silly-chess-go/internal/config"
	"github.com/lgbarn/silly-chess-go/internal/game"
)

// OutputWriter handles formatted output with line length control.
type OutputWriter struct {
	w             io.Writer
	lineLength    int
	maxLineLength int
	needsSpace    bool
}

// NewOutputWriter creates a new output writer.
func NewOutputWriter(w io.Writer, maxLineLength int) *OutputWriter {
	if maxLineLength <= 0 {
		maxLineLength = 80
	}
	return &OutputWriter{
		w:             w,
		maxLineLength: maxLineLength,
	}
}

// Write writes a string, adding a space separator if needed.
func (o *OutputWriter) Write(s string) {
	if o.needsSpace && len(s) > 0 {
		// Check if we need a new line
		if o.lineLength+1+len(s) > o.maxLineLength {
			fmt.Fprintln(o.w)
			o.lineLength = 0
			o.needsSpace = false
		} else {
			fmt.Fprint(o.w, " ")
			o.lineLength++
		}
	}

	fmt.Fprint(o.w, s)
	o.lineLength += len(s)
	o.needsSpace = true
}

// NewLine ends the current line.
func (o *OutputWriter) NewLine() {
	fmt.Fprintln(o.w)
	o.lineLength = 0
	o.needsSpace = false
}

// DiagramRows renders the board as eight strings, rank 8 first. Uppercase
// letters are White, lowercase Black and '.' an empty square.
func DiagramRows(board *chess.Board) []string {
	rows := make([]string, chess.BoardSize)
	for row := range rows {
		var sb strings.Builder
		for col := 0; col < chess.BoardSize; col++ {
			if p := board.At(chess.Sq(row, col)); p != nil {
				sb.WriteByte(p.Symbol())
			} else {
				sb.WriteByte('.')
			}
		}
		rows[row] = sb.String()
	}
	return rows
}

// RenderBoard writes the board diagram, optionally labelled with ranks
// and files.
func RenderBoard(w io.Writer, board *chess.Board, coordinates bool) {
	for row, line := range DiagramRows(board) {
		if !coordinates {
			fmt.Fprintln(w, line)
			continue
		}
		fmt.Fprintf(w, "%d %s\n", chess.BoardSize-row, spaced(line))
	}
	if coordinates {
		fmt.Fprintln(w, "  a b c d e f g h")
	}
}

// spaced puts a space between the characters of s.
func spaced(s string) string {
	return strings.Join(strings.Split(s, ""), " ")
}

// StatusLine summarises whose move it is or how the game ended.
func StatusLine(g *game.Game) string {
	if g.GameOver() {
		if winner, ok := g.Winner(); ok {
			return fmt.Sprintf("game over: %v wins", winner)
		}
		return "game over: stalemate"
	}
	line := fmt.Sprintf("%v to move", g.CurrentPlayer())
	if g.InCheck(g.CurrentPlayer()) {
		line += " (in check)"
	}
	if g.SillyMode() {
		line += " [silly]"
	}
	return line
}

// RenderState writes the board and status of a game.
func RenderState(w io.Writer, g *game.Game, cfg *config.OutputConfig) {
	if cfg == nil || cfg.ShowBoard {
		RenderBoard(w, g.Board(), cfg == nil || cfg.ShowCoordinates)
	}
	fmt.Fprintln(w, StatusLine(g))
	if p := g.Selected(); p != nil {
		fmt.Fprintf(w, "selected: %v\n", p)
	}
}

// RenderResult writes the outcome of a command, one event per line.
func RenderResult(w io.Writer, res game.Result) {
	if !res.Accepted {
		fmt.Fprintf(w, "rejected: %v\n", res.Err)
		return
	}
	for _, e := range res.Events {
		fmt.Fprintf(w, "  %v\n", e)
	}
}

// movesLineLength is where TextWriter wraps destination lists.
const movesLineLength = 60

// RenderMoves writes a list of destination squares, wrapped at maxLineLength.
func RenderMoves(w io.Writer, squares []chess.Square, maxLineLength int) {
	ow := NewOutputWriter(w, maxLineLength)
	if len(squares) == 0 {
		ow.Write("no legal moves")
	}
	for _, sq := range squares {
		ow.Write(sq.String())
	}
	ow.NewLine()
}
