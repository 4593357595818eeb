package testutil

import (
	"strings"
	"testing"

	"github.com/lgbarn/silly-chess-go/internal/chess"
)

// BoardFromDiagram builds a board from eight rows of eight characters, row 0
// (rank 8) first. Uppercase letters are White, lowercase Black and '.' is
// an empty square. Spaces are ignored. Every piece starts unmoved.
func BoardFromDiagram(t testing.TB, rows ...string) *chess.Board {
	t.Helper()
	if len(rows) != chess.BoardSize {
		t.Fatalf("diagram has %d rows, want %d", len(rows), chess.BoardSize)
	}
	board := chess.NewBoard()
	for row, line := range rows {
		line = strings.ReplaceAll(line, " ", "")
		if len(line) != chess.BoardSize {
			t.Fatalf("diagram row %d is %q, want %d squares", row, line, chess.BoardSize)
		}
		for col := 0; col < chess.BoardSize; col++ {
			c := line[col]
			if c == '.' {
				continue
			}
			kind, ok := kindOf(c)
			if !ok {
				t.Fatalf("diagram row %d: unknown piece %q", row, c)
			}
			colour := chess.White
			if c >= 'a' && c <= 'z' {
				colour = chess.Black
			}
			board.AddPiece(colour, kind, chess.Sq(row, col))
		}
	}
	return board
}

// Diagram renders a board in the format BoardFromDiagram reads.
func Diagram(board *chess.Board) []string {
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

func kindOf(c byte) (chess.Kind, bool) {
	upper := strings.ToUpper(string(c))[0]
	for k := chess.Pawn; k < chess.NumKinds; k++ {
		if k.Letter() == upper {
			return k, true
		}
	}
	return chess.Pawn, false
}

// ScriptedRandom replays a fixed sequence of values. Each call to Intn
// returns the next value reduced modulo n; once the script runs out it
// returns 0.
type ScriptedRandom struct {
	Values []int
	Calls  []int // the n passed to each Intn call
}

// NewScriptedRandom returns a source that replays values in order.
func NewScriptedRandom(values ...int) *ScriptedRandom {
	return &ScriptedRandom{Values: values}
}

// Intn returns the next scripted value in [0, n).
func (r *ScriptedRandom) Intn(n int) int {
	i := len(r.Calls)
	r.Calls = append(r.Calls, n)
	if n <= 0 || i >= len(r.Values) {
		return 0
	}
	return r.Values[i] % n
}
