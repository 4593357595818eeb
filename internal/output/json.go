package output

import (
	"encoding/json"
	"io"

	"golang.org/x/exp/slices"

	"github.com/lgbarn/silly-chess-go/internal/chess"
	"github.com/lgbarn/silly-chess-go/internal/engine"
	"github.com/lgbarn/silly-chess-go/internal/game"
)

// JSONEvent represents an event in JSON format.
type JSONEvent struct {
	Type            string `json:"type"`
	Piece           int    `json:"piece,omitempty"`
	Colour          string `json:"colour,omitempty"`
	Kind            string `json:"kind,omitempty"`
	From            string `json:"from,omitempty"`
	To              string `json:"to,omitempty"`
	InCheck         *bool  `json:"inCheck,omitempty"`
	Winner          string `json:"winner,omitempty"`
	Direction       string `json:"direction,omitempty"`
	Replacement     int    `json:"replacement,omitempty"`
	ReplacementKind string `json:"replacementKind,omitempty"`
}

// JSONResult represents a command result in JSON format.
type JSONResult struct {
	Accepted bool        `json:"accepted"`
	Error    string      `json:"error,omitempty"`
	Events   []JSONEvent `json:"events,omitempty"`
}

// JSONPiece represents a piece in JSON format.
type JSONPiece struct {
	ID       int    `json:"id"`
	Colour   string `json:"colour"`
	Kind     string `json:"kind"`
	Square   string `json:"square"`
	HasMoved bool   `json:"hasMoved,omitempty"`
}

// JSONState represents a game snapshot in JSON format.
type JSONState struct {
	FEN       string      `json:"fen"`
	Board     []string    `json:"board"`
	ToMove    string      `json:"toMove"`
	Ply       int         `json:"ply"`
	SillyMode bool        `json:"sillyMode"`
	InCheck   []string    `json:"inCheck,omitempty"`
	Selected  int         `json:"selected,omitempty"`
	GameOver  bool        `json:"gameOver"`
	Winner    string      `json:"winner,omitempty"`
	Pieces    []JSONPiece `json:"pieces"`
}

// JSONMoves lists the legal destinations of the piece on From.
type JSONMoves struct {
	From    string   `json:"from"`
	Squares []string `json:"squares"`
}

// JSONRecord is one entry of a batched JSON document.
type JSONRecord struct {
	Result *JSONResult `json:"result,omitempty"`
	State  *JSONState  `json:"state,omitempty"`
	Moves  *JSONMoves  `json:"moves,omitempty"`
}

// MovesToJSON converts a destination list. An empty list encodes as [].
func MovesToJSON(from chess.Square, squares []chess.Square) *JSONMoves {
	names := make([]string, 0, len(squares))
	for _, sq := range squares {
		names = append(names, sq.String())
	}
	return &JSONMoves{From: from.String(), Squares: names}
}

// JSONOutput holds multiple records for array output.
type JSONOutput struct {
	Records []JSONRecord `json:"records"`
}

// EventToJSON converts an event to JSON format, keeping only the fields
// meaningful for its type.
func EventToJSON(e game.Event) JSONEvent {
	je := JSONEvent{Type: e.Type.String()}
	switch e.Type {
	case game.CurrentPlayerChanged:
		je.Colour = colourName(e.Colour)
	case game.CheckStatusChanged:
		inCheck := e.InCheck
		je.Colour = colourName(e.Colour)
		je.InCheck = &inCheck
	case game.GameOver:
		if e.HasWinner {
			je.Winner = colourName(e.Colour)
		}
	case game.PieceMoved, game.PieceCaptured, game.PieceDemoted:
		je.Piece = int(e.Piece)
		je.Colour = colourName(e.Colour)
		je.Kind = kindName(e.Kind)
		je.From = e.From.String()
		if e.Type == game.PieceMoved {
			je.To = e.To.String()
		}
		if e.Type == game.PieceDemoted {
			je.Replacement = int(e.Replacement)
			je.ReplacementKind = kindName(e.ReplacementKind)
		}
	case game.BoardShifted:
		je.Direction = e.Direction.String()
	}
	return je
}

// ResultToJSON converts a command result to JSON format.
func ResultToJSON(res game.Result) *JSONResult {
	jr := &JSONResult{Accepted: res.Accepted}
	if res.Err != nil {
		jr.Error = res.Err.Error()
	}
	for _, e := range res.Events {
		jr.Events = append(jr.Events, EventToJSON(e))
	}
	return jr
}

// StateToJSON converts a game snapshot to JSON format. Pieces are listed
// in ID order.
func StateToJSON(g *game.Game) *JSONState {
	board := g.Board()
	js := &JSONState{
		FEN:       engine.BoardToFEN(board, g.CurrentPlayer()),
		Board:     DiagramRows(board),
		ToMove:    colourName(g.CurrentPlayer()),
		Ply:       g.Ply(),
		SillyMode: g.SillyMode(),
		GameOver:  g.GameOver(),
	}
	for _, c := range []chess.Colour{chess.White, chess.Black} {
		if g.InCheck(c) {
			js.InCheck = append(js.InCheck, colourName(c))
		}
	}
	if p := g.Selected(); p != nil {
		js.Selected = int(p.ID)
	}
	if winner, ok := g.Winner(); ok {
		js.Winner = colourName(winner)
	}

	pieces := board.AllPieces()
	ids := make([]chess.PieceID, len(pieces))
	for i, p := range pieces {
		ids[i] = p.ID
	}
	slices.Sort(ids)
	js.Pieces = make([]JSONPiece, 0, len(ids))
	for _, id := range ids {
		p := board.PieceByID(id)
		js.Pieces = append(js.Pieces, JSONPiece{
			ID:       int(p.ID),
			Colour:   colourName(p.Colour),
			Kind:     kindName(p.Kind),
			Square:   p.Square.String(),
			HasMoved: p.HasMoved,
		})
	}
	return js
}

// WriteJSON encodes v as indented JSON.
func WriteJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// colourName returns "white" or "black".
func colourName(c chess.Colour) string {
	if c == chess.White {
		return "white"
	}
	return "black"
}

// kindName returns the piece kind as a lowercase string.
func kindName(k chess.Kind) string {
	switch k {
	case chess.Pawn:
		return "pawn"
	case chess.Knight:
		return "knight"
	case chess.Bishop:
		return "bishop"
	case chess.Rook:
		return "rook"
	case chess.Queen:
		return "queen"
	case chess.King:
		return "king"
	default:
		return ""
	}
}
