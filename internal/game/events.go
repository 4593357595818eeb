package game

import (
	"fmt"

	"github.com/lgbarn/silly-chess-go/internal/chess"
	"github.com/lgbarn/silly-chess-go/internal/silly"
)

// EventType identifies what an Event reports.
type EventType int

const (
	CurrentPlayerChanged EventType = iota
	CheckStatusChanged
	GameOver
	PieceMoved
	PieceCaptured
	PieceDemoted
	BoardReset
	BoardShifted
)

var eventNames = [...]string{
	CurrentPlayerChanged: "CurrentPlayerChanged",
	CheckStatusChanged:   "CheckStatusChanged",
	GameOver:             "GameOver",
	PieceMoved:           "PieceMoved",
	PieceCaptured:        "PieceCaptured",
	PieceDemoted:         "PieceDemoted",
	BoardReset:           "BoardReset",
	BoardShifted:         "BoardShifted",
}

// String returns the event type name.
func (t EventType) String() string {
	if t < 0 || int(t) >= len(eventNames) {
		return "Unknown"
	}
	return eventNames[t]
}

// Event is a notification for adapters. Which fields are meaningful
// depends on Type:
//
//	CurrentPlayerChanged  Colour is the player now on move
//	CheckStatusChanged    Colour is the side, InCheck its new state
//	GameOver              Colour is the winner when HasWinner is set
//	PieceMoved            Piece, Colour, Kind, From, To
//	PieceCaptured         Piece, Colour, Kind, From is where it was taken
//	PieceDemoted          Piece and Kind are the demoted piece on From;
//	                      Replacement and ReplacementKind the new one
//	BoardShifted          Direction
type Event struct {
	Type   EventType
	Piece  chess.PieceID
	Colour chess.Colour
	Kind   chess.Kind
	From   chess.Square
	To     chess.Square

	InCheck   bool
	HasWinner bool
	Direction silly.Direction

	Replacement     chess.PieceID
	ReplacementKind chess.Kind
}

// String returns a one-line description of the event.
func (e Event) String() string {
	switch e.Type {
	case CurrentPlayerChanged:
		return fmt.Sprintf("%v to move", e.Colour)
	case CheckStatusChanged:
		if e.InCheck {
			return fmt.Sprintf("%v in check", e.Colour)
		}
		return fmt.Sprintf("%v out of check", e.Colour)
	case GameOver:
		if e.HasWinner {
			return fmt.Sprintf("game over, %v wins", e.Colour)
		}
		return "game over, stalemate"
	case PieceMoved:
		return fmt.Sprintf("%v %v %v-%v", e.Colour, e.Kind, e.From, e.To)
	case PieceCaptured:
		return fmt.Sprintf("%v %v captured on %v", e.Colour, e.Kind, e.From)
	case PieceDemoted:
		return fmt.Sprintf("%v %v on %v demoted to %v %v",
			e.Colour, e.Kind, e.From, e.Colour.Opposite(), e.ReplacementKind)
	case BoardReset:
		return "board reset"
	case BoardShifted:
		return fmt.Sprintf("board shifted %v", e.Direction)
	}
	return e.Type.String()
}

// pieceEvent describes p as it stands now.
func pieceEvent(t EventType, p *chess.Piece) Event {
	return Event{Type: t, Piece: p.ID, Colour: p.Colour, Kind: p.Kind, From: p.Square, To: p.Square}
}

// moveEvent reports p moving between two squares.
func moveEvent(p *chess.Piece, from, to chess.Square) Event {
	e := pieceEvent(PieceMoved, p)
	e.From, e.To = from, to
	return e
}

// shiftEvents reports a completed silly shift.
func shiftEvents(res silly.Result) []Event {
	events := []Event{{Type: BoardShifted, Direction: res.Direction}}
	for _, m := range res.Moves {
		events = append(events, moveEvent(m.Piece, m.From, m.To))
	}
	if res.Demoted() {
		e := pieceEvent(PieceDemoted, res.Selected)
		e.Replacement = res.Replacement.ID
		e.ReplacementKind = res.Replacement.Kind
		events = append(events, e)
	}
	return events
}
