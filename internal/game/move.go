package game

import "github.com/lox/finest9/internal/match"

// MoveKind distinguishes the two ways to finish a turn.
type MoveKind int

const (
	MoveDraw MoveKind = iota
	MoveCapture
)

func (k MoveKind) String() string {
	if k == MoveCapture {
		return "capture"
	}
	return "draw"
}

// Move is a decision that can be applied later with Engine.ApplyMove.
type Move struct {
	Kind  MoveKind
	Match match.Match // only for MoveCapture
}

// DrawMove returns a move that draws a card.
func DrawMove() Move {
	return Move{Kind: MoveDraw}
}

// CaptureMove returns a move that captures m.
func CaptureMove(m match.Match) Move {
	return Move{Kind: MoveCapture, Match: m.Clone()}
}

func (m Move) String() string {
	if m.Kind == MoveCapture {
		return m.Match.String()
	}
	return m.Kind.String()
}
