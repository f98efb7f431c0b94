// Package move defines the engine's move representation and its UCI-style
// text codec.
package move

import (
	"errors"
	"fmt"

	"github.com/fianchetto/woodpusher/board"
)

// ErrMalformedMove is returned when move text cannot be decoded.
var ErrMalformedMove = errors.New("malformed move")

// EmptyMoveText is the wire form of the no-move sentinel.
const EmptyMoveText = "0000"

// A Move is a (start, finish, promotion) triple. Promotion is NoFigure for
// everything but pawn promotions. The zero Move is not meaningful; use
// Empty() for the no-move sentinel.
type Move struct {
	Start, Finish board.Coordinate
	Promotion     board.FigureKind

	empty bool
}

// Empty returns the no-move sentinel ("0000"). Applying it to a position
// only flips the turn, which is how check detection probes the opponent's
// replies.
func Empty() Move {
	return Move{empty: true}
}

// IsEmpty reports whether m is the no-move sentinel.
func (m Move) IsEmpty() bool {
	return m.empty
}

// New builds a move between two squares with no promotion.
func New(start, finish board.Coordinate) Move {
	return Move{Start: start, Finish: finish}
}

// NewPromotion builds a pawn-promotion move.
func NewPromotion(start, finish board.Coordinate, kind board.FigureKind) Move {
	return Move{Start: start, Finish: finish, Promotion: kind}
}

// Parse decodes UCI move text: start square, finish square, optional
// promotion letter. "0000" decodes to the empty sentinel.
func Parse(s string) (Move, error) {
	if s == EmptyMoveText {
		return Empty(), nil
	}
	if len(s) < 4 || len(s) > 5 {
		return Move{}, fmt.Errorf("%w: %q", ErrMalformedMove, s)
	}
	start, err := board.ParseCoordinate(s[:2])
	if err != nil {
		return Move{}, fmt.Errorf("%w: %v", ErrMalformedMove, err)
	}
	finish, err := board.ParseCoordinate(s[2:4])
	if err != nil {
		return Move{}, fmt.Errorf("%w: %v", ErrMalformedMove, err)
	}
	m := Move{Start: start, Finish: finish}
	if len(s) == 5 {
		kind, err := board.KindFromSymbol(s[4])
		if err != nil || !promotable(kind) {
			return Move{}, fmt.Errorf("%w: bad promotion %q", ErrMalformedMove, s[4:])
		}
		m.Promotion = kind
	}
	return m, nil
}

func promotable(kind board.FigureKind) bool {
	for _, k := range board.PromotionKinds {
		if k == kind {
			return true
		}
	}
	return false
}

func (m Move) String() string {
	if m.empty {
		return EmptyMoveText
	}
	s := m.Start.String() + m.Finish.String()
	if m.Promotion != board.NoFigure {
		s += string(m.Promotion.Symbol())
	}
	return s
}

// IsPromotion reports whether the move carries a promotion kind.
func (m Move) IsPromotion() bool {
	return m.Promotion != board.NoFigure
}

// The shape classifiers below are judged against the figure currently on the
// move's start square; the move itself carries only coordinates.

// IsShortCastling reports a two-square kingside king move.
func (m Move) IsShortCastling(fig board.Figure) bool {
	return fig.Kind == board.King && m.Start.X-m.Finish.X == -2
}

// IsLongCastling reports a two-square queenside king move.
func (m Move) IsLongCastling(fig board.Figure) bool {
	return fig.Kind == board.King && m.Start.X-m.Finish.X == 2
}

// IsDoubleJump reports a two-square pawn push.
func (m Move) IsDoubleJump(fig board.Figure) bool {
	if fig.Kind != board.Pawn {
		return false
	}
	dy := m.Start.Y - m.Finish.Y
	return dy == 2 || dy == -2
}

// IsEnPassant reports a pawn landing on the live en-passant target square.
func (m Move) IsEnPassant(fig board.Figure, target board.Coordinate, hasTarget bool) bool {
	return fig.Kind == board.Pawn && hasTarget && target == m.Finish
}
