// Package position encapsulates the full chess position: board, side to
// move, castling rights, en-passant window, draw clocks. It owns move
// application and the whole-position FEN codec.
package position

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fianchetto/woodpusher/board"
	"github.com/fianchetto/woodpusher/move"
)

// StartingFEN is the standard initial position.
const StartingFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// CastlingSide selects one of the two castling directions.
type CastlingSide uint8

const (
	Kingside CastlingSide = iota
	Queenside
)

// Position is the complete game state needed to continue a game. It is a
// mutable value; search code works on copies (see Copy).
type Position struct {
	board *board.Board
	turn  board.Color

	// castling[color][side]; rights only ever go from true to false.
	castling [2][2]bool

	enPassant    board.Coordinate
	hasEnPassant bool

	halfMoveClock  int
	fullMoveNumber int
}

// Starting returns the standard initial position.
func Starting() *Position {
	p, err := ParseFEN(StartingFEN)
	if err != nil {
		panic(err)
	}
	return p
}

// ParseFEN decodes a 6-field FEN string. It never silently repairs bad
// input; any unrecognized field fails with board.ErrMalformedFEN.
func ParseFEN(fen string) (*Position, error) {
	fields := strings.Fields(fen)
	if len(fields) != 6 {
		return nil, fmt.Errorf("%w: want 6 fields, got %d", board.ErrMalformedFEN, len(fields))
	}

	b, err := board.ParseBoard(fields[0])
	if err != nil {
		return nil, err
	}

	p := &Position{board: b}

	switch fields[1] {
	case "w":
		p.turn = board.White
	case "b":
		p.turn = board.Black
	default:
		return nil, fmt.Errorf("%w: bad turn %q", board.ErrMalformedFEN, fields[1])
	}

	if fields[2] != "-" {
		for i := 0; i < len(fields[2]); i++ {
			switch fields[2][i] {
			case 'K':
				p.castling[board.White][Kingside] = true
			case 'Q':
				p.castling[board.White][Queenside] = true
			case 'k':
				p.castling[board.Black][Kingside] = true
			case 'q':
				p.castling[board.Black][Queenside] = true
			default:
				return nil, fmt.Errorf("%w: bad castling %q", board.ErrMalformedFEN, fields[2])
			}
		}
	}

	if fields[3] != "-" {
		c, err := board.ParseCoordinate(fields[3])
		if err != nil {
			return nil, fmt.Errorf("%w: %v", board.ErrMalformedFEN, err)
		}
		p.enPassant = c
		p.hasEnPassant = true
	}

	p.halfMoveClock, err = strconv.Atoi(fields[4])
	if err != nil || p.halfMoveClock < 0 {
		return nil, fmt.Errorf("%w: bad half-move clock %q", board.ErrMalformedFEN, fields[4])
	}
	p.fullMoveNumber, err = strconv.Atoi(fields[5])
	if err != nil || p.fullMoveNumber < 1 {
		return nil, fmt.Errorf("%w: bad move number %q", board.ErrMalformedFEN, fields[5])
	}
	return p, nil
}

// FEN encodes the position; the exact inverse of ParseFEN for any position
// reachable through Apply.
func (p *Position) FEN() string {
	var sb strings.Builder
	sb.WriteString(p.board.FEN())
	sb.WriteByte(' ')
	sb.WriteString(p.turn.String())
	sb.WriteByte(' ')

	castling := ""
	if p.castling[board.White][Kingside] {
		castling += "K"
	}
	if p.castling[board.White][Queenside] {
		castling += "Q"
	}
	if p.castling[board.Black][Kingside] {
		castling += "k"
	}
	if p.castling[board.Black][Queenside] {
		castling += "q"
	}
	if castling == "" {
		castling = "-"
	}
	sb.WriteString(castling)
	sb.WriteByte(' ')

	if p.hasEnPassant {
		sb.WriteString(p.enPassant.String())
	} else {
		sb.WriteByte('-')
	}
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.halfMoveClock))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.fullMoveNumber))
	return sb.String()
}

func (p *Position) String() string {
	return p.FEN()
}

// Copy returns an independent deep copy. The search explores hypothetical
// futures from one base position, so copies must share nothing mutable.
func (p *Position) Copy() *Position {
	b := *p.board
	cp := *p
	cp.board = &b
	return &cp
}

// Board returns the position's board. Callers must not mutate it; use Apply.
func (p *Position) Board() *board.Board {
	return p.board
}

// Turn returns the side to move.
func (p *Position) Turn() board.Color {
	return p.turn
}

// CastlingRight reports whether color still holds the given castling right.
func (p *Position) CastlingRight(c board.Color, side CastlingSide) bool {
	return p.castling[c][side]
}

// EnPassant returns the en-passant target square, valid for exactly one ply
// after a double pawn push.
func (p *Position) EnPassant() (board.Coordinate, bool) {
	return p.enPassant, p.hasEnPassant
}

// HalfMoveClock returns the count of plies since the last capture or pawn
// move.
func (p *Position) HalfMoveClock() int {
	return p.halfMoveClock
}

// FullMoveNumber returns the 1-based full-move counter.
func (p *Position) FullMoveNumber() int {
	return p.fullMoveNumber
}

// Apply plays m on the position, in place. The move is not legality-checked
// here; movegen owns legality. Applying the empty sentinel only closes the
// en-passant window and passes the turn, which is how the legality filter
// asks "could the opponent capture X if it were their move".
func (p *Position) Apply(m move.Move) {
	var nextEnPassant board.Coordinate
	hasNext := false

	if !m.IsEmpty() {
		fig := p.board.At(m.Start)
		dest := p.board.At(m.Finish)

		if !dest.IsEmpty() || fig.Kind == board.Pawn {
			p.halfMoveClock = 0
		} else {
			p.halfMoveClock++
		}

		switch {
		case m.IsPromotion():
			p.applyPromotion(m, fig)
		case m.IsShortCastling(fig):
			p.applyShortCastling(m)
		case m.IsLongCastling(fig):
			p.applyLongCastling(m)
		case m.IsDoubleJump(fig):
			p.moveFigure(m.Start, m.Finish)
			nextEnPassant = board.NewCoordinate(m.Start.X, (m.Start.Y+m.Finish.Y)/2)
			hasNext = true
		case m.IsEnPassant(fig, p.enPassant, p.hasEnPassant):
			p.applyEnPassant(m, fig)
		default:
			p.moveFigure(m.Start, m.Finish)
		}
	}

	p.enPassant, p.hasEnPassant = nextEnPassant, hasNext
	if p.turn == board.Black {
		p.fullMoveNumber++
	}
	p.turn = p.turn.Other()
}

// moveFigure relocates the figure on start to finish, maintaining castling
// rights on the way.
func (p *Position) moveFigure(start, finish board.Coordinate) {
	p.updateCastling(start, finish)
	p.board.Set(finish, p.board.At(start))
	p.board.Clear(start)
}

func (p *Position) applyPromotion(m move.Move, fig board.Figure) {
	p.updateCastling(m.Start, m.Finish)
	p.board.Clear(m.Start)
	p.board.Set(m.Finish, board.Figure{Kind: m.Promotion, Color: fig.Color})
}

func (p *Position) applyShortCastling(m move.Move) {
	p.moveFigure(m.Start, m.Finish)
	// Rook hops from the corner to the king's other side.
	p.moveFigure(m.Finish.Delta(1, 0), m.Start.Delta(1, 0))
}

func (p *Position) applyLongCastling(m move.Move) {
	p.moveFigure(m.Start, m.Finish)
	p.moveFigure(m.Finish.Delta(-2, 0), m.Start.Delta(-1, 0))
}

func (p *Position) applyEnPassant(m move.Move, fig board.Figure) {
	p.moveFigure(m.Start, m.Finish)
	if fig.Color == board.White {
		p.board.Clear(board.NewCoordinate(m.Finish.X, m.Finish.Y-1))
	} else {
		p.board.Clear(board.NewCoordinate(m.Finish.X, m.Finish.Y+1))
	}
}

// updateCastling clears castling rights affected by a move from start to
// finish: any king move clears both of its color's rights, a rook leaving
// its home corner clears that side, and a capture landing on an opponent's
// home-corner rook clears the opponent's side. Rights never come back.
func (p *Position) updateCastling(start, finish board.Coordinate) {
	fig := p.board.At(start)
	dest := p.board.At(finish)

	if fig.Kind == board.King {
		p.castling[fig.Color][Kingside] = false
		p.castling[fig.Color][Queenside] = false
	}
	if fig.Kind == board.Rook && start.Y == homeRank(fig.Color) {
		switch start.X {
		case 0:
			p.castling[fig.Color][Queenside] = false
		case 7:
			p.castling[fig.Color][Kingside] = false
		}
	}
	if dest.Kind == board.Rook && finish.Y == homeRank(dest.Color) {
		switch finish.X {
		case 0:
			p.castling[dest.Color][Queenside] = false
		case 7:
			p.castling[dest.Color][Kingside] = false
		}
	}
}

func homeRank(c board.Color) int {
	if c == board.White {
		return 0
	}
	return 7
}
