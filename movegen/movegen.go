// Package movegen contains all the move-generating functions: one
// pseudo-legal generator per figure kind, plus the filters that turn
// pseudo-legal moves into legal ones.
package movegen

import (
	"github.com/fianchetto/woodpusher/board"
	"github.com/fianchetto/woodpusher/move"
	"github.com/fianchetto/woodpusher/position"
)

var (
	parallelDeltas = [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	diagonalDeltas = [4][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
)

// PseudoLegalMoves generates the moves the figure on c could make by its
// placement geometry alone, ignoring whether the mover's king ends up
// attacked. Returns nil for an empty cell.
func PseudoLegalMoves(p *position.Position, c board.Coordinate) []move.Move {
	fig := p.Board().At(c)
	switch fig.Kind {
	case board.King:
		return kingMoves(p, c, fig)
	case board.Queen:
		moves := slidingMoves(p, c, fig, parallelDeltas)
		return append(moves, slidingMoves(p, c, fig, diagonalDeltas)...)
	case board.Rook:
		return slidingMoves(p, c, fig, parallelDeltas)
	case board.Bishop:
		return slidingMoves(p, c, fig, diagonalDeltas)
	case board.Knight:
		return knightMoves(p, c, fig)
	case board.Pawn:
		return pawnMoves(p, c, fig)
	}
	return nil
}

func kingMoves(p *position.Position, c board.Coordinate, fig board.Figure) []move.Move {
	var moves []move.Move
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			if !onBoard(c.X+dx, c.Y+dy) {
				continue
			}
			dest := c.Delta(dx, dy)
			if target := p.Board().At(dest); target.IsEmpty() || target.Color != fig.Color {
				moves = append(moves, move.New(c, dest))
			}
		}
	}
	return append(moves, castlingMoves(p, c, fig)...)
}

// castlingMoves emits the two-square king moves when the corridor to the
// rook is empty. Whether the corridor is safe is the legality filter's
// business, not the generator's.
func castlingMoves(p *position.Position, c board.Coordinate, fig board.Figure) []move.Move {
	var moves []move.Move
	if p.CastlingRight(fig.Color, position.Kingside) {
		clear := true
		for dx := 1; dx <= 2; dx++ {
			if !p.Board().At(c.Delta(dx, 0)).IsEmpty() {
				clear = false
				break
			}
		}
		if clear {
			moves = append(moves, move.New(c, c.Delta(2, 0)))
		}
	}
	if p.CastlingRight(fig.Color, position.Queenside) {
		clear := true
		for dx := -3; dx <= -1; dx++ {
			if !p.Board().At(c.Delta(dx, 0)).IsEmpty() {
				clear = false
				break
			}
		}
		if clear {
			moves = append(moves, move.New(c, c.Delta(-2, 0)))
		}
	}
	return moves
}

// slidingMoves walks each ray until it is blocked. The clamped Delta stops
// at the board edge: when the step no longer advances by exactly the delta,
// the ray has run off the board.
func slidingMoves(p *position.Position, c board.Coordinate, fig board.Figure, deltas [4][2]int) []move.Move {
	var moves []move.Move
	for _, d := range deltas {
		current := c
		for {
			previous := current
			current = current.Delta(d[0], d[1])
			if current.X-previous.X != d[0] || current.Y-previous.Y != d[1] {
				break
			}
			target := p.Board().At(current)
			if target.IsEmpty() {
				moves = append(moves, move.New(c, current))
				continue
			}
			if target.Color != fig.Color {
				moves = append(moves, move.New(c, current))
			}
			break
		}
	}
	return moves
}

func knightMoves(p *position.Position, c board.Coordinate, fig board.Figure) []move.Move {
	var moves []move.Move
	for _, dx := range [...]int{-2, -1, 1, 2} {
		for _, dy := range [...]int{-2, -1, 1, 2} {
			if dx == dy || dx == -dy {
				continue
			}
			if !onBoard(c.X+dx, c.Y+dy) {
				continue
			}
			dest := c.Delta(dx, dy)
			if target := p.Board().At(dest); target.IsEmpty() || target.Color != fig.Color {
				moves = append(moves, move.New(c, dest))
			}
		}
	}
	return moves
}

func pawnMoves(p *position.Position, c board.Coordinate, fig board.Figure) []move.Move {
	var moves []move.Move

	factorY := 1
	promotionY := 6
	startY := 1
	if fig.Color == board.Black {
		factorY = -1
		promotionY = 1
		startY = 6
	}

	// Double push, only from the home rank with both cells free.
	if c.Y == startY &&
		p.Board().At(c.Delta(0, factorY)).IsEmpty() &&
		p.Board().At(c.Delta(0, 2*factorY)).IsEmpty() {
		moves = append(moves, move.New(c, c.Delta(0, 2*factorY)))
	}

	if p.Board().At(c.Delta(0, factorY)).IsEmpty() {
		moves = appendPawnMove(moves, c, c.Delta(0, factorY), c.Y == promotionY)
	}

	epTarget, hasEP := p.EnPassant()
	for _, dx := range [...]int{-1, 1} {
		if !onBoard(c.X+dx, c.Y) {
			continue
		}
		dest := c.Delta(dx, factorY)
		target := p.Board().At(dest)
		if (hasEP && epTarget == dest) || (!target.IsEmpty() && target.Color != fig.Color) {
			moves = appendPawnMove(moves, c, dest, c.Y == promotionY)
		}
	}
	return moves
}

// appendPawnMove fans a pawn arrival on the far rank into one move per
// promotion choice.
func appendPawnMove(moves []move.Move, start, finish board.Coordinate, promoting bool) []move.Move {
	if !promoting {
		return append(moves, move.New(start, finish))
	}
	for _, kind := range board.PromotionKinds {
		moves = append(moves, move.NewPromotion(start, finish, kind))
	}
	return moves
}

func onBoard(x, y int) bool {
	return x >= 0 && x < 8 && y >= 0 && y < 8
}
