package movegen

import (
	"github.com/samber/lo"

	"github.com/fianchetto/woodpusher/board"
	"github.com/fianchetto/woodpusher/move"
	"github.com/fianchetto/woodpusher/position"
)

// CandidateMoves unions the pseudo-legal moves of every figure belonging to
// the side to move. The result may still leave the king attacked; run it
// through FilterIllegal for legal moves.
func CandidateMoves(p *position.Position) []move.Move {
	var moves []move.Move
	for x := 0; x < 8; x++ {
		for y := 0; y < 8; y++ {
			c := board.NewCoordinate(x, y)
			fig := p.Board().At(c)
			if !fig.IsEmpty() && fig.Color == p.Turn() {
				moves = append(moves, PseudoLegalMoves(p, c)...)
			}
		}
	}
	return moves
}

// LegalMoves generates and filters the side to move's moves in one call.
func LegalMoves(p *position.Position) []move.Move {
	return FilterIllegal(p, CandidateMoves(p))
}

// FilterIllegal removes candidate moves that leave the mover's own king
// attacked, and castlings through danger. The two filters are independent;
// their order does not change the result.
func FilterIllegal(p *position.Position, moves []move.Move) []move.Move {
	return filterCastlings(p, filterChecks(p, moves))
}

// filterChecks simulates each move and asks whether the opponent could then
// capture the mover's king. This look-ahead probe is the engine's dominant
// cost; it stays a simulation rather than a static attack map so the answer
// always agrees with Apply.
func filterChecks(p *position.Position, moves []move.Move) []move.Move {
	return lo.Filter(moves, func(m move.Move, _ int) bool {
		next := p.Copy()
		next.Apply(m)
		return !canCaptureKing(next)
	})
}

// filterCastlings discards castling moves whose king path is unsafe: an
// enemy pawn anywhere on the four squares one rank forward of the king's
// walk, or an attack on the king's start or transit square. The landing
// square is already covered by filterChecks. Non-castling moves pass
// through untouched.
func filterCastlings(p *position.Position, moves []move.Move) []move.Move {
	return lo.Filter(moves, func(m move.Move, _ int) bool {
		fig := p.Board().At(m.Start)
		short := m.IsShortCastling(fig)
		if !short && !m.IsLongCastling(fig) {
			return true
		}

		deltaY := 1
		if p.Turn() == board.Black {
			deltaY = -1
		}
		deltaX := 1
		if !short {
			deltaX = -1
		}

		for factor := 0; factor < 4; factor++ {
			cell := p.Board().At(m.Start.Delta(deltaX*factor, deltaY))
			if cell.Kind == board.Pawn && cell.Color != p.Turn() {
				return false
			}
		}
		return !Attacked(p, m.Start) && !Attacked(p, m.Start.Delta(deltaX, 0))
	})
}

// canCaptureKing reports whether the side to move in p has a pseudo-legal
// move onto the enemy king's square.
func canCaptureKing(p *position.Position) bool {
	for _, m := range CandidateMoves(p) {
		target := p.Board().At(m.Finish)
		if target.Kind == board.King && target.Color != p.Turn() {
			return true
		}
	}
	return false
}

// Attacked reports whether the opponent of the side to move could move onto
// c if it were their turn, probed with a null move.
func Attacked(p *position.Position, c board.Coordinate) bool {
	flipped := p.Copy()
	flipped.Apply(move.Empty())
	for _, m := range CandidateMoves(flipped) {
		if m.Finish == c {
			return true
		}
	}
	return false
}

// InCheck reports whether the side to move's king is currently attacked.
func InCheck(p *position.Position) bool {
	flipped := p.Copy()
	flipped.Apply(move.Empty())
	return canCaptureKing(flipped)
}
