// Package equity grades positions from the side to move's perspective.
// Grades are fixed-point centipawns so comparisons stay exact.
package equity

import (
	"fmt"

	"github.com/fianchetto/woodpusher/board"
	"github.com/fianchetto/woodpusher/move"
	"github.com/fianchetto/woodpusher/movegen"
	"github.com/fianchetto/woodpusher/position"
)

// Grade is a position estimate in centipawns. Positive favors the side to
// move.
type Grade int

const (
	// CheckmateGrade is the grade of a mated side to move, chosen to match
	// the king's worth so no material swing can outweigh it.
	CheckmateGrade Grade = -30000

	// StalemateGrade is the grade of a stalemated side to move.
	StalemateGrade Grade = 0

	// Infinity marks a node whose grade has not been computed yet. It
	// compares above any reachable grade and below the negation of any.
	Infinity Grade = 1 << 30
)

func (g Grade) String() string {
	return fmt.Sprintf("%+.2f", float64(g)/100)
}

// Evaluate grades p for the side to move. available must be that side's
// legal moves; passing them in avoids regenerating what every caller has
// already computed. An empty slice means mate or stalemate depending on
// whether the king stands attacked.
func Evaluate(p *position.Position, available []move.Move) Grade {
	if len(available) == 0 {
		if movegen.InCheck(p) {
			return CheckmateGrade
		}
		return StalemateGrade
	}

	opponent := p.Copy()
	opponent.Apply(move.Empty())
	opponentMoves := movegen.LegalMoves(opponent)

	return materialBalance(p) + Grade(len(available)-len(opponentMoves))
}

// materialBalance sums figure worths, own minus opponent's.
func materialBalance(p *position.Position) Grade {
	var balance Grade
	for x := 0; x < 8; x++ {
		for y := 0; y < 8; y++ {
			fig := p.Board().At(board.NewCoordinate(x, y))
			if fig.IsEmpty() {
				continue
			}
			if fig.Color == p.Turn() {
				balance += Grade(fig.Kind.Worth())
			} else {
				balance -= Grade(fig.Kind.Worth())
			}
		}
	}
	return balance
}
