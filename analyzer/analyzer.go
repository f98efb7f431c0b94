// Package analyzer searches the move tree for the best reply in a position.
// A search runs on its own goroutine and can be stopped at any moment; the
// best move found so far is always readable without blocking.
package analyzer

import (
	"errors"
	"sync/atomic"

	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"

	"github.com/fianchetto/woodpusher/equity"
	"github.com/fianchetto/woodpusher/move"
	"github.com/fianchetto/woodpusher/movegen"
	"github.com/fianchetto/woodpusher/position"
)

// DefaultDepth is a search depth in full moves. One full move is two plies.
const DefaultDepth = 2

// ErrSearchInProgress is returned by Go when the previous search has not
// finished or been stopped yet.
var ErrSearchInProgress = errors.New("search already in progress")

// Analyzer searches one fixed position. Ready and BestMove are safe to call
// from any goroutine while a search runs.
type Analyzer struct {
	position *position.Position

	ready atomic.Bool
	stop  atomic.Bool
	best  atomic.Pointer[move.Move]
}

// New creates an idle analyzer for p. The analyzer owns its copy of the
// position; later changes to p do not affect a running search.
func New(p *position.Position) *Analyzer {
	a := &Analyzer{position: p.Copy()}
	a.ready.Store(true)
	a.publish(move.Empty())
	return a
}

// Position returns the position under analysis.
func (a *Analyzer) Position() *position.Position {
	return a.position
}

// Ready reports whether no search is running.
func (a *Analyzer) Ready() bool {
	return a.ready.Load()
}

// BestMove returns the best move found so far. It is the empty move until a
// search has produced anything.
func (a *Analyzer) BestMove() move.Move {
	return *a.best.Load()
}

// Stop asks a running search to finish. The search keeps its best move;
// Ready turns true immediately.
func (a *Analyzer) Stop() {
	a.stop.Store(true)
	a.ready.Store(true)
}

// Go starts searching depth full moves ahead. Depth 0 answers immediately
// with a uniformly random legal move; with no legal moves at all the best
// move becomes the empty move. Deeper searches publish a provisional random
// choice and then refine it on a background goroutine.
func (a *Analyzer) Go(depth int) error {
	if !a.ready.CompareAndSwap(true, false) {
		return ErrSearchInProgress
	}
	a.stop.Store(false)

	available := movegen.LegalMoves(a.position)

	switch {
	case len(available) == 0:
		a.publish(move.Empty())
		a.ready.Store(true)

	case depth == 0:
		a.publish(available[frand.Intn(len(available))])
		a.ready.Store(true)

	default:
		a.publish(available[frand.Intn(len(available))])
		go a.search(newTree(available), depth*2)
	}
	return nil
}

// search grades the tree breadth-first, two plies per depth unit. Every
// node's position is replayed from the root through its move chain, so the
// tree itself never stores positions. The best root move is republished
// every tenth graded node and once more on the way out.
func (a *Analyzer) search(t *tree, maxDepth int) {
	log.Debug().Int("plies", maxDepth).Str("position", a.position.String()).Msg("search started")

	graded := 0
	for depth := 0; depth < maxDepth; depth++ {
		if a.stop.Load() || len(t.levels[depth]) == 0 {
			break
		}
		if depth != maxDepth-1 {
			t.addLevel()
		}

		for _, id := range t.levels[depth] {
			current := a.position.Copy()
			for _, m := range t.chain(id) {
				current.Apply(m)
			}
			if a.stop.Load() {
				break
			}

			available := movegen.LegalMoves(current)
			if depth != maxDepth-1 {
				for _, m := range available {
					t.addNode(m, id)
				}
			}
			t.setGrade(id, equity.Evaluate(current, available))

			if graded%10 == 0 {
				a.publish(t.bestRootMove())
			}
			graded++
			if a.stop.Load() {
				break
			}
		}
	}

	best := t.bestRootMove()
	a.publish(best)
	a.ready.Store(true)
	log.Debug().Int("graded", graded).Str("bestmove", best.String()).Msg("search finished")
}

func (a *Analyzer) publish(m move.Move) {
	a.best.Store(&m)
}
