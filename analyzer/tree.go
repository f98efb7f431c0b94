package analyzer

import (
	"lukechampine.com/frand"

	"github.com/fianchetto/woodpusher/equity"
	"github.com/fianchetto/woodpusher/move"
)

// node is one move in the tree. Nodes live in the tree's arena and refer to
// each other by index; a parent of -1 marks a root.
type node struct {
	move     move.Move
	parent   int
	children []int
	grade    equity.Grade
}

// tree holds the expanding move tree, level by level. Level 0 is the root
// moves; each deeper level holds the replies to the level above. Grades flow
// upward: a parent's grade is the best negated grade among its children, so
// level 0 always carries the current view of each root move.
type tree struct {
	nodes  []node
	levels [][]int
}

// newTree seeds level 0 with one node per root move. Roots start at
// Infinity, which bestRootMove treats as worse than any graded root.
func newTree(rootMoves []move.Move) *tree {
	t := &tree{levels: [][]int{nil}}
	for _, m := range rootMoves {
		t.nodes = append(t.nodes, node{move: m, parent: -1, grade: equity.Infinity})
		t.levels[0] = append(t.levels[0], len(t.nodes)-1)
	}
	return t
}

func (t *tree) addLevel() {
	t.levels = append(t.levels, nil)
}

// addNode appends a child of parent to the newest level.
func (t *tree) addNode(m move.Move, parent int) {
	t.nodes = append(t.nodes, node{move: m, parent: parent, grade: equity.Infinity})
	id := len(t.nodes) - 1
	last := len(t.levels) - 1
	t.levels[last] = append(t.levels[last], id)

	t.nodes[parent].children = append(t.nodes[parent].children, id)
	t.propagate(parent)
}

// setGrade assigns a node's own estimate and pushes the change toward the
// root.
func (t *tree) setGrade(id int, g equity.Grade) {
	t.nodes[id].grade = g
	t.propagate(t.nodes[id].parent)
}

// propagate walks parent links upward from id, recomputing each grade as
// the maximum negated child grade, and stops at the first node whose grade
// does not change. Iterative on purpose: the walk is bounded by the ply
// budget, not the call stack. Ungraded children sit at Infinity and so can
// never win the maximum.
func (t *tree) propagate(id int) {
	for id >= 0 {
		best := -equity.Infinity
		for i, child := range t.nodes[id].children {
			if g := -t.nodes[child].grade; i == 0 || g > best {
				best = g
			}
		}
		if best == t.nodes[id].grade {
			return
		}
		t.nodes[id].grade = best
		id = t.nodes[id].parent
	}
}

// chain returns the move sequence from the root move down to and including
// node id.
func (t *tree) chain(id int) []move.Move {
	var moves []move.Move
	for ; id >= 0; id = t.nodes[id].parent {
		moves = append(moves, t.nodes[id].move)
	}
	for i, j := 0, len(moves)-1; i < j; i, j = i+1, j-1 {
		moves[i], moves[j] = moves[j], moves[i]
	}
	return moves
}

// bestRootMove picks the root move with the highest negated grade, breaking
// ties uniformly at random so repeated searches of a balanced position do
// not always play the same line.
func (t *tree) bestRootMove() move.Move {
	roots := t.levels[0]

	best := -t.nodes[roots[0]].grade
	for _, id := range roots[1:] {
		if g := -t.nodes[id].grade; g > best {
			best = g
		}
	}

	var candidates []move.Move
	for _, id := range roots {
		if -t.nodes[id].grade == best {
			candidates = append(candidates, t.nodes[id].move)
		}
	}
	return candidates[frand.Intn(len(candidates))]
}
