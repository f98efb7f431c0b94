package board

import (
	"fmt"
)

// A Coordinate addresses a single square. X is the file (0 = a, 7 = h) and
// Y is the rank (0 = rank 1, 7 = rank 8).
type Coordinate struct {
	X, Y int
}

// NewCoordinate clamps both components into [0, 7] instead of rejecting them.
// Sliding-move generation walks off the board on purpose and relies on the
// clamp to detect the edge, so this must stay lossy.
func NewCoordinate(x, y int) Coordinate {
	return Coordinate{X: clamp(x), Y: clamp(y)}
}

// ParseCoordinate parses algebraic notation such as "e4". Unlike
// NewCoordinate it validates its input, since it sits on the text boundary.
func ParseCoordinate(s string) (Coordinate, error) {
	if len(s) != 2 {
		return Coordinate{}, fmt.Errorf("malformed coordinate %q", s)
	}
	file := s[0]
	rank := s[1]
	if file < 'a' || file > 'h' || rank < '1' || rank > '8' {
		return Coordinate{}, fmt.Errorf("malformed coordinate %q", s)
	}
	return Coordinate{X: int(file - 'a'), Y: int(rank - '1')}, nil
}

// Delta returns the coordinate shifted by (dx, dy), clamped to the board.
func (c Coordinate) Delta(dx, dy int) Coordinate {
	return NewCoordinate(c.X+dx, c.Y+dy)
}

func (c Coordinate) String() string {
	return string([]byte{byte('a' + c.X), byte('1' + c.Y)})
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 7 {
		return 7
	}
	return v
}
