// Package board holds the 8×8 grid, its coordinates and its figures, plus
// the FEN board-fragment codec. It knows placement only; movement rules live
// in movegen and position.
package board

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedFEN is returned when a FEN board fragment cannot be decoded.
var ErrMalformedFEN = errors.New("malformed FEN")

// Board is an 8×8 grid of figures, indexed x-major (file first).
type Board struct {
	cells [8][8]Figure
}

// At returns the figure at c (the zero Figure for an empty cell).
func (b *Board) At(c Coordinate) Figure {
	return b.cells[c.X][c.Y]
}

// Set places f at c, overwriting whatever was there.
func (b *Board) Set(c Coordinate, f Figure) {
	b.cells[c.X][c.Y] = f
}

// Clear empties the cell at c.
func (b *Board) Clear(c Coordinate) {
	b.cells[c.X][c.Y] = Figure{}
}

// ParseBoard decodes the board field of a FEN string: eight '/'-separated
// ranks, top rank first, digits for empty runs. Every rank must account for
// exactly eight files.
func ParseBoard(fen string) (*Board, error) {
	ranks := strings.Split(fen, "/")
	if len(ranks) != 8 {
		return nil, fmt.Errorf("%w: want 8 ranks, got %d", ErrMalformedFEN, len(ranks))
	}
	b := &Board{}
	for i, rank := range ranks {
		y := 7 - i
		x := 0
		for j := 0; j < len(rank); j++ {
			sym := rank[j]
			if sym >= '1' && sym <= '8' {
				x += int(sym - '0')
				continue
			}
			fig, err := FigureFromSymbol(sym)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrMalformedFEN, err)
			}
			if x > 7 {
				return nil, fmt.Errorf("%w: rank %d overflows", ErrMalformedFEN, y+1)
			}
			b.cells[x][y] = fig
			x++
		}
		if x != 8 {
			return nil, fmt.Errorf("%w: rank %d has %d files", ErrMalformedFEN, y+1, x)
		}
	}
	return b, nil
}

// FEN encodes the board fragment, the exact inverse of ParseBoard.
func (b *Board) FEN() string {
	var sb strings.Builder
	for y := 7; y >= 0; y-- {
		empty := 0
		for x := 0; x < 8; x++ {
			fig := b.cells[x][y]
			if fig.IsEmpty() {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteByte(fig.Symbol())
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if y != 0 {
			sb.WriteByte('/')
		}
	}
	return sb.String()
}

func (b *Board) String() string {
	return b.FEN()
}
