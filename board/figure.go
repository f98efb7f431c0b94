package board

import "fmt"

// Color is the side a figure belongs to.
type Color uint8

const (
	White Color = iota
	Black
)

func (c Color) Other() Color {
	if c == White {
		return Black
	}
	return White
}

func (c Color) String() string {
	if c == White {
		return "w"
	}
	return "b"
}

// FigureKind is a closed enumeration of chess piece kinds. The zero value
// means "no figure" and doubles as the empty-cell marker.
type FigureKind uint8

const (
	NoFigure FigureKind = iota
	King
	Queen
	Rook
	Bishop
	Knight
	Pawn
)

// kindTraits is the capability table for each kind: its FEN symbol and its
// material worth in centipawns. The king's worth is enormous on purpose; a
// line that wins the king must dominate everything else.
var kindTraits = [...]struct {
	symbol byte
	worth  int
}{
	NoFigure: {0, 0},
	King:     {'k', 30000},
	Queen:    {'q', 900},
	Rook:     {'r', 500},
	Bishop:   {'b', 300},
	Knight:   {'n', 300},
	Pawn:     {'p', 100},
}

// PromotionKinds lists the kinds a pawn may promote to, in the order the
// generator fans them out.
var PromotionKinds = [...]FigureKind{Queen, Rook, Bishop, Knight}

// Symbol returns the lowercase FEN letter for the kind.
func (k FigureKind) Symbol() byte {
	return kindTraits[k].symbol
}

// Worth returns the kind's material value in centipawns.
func (k FigureKind) Worth() int {
	return kindTraits[k].worth
}

// KindFromSymbol maps a lowercase FEN letter to a kind.
func KindFromSymbol(sym byte) (FigureKind, error) {
	for k := King; k <= Pawn; k++ {
		if kindTraits[k].symbol == sym {
			return k, nil
		}
	}
	return NoFigure, fmt.Errorf("unknown figure symbol %q", string(sym))
}

// A Figure occupies a cell. The zero value is the empty cell.
type Figure struct {
	Kind  FigureKind
	Color Color
}

// IsEmpty reports whether this is the empty cell.
func (f Figure) IsEmpty() bool {
	return f.Kind == NoFigure
}

// Symbol returns the figure's FEN letter, uppercase for White.
func (f Figure) Symbol() byte {
	sym := f.Kind.Symbol()
	if f.Color == White {
		sym -= 'a' - 'A'
	}
	return sym
}

// FigureFromSymbol parses a FEN letter; uppercase means White.
func FigureFromSymbol(sym byte) (Figure, error) {
	color := Black
	if sym >= 'A' && sym <= 'Z' {
		color = White
		sym += 'a' - 'A'
	}
	kind, err := KindFromSymbol(sym)
	if err != nil {
		return Figure{}, err
	}
	return Figure{Kind: kind, Color: color}, nil
}
