package position

import (
	"errors"
	"strings"
	"testing"

	"github.com/matryer/is"

	"github.com/fianchetto/woodpusher/board"
	"github.com/fianchetto/woodpusher/move"
)

func mustMove(t *testing.T, s string) move.Move {
	t.Helper()
	m, err := move.Parse(s)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestFENRoundTrip(t *testing.T) {
	is := is.New(t)
	fens := []string{
		StartingFEN,
		"rnbqkb1r/pp3ppp/2p5/3pP2n/2BQ4/5N2/PPP2PPP/RNB1K2R w KQkq d6 0 7",
		"2kr1b1r/1p4p1/p1np2b1/4p1Pp/2B1np2/2P2N1P/PP1B1P2/R3K1R1 w Q - 2 18",
		"8/8/8/8/8/8/8/8 w - - 0 1",
	}
	for _, fen := range fens {
		p, err := ParseFEN(fen)
		is.NoErr(err)
		is.Equal(p.FEN(), fen)
	}
}

func TestParseFENMalformed(t *testing.T) {
	is := is.New(t)
	bad := []string{
		"",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq -",      // five fields
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1",  // bad turn
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KXkq - 0 1",  // bad castling
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq z9 0 1", // bad en passant
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - x 1",  // bad clock
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 0",  // bad move number
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP w KQkq - 0 1",           // short board
	}
	for _, fen := range bad {
		_, err := ParseFEN(fen)
		is.True(err != nil)
		is.True(errors.Is(err, board.ErrMalformedFEN))
	}
}

func TestStarting(t *testing.T) {
	is := is.New(t)
	p := Starting()
	is.Equal(p.FEN(), StartingFEN)
	is.Equal(p.Turn(), board.White)
	is.True(p.CastlingRight(board.White, Kingside))
	is.True(p.CastlingRight(board.Black, Queenside))
	_, has := p.EnPassant()
	is.True(!has)
}

// TestApplyFixtures drives Apply through every dispatch variant: castling
// bookkeeping on king moves, rook moves and rook captures, promotions (push
// and capture), both castlings, double jumps and en-passant captures.
func TestApplyFixtures(t *testing.T) {
	cases := []struct {
		name  string
		start string
		move  string
		want  string
	}{
		{"king move clears both rights",
			"r1bq1bnr/pppk1ppp/2np4/4Q3/4P3/8/PPP2PPP/RNB1KBNR w KQ - 2 6", "e1d1",
			"r1bq1bnr/pppk1ppp/2np4/4Q3/4P3/8/PPP2PPP/RNBK1BNR b - - 3 6"},
		{"black king move clears black rights",
			"r1bqkbnr/ppp2ppp/2np4/4Q3/4P3/8/PPP2PPP/RNB1KBNR b KQkq - 1 5", "e8d7",
			"r1bq1bnr/pppk1ppp/2np4/4Q3/4P3/8/PPP2PPP/RNB1KBNR w KQ - 2 6"},
		{"h-rook move clears kingside",
			"rnbqk2r/pppp3p/5n2/2b1ppp1/2B1PPP1/5N2/PPPP3P/RNBQK2R w KQkq - 4 6", "h1g1",
			"rnbqk2r/pppp3p/5n2/2b1ppp1/2B1PPP1/5N2/PPPP3P/RNBQK1R1 b Qkq - 5 6"},
		{"black h-rook move clears kingside",
			"rnbqk2r/pppp3p/5n2/2b1ppp1/2B1PPP1/5N2/PPPP3P/RNBQK1R1 b Qkq - 5 6", "h8g8",
			"rnbqk1r1/pppp3p/5n2/2b1ppp1/2B1PPP1/5N2/PPPP3P/RNBQK1R1 w Qq - 6 7"},
		{"a-rook move clears queenside",
			"r3k1r1/p1ppq2p/b1n2n2/1pb1ppp1/1PB1PPP1/B1N2N2/P1PPQ2P/R3K1R1 w Qq - 2 11", "a1d1",
			"r3k1r1/p1ppq2p/b1n2n2/1pb1ppp1/1PB1PPP1/B1N2N2/P1PPQ2P/3RK1R1 b q - 3 11"},
		{"black a-rook move clears queenside",
			"r3k1r1/p1ppq2p/b1n2n2/1pb1ppp1/1PB1PPP1/B1N2N2/P1PPQ2P/3RK1R1 b q - 3 11", "a8d8",
			"3rk1r1/p1ppq2p/b1n2n2/1pb1ppp1/1PB1PPP1/B1N2N2/P1PPQ2P/3RK1R1 w - - 4 12"},
		{"capture on h8 clears black kingside",
			"Rnb1kbnr/1pp1pp1p/8/3q2p1/3Q2P1/8/1PP1PP1P/1NB1KBNR w Kk - 0 9", "d4h8",
			"Rnb1kbnQ/1pp1pp1p/8/3q2p1/6P1/8/1PP1PP1P/1NB1KBNR b K - 0 9"},
		{"capture on h1 clears white kingside",
			"Rnb1kbnQ/1pp1pp1p/8/3q2p1/6P1/8/1PP1PP1P/1NB1KBNR b K - 0 9", "d5h1",
			"Rnb1kbnQ/1pp1pp1p/8/6p1/6P1/8/1PP1PP1P/1NB1KBNq w - - 0 10"},
		{"knight capture on a8 clears black queenside",
			"r1bqkbnr/1ppppppp/1N6/p7/P7/1n6/1PPPPPPP/R1BQKBNR w KQkq - 10 7", "b6a8",
			"N1bqkbnr/1ppppppp/8/p7/P7/1n6/1PPPPPPP/R1BQKBNR b KQk - 0 7"},
		{"knight capture on a1 clears white queenside",
			"N1bqkbnr/1ppppppp/8/p7/P7/1n6/1PPPPPPP/R1BQKBNR b KQk - 0 7", "b3a1",
			"N1bqkbnr/1ppppppp/8/p7/P7/8/1PPPPPPP/n1BQKBNR w Kk - 0 8"},
		{"rook takes rook clears both queensides",
			"rnb1kbnr/1pp1pppp/8/3Q4/3q4/8/1PP1PPPP/RNB1KBNR w KQkq - 0 6", "a1a8",
			"Rnb1kbnr/1pp1pppp/8/3Q4/3q4/8/1PP1PPPP/1NB1KBNR b Kk - 0 6"},
		{"promotion push to rook",
			"3k2nr/1P6/5pp1/7p/3NpB2/p7/P2K1bPP/R7 w - - 0 25", "b7b8r",
			"1R1k2nr/8/5pp1/7p/3NpB2/p7/P2K1bPP/R7 b - - 0 25"},
		{"black promotion push to queen",
			"1R4nr/3k4/6p1/1N2p2p/4K3/p7/P3pbPP/R7 b - - 1 29", "e2e1q",
			"1R4nr/3k4/6p1/1N2p2p/4K3/p7/P4bPP/R3q3 w - - 0 30"},
		{"promotion capture to bishop",
			"rnb1k1nr/2P3pp/p2b1p2/1p2p3/2Pq4/3P1N2/P4PPP/RNBQKB1R w KQkq - 1 10", "c7b8b",
			"rBb1k1nr/6pp/p2b1p2/1p2p3/2Pq4/3P1N2/P4PPP/RNBQKB1R b KQkq - 0 10"},
		{"black promotion capture to knight",
			"rbb1k1nr/6pp/p4p2/2P1p3/3q4/1Q1P1N2/p3KPPP/RNB2B1R b kq - 0 14", "a2b1n",
			"rbb1k1nr/6pp/p4p2/2P1p3/3q4/1Q1P1N2/4KPPP/RnB2B1R w kq - 0 15"},
		{"white short castling",
			"rn3rk1/pp2bppp/3p1q1n/5P2/2B2P2/5N2/PPP3PP/RNBQK2R w KQ - 5 9", "e1g1",
			"rn3rk1/pp2bppp/3p1q1n/5P2/2B2P2/5N2/PPP3PP/RNBQ1RK1 b - - 6 9"},
		{"black short castling",
			"rn2k2r/pp2bppp/3p1q1n/5P2/2B2P2/5N2/PPP3PP/RNBQK2R b KQkq - 4 8", "e8g8",
			"rn3rk1/pp2bppp/3p1q1n/5P2/2B2P2/5N2/PPP3PP/RNBQK2R w KQ - 5 9"},
		{"white long castling",
			"r2qkb1r/ppp1p1pp/n1b2n2/3p1p2/3P4/2N1PN2/PPPBQPPP/R3KB1R w KQkq - 8 7", "e1c1",
			"r2qkb1r/ppp1p1pp/n1b2n2/3p1p2/3P4/2N1PN2/PPPBQPPP/2KR1B1R b kq - 9 7"},
		{"black long castling",
			"r3kb1r/ppp1p1pp/n1bq1n2/1Q1p1p2/3P4/2N1PN2/PPPB1PPP/2KR1B1R b kq - 2 8", "e8c8",
			"2kr1b1r/ppp1p1pp/n1bq1n2/1Q1p1p2/3P4/2N1PN2/PPPB1PPP/2KR1B1R w - - 3 9"},
		{"double jump opens window and closes old one",
			"rnb1kbnr/pppp1pp1/8/4p1qp/P7/R3P3/1PPP1PPP/1NBQKBNR w Kkq h6 0 4", "b2b4",
			"rnb1kbnr/pppp1pp1/8/4p1qp/PP6/R3P3/2PP1PPP/1NBQKBNR b Kkq b3 0 4"},
		{"black double jump opens window",
			"rnb1kbnr/pppp1ppp/8/4p1q1/P7/R3P3/1PPP1PPP/1NBQKBNR b Kkq - 0 3", "h7h5",
			"rnb1kbnr/pppp1pp1/8/4p1qp/P7/R3P3/1PPP1PPP/1NBQKBNR w Kkq h6 0 4"},
		{"white en passant capture",
			"rnbqkbnr/p1p2ppp/3p4/1pP1p3/4P3/8/PP1P1PPP/RNBQKBNR w KQkq b6 0 4", "c5b6",
			"rnbqkbnr/p1p2ppp/1P1p4/4p3/4P3/8/PP1P1PPP/RNBQKBNR b KQkq - 0 4"},
		{"black en passant capture",
			"rnbqkbnr/p1p3p1/1P1p4/4pP2/6Pp/7P/PP1P1P2/RNBQKBNR b KQkq g3 0 7", "h4g3",
			"rnbqkbnr/p1p3p1/1P1p4/4pP2/8/6pP/PP1P1P2/RNBQKBNR w KQkq - 0 8"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			is := is.New(t)
			p, err := ParseFEN(tc.start)
			is.NoErr(err)
			p.Apply(mustMove(t, tc.move))
			is.Equal(p.FEN(), tc.want)
		})
	}
}

// TestApplyTranscript replays a full 32-move game and checks the FEN after
// every single ply.
func TestApplyTranscript(t *testing.T) {
	is := is.New(t)
	moves := strings.Fields(
		"e2e4 d7d5 e4d5 e7e5 d5e6 f7f6 g1f3 d8d6 " +
			"c2c4 f8e7 g2g4 g7g5 f1h3 g8h6 d1e2 e8g8 " +
			"b2b3 d6d2 c1d2 c8d7 e6d7 c7c6 b1c3 e7d6 " +
			"e1c1 d6e5 d7d8q b7b5 c4c5 b5b4 a2a4 b4a3")
	want := []string{
		"rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1",
		"rnbqkbnr/ppp1pppp/8/3p4/4P3/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 2",
		"rnbqkbnr/ppp1pppp/8/3P4/8/8/PPPP1PPP/RNBQKBNR b KQkq - 0 2",
		"rnbqkbnr/ppp2ppp/8/3Pp3/8/8/PPPP1PPP/RNBQKBNR w KQkq e6 0 3",
		"rnbqkbnr/ppp2ppp/4P3/8/8/8/PPPP1PPP/RNBQKBNR b KQkq - 0 3",
		"rnbqkbnr/ppp3pp/4Pp2/8/8/8/PPPP1PPP/RNBQKBNR w KQkq - 0 4",
		"rnbqkbnr/ppp3pp/4Pp2/8/8/5N2/PPPP1PPP/RNBQKB1R b KQkq - 1 4",
		"rnb1kbnr/ppp3pp/3qPp2/8/8/5N2/PPPP1PPP/RNBQKB1R w KQkq - 2 5",
		"rnb1kbnr/ppp3pp/3qPp2/8/2P5/5N2/PP1P1PPP/RNBQKB1R b KQkq c3 0 5",
		"rnb1k1nr/ppp1b1pp/3qPp2/8/2P5/5N2/PP1P1PPP/RNBQKB1R w KQkq - 1 6",
		"rnb1k1nr/ppp1b1pp/3qPp2/8/2P3P1/5N2/PP1P1P1P/RNBQKB1R b KQkq g3 0 6",
		"rnb1k1nr/ppp1b2p/3qPp2/6p1/2P3P1/5N2/PP1P1P1P/RNBQKB1R w KQkq g6 0 7",
		"rnb1k1nr/ppp1b2p/3qPp2/6p1/2P3P1/5N1B/PP1P1P1P/RNBQK2R b KQkq - 1 7",
		"rnb1k2r/ppp1b2p/3qPp1n/6p1/2P3P1/5N1B/PP1P1P1P/RNBQK2R w KQkq - 2 8",
		"rnb1k2r/ppp1b2p/3qPp1n/6p1/2P3P1/5N1B/PP1PQP1P/RNB1K2R b KQkq - 3 8",
		"rnb2rk1/ppp1b2p/3qPp1n/6p1/2P3P1/5N1B/PP1PQP1P/RNB1K2R w KQ - 4 9",
		"rnb2rk1/ppp1b2p/3qPp1n/6p1/2P3P1/1P3N1B/P2PQP1P/RNB1K2R b KQ - 0 9",
		"rnb2rk1/ppp1b2p/4Pp1n/6p1/2P3P1/1P3N1B/P2qQP1P/RNB1K2R w KQ - 0 10",
		"rnb2rk1/ppp1b2p/4Pp1n/6p1/2P3P1/1P3N1B/P2BQP1P/RN2K2R b KQ - 0 10",
		"rn3rk1/pppbb2p/4Pp1n/6p1/2P3P1/1P3N1B/P2BQP1P/RN2K2R w KQ - 1 11",
		"rn3rk1/pppPb2p/5p1n/6p1/2P3P1/1P3N1B/P2BQP1P/RN2K2R b KQ - 0 11",
		"rn3rk1/pp1Pb2p/2p2p1n/6p1/2P3P1/1P3N1B/P2BQP1P/RN2K2R w KQ - 0 12",
		"rn3rk1/pp1Pb2p/2p2p1n/6p1/2P3P1/1PN2N1B/P2BQP1P/R3K2R b KQ - 1 12",
		"rn3rk1/pp1P3p/2pb1p1n/6p1/2P3P1/1PN2N1B/P2BQP1P/R3K2R w KQ - 2 13",
		"rn3rk1/pp1P3p/2pb1p1n/6p1/2P3P1/1PN2N1B/P2BQP1P/2KR3R b - - 3 13",
		"rn3rk1/pp1P3p/2p2p1n/4b1p1/2P3P1/1PN2N1B/P2BQP1P/2KR3R w - - 4 14",
		"rn1Q1rk1/pp5p/2p2p1n/4b1p1/2P3P1/1PN2N1B/P2BQP1P/2KR3R b - - 0 14",
		"rn1Q1rk1/p6p/2p2p1n/1p2b1p1/2P3P1/1PN2N1B/P2BQP1P/2KR3R w - b6 0 15",
		"rn1Q1rk1/p6p/2p2p1n/1pP1b1p1/6P1/1PN2N1B/P2BQP1P/2KR3R b - - 0 15",
		"rn1Q1rk1/p6p/2p2p1n/2P1b1p1/1p4P1/1PN2N1B/P2BQP1P/2KR3R w - - 0 16",
		"rn1Q1rk1/p6p/2p2p1n/2P1b1p1/Pp4P1/1PN2N1B/3BQP1P/2KR3R b - a3 0 16",
		"rn1Q1rk1/p6p/2p2p1n/2P1b1p1/6P1/pPN2N1B/3BQP1P/2KR3R w - - 0 17",
	}
	is.Equal(len(moves), len(want))

	p := Starting()
	for i, ms := range moves {
		p.Apply(mustMove(t, ms))
		if p.FEN() != want[i] {
			t.Fatalf("ply %d (%s): got %s, want %s", i+1, ms, p.FEN(), want[i])
		}
	}
}

func TestApplyEmptyMove(t *testing.T) {
	is := is.New(t)
	p, err := ParseFEN("rnbqkbnr/ppp1pppp/8/3p4/4P3/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 2")
	is.NoErr(err)
	p.Apply(move.Empty())
	// Only the turn flips and the en-passant window closes.
	is.Equal(p.FEN(), "rnbqkbnr/ppp1pppp/8/3p4/4P3/8/PPPP1PPP/RNBQKBNR b KQkq - 0 2")

	p.Apply(move.Empty())
	is.Equal(p.FEN(), "rnbqkbnr/ppp1pppp/8/3p4/4P3/8/PPPP1PPP/RNBQKBNR w KQkq - 0 3")
}

func TestCopyIsIndependent(t *testing.T) {
	is := is.New(t)
	p := Starting()
	cp := p.Copy()
	cp.Apply(mustMove(t, "e2e4"))
	is.Equal(p.FEN(), StartingFEN)
	is.True(p.FEN() != cp.FEN())
}

func TestApplyDeterminism(t *testing.T) {
	is := is.New(t)
	p, err := ParseFEN("rnbqkb1r/pp3ppp/2p5/3pP2n/2BQ4/5N2/PPP2PPP/RNB1K2R w KQkq d6 0 7")
	is.NoErr(err)
	a, b := p.Copy(), p.Copy()
	m := mustMove(t, "e5d6")
	a.Apply(m)
	b.Apply(m)
	is.Equal(a.FEN(), b.FEN())
}
