// Package autoplay plays the engine against itself, in parallel, to sanity
// check changes. Results can be tallied in memory and optionally recorded
// to a SQLite database for later analysis.
package autoplay

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/fianchetto/woodpusher/analyzer"
	"github.com/fianchetto/woodpusher/board"
	"github.com/fianchetto/woodpusher/movegen"
	"github.com/fianchetto/woodpusher/position"
)

// Outcome is a finished game's result from White's side.
type Outcome int

const (
	Draw Outcome = iota
	WhiteWin
	BlackWin
)

func (o Outcome) String() string {
	switch o {
	case WhiteWin:
		return "1-0"
	case BlackWin:
		return "0-1"
	}
	return "1/2-1/2"
}

// Options configures a series of games.
type Options struct {
	Games   int
	Depth   int
	Threads int

	// MaxPlies adjudicates endless shuffling as a draw.
	MaxPlies int

	// DBPath, when set, appends every game to a SQLite database.
	DBPath string
}

// GameResult describes one finished game.
type GameResult struct {
	Outcome  Outcome
	Plies    int
	FinalFEN string
	Duration time.Duration
}

// Summary tallies a series.
type Summary struct {
	Games     int
	WhiteWins int
	BlackWins int
	Draws     int

	// WinRate is White's score fraction counting draws as half, with a
	// 95% normal-approximation confidence interval.
	WinRate     float64
	WinRateLow  float64
	WinRateHigh float64
}

func (s *Summary) String() string {
	return fmt.Sprintf("%d games: +%d -%d =%d, white score %.3f (95%% CI %.3f-%.3f)",
		s.Games, s.WhiteWins, s.BlackWins, s.Draws,
		s.WinRate, s.WinRateLow, s.WinRateHigh)
}

// Run plays opts.Games self-play games across opts.Threads workers and
// returns the tally. Cancelling ctx stops the series early with whatever
// games completed.
func Run(ctx context.Context, opts Options) (*Summary, error) {
	if opts.Games <= 0 {
		return nil, errors.New("need at least one game")
	}
	if opts.Threads <= 0 {
		opts.Threads = 1
	}
	if opts.MaxPlies <= 0 {
		opts.MaxPlies = 500
	}

	var (
		mu      sync.Mutex
		results []GameResult
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Threads)

	for i := 0; i < opts.Games; i++ {
		n := i
		g.Go(func() error {
			res, err := playGame(gctx, opts.Depth, opts.MaxPlies)
			if err != nil {
				return err
			}
			log.Debug().Int("game", n).Str("outcome", res.Outcome.String()).
				Int("plies", res.Plies).Msg("game finished")
			mu.Lock()
			results = append(results, *res)
			mu.Unlock()
			return nil
		})
	}
	err := g.Wait()
	if err != nil && !errors.Is(err, context.Canceled) {
		return nil, err
	}

	if opts.DBPath != "" {
		store, err := openStore(opts.DBPath)
		if err != nil {
			return nil, err
		}
		defer store.Close()
		for _, res := range results {
			if err := store.record(res); err != nil {
				return nil, err
			}
		}
	}

	return summarize(results), nil
}

// playGame runs one self-play game from the starting position. A game ends
// with mate or stalemate, or is adjudicated a draw at the fifty-move rule
// or the ply cap.
func playGame(ctx context.Context, depth, maxPlies int) (*GameResult, error) {
	started := time.Now()
	p := position.Starting()

	for plies := 0; ; plies++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if plies >= maxPlies || p.HalfMoveClock() >= 100 {
			return finished(Draw, plies, p, started), nil
		}

		a := analyzer.New(p)
		if err := a.Go(depth); err != nil {
			return nil, err
		}
		for !a.Ready() {
			if err := ctx.Err(); err != nil {
				a.Stop()
				return nil, err
			}
			time.Sleep(time.Millisecond)
		}

		m := a.BestMove()
		if m.IsEmpty() {
			// The side to move has no moves: mated or stalemated.
			outcome := Draw
			if movegen.InCheck(p) {
				outcome = WhiteWin
				if p.Turn() == board.White {
					outcome = BlackWin
				}
			}
			return finished(outcome, plies, p, started), nil
		}
		p.Apply(m)
	}
}

func finished(outcome Outcome, plies int, p *position.Position, started time.Time) *GameResult {
	return &GameResult{
		Outcome:  outcome,
		Plies:    plies,
		FinalFEN: p.FEN(),
		Duration: time.Since(started),
	}
}

// summarize computes the tally and White's score confidence interval using
// the normal approximation.
func summarize(results []GameResult) *Summary {
	s := &Summary{Games: len(results)}
	for _, res := range results {
		switch res.Outcome {
		case WhiteWin:
			s.WhiteWins++
		case BlackWin:
			s.BlackWins++
		default:
			s.Draws++
		}
	}
	if s.Games == 0 {
		return s
	}

	score := (float64(s.WhiteWins) + 0.5*float64(s.Draws)) / float64(s.Games)
	stderr := math.Sqrt(score * (1 - score) / float64(s.Games))
	z := distuv.Normal{Mu: 0, Sigma: 1}.Quantile(0.975)

	s.WinRate = score
	s.WinRateLow = math.Max(0, score-z*stderr)
	s.WinRateHigh = math.Min(1, score+z*stderr)
	return s
}
