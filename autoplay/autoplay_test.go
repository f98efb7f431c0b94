package autoplay

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/matryer/is"
)

func TestRunSeries(t *testing.T) {
	is := is.New(t)

	summary, err := Run(context.Background(), Options{
		Games:    2,
		Depth:    0,
		Threads:  2,
		MaxPlies: 60,
	})
	is.NoErr(err)
	is.Equal(summary.Games, 2)
	is.Equal(summary.WhiteWins+summary.BlackWins+summary.Draws, 2)
	is.True(summary.WinRate >= 0 && summary.WinRate <= 1)
}

func TestRunNeedsGames(t *testing.T) {
	is := is.New(t)

	_, err := Run(context.Background(), Options{})
	is.True(err != nil)
}

func TestRunCancelled(t *testing.T) {
	is := is.New(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	summary, err := Run(ctx, Options{Games: 4, Depth: 0, MaxPlies: 60})
	is.NoErr(err)
	is.Equal(summary.Games, 0)
}

func TestRunRecordsToDatabase(t *testing.T) {
	is := is.New(t)

	path := filepath.Join(t.TempDir(), "games.db")
	summary, err := Run(context.Background(), Options{
		Games:    2,
		Depth:    0,
		MaxPlies: 40,
		DBPath:   path,
	})
	is.NoErr(err)
	is.Equal(summary.Games, 2)

	store, err := openStore(path)
	is.NoErr(err)
	defer store.Close()

	n, err := store.count()
	is.NoErr(err)
	is.Equal(n, 2)
}

func TestSummarize(t *testing.T) {
	is := is.New(t)

	results := []GameResult{
		{Outcome: WhiteWin}, {Outcome: WhiteWin}, {Outcome: Draw}, {Outcome: BlackWin},
	}
	s := summarize(results)
	is.Equal(s.WhiteWins, 2)
	is.Equal(s.BlackWins, 1)
	is.Equal(s.Draws, 1)
	is.Equal(s.WinRate, 0.625)
	is.True(s.WinRateLow < s.WinRate && s.WinRate < s.WinRateHigh)
}

func TestOutcomeString(t *testing.T) {
	is := is.New(t)
	is.Equal(WhiteWin.String(), "1-0")
	is.Equal(BlackWin.String(), "0-1")
	is.Equal(Draw.String(), "1/2-1/2")
}

func TestGameResultHasFinalPosition(t *testing.T) {
	is := is.New(t)

	res, err := playGame(context.Background(), 0, 10)
	is.NoErr(err)
	is.True(res.Plies <= 10)
	is.True(res.FinalFEN != "")
	is.True(res.Duration < time.Minute)
}
