// Package uci speaks the UCI line protocol over any reader/writer pair.
// Unknown commands are ignored, as the protocol requires.
package uci

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/fianchetto/woodpusher/analyzer"
	"github.com/fianchetto/woodpusher/move"
	"github.com/fianchetto/woodpusher/position"
)

const (
	// Name and Author identify the engine to the GUI.
	Name   = "woodpusher 0.1"
	Author = "the woodpusher authors"
)

// ErrQuit is returned by Handle when the session should end.
var ErrQuit = errors.New("quitting")

// Controller owns the engine state behind one UCI session: the current
// position and the analyzer searching it. Bestmove announcements come from
// a monitor goroutine, so writes to out are mutex-guarded.
type Controller struct {
	analyzer *analyzer.Analyzer
	debug    bool

	mu  sync.Mutex
	out io.Writer
}

func NewController(out io.Writer) *Controller {
	return &Controller{
		analyzer: analyzer.New(position.Starting()),
		out:      out,
	}
}

// Loop reads commands until quit or the input ends. Command errors are
// reported on out and do not end the session.
func (c *Controller) Loop(in io.Reader) {
	c.printf("%s by %s\n", Name, Author)

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		err := c.Handle(scanner.Text())
		if errors.Is(err, ErrQuit) {
			break
		}
		if err != nil {
			c.printf("error %s\n", err.Error())
		}
	}
}

// Handle executes a single protocol command.
func (c *Controller) Handle(command string) error {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return nil
	}

	switch fields[0] {
	case "uci":
		c.printf("id name %s\n", Name)
		c.printf("id author %s\n", Author)
		c.printf("uciok\n")
	case "debug":
		if len(fields) >= 2 {
			c.debug = fields[1] == "on"
		}
	case "isready":
		c.printf("readyok\n")
	case "position":
		return c.handlePosition(fields[1:])
	case "go":
		return c.handleGo(fields[1:])
	case "stop":
		c.analyzer.Stop()
	case "quit":
		return ErrQuit
	default:
		log.Debug().Str("command", fields[0]).Msg("ignoring unknown command")
	}
	return nil
}

// handlePosition replaces the analyzer with one for the named position,
// which is either "startpos" or "fen" plus six FEN fields, optionally
// followed by "moves" and a move list to play out.
func (c *Controller) handlePosition(args []string) error {
	start := args
	var moveTexts []string
	for i, arg := range args {
		if arg == "moves" {
			start = args[:i]
			moveTexts = args[i+1:]
			break
		}
	}

	fen := position.StartingFEN
	if len(start) > 1 {
		fen = strings.Join(start[1:], " ")
	}

	p, err := position.ParseFEN(fen)
	if err != nil {
		return err
	}
	for _, text := range moveTexts {
		m, err := move.Parse(text)
		if err != nil {
			return err
		}
		p.Apply(m)
	}

	c.analyzer = analyzer.New(p)
	return nil
}

// handleGo starts a search and a monitor that announces the best move once
// the search finishes or the movetime budget runs out.
func (c *Controller) handleGo(args []string) error {
	depth := analyzer.DefaultDepth
	movetime := time.Duration(-1)

	for i := 0; i+1 < len(args); i++ {
		switch args[i] {
		case "depth":
			n, err := strconv.Atoi(args[i+1])
			if err != nil || n < 0 {
				return fmt.Errorf("malformed depth %q", args[i+1])
			}
			depth = n
		case "movetime":
			ms, err := strconv.Atoi(args[i+1])
			if err != nil || ms < 0 {
				return fmt.Errorf("malformed movetime %q", args[i+1])
			}
			movetime = time.Duration(ms) * time.Millisecond
		}
	}

	a := c.analyzer
	if err := a.Go(depth); err != nil {
		return err
	}
	go c.monitor(a, movetime)
	return nil
}

// monitor waits until the search is done, or until the budget elapses when
// one was given, then stops the search and reports its best move.
func (c *Controller) monitor(a *analyzer.Analyzer, budget time.Duration) {
	deadline := time.Now().Add(budget)
	for !a.Ready() && (budget < 0 || time.Now().Before(deadline)) {
		time.Sleep(time.Millisecond)
	}

	a.Stop()
	c.printf("bestmove %s\n", a.BestMove())
}

func (c *Controller) printf(format string, args ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.out, format, args...)
}

// Debug reports whether debug mode was switched on by the GUI.
func (c *Controller) Debug() bool {
	return c.debug
}

// Position returns the position currently under analysis.
func (c *Controller) Position() *position.Position {
	return c.analyzer.Position()
}
