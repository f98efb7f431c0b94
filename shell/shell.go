// Package shell is the interactive console around the engine: set up
// positions, inspect legal moves, run and stop searches, and play the
// engine against itself.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/chzyer/readline"
	"github.com/rs/zerolog/log"

	"github.com/fianchetto/woodpusher/analyzer"
	"github.com/fianchetto/woodpusher/autoplay"
	"github.com/fianchetto/woodpusher/board"
	"github.com/fianchetto/woodpusher/move"
	"github.com/fianchetto/woodpusher/movegen"
	"github.com/fianchetto/woodpusher/position"
)

type ShellController struct {
	l *readline.Instance

	position *position.Position
	analyzer *analyzer.Analyzer
}

// Response carries a command's printable result.
type Response struct {
	message string
}

func msg(message string) *Response {
	return &Response{message: message}
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func showMessage(msg string, w io.Writer) {
	io.WriteString(w, msg)
	io.WriteString(w, "\n")
}

func NewShellController() *ShellController {
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[31mwoodpusher>\033[0m ",
		HistoryFile:     "/tmp/readline.tmp",
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
		AutoComplete:        completer,
	})
	if err != nil {
		panic(err)
	}

	p := position.Starting()
	return &ShellController{
		l:        l,
		position: p,
		analyzer: analyzer.New(p),
	}
}

var completer = readline.NewPrefixCompleter(
	readline.PcItem("position", readline.PcItem("startpos")),
	readline.PcItem("show"),
	readline.PcItem("legal"),
	readline.PcItem("play"),
	readline.PcItem("go"),
	readline.PcItem("stop"),
	readline.PcItem("best"),
	readline.PcItem("autoplay"),
	readline.PcItem("help"),
	readline.PcItem("exit"),
)

func (sc *ShellController) showMessage(msg string) {
	showMessage(msg, sc.l.Stderr())
}

func (sc *ShellController) showError(err error) {
	sc.showMessage("Error: " + err.Error())
}

func (sc *ShellController) Loop(sig chan os.Signal) {
	defer sc.l.Close()

	for {
		line, err := sc.l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				sig <- syscall.SIGINT
				break
			}
			continue
		} else if err == io.EOF {
			sig <- syscall.SIGINT
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		resp, err := sc.execute(line)
		switch {
		case errors.Is(err, errExit):
			sig <- syscall.SIGINT
			return
		case err != nil:
			sc.showError(err)
		case resp != nil && resp.message != "":
			sc.showMessage(resp.message)
		}
	}
	log.Debug().Msg("exiting readline loop")
}

var errExit = errors.New("sending exit signal")

func (sc *ShellController) execute(line string) (*Response, error) {
	cmd, err := extractFields(line)
	if err != nil {
		return nil, err
	}

	switch cmd.cmd {
	case "position":
		return sc.setPosition(cmd)
	case "show":
		return sc.show()
	case "legal":
		return sc.legal()
	case "play":
		return sc.play(cmd)
	case "go":
		return sc.searchStart(cmd)
	case "stop":
		sc.analyzer.Stop()
		return sc.best()
	case "best":
		return sc.best()
	case "autoplay":
		return sc.autoplay(cmd)
	case "help":
		return msg(helpText), nil
	case "exit", "quit":
		return nil, errExit
	default:
		return nil, fmt.Errorf("command %q not found", cmd.cmd)
	}
}

// setPosition loads "startpos" or a FEN (quoted, or as six bare fields) and
// optionally plays a move list out from it, matching the UCI position
// command's shape.
func (sc *ShellController) setPosition(cmd *shellcmd) (*Response, error) {
	start := cmd.args
	var moveTexts []string
	for i, arg := range cmd.args {
		if arg == "moves" {
			start = cmd.args[:i]
			moveTexts = cmd.args[i+1:]
			break
		}
	}

	fen := position.StartingFEN
	if len(start) > 0 && start[0] != "startpos" {
		fen = strings.Join(start, " ")
	}
	p, err := position.ParseFEN(fen)
	if err != nil {
		return nil, err
	}
	for _, text := range moveTexts {
		m, err := move.Parse(text)
		if err != nil {
			return nil, err
		}
		p.Apply(m)
	}

	sc.position = p
	sc.analyzer = analyzer.New(p)
	return sc.show()
}

func (sc *ShellController) show() (*Response, error) {
	return msg(renderPosition(sc.position)), nil
}

func (sc *ShellController) legal() (*Response, error) {
	moves := movegen.LegalMoves(sc.position)
	if len(moves) == 0 {
		return msg("no legal moves"), nil
	}

	texts := make([]string, len(moves))
	for i, m := range moves {
		texts[i] = m.String()
	}
	return msg(fmt.Sprintf("%d moves: %s", len(moves), strings.Join(texts, " "))), nil
}

// play applies one legal move to the current position.
func (sc *ShellController) play(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) != 1 {
		return nil, errors.New("need exactly one move")
	}
	m, err := move.Parse(cmd.args[0])
	if err != nil {
		return nil, err
	}

	legal := false
	for _, lm := range movegen.LegalMoves(sc.position) {
		if lm == m {
			legal = true
			break
		}
	}
	if !legal {
		return nil, fmt.Errorf("move %s is not legal here", m)
	}

	sc.position.Apply(m)
	sc.analyzer = analyzer.New(sc.position)
	return sc.show()
}

func (sc *ShellController) searchStart(cmd *shellcmd) (*Response, error) {
	depth := analyzer.DefaultDepth
	if d, ok := cmd.options["depth"]; ok {
		n, err := strconv.Atoi(d)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("malformed depth %q", d)
		}
		depth = n
	}

	if err := sc.analyzer.Go(depth); err != nil {
		return nil, err
	}
	if sc.analyzer.Ready() {
		return sc.best()
	}
	return msg("searching, use `best` or `stop`"), nil
}

func (sc *ShellController) best() (*Response, error) {
	m := sc.analyzer.BestMove()
	state := "searching"
	if sc.analyzer.Ready() {
		state = "done"
	}
	return msg(fmt.Sprintf("bestmove %s (%s)", m, state)), nil
}

func (sc *ShellController) autoplay(cmd *shellcmd) (*Response, error) {
	opts := autoplay.Options{Games: 4, Depth: 0, Threads: 2}

	var err error
	if g, ok := cmd.options["games"]; ok {
		if opts.Games, err = strconv.Atoi(g); err != nil {
			return nil, fmt.Errorf("malformed games %q", g)
		}
	}
	if d, ok := cmd.options["depth"]; ok {
		if opts.Depth, err = strconv.Atoi(d); err != nil {
			return nil, fmt.Errorf("malformed depth %q", d)
		}
	}
	if th, ok := cmd.options["threads"]; ok {
		if opts.Threads, err = strconv.Atoi(th); err != nil {
			return nil, fmt.Errorf("malformed threads %q", th)
		}
	}
	opts.DBPath = cmd.options["db"]

	started := time.Now()
	summary, err := autoplay.Run(context.Background(), opts)
	if err != nil {
		return nil, err
	}
	return msg(fmt.Sprintf("%s in %v", summary, time.Since(started).Round(time.Millisecond))), nil
}

// renderPosition draws the board from White's side with the FEN below it.
func renderPosition(p *position.Position) string {
	var sb strings.Builder
	for y := 7; y >= 0; y-- {
		fmt.Fprintf(&sb, "%d ", y+1)
		for x := 0; x < 8; x++ {
			fig := p.Board().At(board.NewCoordinate(x, y))
			if fig.IsEmpty() {
				sb.WriteString(" .")
				continue
			}
			sb.WriteByte(' ')
			sb.WriteByte(fig.Symbol())
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("   a b c d e f g h\n")
	sb.WriteString(p.FEN())
	return sb.String()
}

const helpText = `Commands:
  position [startpos|<fen>] [moves <m1> <m2> ...]  set up a position
  show                                             print the board
  legal                                            list legal moves
  play <move>                                      play a move (e.g. e2e4, a7a8q)
  go [-depth n]                                    search the position
  stop                                             stop the search
  best                                             show the best move so far
  autoplay [-games n] [-depth n] [-threads n] [-db path]
                                                   play the engine against itself
  exit                                             leave the shell`
