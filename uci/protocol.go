// Package uci implements the command subset a GUI drives an engine
// through: identification, a single Hash option, position setup and a
// movetime- or infinite-bounded search, formatted the way CounterGo's
// uciProtocol reports it.
package uci

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/dylhunn/dragontoothmg"
	"github.com/rs/zerolog"

	"github.com/cataphract-engine/cataphract/engine"
	"github.com/cataphract-engine/cataphract/eval"

	. "github.com/cataphract-engine/cataphract/common"
)

// defaultHashMB matches Homura's own default transposition table size.
const defaultHashMB = 16

// Protocol drives one engine instance through a UCI command loop. It
// owns the board and search collaborators directly rather than through
// an Engine interface, since this engine has only one search
// implementation to dispatch to.
type Protocol struct {
	name, author, version string
	options                []Option
	logger                 zerolog.Logger

	board *Board
	tt    *engine.TransTable
	arena *engine.TreeArena

	hashMB   int
	thinking int32
	cancel   context.CancelFunc
}

// New builds a Protocol at the standard starting position with a
// default-sized transposition table and its own tree arena, exposing
// only the Hash option (Threads is never exposed: this engine has no
// parallel search). A zero zerolog.Logger discards output, so callers
// that don't care about UCI-loop diagnostics can pass zerolog.Logger{}.
func New(name, author, version string, logger zerolog.Logger) *Protocol {
	board, err := NewBoard(InitialPositionFEN, NewState())
	if err != nil {
		panic(err)
	}
	p := &Protocol{
		name:    name,
		author:  author,
		version: version,
		logger:  logger,
		board:   board,
		hashMB:  defaultHashMB,
		arena:   engine.NewTreeArena(),
	}
	p.logger.Info().Int("hashMB", p.hashMB).Msg("allocating transposition table")
	p.tt = engine.NewTransTable(p.hashMB)
	p.logger.Info().Msg("allocating tree arena")
	p.options = []Option{
		&IntOption{Name: "Hash", Min: 1, Max: 4096, Value: &p.hashMB},
	}
	return p
}

// Handle dispatches one line of UCI input. While a search is running,
// only "stop" and "quit" are accepted; everything else returns an
// error the caller can log without tearing down the loop.
func (p *Protocol) Handle(ctx context.Context, commandLine string) error {
	fields := strings.Fields(commandLine)
	if len(fields) == 0 {
		return nil
	}
	command, args := fields[0], fields[1:]

	if atomic.LoadInt32(&p.thinking) == 1 {
		switch command {
		case "stop":
			if p.cancel != nil {
				p.cancel()
			}
			return nil
		case "quit":
			if p.cancel != nil {
				p.cancel()
			}
			return nil
		default:
			return errors.New("uci: search still running")
		}
	}

	switch command {
	case "uci":
		return p.uciCommand()
	case "setoption":
		return p.setOptionCommand(args)
	case "isready":
		return p.isReadyCommand()
	case "ucinewgame":
		return p.uciNewGameCommand()
	case "position":
		return p.positionCommand(args)
	case "go":
		return p.goCommand(ctx, args)
	case "ponderhit":
		return p.ponderhitCommand()
	case "stop":
		return nil
	case "quit":
		p.arena.Stop()
		return nil
	default:
		return fmt.Errorf("uci: unknown command %q", command)
	}
}

func (p *Protocol) uciCommand() error {
	fmt.Printf("id name %s %s\n", p.name, p.version)
	fmt.Printf("id author %s\n", p.author)
	for _, option := range p.options {
		fmt.Println(option.UciString())
	}
	fmt.Println("uciok")
	return nil
}

func (p *Protocol) setOptionCommand(fields []string) error {
	nameIdx := findIndexString(fields, "name")
	valueIdx := findIndexString(fields, "value")
	if nameIdx == -1 || valueIdx == -1 || valueIdx <= nameIdx {
		return errors.New("uci: malformed setoption")
	}
	name := strings.Join(fields[nameIdx+1:valueIdx], " ")
	value := strings.Join(fields[valueIdx+1:], " ")
	for _, option := range p.options {
		if strings.EqualFold(option.UciName(), name) {
			if err := option.Set(value); err != nil {
				return err
			}
			if strings.EqualFold(name, "Hash") {
				p.logger.Info().Int("hashMB", p.hashMB).Msg("resizing transposition table")
				p.tt = engine.NewTransTable(p.hashMB)
			}
			return nil
		}
	}
	return fmt.Errorf("uci: unhandled option %q", name)
}

func (p *Protocol) isReadyCommand() error {
	fmt.Println("readyok")
	return nil
}

func (p *Protocol) uciNewGameCommand() error {
	p.tt.Clear()
	board, err := NewBoard(InitialPositionFEN, NewState())
	if err != nil {
		return err
	}
	p.board = board
	return nil
}

func (p *Protocol) positionCommand(fields []string) error {
	if len(fields) == 0 {
		return errors.New("uci: missing position arguments")
	}

	var fen string
	movesIdx := findIndexString(fields, "moves")
	switch fields[0] {
	case "startpos":
		fen = InitialPositionFEN
	case "fen":
		if len(fields) < 2 {
			return errors.New("uci: missing fen")
		}
		end := len(fields)
		if movesIdx != -1 {
			end = movesIdx
		}
		fen = strings.Join(fields[1:end], " ")
		if _, err := parseFEN(fen); err != nil {
			return fmt.Errorf("uci: %w", err)
		}
	default:
		return errors.New("uci: unknown position subcommand")
	}

	board, err := NewBoard(fen, &State{})
	if err != nil {
		return err
	}

	if movesIdx != -1 {
		for _, lan := range fields[movesIdx+1:] {
			m, ok := findMove(board, lan)
			if !ok {
				return fmt.Errorf("uci: illegal move %q", lan)
			}
			board.ApplyMove(m, &State{})
		}
	}

	p.board = board
	return nil
}

func (p *Protocol) goCommand(parent context.Context, fields []string) error {
	movetimeMs := 0
	infinite := false
	for i := 0; i < len(fields); i++ {
		switch fields[i] {
		case "movetime":
			i++
			if i < len(fields) {
				movetimeMs, _ = strconv.Atoi(fields[i])
			}
		case "infinite":
			infinite = true
		}
	}

	var ctx context.Context
	var cancel context.CancelFunc
	if infinite || movetimeMs <= 0 {
		ctx, cancel = context.WithCancel(parent)
	} else {
		_, ctx, cancel = engine.NewTimeManager(parent, movetimeMs)
	}
	p.cancel = cancel

	atomic.StoreInt32(&p.thinking, 1)
	p.tt.NewSearch()
	board := p.board

	go func() {
		defer cancel()
		best := engine.IterativeDeepen(ctx, board, p.tt, p.arena, func(info engine.Info) {
			fmt.Println(searchInfoLine(info))
		})
		atomic.StoreInt32(&p.thinking, 0)
		fmt.Printf("bestmove %s\n", best.String())
	}()
	return nil
}

func (p *Protocol) ponderhitCommand() error {
	return errors.New("uci: ponder not implemented")
}

func searchInfoLine(info engine.Info) string {
	sb := &strings.Builder{}
	fmt.Fprintf(sb, "info depth %d", info.Depth)
	if info.Score >= eval.MinMate {
		fmt.Fprintf(sb, " score mate %d", (eval.MateValue-info.Score+1)/2)
	} else if info.Score <= -eval.MinMate {
		fmt.Fprintf(sb, " score mate %d", -(eval.MateValue+info.Score+1)/2)
	} else {
		fmt.Fprintf(sb, " score cp %d", info.Score)
	}
	fmt.Fprintf(sb, " nodes %d", info.Nodes)
	if info.Move != NullMove {
		fmt.Fprintf(sb, " pv %s", info.Move.String())
	}
	return sb.String()
}

// findMove matches a UCI long-algebraic move string ("e2e4", "e7e8q")
// against the position's legal moves, since Move itself carries no
// string form a GUI's input can be parsed straight into.
func findMove(b *Board, lan string) (Move, bool) {
	moves := b.GenerateMoves(make([]Move, 0, MaxMoves))
	for _, m := range moves {
		if m.String() == lan {
			return m, true
		}
	}
	return NullMove, false
}

// parseFEN validates a FEN string using dragontoothmg's independent
// parser before common.NewBoard is trusted to build the position from
// it, catching malformed GUI input with a real parser rather than
// hand-rolling FEN validation this engine's own core has no other use
// for.
func parseFEN(fen string) (ok bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			ok, err = false, fmt.Errorf("invalid fen: %v", r)
		}
	}()
	dragontoothmg.ParseFen(fen)
	return true, nil
}

func findIndexString(fields []string, value string) int {
	for i, f := range fields {
		if f == value {
			return i
		}
	}
	return -1
}
