package uci

import (
	"bufio"
	"context"
	"os"

	"github.com/rs/zerolog"
)

// CommandHandler is the surface RunCli drives; Protocol satisfies it.
type CommandHandler interface {
	Handle(ctx context.Context, command string) error
}

// RunCli reads UCI commands from stdin until "quit" or EOF, logging
// (rather than aborting on) any command a handler rejects — a
// malformed or unsupported line from a GUI should never kill the
// engine process mid-game.
func RunCli(logger zerolog.Logger, handler CommandHandler) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		commandLine := scanner.Text()
		if commandLine == "quit" {
			handler.Handle(ctx, commandLine)
			return
		}
		if err := handler.Handle(ctx, commandLine); err != nil {
			logger.Warn().Err(err).Str("command", commandLine).Msg("uci command failed")
		}
	}
	if err := scanner.Err(); err != nil {
		logger.Error().Err(err).Msg("stdin read failed")
	}
}
