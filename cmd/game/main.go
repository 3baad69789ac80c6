package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/tatianab/mini-dungeon/internal/config"
	"github.com/tatianab/mini-dungeon/internal/engine"
	"github.com/tatianab/mini-dungeon/internal/input"
	"github.com/tatianab/mini-dungeon/internal/logger"
	"github.com/tatianab/mini-dungeon/internal/story"
	"github.com/tatianab/mini-dungeon/internal/tui"
)

func main() {
	_ = godotenv.Load()
	os.Exit(run(os.Stdin, os.Stdout))
}

// run plays the configured story and returns the process exit code. The
// logger is synced before returning on every path.
func run(in io.Reader, out io.Writer) int {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(out, "Error loading config: %v\n", err)
		return 1
	}

	log, err := logger.New(logger.Config{
		Level:      cfg.LogLevel,
		Encoding:   cfg.LogEncoding,
		OutputPath: cfg.LogOutput,
	})
	if err != nil {
		fmt.Fprintf(out, "Error creating logger: %v\n", err)
		return 1
	}
	defer log.Sync()

	g, err := story.Load(cfg.StoryPath)
	if err != nil {
		log.Error("Story failed to build", zap.String("path", cfg.StoryPath), zap.Error(err))
		fmt.Fprintf(out, "Error loading story: %v\n", err)
		return 1
	}
	for _, f := range story.Lint(g) {
		log.Warn("Story lint", zap.String("node", f.NodeID), zap.String("finding", f.Message))
	}

	if cfg.UI == config.UITUI {
		if err := tui.Run(g, log); err != nil {
			fmt.Fprintf(out, "Error running TUI: %v\n", err)
			return 1
		}
		return 0
	}

	screen := engine.NoClear
	if cfg.ClearScreen {
		screen = engine.TerminalScreen(out)
	}
	asker := input.NewValidator(input.NewConsole(in, out), log)
	ctrl := engine.NewController(g, asker, screen, out, log)

	if err := ctrl.Run(); err != nil {
		if errors.Is(err, input.ErrInputClosed) {
			// nobody is left to answer; leave the way declining a replay does
			fmt.Fprintln(out)
			fmt.Fprintln(out, engine.Goodbye)
			return 0
		}
		log.Error("Game stopped", zap.Error(err))
		fmt.Fprintf(out, "Error: %v\n", err)
		return 1
	}
	return 0
}
