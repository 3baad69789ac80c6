package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/tatianab/mini-dungeon/internal/agent"
	"github.com/tatianab/mini-dungeon/internal/config"
	"github.com/tatianab/mini-dungeon/internal/engine"
	"github.com/tatianab/mini-dungeon/internal/input"
	"github.com/tatianab/mini-dungeon/internal/logger"
	"github.com/tatianab/mini-dungeon/internal/models"
	"github.com/tatianab/mini-dungeon/internal/story"
)

func main() {
	ctx := context.Background()
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.RequireGeminiKey(); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zl, err := logger.New(logger.Config{Level: cfg.LogLevel, Encoding: cfg.LogEncoding, OutputPath: cfg.LogOutput})
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer zl.Sync()

	g, err := story.Load(cfg.StoryPath)
	if err != nil {
		log.Fatalf("Failed to load story: %v", err)
	}

	// Initialize the Player LLM
	gemini, err := agent.NewGemini(ctx, cfg.GeminiAPIKey)
	if err != nil {
		log.Fatalf("Failed to create player client: %v", err)
	}
	defer gemini.Close()

	player, err := agent.NewPlayer(ctx, gemini, cfg.SimMaxTurns, os.Stdout, zl)
	if err != nil {
		log.Fatalf("Failed to create player: %v", err)
	}

	fmt.Printf("--- Playing %q with a turn budget of %d ---\n\n", g.Title(), cfg.SimMaxTurns)

	// The player is the game's screen and output, so it sees every scene.
	// The replay question is answered "no" for it, ending the run after one game.
	asker := input.NewValidator(agent.ReplayDecliner{Player: player}, zl)
	ctrl := engine.NewController(g, asker, player, player, zl)
	session := engine.NewSession(g)
	end, err := ctrl.Play(session)
	if errors.Is(err, agent.ErrTurnLimit) {
		fmt.Printf("\nGame Ended: turn budget exhausted at %s after %d answers\n", session.CurrentNodeID, player.Turns())
		return
	}
	if err != nil {
		log.Fatalf("Error playing: %v", err)
	}

	fmt.Println()
	if _, err := engine.NewPresenter(asker, player, zl).Present(end.Kind, end.OutcomeMessage); err != nil {
		log.Fatalf("Error presenting outcome: %v", err)
	}
	if end.Kind == models.KindVictory {
		fmt.Println("Game Ended: Player Won!")
	} else {
		fmt.Println("Game Ended: Player Lost!")
	}
	fmt.Printf("Path: %v (%d answers)\n", session.History, player.Turns())
}
