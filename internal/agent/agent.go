// Package agent lets a language model play the game through the same
// prompts a human sees.
package agent

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"github.com/tatianab/mini-dungeon/internal/engine"
)

//go:embed prompts/choose_option.txt
var chooseOptionPrompt string

var (
	ErrTurnLimit = errors.New("turn limit reached")
	ErrNoContent = errors.New("no content returned from Gemini")
)

// Generator turns a prompt into one text reply.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Gemini is a Generator backed by the Gemini API.
type Gemini struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewGemini(ctx context.Context, apiKey string) (*Gemini, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}
	return &Gemini{
		client: client,
		model:  client.GenerativeModel("gemini-2.5-flash"),
	}, nil
}

func (g *Gemini) Close() {
	g.client.Close()
}

func (g *Gemini) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", ErrNoContent
	}
	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return "", fmt.Errorf("unexpected response type from Gemini")
	}
	return strings.TrimSpace(string(text)), nil
}

// Player is a line source driven by a Generator. It doubles as the game's
// output writer and screen so the model sees what a human would: the scene
// since the last clear, then the prompt. Hidden options are never revealed.
type Player struct {
	ctx        context.Context
	gen        Generator
	tmpl       *template.Template
	maxTurns   int
	turns      int
	transcript io.Writer
	logger     *zap.Logger

	screen   bytes.Buffer
	last     *string
	rejected []string
}

// NewPlayer creates a player allowed maxTurns answers in total. Every prompt
// and answer is echoed to transcript.
func NewPlayer(ctx context.Context, gen Generator, maxTurns int, transcript io.Writer, logger *zap.Logger) (*Player, error) {
	tmpl, err := template.New("choose_option").Parse(chooseOptionPrompt)
	if err != nil {
		return nil, err
	}
	return &Player{
		ctx:        ctx,
		gen:        gen,
		tmpl:       tmpl,
		maxTurns:   maxTurns,
		transcript: transcript,
		logger:     logger,
	}, nil
}

// Write records game output as part of the current screen.
func (p *Player) Write(b []byte) (int, error) {
	if _, err := p.transcript.Write(b); err != nil {
		return 0, err
	}
	return p.screen.Write(b)
}

// Clear starts a new screen. The game clears only on entering a node, so
// answers rejected at the previous node are forgotten too.
func (p *Player) Clear() {
	p.screen.Reset()
	p.last = nil
	p.rejected = nil
}

// ReplayDecliner answers "no" to the replay question on behalf of a Player
// and passes every other prompt through to it.
type ReplayDecliner struct {
	*Player
}

func (d ReplayDecliner) ReadLine(prompt string) (string, error) {
	if !strings.Contains(prompt, engine.ReplayQuestion) {
		return d.Player.ReadLine(prompt)
	}
	const answer = "no"
	fmt.Fprintf(d.transcript, "%s%s\n", prompt, answer)
	d.logger.Debug("Replay declined for player")
	return answer, nil
}

// Turns reports how many answers the player has given.
func (p *Player) Turns() int { return p.turns }

func (p *Player) ReadLine(prompt string) (string, error) {
	if p.turns >= p.maxTurns {
		return "", ErrTurnLimit
	}
	p.turns++

	// Being asked again without a clear means the last answer was refused.
	if p.last != nil {
		p.rejected = append(p.rejected, *p.last)
	}

	var buf bytes.Buffer
	data := struct {
		Screen   string
		Prompt   string
		Rejected []string
	}{
		Screen:   p.screen.String(),
		Prompt:   prompt,
		Rejected: p.rejected,
	}
	if err := p.tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	answer, err := p.gen.Generate(p.ctx, buf.String())
	if err != nil {
		return "", fmt.Errorf("generate answer: %w", err)
	}
	answer = strings.TrimSpace(strings.Trim(answer, "`"))
	p.last = &answer

	fmt.Fprintf(p.transcript, "%s%s\n", prompt, answer)
	p.logger.Debug("Player answered", zap.Int("turn", p.turns), zap.String("answer", answer))
	return answer, nil
}
