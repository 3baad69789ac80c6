package engine

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tatianab/mini-dungeon/internal/input"
	"github.com/tatianab/mini-dungeon/internal/models"
	"github.com/tatianab/mini-dungeon/internal/render"
	"github.com/tatianab/mini-dungeon/internal/story"
)

var (
	ErrUnknownAnswer = errors.New("answer matches no option")
	ErrSessionEnded  = errors.New("session is at a terminal node")
	ErrUnknownNode   = errors.New("session points at an unknown node")
)

// Asker obtains a valid answer for a question; see input.Validator.
type Asker interface {
	Ask(question string, options []models.OptionSpec) (string, error)
}

// Session is one playthrough. Only the controller moves CurrentNodeID.
type Session struct {
	ID            uuid.UUID
	CurrentNodeID string
	History       []string
}

// NewSession starts a playthrough at the root of g.
func NewSession(g *story.Graph) *Session {
	root := g.Root().ID
	return &Session{
		ID:            uuid.New(),
		CurrentNodeID: root,
		History:       []string{root},
	}
}

// Advance applies answer at the session's current node and moves the session
// to the chosen option's successor, which it returns.
func Advance(g *story.Graph, s *Session, answer string) (*models.StoryNode, error) {
	cur, ok := g.Node(s.CurrentNodeID)
	if !ok {
		return nil, fmt.Errorf("%q: %w", s.CurrentNodeID, ErrUnknownNode)
	}
	if cur.Kind.Terminal() {
		return nil, fmt.Errorf("%q: %w", cur.ID, ErrSessionEnded)
	}

	key := input.FoldLabel(input.Normalize(answer))
	for _, opt := range cur.Prompt.Options {
		if input.FoldLabel(opt.Label) != key {
			continue
		}
		next, _ := g.Node(opt.Successor)
		s.CurrentNodeID = next.ID
		s.History = append(s.History, next.ID)
		return next, nil
	}
	return nil, fmt.Errorf("%q at %q: %w", answer, cur.ID, ErrUnknownAnswer)
}

// Scene is the text shown on entering n: its rendered scene followed by its
// narrative.
func Scene(n *models.StoryNode) string {
	var b strings.Builder
	if n.Scene != nil {
		b.WriteString(render.Render(*n.Scene))
	}
	if n.Narrative != "" {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(n.Narrative)
		b.WriteString("\n")
	}
	return b.String()
}

// Controller drives sessions over a story graph, one node at a time.
type Controller struct {
	graph     *story.Graph
	asker     Asker
	screen    Screen
	out       io.Writer
	presenter *Presenter
	logger    *zap.Logger

	// observe, when set, sees every session the controller starts.
	observe func(*Session)
}

func NewController(g *story.Graph, asker Asker, screen Screen, out io.Writer, logger *zap.Logger) *Controller {
	return &Controller{
		graph:     g,
		asker:     asker,
		screen:    screen,
		out:       out,
		presenter: NewPresenter(asker, out, logger),
		logger:    logger,
	}
}

// Run plays sessions back to back until the player declines a replay.
func (c *Controller) Run() error {
	for {
		s := NewSession(c.graph)
		if c.observe != nil {
			c.observe(s)
		}
		log := c.logger.With(zap.String("session_id", s.ID.String()))
		log.Info("Session started", zap.String("story", c.graph.Title()))

		end, err := c.Play(s)
		if err != nil {
			return err
		}
		log.Info("Session ended",
			zap.String("node", end.ID),
			zap.String("kind", string(end.Kind)),
			zap.Strings("history", s.History))

		replay, err := c.presenter.Present(end.Kind, end.OutcomeMessage)
		if err != nil {
			return err
		}
		log.Info("Replay decision", zap.Bool("replay", replay))
		if !replay {
			return nil
		}
	}
}

// Play runs s from its current node until it reaches a terminal node, which
// it returns.
func (c *Controller) Play(s *Session) (*models.StoryNode, error) {
	for {
		n, ok := c.graph.Node(s.CurrentNodeID)
		if !ok {
			return nil, fmt.Errorf("%q: %w", s.CurrentNodeID, ErrUnknownNode)
		}
		if err := c.Enter(n); err != nil {
			return nil, err
		}
		if n.Kind.Terminal() {
			return n, nil
		}

		answer, err := c.asker.Ask(n.Prompt.Question, n.Prompt.Options)
		if err != nil {
			return nil, err
		}
		next, err := Advance(c.graph, s, answer)
		if err != nil {
			return nil, err
		}
		c.logger.Debug("Transition",
			zap.String("session_id", s.ID.String()),
			zap.String("from", n.ID),
			zap.String("answer", answer),
			zap.String("to", next.ID))
	}
}

// Enter clears the screen and shows the node's scene and narrative.
func (c *Controller) Enter(n *models.StoryNode) error {
	c.screen.Clear()
	c.logger.Debug("Entering node", zap.String("node", n.ID))
	_, err := io.WriteString(c.out, Scene(n))
	return err
}
