// Package story turns authored story content into a validated graph.
package story

import (
	_ "embed"
	"errors"
	"fmt"

	"github.com/tatianab/mini-dungeon/internal/input"
	"github.com/tatianab/mini-dungeon/internal/models"
	"github.com/tatianab/mini-dungeon/internal/render"
)

//go:embed stories/mini_dungeon.yaml
var defaultStory []byte

var (
	ErrNoRoot            = errors.New("story root does not exist")
	ErrMissingID         = errors.New("node has no id")
	ErrDuplicateNode     = errors.New("duplicate node id")
	ErrUnknownKind       = errors.New("unknown node kind")
	ErrMissingPrompt     = errors.New("decision node has no options")
	ErrUnexpectedPrompt  = errors.New("terminal node has a prompt")
	ErrEmptyLabel        = errors.New("option has an empty label")
	ErrDuplicateLabel    = errors.New("duplicate option label")
	ErrDanglingSuccessor = errors.New("option leads to an unknown node")
	ErrUnknownShape      = errors.New("unknown scene shape")
	ErrSceneTooSmall     = errors.New("scene too small for a doorway")
	ErrUnreachableNode   = errors.New("node is unreachable from the root")
	ErrCycle             = errors.New("story loops back on itself")
)

// Graph is a validated, read-only story. Every decision option resolves to
// an existing node, labels are unique per prompt under case folding, every
// node is reachable from the root and no node is its own ancestor.
type Graph struct {
	title string
	root  string
	nodes map[string]*models.StoryNode
	order []string
}

// Build validates s and returns its graph. All authoring problems found are
// returned together.
func Build(s *models.Story) (*Graph, error) {
	g := &Graph{
		title: s.Title,
		root:  s.Root,
		nodes: make(map[string]*models.StoryNode, len(s.Nodes)),
	}

	var errs []error
	for i := range s.Nodes {
		n := &s.Nodes[i]
		if n.ID == "" {
			errs = append(errs, fmt.Errorf("node #%d: %w", i, ErrMissingID))
			continue
		}
		if _, dup := g.nodes[n.ID]; dup {
			errs = append(errs, fmt.Errorf("node %q: %w", n.ID, ErrDuplicateNode))
			continue
		}
		g.nodes[n.ID] = n
		g.order = append(g.order, n.ID)
	}
	if _, ok := g.nodes[g.root]; !ok {
		errs = append(errs, fmt.Errorf("root %q: %w", g.root, ErrNoRoot))
	}

	for _, id := range g.order {
		errs = append(errs, g.checkNode(g.nodes[id])...)
	}
	if _, ok := g.nodes[g.root]; ok {
		errs = append(errs, g.checkShape()...)
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return g, nil
}

// Default returns the built-in Mini Dungeon story.
func Default() (*Graph, error) {
	s, err := models.ParseStory(defaultStory)
	if err != nil {
		return nil, err
	}
	return Build(s)
}

// Load builds the story at path, or the built-in story when path is empty.
func Load(path string) (*Graph, error) {
	if path == "" {
		return Default()
	}
	s, err := models.LoadStory(path)
	if err != nil {
		return nil, err
	}
	return Build(s)
}

func (g *Graph) Title() string { return g.title }

// Root returns the node every session starts at.
func (g *Graph) Root() *models.StoryNode { return g.nodes[g.root] }

// Node looks up a node by id.
func (g *Graph) Node(id string) (*models.StoryNode, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Nodes returns every node in authored order.
func (g *Graph) Nodes() []*models.StoryNode {
	out := make([]*models.StoryNode, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, g.nodes[id])
	}
	return out
}

func (g *Graph) checkNode(n *models.StoryNode) []error {
	var errs []error
	wrap := func(err error, format string, args ...any) {
		errs = append(errs, fmt.Errorf("node %q: %s: %w", n.ID, fmt.Sprintf(format, args...), err))
	}

	switch {
	case n.Kind == models.KindDecision:
		if n.Prompt == nil || len(n.Prompt.Options) == 0 {
			wrap(ErrMissingPrompt, "kind %s", n.Kind)
			break
		}
		seen := make(map[string]string, len(n.Prompt.Options))
		for _, opt := range n.Prompt.Options {
			key := input.FoldLabel(opt.Label)
			if key == "" {
				wrap(ErrEmptyLabel, "option to %q", opt.Successor)
				continue
			}
			if prev, dup := seen[key]; dup {
				wrap(ErrDuplicateLabel, "%q and %q", prev, opt.Label)
			}
			seen[key] = opt.Label
			if _, ok := g.nodes[opt.Successor]; !ok {
				wrap(ErrDanglingSuccessor, "option %q to %q", opt.Label, opt.Successor)
			}
		}
	case n.Kind.Terminal():
		if n.Prompt != nil {
			wrap(ErrUnexpectedPrompt, "kind %s", n.Kind)
		}
	default:
		wrap(ErrUnknownKind, "kind %q", n.Kind)
	}

	if n.Scene != nil {
		if err := checkScene(n.Scene); err != nil {
			wrap(err, "scene %s", n.Scene.Shape)
		}
	}
	return errs
}

func checkScene(sc *models.SceneSpec) error {
	w, h, ok := render.MinSize(sc.Shape)
	if !ok {
		return ErrUnknownShape
	}
	if sc.Width < w || sc.Height < h || sc.Stub < render.MinStub(sc.Shape) {
		return fmt.Errorf("%dx%d stub %d, need at least %dx%d stub %d: %w",
			sc.Width, sc.Height, sc.Stub, w, h, render.MinStub(sc.Shape), ErrSceneTooSmall)
	}
	return nil
}

// checkShape walks the graph from the root, reporting back edges and nodes
// never visited.
func (g *Graph) checkShape() []error {
	const (
		unvisited = iota
		active
		done
	)
	state := make(map[string]int, len(g.nodes))
	var errs []error

	var visit func(id string)
	visit = func(id string) {
		state[id] = active
		n := g.nodes[id]
		if n.Prompt != nil {
			for _, opt := range n.Prompt.Options {
				next, ok := g.nodes[opt.Successor]
				if !ok {
					continue
				}
				switch state[next.ID] {
				case active:
					errs = append(errs, fmt.Errorf("node %q: option %q returns to %q: %w", id, opt.Label, next.ID, ErrCycle))
				case unvisited:
					visit(next.ID)
				}
			}
		}
		state[id] = done
	}
	visit(g.root)

	for _, id := range g.order {
		if state[id] == unvisited {
			errs = append(errs, fmt.Errorf("node %q: %w", id, ErrUnreachableNode))
		}
	}
	return errs
}
