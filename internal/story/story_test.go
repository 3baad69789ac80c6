package story

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tatianab/mini-dungeon/internal/input"
	"github.com/tatianab/mini-dungeon/internal/models"
)

func decision(id string, opts ...models.OptionSpec) models.StoryNode {
	return models.StoryNode{
		ID:     id,
		Kind:   models.KindDecision,
		Prompt: &models.Prompt{Question: id + "?", Options: opts},
	}
}

func opt(label, next string) models.OptionSpec {
	return models.OptionSpec{Label: label, Successor: next}
}

func ending(id string) models.StoryNode {
	return models.StoryNode{ID: id, Kind: models.KindDefeat, OutcomeMessage: id}
}

func TestDefaultStoryTopology(t *testing.T) {
	g, err := Default()
	require.NoError(t, err)
	assert.Equal(t, "Mini Dungeon", g.Title())
	assert.Equal(t, "root", g.Root().ID)

	want := map[string]map[string]string{
		"root":             {"left": "monster-room", "straight": "trap-room"},
		"monster-room":     {"sneak": "defeat-sneak", "fight": "defeat-fight", "play the flute": "victory-flute"},
		"trap-room":        {"walk through": "defeat-trap", "walk around the edge": "treasure-room", "go back": "trap-room-closed"},
		"trap-room-closed": {"walk through": "defeat-trap-2", "walk around the edge": "treasure-room"},
		"treasure-room":    {"take it": "defeat-greed", "leave": "victory-honesty"},
	}
	for id, edges := range want {
		n, ok := g.Node(id)
		require.True(t, ok, id)
		require.Equal(t, models.KindDecision, n.Kind, id)
		got := map[string]string{}
		for _, o := range n.Prompt.Options {
			got[input.FoldLabel(o.Label)] = o.Successor
		}
		assert.Equal(t, edges, got, id)
	}

	n, _ := g.Node("monster-room")
	for _, o := range n.Prompt.Options {
		assert.Equal(t, o.Label == "Play the flute", o.Hidden, o.Label)
	}

	kinds := map[string]models.NodeKind{
		"defeat-sneak":    models.KindDefeat,
		"defeat-fight":    models.KindDefeat,
		"victory-flute":   models.KindVictory,
		"defeat-trap":     models.KindDefeat,
		"defeat-trap-2":   models.KindDefeat,
		"defeat-greed":    models.KindDefeat,
		"victory-honesty": models.KindVictory,
	}
	for id, kind := range kinds {
		n, ok := g.Node(id)
		require.True(t, ok, id)
		assert.Equal(t, kind, n.Kind, id)
		assert.NotEmpty(t, n.OutcomeMessage, id)
	}
	assert.Len(t, g.Nodes(), 12)
}

// Every option of every decision resolves to a node, and no two labels of
// one prompt fold to the same key.
func TestDefaultStoryClosure(t *testing.T) {
	g, err := Default()
	require.NoError(t, err)

	for _, n := range g.Nodes() {
		if n.Kind != models.KindDecision {
			assert.Nil(t, n.Prompt, n.ID)
			continue
		}
		seen := map[string]bool{}
		for _, o := range n.Prompt.Options {
			_, ok := g.Node(o.Successor)
			assert.True(t, ok, "%s -> %s", n.ID, o.Successor)
			key := input.FoldLabel(o.Label)
			assert.False(t, seen[key], "%s repeats %q", n.ID, o.Label)
			seen[key] = true
		}
	}
	assert.Empty(t, Lint(g))
}

func TestBuildRejectsAuthoringErrors(t *testing.T) {
	tests := []struct {
		name  string
		story models.Story
		want  error
	}{
		{
			name:  "missing root",
			story: models.Story{Root: "nowhere", Nodes: []models.StoryNode{ending("end")}},
			want:  ErrNoRoot,
		},
		{
			name: "duplicate label across hidden partition",
			story: models.Story{Root: "a", Nodes: []models.StoryNode{
				decision("a", opt("Fight", "end"), models.OptionSpec{Label: "FIGHT", Hidden: true, Successor: "end"}),
				ending("end"),
			}},
			want: ErrDuplicateLabel,
		},
		{
			name: "dangling successor",
			story: models.Story{Root: "a", Nodes: []models.StoryNode{
				decision("a", opt("Go", "missing")),
			}},
			want: ErrDanglingSuccessor,
		},
		{
			name: "duplicate node",
			story: models.Story{Root: "a", Nodes: []models.StoryNode{
				decision("a", opt("Go", "end")), ending("end"), ending("end"),
			}},
			want: ErrDuplicateNode,
		},
		{
			name: "orphan",
			story: models.Story{Root: "a", Nodes: []models.StoryNode{
				decision("a", opt("Go", "end")), ending("end"), ending("lost"),
			}},
			want: ErrUnreachableNode,
		},
		{
			name: "cycle",
			story: models.Story{Root: "a", Nodes: []models.StoryNode{
				decision("a", opt("Go", "b")), decision("b", opt("Back", "a"), opt("On", "end")), ending("end"),
			}},
			want: ErrCycle,
		},
		{
			name: "self loop",
			story: models.Story{Root: "a", Nodes: []models.StoryNode{
				decision("a", opt("Stay", "a"), opt("Go", "end")), ending("end"),
			}},
			want: ErrCycle,
		},
		{
			name:  "decision without options",
			story: models.Story{Root: "a", Nodes: []models.StoryNode{decision("a")}},
			want:  ErrMissingPrompt,
		},
		{
			name: "terminal with prompt",
			story: models.Story{Root: "a", Nodes: []models.StoryNode{
				decision("a", opt("Go", "end")),
				{ID: "end", Kind: models.KindVictory, Prompt: &models.Prompt{Question: "?"}},
			}},
			want: ErrUnexpectedPrompt,
		},
		{
			name: "empty label",
			story: models.Story{Root: "a", Nodes: []models.StoryNode{
				decision("a", opt("  ", "end")), ending("end"),
			}},
			want: ErrEmptyLabel,
		},
		{
			name:  "unknown kind",
			story: models.Story{Root: "a", Nodes: []models.StoryNode{{ID: "a", Kind: "limbo"}}},
			want:  ErrUnknownKind,
		},
		{
			name:  "missing id",
			story: models.Story{Root: "a", Nodes: []models.StoryNode{ending("a"), {Kind: models.KindDefeat}}},
			want:  ErrMissingID,
		},
		{
			name: "scene too small",
			story: models.Story{Root: "a", Nodes: []models.StoryNode{
				{ID: "a", Kind: models.KindDefeat, Scene: &models.SceneSpec{Shape: models.ShapeVerticalChamber, Width: 5, Height: 7, Stub: 2}},
			}},
			want: ErrSceneTooSmall,
		},
		{
			name: "horizontal chamber without room for the player",
			story: models.Story{Root: "a", Nodes: []models.StoryNode{
				{ID: "a", Kind: models.KindDefeat, Scene: &models.SceneSpec{Shape: models.ShapeHorizontalChamber, Width: 11, Height: 7, Stub: 1}},
			}},
			want: ErrSceneTooSmall,
		},
		{
			name: "unknown shape",
			story: models.Story{Root: "a", Nodes: []models.StoryNode{
				{ID: "a", Kind: models.KindDefeat, Scene: &models.SceneSpec{Shape: "spiral", Width: 20, Height: 20}},
			}},
			want: ErrUnknownShape,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := Build(&tt.story)
			assert.Nil(t, g)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestBuildReportsEveryProblem(t *testing.T) {
	s := models.Story{Root: "a", Nodes: []models.StoryNode{
		decision("a", opt("Go", "nowhere"), opt("go", "end")),
		ending("end"),
		ending("lost"),
	}}
	_, err := Build(&s)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDanglingSuccessor)
	assert.ErrorIs(t, err, ErrDuplicateLabel)
	assert.ErrorIs(t, err, ErrUnreachableNode)
}

func TestLoadFromFile(t *testing.T) {
	s := models.Story{Title: "Tiny", Root: "a", Nodes: []models.StoryNode{
		decision("a", opt("Go", "end")), ending("end"),
	}}
	path := filepath.Join(t.TempDir(), "tiny.yaml")
	require.NoError(t, s.Save(path))

	g, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Tiny", g.Title())

	g, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, "Mini Dungeon", g.Title())

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLint(t *testing.T) {
	s := models.Story{Root: "a", Nodes: []models.StoryNode{
		decision("a", opt("Sneak", "end"), opt("Speak", "end"), opt("Run away", "b")),
		decision("b", models.OptionSpec{Label: "Whistle", Hidden: true, Successor: "end"}),
		ending("end"),
	}}
	g, err := Build(&s)
	require.NoError(t, err)

	findings := Lint(g)
	require.Len(t, findings, 2)
	assert.Equal(t, "a", findings[0].NodeID)
	assert.Contains(t, findings[0].Message, `"Sneak" and "Speak"`)
	assert.Equal(t, "b: every option is hidden", findings[1].String())
}
