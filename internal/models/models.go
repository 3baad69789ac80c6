package models

// NodeKind tags a StoryNode as a decision point or one of the two endings.
type NodeKind string

const (
	KindDecision NodeKind = "decision"
	KindVictory  NodeKind = "victory"
	KindDefeat   NodeKind = "defeat"
)

// Terminal reports whether the kind ends a session.
func (k NodeKind) Terminal() bool {
	return k == KindVictory || k == KindDefeat
}

// Shape selects which scene the renderer draws.
type Shape string

const (
	ShapeWall              Shape = "wall"
	ShapeVerticalChamber   Shape = "vertical-chamber"
	ShapeHorizontalChamber Shape = "horizontal-chamber"
	ShapeCorridor          Shape = "corridor"
)

// Marker is the glyph placed inside a chamber.
type Marker string

const (
	MarkerNone     Marker = ""
	MarkerMonster  Marker = "monster"
	MarkerTrap     Marker = "trap"
	MarkerTreasure Marker = "treasure"
)

// SceneSpec holds the structural parameters of one rendered scene.
type SceneSpec struct {
	Shape      Shape  `yaml:"shape"`
	Width      int    `yaml:"width"`            // wall thickness for ShapeWall
	Height     int    `yaml:"height"`           // rows, walls included
	Stub       int    `yaml:"stub,omitempty"`   // length of the corridor stub leading to a door
	Marker     Marker `yaml:"marker,omitempty"`
	DoorClosed bool   `yaml:"door_closed,omitempty"`
	ExitOpen   bool   `yaml:"exit_open,omitempty"` // horizontal chamber: far wall has a doorway
}

// OptionSpec is one answer accepted at a decision node.
type OptionSpec struct {
	Label     string `yaml:"label"`
	Hidden    bool   `yaml:"hidden,omitempty"`
	Successor string `yaml:"next"`
}

// Visible reports whether the label is printed in the option list.
func (o OptionSpec) Visible() bool {
	return !o.Hidden
}

// Prompt is the question asked at a decision node.
type Prompt struct {
	Question string       `yaml:"question"`
	Options  []OptionSpec `yaml:"options"`
}

// StoryNode is one decision point or ending of the story.
type StoryNode struct {
	ID             string     `yaml:"id"`
	Kind           NodeKind   `yaml:"kind"`
	Scene          *SceneSpec `yaml:"scene,omitempty"`
	Narrative      string     `yaml:"narrative,omitempty"`
	Prompt         *Prompt    `yaml:"prompt,omitempty"`
	OutcomeMessage string     `yaml:"message,omitempty"`
}

// Story is the authored content: every node plus the id of the root.
type Story struct {
	Title string      `yaml:"title"`
	Root  string      `yaml:"root"`
	Nodes []StoryNode `yaml:"nodes"`
}
