package story

import (
	"fmt"

	"github.com/agnivade/levenshtein"

	"github.com/tatianab/mini-dungeon/internal/input"
)

// Finding is an authoring smell that does not stop a story from being played.
type Finding struct {
	NodeID  string
	Message string
}

func (f Finding) String() string {
	return fmt.Sprintf("%s: %s", f.NodeID, f.Message)
}

// Lint reports prompts whose labels sit within typo distance of each other
// and prompts that show no option at all.
func Lint(g *Graph) []Finding {
	var out []Finding
	for _, n := range g.Nodes() {
		if n.Prompt == nil {
			continue
		}
		opts := n.Prompt.Options

		visible := 0
		for _, o := range opts {
			if o.Visible() {
				visible++
			}
		}
		if visible == 0 {
			out = append(out, Finding{NodeID: n.ID, Message: "every option is hidden"})
		}

		for i := 0; i < len(opts); i++ {
			a := input.FoldLabel(opts[i].Label)
			for j := i + 1; j < len(opts); j++ {
				b := input.FoldLabel(opts[j].Label)
				dist := levenshtein.ComputeDistance(a, b)
				if dist > levenshteinLimit(min(len(a), len(b))) {
					continue
				}
				out = append(out, Finding{
					NodeID:  n.ID,
					Message: fmt.Sprintf("labels %q and %q are %d edits apart", opts[i].Label, opts[j].Label, dist),
				})
			}
		}
	}
	return out
}

func levenshteinLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}
