package engine

import (
	_ "embed"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/tatianab/mini-dungeon/internal/models"
)

//go:embed banners/victory.txt
var victoryBanner string

//go:embed banners/defeat.txt
var defeatBanner string

const (
	ReplayQuestion = "Would you like to play again?"
	Goodbye        = "Goodbye!"
)

// ReplayOptions are the answers accepted by the replay prompt.
var ReplayOptions = []models.OptionSpec{
	{Label: "yes"},
	{Label: "no"},
}

// Banner returns the ending art for kind followed by a rule line.
func Banner(kind models.NodeKind) string {
	art := defeatBanner
	if kind == models.KindVictory {
		art = victoryBanner
	}
	return art + strings.Repeat("-", 47) + "\n"
}

// Presenter shows an ending and asks whether to play again.
type Presenter struct {
	asker  Asker
	out    io.Writer
	logger *zap.Logger
}

func NewPresenter(asker Asker, out io.Writer, logger *zap.Logger) *Presenter {
	return &Presenter{asker: asker, out: out, logger: logger}
}

// Present prints the banner and message for an ending and reports whether
// the player wants a fresh session.
func (p *Presenter) Present(kind models.NodeKind, message string) (bool, error) {
	text := Banner(kind)
	if message != "" {
		text += message + "\n"
	}
	if _, err := io.WriteString(p.out, text); err != nil {
		return false, err
	}

	answer, err := p.asker.Ask(ReplayQuestion, ReplayOptions)
	if err != nil {
		return false, err
	}
	p.logger.Debug("Replay answered", zap.String("kind", string(kind)), zap.String("answer", answer))
	if answer == "yes" {
		return true, nil
	}
	_, err = fmt.Fprintln(p.out, Goodbye)
	return false, err
}
