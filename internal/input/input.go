// Package input asks the player a question and keeps asking until the answer
// matches one of the offered options.
package input

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/tatianab/mini-dungeon/internal/models"
)

// ErrInputClosed is returned when the line source has no more input.
var ErrInputClosed = errors.New("input closed")

// LineSource shows a prompt and returns one raw line of input.
type LineSource interface {
	ReadLine(prompt string) (string, error)
}

// Console is a LineSource over a terminal-like reader and writer.
type Console struct {
	in  *bufio.Reader
	out io.Writer
}

func NewConsole(r io.Reader, w io.Writer) *Console {
	return &Console{in: bufio.NewReader(r), out: w}
}

func (c *Console) ReadLine(prompt string) (string, error) {
	if _, err := io.WriteString(c.out, prompt); err != nil {
		return "", err
	}
	line, err := c.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			if line != "" {
				return line, nil
			}
			return "", ErrInputClosed
		}
		return "", err
	}
	return line, nil
}

// Validator implements the ask-until-valid protocol.
type Validator struct {
	src    LineSource
	logger *zap.Logger
}

func NewValidator(src LineSource, logger *zap.Logger) *Validator {
	return &Validator{src: src, logger: logger}
}

// Ask shows the question with its visible options and blocks until the
// player gives an answer matching any option, hidden ones included. The
// matched label is returned in lower case. Unrecognised answers repeat the
// identical prompt with no limit.
func (v *Validator) Ask(question string, options []models.OptionSpec) (string, error) {
	text := Format(question, options)
	for attempt := 1; ; attempt++ {
		raw, err := v.src.ReadLine(text)
		if err != nil {
			return "", fmt.Errorf("read answer: %w", err)
		}
		if answer, ok := Match(raw, options); ok {
			return answer, nil
		}
		v.logger.Debug("Unrecognised answer, asking again",
			zap.String("question", question),
			zap.Int("attempt", attempt))
	}
}

// Format renders the prompt exactly as the player sees it. Hidden options
// are left out.
func Format(question string, options []models.OptionSpec) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(strings.Repeat("-", len([]rune(question))))
	b.WriteString("\n\n")
	b.WriteString(question)
	for _, label := range DisplayLabels(options) {
		b.WriteString("\n  > ")
		b.WriteString(label)
	}
	b.WriteString("\n\nAnswer: ")
	return b.String()
}

// DisplayLabels returns the upper-cased labels of the visible options.
func DisplayLabels(options []models.OptionSpec) []string {
	up := cases.Upper(language.Und)
	var out []string
	for _, opt := range options {
		if opt.Visible() {
			out = append(out, up.String(opt.Label))
		}
	}
	return out
}

// Match compares a raw answer against every option case-insensitively and
// returns the matched label in lower case.
func Match(raw string, options []models.OptionSpec) (string, bool) {
	key := FoldLabel(Normalize(raw))
	if key == "" {
		return "", false
	}
	for _, opt := range options {
		if FoldLabel(opt.Label) == key {
			return cases.Lower(language.Und).String(strings.TrimSpace(opt.Label)), true
		}
	}
	return "", false
}

// Normalize trims surrounding whitespace and one layer of surrounding quotes.
func Normalize(raw string) string {
	s := strings.TrimSpace(raw)
	if len(s) >= 2 {
		if q := s[0]; (q == '"' || q == '\'') && s[len(s)-1] == q {
			s = strings.TrimSpace(s[1 : len(s)-1])
		}
	}
	return s
}

// FoldLabel returns the comparison key used for labels. Casers carry state,
// so each call builds its own.
func FoldLabel(label string) string {
	return cases.Fold().String(strings.TrimSpace(label))
}
