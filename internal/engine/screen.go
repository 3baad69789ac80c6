package engine

import (
	"io"

	"github.com/muesli/termenv"
)

// Screen wipes whatever the previous node left on the display.
type Screen interface {
	Clear()
}

// ScreenFunc adapts a function to Screen.
type ScreenFunc func()

func (f ScreenFunc) Clear() { f() }

// NoClear leaves the display alone, so transcripts keep every scene.
var NoClear Screen = ScreenFunc(func() {})

// TerminalScreen clears w with ANSI sequences.
func TerminalScreen(w io.Writer) Screen {
	out := termenv.NewOutput(w)
	return ScreenFunc(out.ClearScreen)
}
