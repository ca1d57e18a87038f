package tui

import (
	"os"

	"golang.org/x/term"
)

// OutputMode is how a command should present its results.
type OutputMode int

// Output modes.
const (
	// OutputModePlain is uncoloured text for pipes and dumb terminals.
	OutputModePlain OutputMode = iota
	// OutputModeStyled is coloured, non-interactive text.
	OutputModeStyled
	// OutputModeInteractive is a full-screen Bubble Tea program.
	OutputModeInteractive
)

// DetectOutputMode picks a mode for stdout. plain forces OutputModePlain;
// NO_COLOR and TERM=dumb downgrade to it as well. noInteractive keeps a
// terminal in OutputModeStyled.
func DetectOutputMode(plain, noInteractive bool) OutputMode {
	return detectOutputMode(plain, noInteractive, term.IsTerminal(int(os.Stdout.Fd())), os.Getenv)
}

func detectOutputMode(plain, noInteractive, isTTY bool, getenv func(string) string) OutputMode {
	switch {
	case plain, !isTTY:
		return OutputModePlain
	case getenv("NO_COLOR") != "", getenv("TERM") == "dumb":
		return OutputModePlain
	case noInteractive:
		return OutputModeStyled
	default:
		return OutputModeInteractive
	}
}
