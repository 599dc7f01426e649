// Package output builds termenv outputs with a consistent color profile for
// interactive terminals and CI log viewers.
package output

import (
	"io"
	"os"

	"github.com/muesli/termenv"
)

// Profile picks the color profile for the current process.
// NO_COLOR always wins. CI log viewers render ANSI but are not TTYs, so
// ci forces the ANSI profile instead of detecting it from the terminal.
func Profile(ci bool) termenv.Profile {
	if os.Getenv("NO_COLOR") != "" {
		return termenv.Ascii
	}
	if ci {
		return termenv.ANSI
	}
	return termenv.EnvColorProfile()
}

// New creates a termenv.Output for w. A nil writer means stderr.
func New(w io.Writer, ci bool, opts ...termenv.OutputOption) *termenv.Output {
	if w == nil {
		w = os.Stderr
	}

	opts = append(opts,
		termenv.WithProfile(Profile(ci)),
		termenv.WithTTY(true),
	)

	return termenv.NewOutput(w, opts...)
}
