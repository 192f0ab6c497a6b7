package repl

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Colors
const (
	colorError = "#EF4444"
	colorMuted = "#6B7280"
	colorTitle = "#7C3AED"
)

// styles renders diagnostics written to the diagnostic stream.
type styles struct {
	plain  bool
	err    lipgloss.Style
	pos    lipgloss.Style
	header lipgloss.Style
}

// newStyles returns the styles for w. mode is auto, always or never;
// auto colors only when w is a terminal.
func newStyles(w io.Writer, mode string) styles {
	r := lipgloss.NewRenderer(w)
	switch mode {
	case "never":
		return styles{plain: true}
	case "always":
		r.SetColorProfile(termenv.ANSI256)
	}

	return styles{
		err:    r.NewStyle().Foreground(lipgloss.Color(colorError)).Bold(true),
		pos:    r.NewStyle().Foreground(lipgloss.Color(colorMuted)),
		header: r.NewStyle().Foreground(lipgloss.Color(colorTitle)).Bold(true),
	}
}

func (st styles) render(style lipgloss.Style, s string) string {
	if st.plain {
		return s
	}
	return style.Render(s)
}
