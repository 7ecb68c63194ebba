package assistant

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Color modes accepted by NewRenderer.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// NewRenderer returns a lipgloss renderer for w.
// "auto" detects color support from w; "always" and "never" force it.
func NewRenderer(w io.Writer, mode string) *lipgloss.Renderer {
	r := lipgloss.NewRenderer(w)
	switch mode {
	case ColorAlways:
		r.SetColorProfile(termenv.ANSI256)
	case ColorNever:
		r.SetColorProfile(termenv.Ascii)
	}
	return r
}

// Styles holds the text styles used for replies.
type Styles struct {
	Info    lipgloss.Style
	Success lipgloss.Style
	Warn    lipgloss.Style
	Error   lipgloss.Style
	Accent  lipgloss.Style
	Title   lipgloss.Style
	Prompt  lipgloss.Style
}

// NewStyles builds Styles bound to r.
func NewStyles(r *lipgloss.Renderer) Styles {
	fg := func(light, dark string) lipgloss.Style {
		return r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: light, Dark: dark})
	}
	return Styles{
		Info:    fg("4", "12"),
		Success: fg("2", "10"),
		Warn:    fg("3", "11"),
		Error:   fg("1", "9"),
		Accent:  fg("5", "13"),
		Title:   r.NewStyle().Bold(true),
		Prompt:  fg("5", "13"),
	}
}
