package output

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Styles holds the lipgloss styles used per severity
type Styles struct {
	Info    lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Final   lipgloss.Style
	Dim     lipgloss.Style
}

// DefaultStyles returns the palette shared by the console and the terminal form
func DefaultStyles() Styles {
	return Styles{
		Info:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		Final:   lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true),
		Dim:     lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	}
}

// Render returns the line with its marker, colored by severity
func (s Styles) Render(line Line) string {
	style := s.Info
	switch {
	case line.Severity == SeverityError:
		style = s.Error
	case line.Final:
		style = s.Final
	case line.Severity == SeveritySuccess:
		style = s.Success
	}
	return line.Marker() + " " + style.Render(line.Text)
}

// IsTerminal reports whether f is attached to a terminal
func IsTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// ConfigureColors picks the lipgloss color profile for f. Color is disabled
// when NO_COLOR is set or f is not a terminal.
func ConfigureColors(f *os.File) {
	if os.Getenv("NO_COLOR") != "" || !IsTerminal(f) {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}
	lipgloss.SetColorProfile(termenv.NewOutput(f).EnvColorProfile())
}
