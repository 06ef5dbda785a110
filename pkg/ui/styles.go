package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// ANSI escape codes for simple terminal output (CLI commands)
const (
	Reset   = "\033[0m"
	Bold    = "\033[1m"
	Red     = "\033[31m"
	Green   = "\033[32m"
	Yellow  = "\033[33m"
	Blue    = "\033[34m"
	Cyan    = "\033[36m"
	BoldRed = "\033[1;31m"
)

var (
	// Brand colors
	Primary   = lipgloss.Color("#7D56F4") // Purple
	Secondary = lipgloss.Color("#00D4AA") // Cyan/Teal

	// Status colors
	Success = lipgloss.Color("#00D26A") // Bright green
	Warning = lipgloss.Color("#FFB800") // Amber
	Error   = lipgloss.Color("#FF3838") // Red
	Muted   = lipgloss.Color("#6B7280") // Gray
)

// Pre-configured styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(Primary).
			Padding(0, 1)

	SectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Bold(true).
			MarginTop(1)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(Warning).
			Bold(true)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(Success).
			Bold(true)

	MutedStyle = lipgloss.NewStyle().
			Foreground(Muted)

	// Context names in diagnostic output
	NameStyle = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	URLStyle = lipgloss.NewStyle().
			Foreground(Secondary).
			Underline(true)

	HelpStyle = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)
)

// DisableColor forces plain ASCII output for all styles, for -no-color
// and piped output.
func DisableColor() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

// DiagnosticStyle returns the style for a diagnostic severity.
func DiagnosticStyle(severity string) lipgloss.Style {
	switch severity {
	case "error":
		return ErrorStyle
	case "warning":
		return WarningStyle
	default:
		return MutedStyle
	}
}
