package logging

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Palette for human-facing status lines.
var (
	ColorInfo    = lipgloss.Color("#60A5FA") // Sky Blue
	ColorSuccess = lipgloss.Color("#059669") // Emerald 600
	ColorWarning = lipgloss.Color("#D97706") // Amber 600
	ColorError   = lipgloss.Color("#DC2626") // Red 600
	ColorPrompt  = lipgloss.Color("#22D3EE") // Cyan 400
)

// Icons prefixed to status lines.
var Icons = map[string]string{
	"info":    "ℹ",
	"success": "✓",
	"warning": "⚠",
	"error":   "✗",
}

func printStatus(kind string, color lipgloss.Color, format string, args ...any) {
	w := Writer()
	style := lipgloss.NewRenderer(w).NewStyle().Foreground(color)
	line := fmt.Sprintf(format, args...)
	fmt.Fprintln(w, style.Render(Icons[kind]+" "+line))
}

// Status prints an informational line to the diagnostic stream.
func Status(format string, args ...any) {
	printStatus("info", ColorInfo, format, args...)
}

// Success prints a success line to the diagnostic stream.
func Success(format string, args ...any) {
	printStatus("success", ColorSuccess, format, args...)
}

// Warning prints a warning line to the diagnostic stream.
func Warning(format string, args ...any) {
	printStatus("warning", ColorWarning, format, args...)
}

// Failure prints an error line to the diagnostic stream.
func Failure(format string, args ...any) {
	printStatus("error", ColorError, format, args...)
}

// PromptStyle renders interactive questions.
func PromptStyle() lipgloss.Style {
	return lipgloss.NewRenderer(Writer()).NewStyle().Foreground(ColorPrompt)
}
