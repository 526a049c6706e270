// Package style provides semantic terminal styling using lipgloss.
//
// This package is the only place where lipgloss colors are chosen. All
// styling is semantic (Success, Warning, Error, etc.) rather than visual.
//
// When disabled, all helpers return the input string unchanged with no ANSI codes.
package style

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

var (
	enabled bool
	colors  ColorConfig

	// Only used when enabled is true.
	successStyle lipgloss.Style
	warningStyle lipgloss.Style
	errorStyle   lipgloss.Style
	infoStyle    lipgloss.Style
	headerStyle  lipgloss.Style
	mutedStyle   lipgloss.Style
)

// NoColor reports whether NO_COLOR or CLIKIT_NO_COLOR is set to a
// non-empty value.
func NoColor() bool {
	return os.Getenv("NO_COLOR") != "" || os.Getenv("CLIKIT_NO_COLOR") != ""
}

// ShouldEnable resolves the "color" preference: "always" and "never" are
// absolute, anything else enables color only on a terminal. NO_COLOR wins
// over all of them.
func ShouldEnable(mode string, isTerminal bool) bool {
	if NoColor() {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "always", "true", "on":
		return true
	case "never", "false", "off":
		return false
	default:
		return isTerminal
	}
}

// Init sets the enabled state and loads colors from cfg (theme name and
// color_* overrides). NO_COLOR and CLIKIT_NO_COLOR always disable styling.
//
// This function should be called once from main before any output.
func Init(enable bool, cfg map[string]string) {
	if NoColor() {
		enabled = false
		return
	}

	enabled = enable

	if enabled {
		colors = LoadColorConfig(cfg)
		initStyles(colors)
	}
}

// GetColors returns the current color configuration.
// Returns empty config if styling is not enabled.
func GetColors() ColorConfig {
	return colors
}

// initStyles creates the lipgloss styles from the given color configuration.
func initStyles(colors ColorConfig) {
	// Force ANSI256 regardless of TTY detection; Init already decided.
	lipgloss.SetColorProfile(termenv.ANSI256)

	successStyle = Lip(colors.Success)
	warningStyle = Lip(colors.Warning)
	errorStyle = Lip(colors.Error)
	infoStyle = Lip(colors.Info)
	mutedStyle = Lip(colors.Muted)
	headerStyle = Lip(colors.Header)
}

// Lip creates a lipgloss style from a color value: "bold" or an ANSI
// color number (0-255).
func Lip(value string) lipgloss.Style {
	if value == "bold" {
		return lipgloss.NewStyle().Bold(true)
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(value))
}

// Enabled returns whether styling is currently enabled.
func Enabled() bool {
	return enabled
}

func render(s lipgloss.Style, text string) string {
	if !enabled {
		return text
	}
	return s.Render(text)
}

// Success styles text for successful operations.
func Success(text string) string { return render(successStyle, text) }

// Warning styles text for warning messages.
func Warning(text string) string { return render(warningStyle, text) }

// Error styles text for error messages.
func Error(text string) string { return render(errorStyle, text) }

// Info styles command names and other highlighted values.
func Info(text string) string { return render(infoStyle, text) }

// Header styles section headers.
func Header(text string) string { return render(headerStyle, text) }

// Muted styles secondary information.
func Muted(text string) string { return render(mutedStyle, text) }
