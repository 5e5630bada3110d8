// Package style provides semantic terminal styling for the demo host,
// grounded on footprint-tools-cli's internal/ui/style package: the same
// lipgloss + termenv pairing, the same semantic-not-visual naming
// (Success/Warning/Error rather than RedBold), and the same
// disabled-is-a-no-op contract. Trimmed to a fixed palette — the demo
// host has no per-user theme override system to drive, unlike the
// teacher's Color1-7/theme-file machinery.
package style

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

var (
	enabled bool

	successStyle lipgloss.Style
	warningStyle lipgloss.Style
	errorStyle   lipgloss.Style
	infoStyle    lipgloss.Style
	headerStyle  lipgloss.Style
	mutedStyle   lipgloss.Style
)

// Init enables or disables styling for the process, respecting the
// standard NO_COLOR convention regardless of the enable argument. Call it
// once from main before any other output.
func Init(enable bool) {
	if os.Getenv("NO_COLOR") != "" {
		enabled = false
		return
	}
	enabled = enable
	if enabled {
		initStyles()
	}
}

func initStyles() {
	lipgloss.SetColorProfile(termenv.ANSI256)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	infoStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("75"))
	headerStyle = lipgloss.NewStyle().Bold(true)
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
}

// Enabled returns whether styling is currently enabled.
func Enabled() bool {
	return enabled
}

// Success styles text for successful operations.
func Success(text string) string {
	if !enabled {
		return text
	}
	return successStyle.Render(text)
}

// Warning styles text for warning messages.
func Warning(text string) string {
	if !enabled {
		return text
	}
	return warningStyle.Render(text)
}

// Error styles text for error messages.
func Error(text string) string {
	if !enabled {
		return text
	}
	return errorStyle.Render(text)
}

// Info styles text for informational messages.
func Info(text string) string {
	if !enabled {
		return text
	}
	return infoStyle.Render(text)
}

// Header styles text for section headers or titles.
func Header(text string) string {
	if !enabled {
		return text
	}
	return headerStyle.Render(text)
}

// Muted styles text for less important or secondary information.
func Muted(text string) string {
	if !enabled {
		return text
	}
	return mutedStyle.Render(text)
}
