package formatter

import (
	"fmt"
	"strings"

	"github.com/AyalaRamjee/KA-Capital-Allocation-sub002/internal/domain"
	"github.com/AyalaRamjee/KA-Capital-Allocation-sub002/internal/validation"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// RiskStyle returns the style for a project or tolerance risk level.
func RiskStyle(level domain.RiskLevel) lipgloss.Style {
	switch level {
	case domain.RiskHigh:
		return StyleRed
	case domain.RiskMedium:
		return StyleYellow
	case domain.RiskLow:
		return StyleGreen
	default:
		return StyleDim
	}
}

// SeverityBadge returns a colored marker such as "● CRITICAL".
func SeverityBadge(sev validation.Severity) string {
	switch sev {
	case validation.SeverityCritical:
		return StyleRed.Render("● CRITICAL")
	case validation.SeverityWarning:
		return StyleYellow.Render("● WARNING")
	case validation.SeverityInfo:
		return StyleBlue.Render("● INFO")
	default:
		return StyleDim.Render("● UNKNOWN")
	}
}

// StateStyle returns the style for an approval state.
func StateStyle(state domain.ApprovalState) lipgloss.Style {
	switch state {
	case domain.ApprovalApproved:
		return StyleGreen
	case domain.ApprovalRejected:
		return StyleRed
	case domain.ApprovalPending:
		return StyleYellow
	default:
		return StyleDim
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
