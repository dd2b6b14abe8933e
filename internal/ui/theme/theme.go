package theme

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/gradewise/internal/correlation"
	"github.com/abhisek/gradewise/internal/impact"
	"github.com/abhisek/gradewise/internal/spacedrep"
)

// Color palette
var (
	Primary   = lipgloss.Color("#8B5CF6") // Vivid Purple
	Secondary = lipgloss.Color("#14B8A6") // Teal
	Accent    = lipgloss.Color("#F97316") // Orange
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#F43F5E") // Rose
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	Border    = lipgloss.Color("#334155") // Slate
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Label = lipgloss.NewStyle().
		Foreground(Secondary)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Rule = lipgloss.NewStyle().
		Foreground(Border)
)

// States
var (
	Good = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Warn = lipgloss.NewStyle().
		Foreground(Accent).
		Bold(true)

	Bad = lipgloss.NewStyle().
		Foreground(Error).
		Bold(true)
)

// Priority returns the style for an impact priority label.
func Priority(p impact.Priority) lipgloss.Style {
	switch p {
	case impact.PriorityHigh:
		return Bad
	case impact.PriorityMedium:
		return Warn
	default:
		return Hint
	}
}

// Significance returns the style for a correlation significance level.
func Significance(l correlation.Level) lipgloss.Style {
	switch l {
	case correlation.HighlySignificant:
		return Good
	case correlation.Significant:
		return Warn
	default:
		return Hint
	}
}

// Status returns the style for a flashcard review status.
func Status(s spacedrep.ReviewStatus) lipgloss.Style {
	switch s {
	case spacedrep.StatusOverdue:
		return Bad
	case spacedrep.StatusDue:
		return Warn
	case spacedrep.StatusNew:
		return Label
	default:
		return Hint
	}
}
