package framework

import (
	"charm.land/lipgloss/v2"

	"github.com/raphi011/pix/internal/ui/styles"
)

// Style functions shared by the wizard chrome and its steps.

// BorderStyle wraps the entire wizard (left border only)
func BorderStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		BorderLeft(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(styles.Primary).
		MarginTop(1).
		MarginBottom(1).
		PaddingLeft(2).
		PaddingRight(2)
}

// TitleStyle for the wizard title
func TitleStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(styles.Primary)
}

// StepActiveStyle for the current step tab
func StepActiveStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(styles.Accent)
}

// StepCompletedStyle for completed step tabs
func StepCompletedStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(styles.Normal)
}

// StepCheckStyle for the checkmark on completed steps
func StepCheckStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(styles.Success)
}

// StepInactiveStyle for unvisited step tabs
func StepInactiveStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(styles.Muted)
}

// StepArrowStyle for arrows between steps
func StepArrowStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(styles.Muted)
}

// OptionSelectedStyle for the cursor-highlighted option
func OptionSelectedStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(styles.Accent)
}

// OptionNormalStyle for regular options
func OptionNormalStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(styles.Normal)
}

// OptionDisabledStyle for disabled/greyed options
func OptionDisabledStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(styles.Muted)
}

// HelpStyle for help text at the bottom
func HelpStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(styles.Muted).
		MarginTop(1)
}

// InfoStyle for informational text (e.g., "Writing to ~/.pix/config.toml")
func InfoStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(styles.Info).
		Italic(true)
}

// SummaryLabelStyle for summary field labels
func SummaryLabelStyle() lipgloss.Style {
	return OptionNormalStyle()
}

// SummaryValueStyle for summary field values
func SummaryValueStyle() lipgloss.Style {
	return OptionSelectedStyle()
}

// OptionDescriptionStyle for two-row option descriptions
func OptionDescriptionStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(styles.Muted)
}

// ErrorStyle for validation error messages
func ErrorStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(styles.Error)
}
