package tui

import "github.com/charmbracelet/lipgloss"

// ViewType represents which view is active.
type ViewType int

const (
	ViewTopics ViewType = iota
	ViewHistory
)

// Tab bar styles.
var (
	viewSelectedStyle = lipgloss.NewStyle().
				Foreground(colorBlue).
				Bold(true)

	viewNormalStyle = lipgloss.NewStyle().
			Foreground(colorGray)
)
