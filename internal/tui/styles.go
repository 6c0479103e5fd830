// Package tui implements the Bubble Tea TUI for mqtt-inspector.
package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Tokyo Night color palette.
var (
	colorGreen  = lipgloss.Color("#9ece6a") // green
	colorYellow = lipgloss.Color("#e0af68") // yellow
	colorBlue   = lipgloss.Color("#7aa2f7") // blue
	colorRed    = lipgloss.Color("#f38ba8") // red
	colorPurple = lipgloss.Color("#bb9af7") // purple
	colorGray   = lipgloss.Color("#565f89") // comment
	colorWhite  = lipgloss.Color("#c0caf5") // foreground
)

// Styles used for rendering the TUI.
var (
	// Selected border style for left accent bar.
	selectedBorderStyle = lipgloss.NewStyle().
				Foreground(colorBlue)

	// Connected indicator style.
	connectedStyle = lipgloss.NewStyle().
			Foreground(colorGreen)

	// Disconnected indicator style.
	disconnectedStyle = lipgloss.NewStyle().
				Foreground(colorRed)

	// Status line style for transient notices.
	statusStyle = lipgloss.NewStyle().
			Foreground(colorGray).
			PaddingLeft(1)

	// Help line style.
	helpStyle = lipgloss.NewStyle().
			Foreground(colorGray).
			PaddingLeft(1)

	// Retain flag style in history lines.
	retainStyle = lipgloss.NewStyle().
			Foreground(colorYellow)

	// Spinner style.
	spinnerStyle = lipgloss.NewStyle().
			Foreground(colorBlue)
)

// Banner ASCII art for the header.
const banner = `
 ╔╦╗╔═╗╔╦╗╔╦╗  ╦╔╗╔╔═╗╔═╗╔═╗╔═╗╔╦╗╔═╗╦═╗
 ║║║║═╬╗║  ║   ║║║║╚═╗╠═╝║╣ ║   ║ ║ ║╠╦╝
 ╩ ╩╚═╝╚╩  ╩   ╩╝╚╝╚═╝╩  ╚═╝╚═╝ ╩ ╚═╝╩╚═`

// bannerStyle styles the ASCII art banner.
var bannerStyle = lipgloss.NewStyle().
	Foreground(colorBlue).
	Bold(true).
	PaddingLeft(1).
	PaddingBottom(1)

// Modal styles.
var (
	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBlue).
			Padding(1, 2)

	modalTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorWhite)

	modalHelpStyle = lipgloss.NewStyle().
			Foreground(colorGray).
			MarginTop(1)

	modalButtonStyle = lipgloss.NewStyle().
				Padding(0, 1).
				Background(lipgloss.Color("#3b4261")).
				Foreground(lipgloss.Color("#a9b1d6"))

	modalButtonSelectedStyle = lipgloss.NewStyle().
					Padding(0, 1).
					Background(colorBlue).
					Foreground(lipgloss.Color("#1a1b26")).
					Bold(true)
)
