package tui

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/yeager/mqtt-inspector/internal/core/inspect"
	"github.com/yeager/mqtt-inspector/internal/core/render"
)

// Payload preview modal layout constants.
const (
	previewModalMaxWidth  = 100 // maximum modal width in columns
	previewModalMaxHeight = 30  // maximum modal height in rows
	previewModalMargin    = 4   // margin from screen edges
	previewModalChrome    = 8   // rows for title, metadata, help, and spacing
	previewModalPadding   = 4   // padding inside content area
	glamourGutter         = 2   // glamour adds gutter space
)

// PayloadPreviewModal displays one message's full payload in the active
// render mode.
type PayloadPreviewModal struct {
	message  inspect.Message
	mode     render.Mode
	viewport viewport.Model
	width    int
}

// NewPayloadPreviewModal creates a preview modal for the given message.
func NewPayloadPreviewModal(msg inspect.Message, mode render.Mode, width, height int) PayloadPreviewModal {
	modalWidth := min(width-previewModalMargin, previewModalMaxWidth)
	modalHeight := min(height-previewModalMargin, previewModalMaxHeight)
	contentHeight := modalHeight - previewModalChrome

	vp := viewport.New(modalWidth-previewModalPadding, contentHeight)
	vp.Style = lipgloss.NewStyle()

	m := PayloadPreviewModal{
		message:  msg,
		mode:     mode,
		viewport: vp,
		width:    modalWidth - previewModalPadding,
	}
	m.renderContent()

	return m
}

// Mode returns the modal's current render mode.
func (m PayloadPreviewModal) Mode() render.Mode {
	return m.mode
}

// CycleMode advances to the next render mode and re-renders the payload.
func (m *PayloadPreviewModal) CycleMode() {
	m.mode = m.mode.Cycle()
	m.renderContent()
}

// renderContent fills the viewport with the payload in the active mode.
// JSON mode goes through glamour as a fenced code block for highlighting;
// text and hex are shown verbatim.
func (m *PayloadPreviewModal) renderContent() {
	content := render.Payload(m.mode, m.message.Payload)

	if m.mode == render.ModeJSON {
		if highlighted, ok := m.highlightJSON(content); ok {
			content = highlighted
		}
	}

	m.viewport.SetContent(content)
	m.viewport.GotoTop()
}

// highlightJSON renders the content through glamour as a json code fence.
func (m *PayloadPreviewModal) highlightJSON(content string) (string, bool) {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("tokyo-night"),
		glamour.WithWordWrap(m.width-glamourGutter),
	)
	if err != nil {
		return "", false
	}

	rendered, err := renderer.Render("```json\n" + content + "\n```")
	if err != nil {
		return "", false
	}

	out := strings.TrimSpace(rendered)
	out = stripLeadingDecorative(out)
	out = stripTrailingDecorative(out)
	return out, true
}

// UpdateViewport updates the viewport with a message (for scrolling).
func (m *PayloadPreviewModal) UpdateViewport(msg any) {
	m.viewport, _ = m.viewport.Update(msg)
}

// ScrollUp scrolls the viewport up.
func (m *PayloadPreviewModal) ScrollUp() {
	m.viewport.ScrollUp(1)
}

// ScrollDown scrolls the viewport down.
func (m *PayloadPreviewModal) ScrollDown() {
	m.viewport.ScrollDown(1)
}

// Overlay renders the preview modal centered over the background.
func (m PayloadPreviewModal) Overlay(width, height int) string {
	modalWidth := min(width-previewModalMargin, previewModalMaxWidth)
	modalHeight := min(height-previewModalMargin, previewModalMaxHeight)

	// Metadata header: topic, qos, retain flag, timestamp
	topicStr := previewTopicStyle.Render(fmt.Sprintf("[%s]", m.message.Topic))
	qosStr := previewMetaStyle.Render(fmt.Sprintf("QoS %d", m.message.QoS))
	if m.message.Retain {
		qosStr += " " + retainStyle.Render("[R]")
	}
	timeStr := previewTimeStyle.Render(m.message.ReceivedAt.Format("2006-01-02 15:04:05"))
	metadata := fmt.Sprintf("%s %s • %s", topicStr, qosStr, timeStr)

	modeStr := previewModeStyle.Render(fmt.Sprintf("mode: %s", m.mode))

	// Build scroll indicator
	scrollInfo := ""
	if m.viewport.TotalLineCount() > m.viewport.VisibleLineCount() {
		scrollInfo = previewScrollStyle.Render(fmt.Sprintf(" (%.0f%%)", m.viewport.ScrollPercent()*100))
	}

	modalContent := lipgloss.JoinVertical(
		lipgloss.Left,
		modalTitleStyle.Render("Payload Preview"+scrollInfo),
		"",
		metadata,
		modeStr,
		previewDividerStyle.Width(modalWidth-previewModalPadding).Render(strings.Repeat("─", modalWidth-previewModalPadding)),
		m.viewport.View(),
		modalHelpStyle.Render("[↑/↓/j/k] scroll  [m] mode  [enter/esc] close"),
	)

	modal := modalStyle.
		Width(modalWidth).
		Height(modalHeight).
		Render(modalContent)

	return lipgloss.Place(
		width, height,
		lipgloss.Center, lipgloss.Center,
		modal,
	)
}

// Preview modal specific styles.
var (
	previewTopicStyle = lipgloss.NewStyle().
				Foreground(colorBlue).
				Bold(true)

	previewMetaStyle = lipgloss.NewStyle().
				Foreground(colorPurple)

	previewTimeStyle = lipgloss.NewStyle().
				Foreground(colorGray)

	previewModeStyle = lipgloss.NewStyle().
				Foreground(colorGray).
				Italic(true)

	previewDividerStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#3b4261"))

	previewScrollStyle = lipgloss.NewStyle().
				Foreground(colorGray)
)

// ansiPattern matches ANSI escape sequences.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// isDecorativeLine checks if a line contains only decorative characters
// (horizontal rules, spaces) after stripping ANSI codes.
func isDecorativeLine(line string) bool {
	stripped := ansiPattern.ReplaceAllString(line, "")
	stripped = strings.TrimSpace(stripped)
	if stripped == "" {
		return true
	}
	for _, r := range stripped {
		if r != '─' && r != '━' && r != '-' && r != '=' {
			return false
		}
	}
	return true
}

// stripLeadingDecorative removes leading decorative lines from content.
func stripLeadingDecorative(content string) string {
	lines := strings.Split(content, "\n")
	start := 0
	for start < len(lines) && isDecorativeLine(lines[start]) {
		start++
	}
	if start > 0 {
		return strings.Join(lines[start:], "\n")
	}
	return content
}

// stripTrailingDecorative removes trailing decorative lines from content.
func stripTrailingDecorative(content string) string {
	lines := strings.Split(content, "\n")
	end := len(lines)
	for end > 0 && isDecorativeLine(lines[end-1]) {
		end--
	}
	if end < len(lines) {
		return strings.Join(lines[:end], "\n")
	}
	return content
}
