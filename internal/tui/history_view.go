package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/yeager/mqtt-inspector/internal/core/inspect"
)

// HistoryView is a custom compact renderer for a topic's message history.
// It displays messages in a single-line format:
// timestamp [qos] [R] payload_preview... age
type HistoryView struct {
	topic      string
	messages   []inspect.Message
	cursor     int
	width      int
	height     int
	offset     int // scroll offset for viewport
	filtering  bool
	filter     string
	filterBuf  strings.Builder
	filteredAt []int // indices of messages matching filter
}

// NewHistoryView creates a new history view.
func NewHistoryView() *HistoryView {
	return &HistoryView{
		filteredAt: make([]int, 0),
	}
}

// SetMessages sets the topic and messages to display. Newest messages are
// shown first.
func (v *HistoryView) SetMessages(topic string, msgs []inspect.Message) {
	v.topic = topic
	v.messages = msgs
	v.applyFilter()

	if len(v.filteredAt) == 0 {
		v.cursor = 0
	} else if v.cursor >= len(v.filteredAt) {
		v.cursor = len(v.filteredAt) - 1
	}
	v.clampOffset()
}

// Topic returns the topic currently shown.
func (v *HistoryView) Topic() string {
	return v.topic
}

// SetSize sets the viewport dimensions.
func (v *HistoryView) SetSize(width, height int) {
	v.width = width
	v.height = height
	v.clampOffset()
}

// visibleLines returns the number of visible message lines.
func (v *HistoryView) visibleLines() int {
	// Reserve lines for: column header (1), help (1)
	reserved := 2
	// Add filter line if active
	if v.filtering || v.filter != "" {
		reserved++
	}
	visible := v.height - reserved
	if visible < 1 {
		visible = 1
	}
	return visible
}

// clampOffset ensures the offset keeps the cursor visible.
func (v *HistoryView) clampOffset() {
	visible := v.visibleLines()
	total := len(v.filteredAt)

	if v.cursor < v.offset {
		v.offset = v.cursor
	} else if v.cursor >= v.offset+visible {
		v.offset = v.cursor - visible + 1
	}

	if v.offset < 0 {
		v.offset = 0
	}
	maxOffset := total - visible
	if maxOffset < 0 {
		maxOffset = 0
	}
	if v.offset > maxOffset {
		v.offset = maxOffset
	}
}

// MoveUp moves cursor up.
func (v *HistoryView) MoveUp() {
	if v.cursor > 0 {
		v.cursor--
		v.clampOffset()
	}
}

// MoveDown moves cursor down.
func (v *HistoryView) MoveDown() {
	if v.cursor < len(v.filteredAt)-1 {
		v.cursor++
		v.clampOffset()
	}
}

// SelectedMessage returns the currently selected message, or nil if none.
func (v *HistoryView) SelectedMessage() *inspect.Message {
	if len(v.filteredAt) == 0 || v.cursor >= len(v.filteredAt) {
		return nil
	}
	idx := v.filteredAt[v.cursor]
	if idx >= len(v.messages) {
		return nil
	}
	return &v.messages[idx]
}

// StartFilter begins filter input mode.
func (v *HistoryView) StartFilter() {
	v.filtering = true
	v.filterBuf.Reset()
}

// CancelFilter cancels filtering and clears the filter.
func (v *HistoryView) CancelFilter() {
	v.filtering = false
	v.filter = ""
	v.filterBuf.Reset()
	v.applyFilter()
}

// IsFiltering returns true if filter input is active.
func (v *HistoryView) IsFiltering() bool {
	return v.filtering
}

// AddFilterRune adds a rune to the filter.
func (v *HistoryView) AddFilterRune(r rune) {
	v.filterBuf.WriteRune(r)
	v.filter = v.filterBuf.String()
	v.applyFilter()
}

// DeleteFilterRune removes the last rune from the filter.
func (v *HistoryView) DeleteFilterRune() {
	s := v.filterBuf.String()
	if len(s) > 0 {
		s = s[:len(s)-1]
		v.filterBuf.Reset()
		v.filterBuf.WriteString(s)
		v.filter = s
		v.applyFilter()
	}
}

// ConfirmFilter confirms the filter and exits filter mode.
func (v *HistoryView) ConfirmFilter() {
	v.filtering = false
	v.applyFilter()
}

// applyFilter updates filteredAt based on current filter. Display order is
// newest first, so indices run backwards over the history.
func (v *HistoryView) applyFilter() {
	v.filteredAt = v.filteredAt[:0]
	filter := strings.ToLower(v.filter)

	for i := len(v.messages) - 1; i >= 0; i-- {
		if filter == "" || strings.Contains(strings.ToLower(v.messages[i].Text), filter) {
			v.filteredAt = append(v.filteredAt, i)
		}
	}

	if v.cursor >= len(v.filteredAt) {
		v.cursor = 0
	}
	v.clampOffset()
}

// View renders the history view.
func (v *HistoryView) View() string {
	var b strings.Builder

	// Column widths
	// Order: Time | QoS | R | Payload | Age
	timeWidth := 8 // "14:32:01"
	qosWidth := 3  // "[1]"
	retWidth := 3  // "[R]"
	ageWidth := 4  // "2m", "1h", "3d"
	padding := 4   // spaces between columns
	contentWidth := v.width - timeWidth - qosWidth - retWidth - ageWidth - padding - 4

	if contentWidth < 20 {
		contentWidth = 20
	}

	// Filter line (only shown when filtering or filter is active)
	if v.filtering {
		filterPrompt := lipgloss.NewStyle().Foreground(colorBlue).Bold(true).Render("Filter: ")
		b.WriteString(" ")
		b.WriteString(filterPrompt)
		b.WriteString(v.filter)
		b.WriteString("▎") // cursor
		b.WriteString("\n")
	} else if v.filter != "" {
		filterShow := lipgloss.NewStyle().Foreground(colorGray).Render(fmt.Sprintf("Filter: %s", v.filter))
		b.WriteString(" ")
		b.WriteString(filterShow)
		b.WriteString("\n")
	}

	// Column headers
	headerStyle := lipgloss.NewStyle().Foreground(colorGray)
	timeHeader := fmt.Sprintf("%-*s", timeWidth, "Time")
	qosHeader := fmt.Sprintf("%-*s", qosWidth, "QoS")
	retHeader := fmt.Sprintf("%-*s", retWidth, "Ret")
	msgHeader := fmt.Sprintf("%-*s", contentWidth, "Payload")
	ageHeader := fmt.Sprintf("%*s", ageWidth, "Age")
	b.WriteString("  ") // align with content (selection indicator space)
	b.WriteString(headerStyle.Render(timeHeader + " " + qosHeader + " " + retHeader + " " + msgHeader + " " + ageHeader))
	b.WriteString("\n")

	linesRendered := 0

	if len(v.filteredAt) == 0 {
		var empty string
		switch {
		case v.topic == "":
			empty = "  No topic selected"
		case len(v.messages) == 0:
			empty = "  No messages"
		default:
			empty = "  No matching messages"
		}
		b.WriteString(lipgloss.NewStyle().Foreground(colorGray).Render(empty))
		b.WriteString("\n")
		linesRendered = 1
	} else {
		visible := v.visibleLines()
		end := v.offset + visible
		if end > len(v.filteredAt) {
			end = len(v.filteredAt)
		}

		for i := v.offset; i < end; i++ {
			msgIdx := v.filteredAt[i]
			msg := &v.messages[msgIdx]
			isSelected := i == v.cursor

			b.WriteString(v.renderMessageLine(msg, isSelected, timeWidth, contentWidth, ageWidth))
			b.WriteString("\n")
			linesRendered++
		}
	}

	// Pad to push help to bottom
	visible := v.visibleLines()
	for i := linesRendered; i < visible; i++ {
		b.WriteString("\n")
	}

	// Help line (pinned to bottom)
	help := helpStyle.Render("↑/↓ navigate • enter preview • / filter • m payload mode • tab switch view")
	b.WriteString(help)

	return b.String()
}

// renderMessageLine renders a single message line in compact format.
func (v *HistoryView) renderMessageLine(msg *inspect.Message, selected bool, timeW, contentW, ageW int) string {
	var b strings.Builder

	// Selection indicator
	if selected {
		b.WriteString(selectedBorderStyle.Render("┃"))
		b.WriteString(" ")
	} else {
		b.WriteString("  ")
	}

	// Timestamp
	timeStr := msg.ReceivedAt.Format("15:04:05")
	b.WriteString(lipgloss.NewStyle().Foreground(colorGray).Render(fmt.Sprintf("%-*s", timeW, timeStr)))
	b.WriteString(" ")

	// QoS
	b.WriteString(lipgloss.NewStyle().Foreground(colorPurple).Render(fmt.Sprintf("[%d]", msg.QoS)))
	b.WriteString(" ")

	// Retain flag
	if msg.Retain {
		b.WriteString(retainStyle.Render("[R]"))
	} else {
		b.WriteString("   ")
	}
	b.WriteString(" ")

	// Payload preview (truncated, fills remaining space)
	payload := strings.ReplaceAll(msg.Text, "\n", " ")
	payload = strings.ReplaceAll(payload, "\t", " ")
	payloadRunes := []rune(payload)
	if len(payloadRunes) > contentW-1 {
		payload = string(payloadRunes[:contentW-1]) + "…"
	}
	payloadStyle := lipgloss.NewStyle().Foreground(colorWhite)
	if selected {
		payloadStyle = payloadStyle.Bold(true)
	}
	b.WriteString(payloadStyle.Render(fmt.Sprintf("%-*s", contentW, payload)))
	b.WriteString(" ")

	// Age (right-aligned, provides visual end cap)
	age := formatAge(msg.ReceivedAt)
	b.WriteString(lipgloss.NewStyle().Foreground(colorGray).Render(fmt.Sprintf("%*s", ageW, age)))

	return b.String()
}

// formatAge returns a human-readable relative time string.
func formatAge(t time.Time) string {
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd", int(d.Hours()/24))
	}
}
