package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/yeager/mqtt-inspector/internal/core/inspect"
)

// Tree characters for rendering the topic tree.
const (
	treeBranch = "├─"
	treeLast   = "└─"
	treePipe   = "│ "
	treeBlank  = "  "
)

// TreeItem represents one topic index node in the tree list.
type TreeItem struct {
	Topic   string // full topic prefix for this node
	Segment string
	Count   int  // cumulative message count, 0 for prefix-only nodes
	IsLeaf  bool // nodes that have received messages directly
	Depth   int
	Prefix  string // pre-computed tree drawing prefix
}

// FilterValue returns the value used for filtering. Matching is against the
// full topic so any segment can be searched.
func (i TreeItem) FilterValue() string {
	return i.Topic
}

// BuildTreeItems flattens the topic index into list items, depth first in
// insertion order, with the tree drawing prefix computed per row.
func BuildTreeItems(tree *inspect.Tree) []list.Item {
	var items []list.Item

	var walk func(nodes []*inspect.Node, ancestors string)
	walk = func(nodes []*inspect.Node, ancestors string) {
		for idx, n := range nodes {
			last := idx == len(nodes)-1

			prefix := ancestors + treeBranch
			if last {
				prefix = ancestors + treeLast
			}

			items = append(items, TreeItem{
				Topic:   n.Topic(),
				Segment: n.Segment(),
				Count:   n.Count(),
				IsLeaf:  n.Count() > 0,
				Depth:   strings.Count(n.Topic(), "/"),
				Prefix:  prefix,
			})

			childAncestors := ancestors + treePipe
			if last {
				childAncestors = ancestors + treeBlank
			}
			walk(n.Children(), childAncestors)
		}
	}
	walk(tree.Roots(), "")

	return items
}

// TreeDelegateStyles defines the styles for the tree delegate.
type TreeDelegateStyles struct {
	TreeLine       lipgloss.Style
	Segment        lipgloss.Style
	PrefixSegment  lipgloss.Style
	Count          lipgloss.Style
	Selected       lipgloss.Style
	SelectedBorder lipgloss.Style
	FilterMatch    lipgloss.Style
	SelectedMatch  lipgloss.Style
}

// DefaultTreeDelegateStyles returns the default styles for tree rendering.
func DefaultTreeDelegateStyles() TreeDelegateStyles {
	return TreeDelegateStyles{
		TreeLine:       lipgloss.NewStyle().Foreground(colorGray),
		Segment:        lipgloss.NewStyle().Foreground(colorWhite),
		PrefixSegment:  lipgloss.NewStyle().Foreground(colorGray),
		Count:          lipgloss.NewStyle().Foreground(colorPurple),
		Selected:       lipgloss.NewStyle().Foreground(colorBlue).Bold(true),
		SelectedBorder: lipgloss.NewStyle().Foreground(colorBlue),
		FilterMatch:    lipgloss.NewStyle().Underline(true),
		SelectedMatch:  lipgloss.NewStyle().Underline(true).Foreground(colorBlue).Bold(true),
	}
}

// TreeDelegate handles rendering of tree items in the list.
type TreeDelegate struct {
	Styles TreeDelegateStyles
}

// NewTreeDelegate creates a new tree delegate with default styles.
func NewTreeDelegate() TreeDelegate {
	return TreeDelegate{
		Styles: DefaultTreeDelegateStyles(),
	}
}

// Height returns the height of each item.
func (d TreeDelegate) Height() int {
	return 1
}

// Spacing returns the spacing between items.
func (d TreeDelegate) Spacing() int {
	return 0
}

// Update handles item updates.
func (d TreeDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render renders a single tree item.
func (d TreeDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	treeItem, ok := item.(TreeItem)
	if !ok {
		return
	}

	isSelected := index == m.Index()

	var prefix string
	if isSelected {
		prefix = d.Styles.SelectedBorder.Render("┃") + " "
	} else {
		prefix = "  "
	}

	_, _ = fmt.Fprintf(w, "%s%s", prefix, d.renderNode(treeItem, isSelected, m, index))
}

// renderNode renders one topic node line: tree prefix, segment, and count.
func (d TreeDelegate) renderNode(item TreeItem, isSelected bool, m list.Model, index int) string {
	prefixStyled := d.Styles.TreeLine.Render(item.Prefix)

	segStyle := d.Styles.Segment
	if !item.IsLeaf {
		segStyle = d.Styles.PrefixSegment
	}
	matchStyle := d.Styles.FilterMatch
	if isSelected {
		segStyle = d.Styles.Selected
		matchStyle = d.Styles.SelectedMatch
	}

	// Filter matches index into FilterValue (the full topic); this node's
	// segment starts at len(topic)-len(segment).
	matches := m.MatchesForItem(index)
	matchSet := make(map[int]bool, len(matches))
	for _, idx := range matches {
		matchSet[idx] = true
	}
	segOffset := len([]rune(item.Topic)) - len([]rune(item.Segment))
	seg := d.renderWithMatches(item.Segment, segOffset, matchSet, segStyle, matchStyle)

	count := ""
	if item.IsLeaf {
		count = d.Styles.Count.Render(fmt.Sprintf(" (%d)", item.Count))
	}

	return fmt.Sprintf("%s %s%s", prefixStyled, seg, count)
}

// renderWithMatches renders text with underlined characters at matched positions.
func (d TreeDelegate) renderWithMatches(text string, offset int, matchSet map[int]bool, baseStyle, matchStyle lipgloss.Style) string {
	if len(matchSet) == 0 {
		return baseStyle.Render(text)
	}

	runes := []rune(text)
	var result string
	for i, r := range runes {
		if matchSet[offset+i] {
			result += matchStyle.Render(string(r))
		} else {
			result += baseStyle.Render(string(r))
		}
	}
	return result
}
