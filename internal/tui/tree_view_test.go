package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeager/mqtt-inspector/internal/core/inspect"
)

func TestBuildTreeItems(t *testing.T) {
	agg := inspect.NewAggregator(0)
	agg.Record(inspect.Message{Topic: "home/temp", Text: "21.5"})
	agg.Record(inspect.Message{Topic: "home/temp", Text: "21.6"})
	agg.Record(inspect.Message{Topic: "home/humidity", Text: "60"})
	agg.Record(inspect.Message{Topic: "barn", Text: "x"})

	items := BuildTreeItems(agg.Tree())
	require.Len(t, items, 4)

	home := items[0].(TreeItem)
	assert.Equal(t, "home", home.Topic)
	assert.False(t, home.IsLeaf)
	assert.Equal(t, treeBranch, home.Prefix)

	temp := items[1].(TreeItem)
	assert.Equal(t, "home/temp", temp.Topic)
	assert.Equal(t, "temp", temp.Segment)
	assert.True(t, temp.IsLeaf)
	assert.Equal(t, 2, temp.Count)
	assert.Equal(t, treePipe+treeBranch, temp.Prefix)

	humidity := items[2].(TreeItem)
	assert.Equal(t, "home/humidity", humidity.Topic)
	assert.Equal(t, treePipe+treeLast, humidity.Prefix)

	barn := items[3].(TreeItem)
	assert.Equal(t, "barn", barn.Topic)
	assert.True(t, barn.IsLeaf)
	assert.Equal(t, treeLast, barn.Prefix)
}

func TestBuildTreeItems_Empty(t *testing.T) {
	items := BuildTreeItems(inspect.NewTree())
	assert.Nil(t, items)
}

func TestTreeItem_FilterValue(t *testing.T) {
	item := TreeItem{Topic: "home/temp", Segment: "temp"}
	assert.Equal(t, "home/temp", item.FilterValue())
}
