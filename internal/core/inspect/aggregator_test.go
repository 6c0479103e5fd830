package inspect

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func msg(topic, payload string) Message {
	return Message{
		Topic:      topic,
		Payload:    []byte(payload),
		Text:       payload,
		ReceivedAt: time.Now(),
	}
}

func TestAggregator_Record(t *testing.T) {
	tests := []struct {
		name      string
		topics    []string
		wantTotal int
		wantCount map[string]int
	}{
		{
			name:      "single topic",
			topics:    []string{"home/temp"},
			wantTotal: 1,
			wantCount: map[string]int{"home/temp": 1},
		},
		{
			name:      "interleaved topics",
			topics:    []string{"home/temp", "home/humidity", "home/temp"},
			wantTotal: 3,
			wantCount: map[string]int{"home/temp": 2, "home/humidity": 1},
		},
		{
			name:      "empty topic dropped",
			topics:    []string{"", "  ", "home/temp"},
			wantTotal: 1,
			wantCount: map[string]int{"home/temp": 1},
		},
		{
			name:      "topics are not normalized",
			topics:    []string{"a/b", "a//b", "a/b/"},
			wantTotal: 3,
			wantCount: map[string]int{"a/b": 1, "a//b": 1, "a/b/": 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			agg := NewAggregator(0)
			for _, topic := range tt.topics {
				agg.Record(msg(topic, "x"))
			}

			assert.Equal(t, tt.wantTotal, agg.TotalCount())
			for topic, want := range tt.wantCount {
				assert.Equal(t, want, agg.Count(topic), "count for %q", topic)
			}
		})
	}
}

func TestAggregator_HistoryBound(t *testing.T) {
	agg := NewAggregator(100)

	for i := 0; i < 150; i++ {
		agg.Record(msg("sensors/load", fmt.Sprintf("%d", i)))
	}

	h := agg.History("sensors/load")
	require.Len(t, h, 100)

	// Oldest 50 were evicted; retained window is 50..149 in order.
	assert.Equal(t, "50", h[0].Text)
	assert.Equal(t, "149", h[99].Text)
	assert.Equal(t, 150, agg.Count("sensors/load"))
	assert.Equal(t, 150, agg.TotalCount())
}

func TestAggregator_Clear(t *testing.T) {
	agg := NewAggregator(0)
	for i := 0; i < 5; i++ {
		agg.Record(msg("home/temp", "21.5"))
	}
	agg.Record(msg("home/humidity", "60"))

	agg.Clear("home/temp")

	assert.Empty(t, agg.History("home/temp"))
	assert.Equal(t, 5, agg.Count("home/temp"))
	assert.Equal(t, 6, agg.TotalCount())

	// Node stays in the index with its lifetime count.
	node := agg.Tree().Lookup("home/temp")
	require.NotNil(t, node)
	assert.Equal(t, 5, node.Count())

	// Recording after a clear starts a fresh history.
	agg.Record(msg("home/temp", "22.0"))
	require.Len(t, agg.History("home/temp"), 1)
	assert.Equal(t, 6, agg.Count("home/temp"))
}

func TestAggregator_HistorySnapshot(t *testing.T) {
	agg := NewAggregator(0)
	agg.Record(msg("home/temp", "21.5"))

	snapshot := agg.History("home/temp")
	agg.Clear("home/temp")
	agg.Record(msg("home/temp", "99.9"))

	require.Len(t, snapshot, 1)
	assert.Equal(t, "21.5", snapshot[0].Text)
}

func TestAggregator_ClearUnknownTopic(t *testing.T) {
	agg := NewAggregator(0)
	agg.Clear("never/seen")

	assert.Zero(t, agg.TotalCount())
	assert.Nil(t, agg.Tree().Lookup("never/seen"))
}

func TestAggregator_Topics(t *testing.T) {
	agg := NewAggregator(0)
	agg.Record(msg("a/b/c", "1"))
	agg.Record(msg("a", "2"))
	agg.Record(msg("b", "3"))

	// Prefix-only nodes ("a/b") are excluded; order follows the index.
	assert.Equal(t, []string{"a", "a/b/c", "b"}, agg.Topics())
}

func TestAggregator_EndToEnd(t *testing.T) {
	agg := NewAggregator(0)

	agg.Record(msg("home/temp", "21.5"))
	agg.Record(msg("home/temp", "21.6"))
	agg.Record(msg("home/humidity", "60"))

	h := agg.History("home/temp")
	require.Len(t, h, 2)
	assert.Equal(t, "21.5", h[0].Text)
	assert.Equal(t, "21.6", h[1].Text)

	roots := agg.Tree().Roots()
	require.Len(t, roots, 1)
	assert.Equal(t, "home", roots[0].Segment())

	children := roots[0].Children()
	require.Len(t, children, 2)
	assert.Equal(t, "temp", children[0].Segment())
	assert.Equal(t, 2, children[0].Count())
	assert.Equal(t, "humidity", children[1].Segment())
	assert.Equal(t, 1, children[1].Count())
}
