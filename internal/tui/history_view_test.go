package tui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeager/mqtt-inspector/internal/core/inspect"
)

func historyMessages(texts ...string) []inspect.Message {
	at := time.Now()
	msgs := make([]inspect.Message, 0, len(texts))
	for i, txt := range texts {
		msgs = append(msgs, inspect.Message{
			Topic:      "home/temp",
			Payload:    []byte(txt),
			Text:       txt,
			ReceivedAt: at.Add(time.Duration(i) * time.Second),
		})
	}
	return msgs
}

func TestHistoryView_NewestFirst(t *testing.T) {
	v := NewHistoryView()
	v.SetSize(80, 20)
	v.SetMessages("home/temp", historyMessages("first", "second", "third"))

	sel := v.SelectedMessage()
	require.NotNil(t, sel)
	assert.Equal(t, "third", sel.Text)

	v.MoveDown()
	assert.Equal(t, "second", v.SelectedMessage().Text)
	v.MoveDown()
	assert.Equal(t, "first", v.SelectedMessage().Text)

	// Cursor stops at the oldest message.
	v.MoveDown()
	assert.Equal(t, "first", v.SelectedMessage().Text)
}

func TestHistoryView_Filter(t *testing.T) {
	v := NewHistoryView()
	v.SetSize(80, 20)
	v.SetMessages("home/temp", historyMessages("alpha", "beta", "alphabet"))

	v.StartFilter()
	require.True(t, v.IsFiltering())
	for _, r := range "alpha" {
		v.AddFilterRune(r)
	}
	v.ConfirmFilter()

	require.NotNil(t, v.SelectedMessage())
	assert.Equal(t, "alphabet", v.SelectedMessage().Text)
	v.MoveDown()
	assert.Equal(t, "alpha", v.SelectedMessage().Text)
	v.MoveDown()
	assert.Equal(t, "alpha", v.SelectedMessage().Text)

	v.CancelFilter()
	assert.False(t, v.IsFiltering())
	assert.Len(t, v.filteredAt, 3)
}

func TestHistoryView_EmptySelection(t *testing.T) {
	v := NewHistoryView()
	v.SetSize(80, 20)
	assert.Nil(t, v.SelectedMessage())

	v.SetMessages("home/temp", nil)
	assert.Nil(t, v.SelectedMessage())
}

func TestHistoryView_ViewShowsPlaceholders(t *testing.T) {
	v := NewHistoryView()
	v.SetSize(80, 10)

	assert.Contains(t, v.View(), "No topic selected")

	v.SetMessages("home/temp", nil)
	assert.Contains(t, v.View(), "No messages")

	v.SetMessages("home/temp", historyMessages("hello"))
	v.StartFilter()
	v.AddFilterRune('z')
	v.ConfirmFilter()
	assert.Contains(t, v.View(), "No matching messages")
}
