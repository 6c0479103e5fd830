package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeager/mqtt-inspector/internal/broker"
	"github.com/yeager/mqtt-inspector/internal/core/config"
	"github.com/yeager/mqtt-inspector/internal/core/inspect"
	"github.com/yeager/mqtt-inspector/internal/store/jsonfile"
)

func testModel(t *testing.T) Model {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.ConfigDir = t.TempDir()
	store := jsonfile.New(cfg.ProfilesFile())
	return New(&cfg, store, zerolog.Nop())
}

func deliver(m Model, msg inspect.Message) Model {
	updated, _ := m.Update(brokerEventMsg{event: broker.Event{
		Kind:    broker.EventMessage,
		Message: msg,
	}})
	return updated.(Model)
}

func TestModel_RecordsBrokerEvents(t *testing.T) {
	m := testModel(t)
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	m = deliver(m, inspect.Message{Topic: "home/temp", Text: "21.5", ReceivedAt: time.Now()})
	m = deliver(m, inspect.Message{Topic: "home/temp", Text: "21.6", ReceivedAt: time.Now()})
	m = deliver(m, inspect.Message{Topic: "home/humidity", Text: "60", ReceivedAt: time.Now()})

	assert.Equal(t, 3, m.agg.TotalCount())
	require.Len(t, m.list.Items(), 3) // home, home/temp, home/humidity
	assert.Equal(t, 2, m.agg.Count("home/temp"))
}

func TestModel_DisconnectEvent(t *testing.T) {
	m := testModel(t)

	updated, cmd := m.Update(brokerEventMsg{event: broker.Event{Kind: broker.EventDisconnected}})
	m = updated.(Model)

	assert.Nil(t, cmd)
	assert.Contains(t, m.status, "connection lost")
}

func TestModel_ClearConfirm(t *testing.T) {
	m := testModel(t)
	m = deliver(m, inspect.Message{Topic: "home/temp", Text: "21.5", ReceivedAt: time.Now()})

	m.clearTopic = "home/temp"
	m.state = stateConfirmingClear
	m.modal = NewModal("Clear History", "")

	updated, _ := m.handleConfirmModalKey(keyEnter)
	m = updated.(Model)

	assert.Equal(t, stateNormal, m.state)
	assert.Empty(t, m.agg.History("home/temp"))
	assert.Equal(t, 1, m.agg.Count("home/temp"))
}
