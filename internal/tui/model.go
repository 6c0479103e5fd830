package tui

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/yeager/mqtt-inspector/internal/broker"
	"github.com/yeager/mqtt-inspector/internal/core/config"
	"github.com/yeager/mqtt-inspector/internal/core/export"
	"github.com/yeager/mqtt-inspector/internal/core/inspect"
	"github.com/yeager/mqtt-inspector/internal/core/profile"
	"github.com/yeager/mqtt-inspector/internal/core/render"
)

// UIState represents the current state of the TUI.
type UIState int

const (
	stateNormal UIState = iota
	stateConnectForm
	stateConnecting
	statePublishForm
	stateSubscriptionForm
	stateExportForm
	stateConfirmingClear
	statePreviewing
)

// Key constants for event handling.
const (
	keyEnter = "enter"
	keyCtrlC = "ctrl+c"
)

// brokerEventMsg carries one event off the broker's stream.
type brokerEventMsg struct {
	event broker.Event
}

// connectResultMsg is sent when a connection attempt finishes.
type connectResultMsg struct {
	client       *broker.Client
	subscription string
	err          error
}

// publishResultMsg is sent when a publish attempt finishes.
type publishResultMsg struct {
	topic string
	err   error
}

// subscribeResultMsg is sent when a subscription change finishes.
type subscribeResultMsg struct {
	filter string
	err    error
}

// exportResultMsg is sent when an export finishes.
type exportResultMsg struct {
	path  string
	count int
	err   error
}

// Model is the main Bubble Tea model for the TUI.
type Model struct {
	cfg      *config.Config
	profiles profile.Store
	logger   zerolog.Logger

	agg    *inspect.Aggregator
	client *broker.Client

	list        list.Model
	historyView *HistoryView
	activeView  ViewType

	state    UIState
	width    int
	height   int
	quitting bool

	spinner        spinner.Model
	loadingMessage string

	mode         render.Mode
	subscription string

	status   string
	statusAt time.Time

	connectForm  *ConnectForm
	publishForm  *PublishForm
	exportForm   *ExportForm
	subForm      *SubscriptionForm
	subOldFilter string
	previewModal PayloadPreviewModal
	modal        Modal
	clearTopic   string
}

// New creates a new TUI model.
func New(cfg *config.Config, profiles profile.Store, logger zerolog.Logger) Model {
	delegate := NewTreeDelegate()

	l := list.New([]list.Item{}, delegate, 0, 0)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowTitle(false) // Title shown in tab bar instead
	l.Styles.TitleBar = lipgloss.NewStyle()
	l.FilterInput.Prompt = "Filter: "
	l.FilterInput.PromptStyle = lipgloss.NewStyle().PaddingLeft(1).Foreground(colorBlue).Bold(true)
	l.FilterInput.Cursor.Style = lipgloss.NewStyle().Foreground(colorBlue)

	// Style help to match history view (consistent gray, bullet separators)
	grayHelp := lipgloss.NewStyle().Foreground(colorGray)
	l.Help.Styles.ShortKey = grayHelp
	l.Help.Styles.ShortDesc = grayHelp
	l.Help.Styles.ShortSeparator = grayHelp
	l.Help.Styles.FullKey = grayHelp
	l.Help.Styles.FullDesc = grayHelp
	l.Help.Styles.FullSeparator = grayHelp
	l.Help.ShortSeparator = " • "
	l.Styles.HelpStyle = lipgloss.NewStyle().PaddingLeft(1)

	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{
			key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "connect")),
			key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "publish")),
			key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export")),
			key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "clear topic")),
			key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "payload mode")),
			key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch view")),
		}
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	return Model{
		cfg:          cfg,
		profiles:     profiles,
		logger:       logger.With().Str("component", "tui").Logger(),
		agg:          inspect.NewAggregator(cfg.History.Capacity),
		list:         l,
		historyView:  NewHistoryView(),
		activeView:   ViewTopics,
		state:        stateNormal,
		spinner:      s,
		mode:         render.ParseMode(cfg.Payload.Mode),
		subscription: cfg.Subscription,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.openConnectForm())
}

// openConnectForm loads profiles and opens the connection form.
func (m Model) openConnectForm() tea.Cmd {
	return func() tea.Msg {
		profiles, err := m.profiles.List(context.Background())
		if err != nil {
			m.logger.Warn().Err(err).Msg("load profiles")
		}
		return profilesLoadedMsg{profiles: profiles}
	}
}

// profilesLoadedMsg is sent when saved profiles have been read.
type profilesLoadedMsg struct {
	profiles []profile.Profile
}

// waitForEvent returns a command that delivers the next broker event.
func waitForEvent(events <-chan broker.Event) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-events
		if !ok {
			return nil
		}
		return brokerEventMsg{event: event}
	}
}

// connect returns a command that dials the broker and subscribes.
func (m Model) connect(opts broker.Options, subscription string, save bool, p profile.Profile) tea.Cmd {
	logger := m.logger
	store := m.profiles
	return func() tea.Msg {
		client := broker.New(opts, logger)
		if err := client.Connect(); err != nil {
			return connectResultMsg{err: err}
		}
		if err := client.Subscribe(subscription, 0); err != nil {
			client.Disconnect()
			return connectResultMsg{err: err}
		}

		if save {
			if err := store.Save(context.Background(), p); err != nil {
				logger.Warn().Err(err).Msg("save profile")
			}
		}

		return connectResultMsg{client: client, subscription: subscription}
	}
}

// publish returns a command that publishes one message.
func (m Model) publish(r PublishFormResult) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		if client == nil || !client.Connected() {
			return publishResultMsg{topic: r.Topic, err: fmt.Errorf("not connected")}
		}
		return publishResultMsg{topic: r.Topic, err: client.Publish(r.Topic, r.QoS, r.Retain, r.Payload)}
	}
}

// changeSubscription swaps the active filter: the old one is unsubscribed
// and the new one replaces it wholesale.
func (m Model) changeSubscription(oldFilter, newFilter string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		if client == nil || !client.Connected() {
			return subscribeResultMsg{filter: newFilter, err: fmt.Errorf("not connected")}
		}
		if err := client.Unsubscribe(oldFilter); err != nil {
			return subscribeResultMsg{filter: newFilter, err: err}
		}
		if err := client.Subscribe(newFilter, 0); err != nil {
			return subscribeResultMsg{filter: newFilter, err: err}
		}
		return subscribeResultMsg{filter: newFilter}
	}
}

// exportMessages returns a command that writes captured traffic to a file.
func (m Model) exportMessages(r ExportFormResult) tea.Cmd {
	messages := export.Collect(m.agg, r.Topic)
	return func() tea.Msg {
		f, err := os.Create(r.Path)
		if err != nil {
			return exportResultMsg{path: r.Path, err: err}
		}
		defer f.Close() //nolint:errcheck

		if err := export.Write(f, r.Format, messages); err != nil {
			return exportResultMsg{path: r.Path, err: err}
		}
		return exportResultMsg{path: r.Path, count: len(messages)}
	}
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		// Account for: banner (5 lines) + tab bar (1) + status bar (1)
		contentHeight := msg.Height - 7
		if contentHeight < 1 {
			contentHeight = 1
		}

		m.list.SetSize(msg.Width, contentHeight)
		// historyView gets -1 because we prepend a blank line for consistent spacing
		m.historyView.SetSize(msg.Width, contentHeight-1)
		return m, nil

	case profilesLoadedMsg:
		m.connectForm = NewConnectForm(m.cfg, msg.profiles)
		m.state = stateConnectForm
		return m, m.connectForm.Form().Init()

	case brokerEventMsg:
		return m.handleBrokerEvent(msg.event)

	case connectResultMsg:
		if msg.err != nil {
			m.logger.Error().Err(msg.err).Msg("connect failed")
			m.state = stateNormal
			m.setStatus("connect failed: " + msg.err.Error())
			return m, nil
		}
		m.client = msg.client
		m.subscription = msg.subscription
		m.state = stateNormal
		m.setStatus(fmt.Sprintf("connected, subscribed to %s", msg.subscription))
		return m, waitForEvent(m.client.Events())

	case publishResultMsg:
		if msg.err != nil {
			m.setStatus("publish failed: " + msg.err.Error())
		} else {
			m.setStatus("published to " + msg.topic)
		}
		return m, nil

	case subscribeResultMsg:
		if msg.err != nil {
			m.setStatus("subscribe failed: " + msg.err.Error())
		} else {
			m.subscription = msg.filter
			m.setStatus("subscribed to " + msg.filter)
		}
		return m, nil

	case exportResultMsg:
		if msg.err != nil {
			m.setStatus("export failed: " + msg.err.Error())
		} else {
			m.setStatus(fmt.Sprintf("exported %d messages to %s", msg.count, msg.path))
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	// Route all other messages to an active form
	if cmd, handled := m.routeToForm(msg); handled {
		return m, cmd
	}

	// Update the focused list for any other messages
	var cmd tea.Cmd
	if m.activeView == ViewTopics {
		m.list, cmd = m.list.Update(msg)
	}
	return m, cmd
}

// handleBrokerEvent folds one broker event into the aggregate and refreshes
// the affected views.
func (m Model) handleBrokerEvent(event broker.Event) (tea.Model, tea.Cmd) {
	switch event.Kind {
	case broker.EventDisconnected:
		m.client = nil
		reason := "connection lost"
		if event.Err != nil {
			reason = "connection lost: " + event.Err.Error()
		}
		m.setStatus(reason)
		return m, nil

	case broker.EventMessage:
		m.agg.Record(event.Message)
		m.refreshTopics()
		if m.historyView.Topic() == event.Message.Topic {
			m.historyView.SetMessages(event.Message.Topic, m.agg.History(event.Message.Topic))
		}
	}

	if m.client == nil {
		return m, nil
	}
	return m, waitForEvent(m.client.Events())
}

// refreshTopics rebuilds the tree list from the aggregator's index while
// preserving the current selection.
func (m *Model) refreshTopics() {
	selected := m.selectedTopic()

	items := BuildTreeItems(m.agg.Tree())
	m.list.SetItems(items)

	if selected != "" {
		for i, item := range items {
			if ti, ok := item.(TreeItem); ok && ti.Topic == selected {
				m.list.Select(i)
				break
			}
		}
	}
}

// selectedTopic returns the topic of the selected tree node, or "".
func (m Model) selectedTopic() string {
	item := m.list.SelectedItem()
	if item == nil {
		return ""
	}
	if ti, ok := item.(TreeItem); ok {
		return ti.Topic
	}
	return ""
}

// selectedLeafTopic returns the selected topic only when it has received
// messages directly.
func (m Model) selectedLeafTopic() string {
	item := m.list.SelectedItem()
	if item == nil {
		return ""
	}
	if ti, ok := item.(TreeItem); ok && ti.IsLeaf {
		return ti.Topic
	}
	return ""
}

// setStatus records a transient status line message.
func (m *Model) setStatus(text string) {
	m.status = text
	m.statusAt = time.Now()
}

// routeToForm forwards a message to whichever form is active.
func (m *Model) routeToForm(msg tea.Msg) (tea.Cmd, bool) {
	switch m.state {
	case stateConnectForm:
		if m.connectForm != nil {
			return m.updateConnectForm(msg), true
		}
	case statePublishForm:
		if m.publishForm != nil {
			return m.updatePublishForm(msg), true
		}
	case stateExportForm:
		if m.exportForm != nil {
			return m.updateExportForm(msg), true
		}
	case stateSubscriptionForm:
		if m.subForm != nil {
			return m.updateSubscriptionForm(msg), true
		}
	}
	return nil, false
}

// updateSubscriptionForm routes a message to the subscription form.
func (m *Model) updateSubscriptionForm(msg tea.Msg) tea.Cmd {
	form, cmd := m.subForm.Form().Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.subForm.form = f

		if f.State == huh.StateCompleted {
			m.subForm.SetSubmitted()
			newFilter := m.subForm.Result()
			m.subForm = nil
			m.state = stateNormal
			if newFilter == m.subOldFilter {
				return nil
			}
			return m.changeSubscription(m.subOldFilter, newFilter)
		}
		if f.State == huh.StateAborted {
			m.subForm = nil
			m.state = stateNormal
		}
	}
	return cmd
}

// updateConnectForm routes a message to the connect form.
func (m *Model) updateConnectForm(msg tea.Msg) tea.Cmd {
	form, cmd := m.connectForm.Form().Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.connectForm.form = f

		if f.State == huh.StateCompleted {
			m.connectForm.SetSubmitted()
			result := m.connectForm.Result()
			m.connectForm = nil
			m.state = stateConnecting
			m.loadingMessage = "Connecting to " + result.Options.URI() + "..."
			return tea.Batch(
				m.connect(result.Options, result.Subscription, result.SaveProfile, result.Profile),
				m.spinner.Tick,
			)
		}
		if f.State == huh.StateAborted {
			m.connectForm = nil
			m.state = stateNormal
		}
	}
	return cmd
}

// updatePublishForm routes a message to the publish form.
func (m *Model) updatePublishForm(msg tea.Msg) tea.Cmd {
	form, cmd := m.publishForm.Form().Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.publishForm.form = f

		if f.State == huh.StateCompleted {
			m.publishForm.SetSubmitted()
			result := m.publishForm.Result()
			m.publishForm = nil
			m.state = stateNormal
			return m.publish(result)
		}
		if f.State == huh.StateAborted {
			m.publishForm = nil
			m.state = stateNormal
		}
	}
	return cmd
}

// updateExportForm routes a message to the export form.
func (m *Model) updateExportForm(msg tea.Msg) tea.Cmd {
	form, cmd := m.exportForm.Form().Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.exportForm.form = f

		if f.State == huh.StateCompleted {
			m.exportForm.SetSubmitted()
			result := m.exportForm.Result()
			m.exportForm = nil
			m.state = stateNormal
			return m.exportMessages(result)
		}
		if f.State == huh.StateAborted {
			m.exportForm = nil
			m.state = stateNormal
		}
	}
	return cmd
}

// handleKey processes key presses.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keyStr := msg.String()

	// Handle modal states first
	switch m.state {
	case stateConnectForm, statePublishForm, stateExportForm, stateSubscriptionForm:
		return m.handleFormKey(msg, keyStr)
	case statePreviewing:
		return m.handlePreviewModalKey(msg, keyStr)
	case stateConfirmingClear:
		return m.handleConfirmModalKey(keyStr)
	case stateConnecting:
		if keyStr == keyCtrlC {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	// When filtering in either view, pass most keys except quit
	if m.list.SettingFilter() || m.historyView.IsFiltering() {
		return m.handleFilteringKey(msg, keyStr)
	}

	return m.handleNormalKey(msg, keyStr)
}

// handleFormKey handles keys while a form is shown.
func (m Model) handleFormKey(msg tea.KeyMsg, keyStr string) (tea.Model, tea.Cmd) {
	if keyStr == keyCtrlC {
		m.quitting = true
		return m, m.shutdown()
	}

	if keyStr == "esc" {
		switch m.state {
		case stateConnectForm:
			if m.connectForm != nil {
				m.connectForm.SetCancelled()
			}
			m.connectForm = nil
		case statePublishForm:
			if m.publishForm != nil {
				m.publishForm.SetCancelled()
			}
			m.publishForm = nil
		case stateExportForm:
			if m.exportForm != nil {
				m.exportForm.SetCancelled()
			}
			m.exportForm = nil
		case stateSubscriptionForm:
			if m.subForm != nil {
				m.subForm.SetCancelled()
			}
			m.subForm = nil
		}
		m.state = stateNormal
		return m, nil
	}

	cmd, _ := m.routeToForm(msg)
	return m, cmd
}

// handlePreviewModalKey handles keys when the payload preview is shown.
func (m Model) handlePreviewModalKey(msg tea.KeyMsg, keyStr string) (tea.Model, tea.Cmd) {
	switch keyStr {
	case keyCtrlC:
		m.quitting = true
		return m, m.shutdown()
	case "esc", keyEnter, "q":
		m.state = stateNormal
		return m, nil
	case "m":
		m.previewModal.CycleMode()
		m.mode = m.previewModal.Mode()
		return m, nil
	case "up", "k":
		m.previewModal.ScrollUp()
		return m, nil
	case "down", "j":
		m.previewModal.ScrollDown()
		return m, nil
	default:
		// Pass other messages to viewport for mouse wheel etc
		m.previewModal.UpdateViewport(msg)
		return m, nil
	}
}

// handleConfirmModalKey handles keys when the clear confirmation is shown.
func (m Model) handleConfirmModalKey(keyStr string) (tea.Model, tea.Cmd) {
	switch keyStr {
	case keyEnter:
		m.state = stateNormal
		if m.modal.ConfirmSelected() && m.clearTopic != "" {
			m.agg.Clear(m.clearTopic)
			m.refreshTopics()
			if m.historyView.Topic() == m.clearTopic {
				m.historyView.SetMessages(m.clearTopic, nil)
			}
			m.setStatus("cleared history for " + m.clearTopic)
		}
		m.clearTopic = ""
		return m, nil
	case "esc":
		m.state = stateNormal
		m.clearTopic = ""
		return m, nil
	case "left", "right", "h", "l", "tab":
		m.modal.ToggleSelection()
		return m, nil
	}
	return m, nil
}

// handleFilteringKey handles keys when filter input is active.
func (m Model) handleFilteringKey(msg tea.KeyMsg, keyStr string) (tea.Model, tea.Cmd) {
	if keyStr == keyCtrlC {
		m.quitting = true
		return m, m.shutdown()
	}

	// Handle history view filtering
	if m.historyView.IsFiltering() {
		switch keyStr {
		case "esc":
			m.historyView.CancelFilter()
		case keyEnter:
			m.historyView.ConfirmFilter()
		case "backspace":
			m.historyView.DeleteFilterRune()
		default:
			for _, r := range msg.Runes {
				m.historyView.AddFilterRune(r)
			}
		}
		return m, nil
	}

	// Handle topic list filtering
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// handleNormalKey handles keys in normal state.
func (m Model) handleNormalKey(msg tea.KeyMsg, keyStr string) (tea.Model, tea.Cmd) {
	switch keyStr {
	case "q", keyCtrlC:
		m.quitting = true
		return m, m.shutdown()

	case "tab":
		if m.activeView == ViewTopics {
			if topic := m.selectedLeafTopic(); topic != "" {
				m.historyView.SetMessages(topic, m.agg.History(topic))
			}
			m.activeView = ViewHistory
		} else {
			m.activeView = ViewTopics
		}
		return m, nil

	case "c":
		if m.client != nil && m.client.Connected() {
			m.client.Disconnect()
			m.client = nil
			m.setStatus("disconnected")
			return m, nil
		}
		return m, m.openConnectForm()

	case "s":
		if m.client == nil || !m.client.Connected() {
			m.setStatus("not connected")
			return m, nil
		}
		return m.openSubscriptionPrompt()

	case "p":
		if m.client == nil || !m.client.Connected() {
			m.setStatus("not connected")
			return m, nil
		}
		m.publishForm = NewPublishForm(m.selectedLeafTopic())
		m.state = statePublishForm
		return m, m.publishForm.Form().Init()

	case "e":
		if m.agg.TotalCount() == 0 {
			m.setStatus("nothing to export")
			return m, nil
		}
		m.exportForm = NewExportForm(m.selectedLeafTopic())
		m.state = stateExportForm
		return m, m.exportForm.Form().Init()

	case "m":
		m.mode = m.mode.Cycle()
		m.setStatus("payload mode: " + m.mode.String())
		return m, nil
	}

	if m.activeView == ViewTopics {
		return m.handleTopicsKey(msg, keyStr)
	}
	return m.handleHistoryKey(msg, keyStr)
}

// handleTopicsKey handles keys when the topic tree is focused.
func (m Model) handleTopicsKey(msg tea.KeyMsg, keyStr string) (tea.Model, tea.Cmd) {
	switch keyStr {
	case keyEnter:
		if topic := m.selectedLeafTopic(); topic != "" {
			m.historyView.SetMessages(topic, m.agg.History(topic))
			m.activeView = ViewHistory
		}
		return m, nil

	case "d":
		if topic := m.selectedLeafTopic(); topic != "" {
			m.clearTopic = topic
			m.state = stateConfirmingClear
			m.modal = NewModal("Clear History", fmt.Sprintf("Clear the retained history for %s?", topic))
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// handleHistoryKey handles keys when the history view is focused.
func (m Model) handleHistoryKey(_ tea.KeyMsg, keyStr string) (tea.Model, tea.Cmd) {
	switch keyStr {
	case keyEnter:
		if selected := m.historyView.SelectedMessage(); selected != nil {
			m.state = statePreviewing
			m.previewModal = NewPayloadPreviewModal(*selected, m.mode, m.width, m.height)
		}
	case "up", "k":
		m.historyView.MoveUp()
	case "down", "j":
		m.historyView.MoveDown()
	case "/":
		m.historyView.StartFilter()
	case "d":
		if topic := m.historyView.Topic(); topic != "" {
			m.clearTopic = topic
			m.state = stateConfirmingClear
			m.modal = NewModal("Clear History", fmt.Sprintf("Clear the retained history for %s?", topic))
		}
	}
	return m, nil
}

// openSubscriptionPrompt shows a one-field form for replacing the filter.
func (m Model) openSubscriptionPrompt() (tea.Model, tea.Cmd) {
	m.subForm = NewSubscriptionForm(m.subscription)
	m.subOldFilter = m.subscription
	m.state = stateSubscriptionForm
	return m, m.subForm.Form().Init()
}

// shutdown disconnects before quitting.
func (m Model) shutdown() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		if client != nil {
			client.Disconnect()
		}
		return tea.Quit()
	}
}

// View renders the TUI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	bannerView := bannerStyle.Render(banner)
	contentView := m.renderTabView()
	statusBar := m.renderStatusBar()
	mainView := lipgloss.JoinVertical(lipgloss.Left, bannerView, contentView, statusBar)

	w, h := m.width, m.height
	if w == 0 {
		w = 80
	}
	if h == 0 {
		h = 24
	}

	switch m.state {
	case stateConnectForm:
		if m.connectForm != nil {
			return m.renderFormOverlay("Connect", m.connectForm.View(), w, h)
		}
	case statePublishForm:
		if m.publishForm != nil {
			return m.renderFormOverlay("Publish", m.publishForm.View(), w, h)
		}
	case stateExportForm:
		if m.exportForm != nil {
			return m.renderFormOverlay("Export", m.exportForm.View(), w, h)
		}
	case stateSubscriptionForm:
		if m.subForm != nil {
			return m.renderFormOverlay("Subscription", m.subForm.View(), w, h)
		}
	case stateConnecting:
		loadingView := lipgloss.JoinHorizontal(lipgloss.Left, m.spinner.View(), " "+m.loadingMessage)
		return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, modalStyle.Render(loadingView))
	case statePreviewing:
		return m.previewModal.Overlay(w, h)
	case stateConfirmingClear:
		return m.modal.Overlay(w, h)
	}

	return mainView
}

// renderFormOverlay renders a form centered in a modal frame.
func (m Model) renderFormOverlay(title, body string, w, h int) string {
	content := lipgloss.JoinVertical(
		lipgloss.Left,
		modalTitleStyle.Render(title),
		"",
		body,
	)
	return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, modalStyle.Render(content))
}

// renderTabView renders the tab-based view layout.
func (m Model) renderTabView() string {
	var topicsTab, historyTab string
	if m.activeView == ViewTopics {
		topicsTab = viewSelectedStyle.Render("Topics")
		historyTab = viewNormalStyle.Render("History")
	} else {
		topicsTab = viewNormalStyle.Render("Topics")
		historyTab = viewSelectedStyle.Render("History")
	}

	historyLabel := historyTab
	if topic := m.historyView.Topic(); topic != "" && m.activeView == ViewHistory {
		historyLabel = historyTab + viewNormalStyle.Render(" ("+topic+")")
	}

	tabBarContent := lipgloss.JoinHorizontal(lipgloss.Left, topicsTab, " | ", historyLabel)
	tabBar := lipgloss.NewStyle().PaddingLeft(1).Render(tabBarContent)

	// Calculate content height: total - banner (5) - tab bar (1) - status bar (1)
	contentHeight := m.height - 7
	if contentHeight < 1 {
		contentHeight = 1
	}

	var content string
	if m.activeView == ViewTopics {
		content = m.list.View()
	} else {
		// Add blank line to match list's internal titleView padding
		content = "\n" + m.historyView.View()
	}

	content = lipgloss.NewStyle().Height(contentHeight).Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content)
}

// renderStatusBar renders the bottom status line: connection state,
// subscription, totals, payload mode, and the last transient notice.
func (m Model) renderStatusBar() string {
	var conn string
	if m.client != nil && m.client.Connected() {
		conn = connectedStyle.Render("● connected")
	} else {
		conn = disconnectedStyle.Render("○ disconnected")
	}

	parts := fmt.Sprintf("%s  sub: %s  msgs: %d  mode: %s",
		conn, m.subscription, m.agg.TotalCount(), m.mode)

	if m.status != "" {
		parts += statusStyle.Render(fmt.Sprintf("  [%s] %s", m.statusAt.Format("15:04:05"), m.status))
	}

	return statusStyle.Render(parts)
}
