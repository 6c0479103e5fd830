package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/yeager/mqtt-inspector/internal/styles"
)

// PublishForm wraps a huh.Form for publishing a message.
type PublishForm struct {
	form      *huh.Form
	topic     string
	payload   string
	qos       byte
	retain    bool
	submitted bool
	cancelled bool
}

// PublishFormResult contains the form submission result.
type PublishFormResult struct {
	Topic   string
	Payload []byte
	QoS     byte
	Retain  bool
}

// NewPublishForm creates a publish form. The topic is pre-filled from the
// current tree selection when one exists.
func NewPublishForm(initialTopic string) *PublishForm {
	f := &PublishForm{
		topic: initialTopic,
	}

	f.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Topic").
				Value(&f.topic).
				Validate(func(s string) error {
					s = strings.TrimSpace(s)
					if s == "" {
						return errors.New("topic is required")
					}
					if strings.ContainsAny(s, "#+") {
						return errors.New("publish topics cannot contain wildcards")
					}
					return nil
				}),
			huh.NewText().
				Title("Payload").
				Value(&f.payload),
			huh.NewSelect[byte]().
				Title("QoS").
				Options(
					huh.NewOption("0 (at most once)", byte(0)),
					huh.NewOption("1 (at least once)", byte(1)),
					huh.NewOption("2 (exactly once)", byte(2)),
				).
				Value(&f.qos),
			huh.NewConfirm().
				Title("Retain").
				Value(&f.retain),
		),
	).WithTheme(styles.FormTheme())

	return f
}

// Form returns the underlying huh.Form for tea.Model integration.
func (f *PublishForm) Form() *huh.Form {
	return f.form
}

// Submitted returns true if the form was submitted.
func (f *PublishForm) Submitted() bool {
	return f.submitted
}

// Cancelled returns true if the form was cancelled.
func (f *PublishForm) Cancelled() bool {
	return f.cancelled
}

// SetSubmitted marks the form as submitted.
func (f *PublishForm) SetSubmitted() {
	f.submitted = true
}

// SetCancelled marks the form as cancelled.
func (f *PublishForm) SetCancelled() {
	f.cancelled = true
}

// Result returns the form result. Only valid if Submitted() is true.
func (f *PublishForm) Result() PublishFormResult {
	return PublishFormResult{
		Topic:   strings.TrimSpace(f.topic),
		Payload: []byte(f.payload),
		QoS:     f.qos,
		Retain:  f.retain,
	}
}

// View renders the form.
func (f *PublishForm) View() string {
	return f.form.View()
}
