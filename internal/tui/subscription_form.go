package tui

import (
	"github.com/charmbracelet/huh"

	"github.com/yeager/mqtt-inspector/internal/core/config"
	"github.com/yeager/mqtt-inspector/internal/styles"
)

// SubscriptionForm wraps a huh.Form for replacing the active filter.
type SubscriptionForm struct {
	form      *huh.Form
	filter    string
	submitted bool
	cancelled bool
}

// NewSubscriptionForm creates a subscription form pre-filled with the
// current filter.
func NewSubscriptionForm(current string) *SubscriptionForm {
	f := &SubscriptionForm{
		filter: current,
	}

	f.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Subscription").
				Description("replaces the current filter").
				Value(&f.filter).
				Validate(config.ValidateFilter),
		),
	).WithTheme(styles.FormTheme())

	return f
}

// Form returns the underlying huh.Form for tea.Model integration.
func (f *SubscriptionForm) Form() *huh.Form {
	return f.form
}

// Submitted returns true if the form was submitted.
func (f *SubscriptionForm) Submitted() bool {
	return f.submitted
}

// Cancelled returns true if the form was cancelled.
func (f *SubscriptionForm) Cancelled() bool {
	return f.cancelled
}

// SetSubmitted marks the form as submitted.
func (f *SubscriptionForm) SetSubmitted() {
	f.submitted = true
}

// SetCancelled marks the form as cancelled.
func (f *SubscriptionForm) SetCancelled() {
	f.cancelled = true
}

// Result returns the entered filter. Only valid if Submitted() is true.
func (f *SubscriptionForm) Result() string {
	return f.filter
}

// View renders the form.
func (f *SubscriptionForm) View() string {
	return f.form.View()
}
