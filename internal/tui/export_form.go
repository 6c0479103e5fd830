package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/yeager/mqtt-inspector/internal/core/export"
	"github.com/yeager/mqtt-inspector/internal/styles"
)

// ExportForm wraps a huh.Form for exporting captured messages.
type ExportForm struct {
	form      *huh.Form
	path      string
	format    export.Format
	scope     string // topic to export, "" for all
	submitted bool
	cancelled bool
}

// ExportFormResult contains the form submission result.
type ExportFormResult struct {
	Path   string
	Format export.Format
	Topic  string // empty exports every topic
}

// NewExportForm creates an export form. When selectedTopic is non-empty, a
// scope select offers exporting just that topic.
func NewExportForm(selectedTopic string) *ExportForm {
	f := &ExportForm{
		path:   "export.csv",
		format: export.FormatCSV,
	}

	fields := []huh.Field{
		huh.NewInput().
			Title("File").
			Value(&f.path).
			Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return errors.New("file path is required")
				}
				return nil
			}),
		huh.NewSelect[export.Format]().
			Title("Format").
			Options(
				huh.NewOption("CSV", export.FormatCSV),
				huh.NewOption("JSON", export.FormatJSON),
			).
			Value(&f.format),
	}

	if selectedTopic != "" {
		f.scope = selectedTopic
		fields = append(fields, huh.NewSelect[string]().
			Title("Scope").
			Options(
				huh.NewOption("Selected: "+selectedTopic, selectedTopic),
				huh.NewOption("All topics", ""),
			).
			Value(&f.scope),
		)
	}

	f.form = huh.NewForm(huh.NewGroup(fields...)).WithTheme(styles.FormTheme())

	return f
}

// Form returns the underlying huh.Form for tea.Model integration.
func (f *ExportForm) Form() *huh.Form {
	return f.form
}

// Submitted returns true if the form was submitted.
func (f *ExportForm) Submitted() bool {
	return f.submitted
}

// Cancelled returns true if the form was cancelled.
func (f *ExportForm) Cancelled() bool {
	return f.cancelled
}

// SetSubmitted marks the form as submitted.
func (f *ExportForm) SetSubmitted() {
	f.submitted = true
}

// SetCancelled marks the form as cancelled.
func (f *ExportForm) SetCancelled() {
	f.cancelled = true
}

// Result returns the form result. Only valid if Submitted() is true.
func (f *ExportForm) Result() ExportFormResult {
	return ExportFormResult{
		Path:   strings.TrimSpace(f.path),
		Format: f.format,
		Topic:  f.scope,
	}
}

// View renders the form.
func (f *ExportForm) View() string {
	return f.form.View()
}
