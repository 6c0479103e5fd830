package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/yeager/mqtt-inspector/internal/broker"
	"github.com/yeager/mqtt-inspector/internal/core/config"
	"github.com/yeager/mqtt-inspector/internal/core/profile"
	"github.com/yeager/mqtt-inspector/internal/styles"
	"github.com/yeager/mqtt-inspector/pkg/randid"
)

// newConnectionIdx marks the "enter details manually" option in the profile
// select.
const newConnectionIdx = -1

// ConnectForm wraps a huh.Form for opening a broker connection.
type ConnectForm struct {
	form      *huh.Form
	profiles  []profile.Profile
	keepAlive int

	profileIdx   int
	name         string
	host         string
	port         string
	tls          bool
	clientID     string
	username     string
	password     string
	subscription string
	saveProfile  bool

	submitted bool
	cancelled bool
}

// ConnectFormResult contains the form submission result.
type ConnectFormResult struct {
	Options      broker.Options
	Subscription string
	SaveProfile  bool
	Profile      profile.Profile
}

// NewConnectForm creates a connection form. Saved profiles are offered in a
// select; picking one uses its stored settings. Defaults come from the
// loaded configuration.
func NewConnectForm(cfg *config.Config, profiles []profile.Profile) *ConnectForm {
	f := &ConnectForm{
		profiles:     profiles,
		keepAlive:    cfg.Broker.KeepAlive,
		profileIdx:   newConnectionIdx,
		host:         cfg.Broker.Host,
		port:         strconv.Itoa(cfg.Broker.Port),
		tls:          cfg.Broker.TLS,
		clientID:     cfg.Broker.ClientID,
		username:     cfg.Broker.Username,
		password:     cfg.Broker.Password,
		subscription: cfg.Subscription,
	}

	options := []huh.Option[int]{huh.NewOption("(new connection)", newConnectionIdx)}
	for i, p := range profiles {
		options = append(options, huh.NewOption(p.DisplayName(), i))
	}

	groups := []*huh.Group{}
	if len(profiles) > 0 {
		groups = append(groups, huh.NewGroup(
			huh.NewSelect[int]().
				Title("Profile").
				Options(options...).
				Value(&f.profileIdx).
				Height(8),
		))
	}

	groups = append(groups, huh.NewGroup(
		huh.NewInput().
			Title("Name").
			Description("optional, used when saving the profile").
			Value(&f.name),
		huh.NewInput().
			Title("Host").
			Value(&f.host).
			Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return errors.New("host is required")
				}
				return nil
			}),
		huh.NewInput().
			Title("Port").
			Value(&f.port).
			Validate(validatePort),
		huh.NewConfirm().
			Title("TLS").
			Value(&f.tls),
		huh.NewInput().
			Title("Client ID").
			Description("blank for a random id").
			Value(&f.clientID),
		huh.NewInput().
			Title("Username").
			Value(&f.username),
		huh.NewInput().
			Title("Password").
			EchoMode(huh.EchoModePassword).
			Value(&f.password),
		huh.NewInput().
			Title("Subscription").
			Value(&f.subscription).
			Validate(config.ValidateFilter),
		huh.NewConfirm().
			Title("Save profile").
			Value(&f.saveProfile),
	).WithHideFunc(func() bool {
		return f.profileIdx != newConnectionIdx
	}))

	f.form = huh.NewForm(groups...).WithTheme(styles.FormTheme())

	return f
}

func validatePort(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return errors.New("port must be a number")
	}
	if n < 1 || n > 65535 {
		return fmt.Errorf("port must be between 1 and 65535")
	}
	return nil
}

// Form returns the underlying huh.Form for tea.Model integration.
func (f *ConnectForm) Form() *huh.Form {
	return f.form
}

// Submitted returns true if the form was submitted.
func (f *ConnectForm) Submitted() bool {
	return f.submitted
}

// Cancelled returns true if the form was cancelled.
func (f *ConnectForm) Cancelled() bool {
	return f.cancelled
}

// SetSubmitted marks the form as submitted.
func (f *ConnectForm) SetSubmitted() {
	f.submitted = true
}

// SetCancelled marks the form as cancelled.
func (f *ConnectForm) SetCancelled() {
	f.cancelled = true
}

// Result returns the form result. Only valid if Submitted() is true.
func (f *ConnectForm) Result() ConnectFormResult {
	if f.profileIdx != newConnectionIdx && f.profileIdx < len(f.profiles) {
		p := f.profiles[f.profileIdx]
		return ConnectFormResult{
			Options:      optionsFromProfile(p, f.keepAlive),
			Subscription: f.subscription,
		}
	}

	port, _ := strconv.Atoi(strings.TrimSpace(f.port))
	// Toggling TLS without touching the port follows the standard ports.
	if f.tls && port == config.PortPlain {
		port = config.PortTLS
	} else if !f.tls && port == config.PortTLS {
		port = config.PortPlain
	}

	clientID := strings.TrimSpace(f.clientID)
	if clientID == "" {
		clientID = randid.ClientID("mqtt-inspector")
	}

	p := profile.Profile{
		Name:     strings.TrimSpace(f.name),
		Host:     strings.TrimSpace(f.host),
		Port:     port,
		TLS:      f.tls,
		ClientID: clientID,
		Username: f.username,
		Password: f.password,
	}

	return ConnectFormResult{
		Options:      optionsFromProfile(p, f.keepAlive),
		Subscription: f.subscription,
		SaveProfile:  f.saveProfile,
		Profile:      p,
	}
}

// optionsFromProfile converts a saved profile into connection options.
func optionsFromProfile(p profile.Profile, keepAlive int) broker.Options {
	clientID := p.ClientID
	if clientID == "" {
		clientID = randid.ClientID("mqtt-inspector")
	}
	return broker.Options{
		Host:      p.Host,
		Port:      p.Port,
		TLS:       p.TLS,
		ClientID:  clientID,
		Username:  p.Username,
		Password:  p.Password,
		KeepAlive: keepAlive,
	}
}

// View renders the form.
func (f *ConnectForm) View() string {
	return f.form.View()
}
