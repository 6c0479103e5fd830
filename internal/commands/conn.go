package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/yeager/mqtt-inspector/internal/broker"
	"github.com/yeager/mqtt-inspector/internal/core/config"
	"github.com/yeager/mqtt-inspector/pkg/randid"
)

// connFlags holds the broker connection flags shared by pub and sub.
type connFlags struct {
	host     string
	port     int
	tls      bool
	username string
	password string
	clientID string
	profile  string
}

func (cf *connFlags) cliFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "host",
			Aliases:     []string{"H"},
			Usage:       "broker host (default: from config)",
			Destination: &cf.host,
		},
		&cli.IntFlag{
			Name:        "port",
			Aliases:     []string{"P"},
			Usage:       "broker port (default: from config)",
			Destination: &cf.port,
		},
		&cli.BoolFlag{
			Name:        "tls",
			Usage:       "connect over TLS",
			Destination: &cf.tls,
		},
		&cli.StringFlag{
			Name:        "username",
			Aliases:     []string{"u"},
			Usage:       "broker username",
			Destination: &cf.username,
		},
		&cli.StringFlag{
			Name:        "password",
			Usage:       "broker password",
			Destination: &cf.password,
		},
		&cli.StringFlag{
			Name:        "client-id",
			Usage:       "MQTT client id (default: random)",
			Destination: &cf.clientID,
		},
		&cli.StringFlag{
			Name:        "profile",
			Usage:       "use a saved connection profile by name",
			Destination: &cf.profile,
		},
	}
}

// resolve builds broker options from a saved profile or from the config
// overlaid with any connection flags the user set.
func (cf *connFlags) resolve(ctx context.Context, c *cli.Command, flags *Flags) (broker.Options, error) {
	cfg := flags.Config

	if cf.profile != "" {
		p, err := flags.Profiles.Get(ctx, cf.profile)
		if err != nil {
			return broker.Options{}, fmt.Errorf("load profile %q: %w", cf.profile, err)
		}

		opts := broker.Options{
			Host:      p.Host,
			Port:      p.Port,
			TLS:       p.TLS,
			ClientID:  p.ClientID,
			Username:  p.Username,
			Password:  p.Password,
			KeepAlive: cfg.Broker.KeepAlive,
		}
		if opts.ClientID == "" {
			opts.ClientID = randid.ClientID("mqtt-inspector")
		}
		return opts, nil
	}

	opts := broker.Options{
		Host:      cfg.Broker.Host,
		Port:      cfg.Broker.Port,
		TLS:       cfg.Broker.TLS,
		ClientID:  cfg.Broker.ClientID,
		Username:  cfg.Broker.Username,
		Password:  cfg.Broker.Password,
		KeepAlive: cfg.Broker.KeepAlive,
	}

	if cf.host != "" {
		opts.Host = cf.host
	}
	if c.IsSet("tls") {
		opts.TLS = cf.tls
		// Swap the default port when TLS changes it
		if !c.IsSet("port") {
			if opts.TLS && opts.Port == config.PortPlain {
				opts.Port = config.PortTLS
			} else if !opts.TLS && opts.Port == config.PortTLS {
				opts.Port = config.PortPlain
			}
		}
	}
	if c.IsSet("port") {
		opts.Port = cf.port
	}
	if cf.username != "" {
		opts.Username = cf.username
	}
	if cf.password != "" {
		opts.Password = cf.password
	}
	if cf.clientID != "" {
		opts.ClientID = cf.clientID
	}
	if opts.ClientID == "" {
		opts.ClientID = randid.ClientID("mqtt-inspector")
	}

	return opts, nil
}
