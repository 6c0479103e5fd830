package commands

import (
	"context"
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/yeager/mqtt-inspector/internal/core/profile"
	"github.com/yeager/mqtt-inspector/internal/printer"
)

type ProfilesCmd struct {
	flags *Flags
}

// NewProfilesCmd creates a new profiles command.
func NewProfilesCmd(flags *Flags) *ProfilesCmd {
	return &ProfilesCmd{flags: flags}
}

// Register adds the profiles command to the application.
func (cmd *ProfilesCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "profiles",
		Usage: "Manage saved connection profiles",
		Description: `Profiles store broker connection settings (host, port, TLS, credentials)
so they can be reused from the connect form or the --profile flag.

Profiles are saved from the TUI connect form and stored in profiles.json
in the config directory.`,
		Commands: []*cli.Command{
			cmd.lsCmd(),
			cmd.rmCmd(),
		},
	})

	return app
}

func (cmd *ProfilesCmd) lsCmd() *cli.Command {
	return &cli.Command{
		Name:      "ls",
		Usage:     "List saved profiles",
		UsageText: "mqtt-inspector profiles ls",
		Action:    cmd.runLs,
	}
}

func (cmd *ProfilesCmd) rmCmd() *cli.Command {
	return &cli.Command{
		Name:      "rm",
		Usage:     "Delete a saved profile",
		UsageText: "mqtt-inspector profiles rm <name>",
		Action:    cmd.runRm,
	}
}

func (cmd *ProfilesCmd) runLs(ctx context.Context, c *cli.Command) error {
	console := printer.Ctx(ctx)

	profiles, err := cmd.flags.Profiles.List(ctx)
	if err != nil {
		return fmt.Errorf("list profiles: %w", err)
	}

	if len(profiles) == 0 {
		console.Infof("no saved profiles")
		return nil
	}

	w := tabwriter.NewWriter(c.Root().Writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tBROKER\tTLS\tUSERNAME")
	for _, p := range profiles {
		tls := "-"
		if p.TLS {
			tls = "yes"
		}
		username := p.Username
		if username == "" {
			username = "-"
		}
		fmt.Fprintf(w, "%s\t%s:%d\t%s\t%s\n", p.DisplayName(), p.Host, p.Port, tls, username)
	}

	return w.Flush()
}

func (cmd *ProfilesCmd) runRm(ctx context.Context, c *cli.Command) error {
	console := printer.Ctx(ctx)

	if c.NArg() < 1 {
		return errors.New("missing profile name")
	}
	name := c.Args().Get(0)

	if err := cmd.flags.Profiles.Delete(ctx, name); err != nil {
		if errors.Is(err, profile.ErrNotFound) {
			return fmt.Errorf("no profile named %q", name)
		}
		return fmt.Errorf("delete profile: %w", err)
	}

	console.Successf("deleted profile %s", name)
	return nil
}
