package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/yeager/mqtt-inspector/internal/broker"
	"github.com/yeager/mqtt-inspector/internal/printer"
)

type PubCmd struct {
	flags *Flags
	conn  connFlags

	topic   string
	file    string
	qos     int
	retain  bool
	payload []byte
}

// NewPubCmd creates a new pub command.
func NewPubCmd(flags *Flags) *PubCmd {
	return &PubCmd{flags: flags}
}

// Register adds the pub command to the application.
func (cmd *PubCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "pub",
		Usage:     "Publish a single message to the broker",
		UsageText: "mqtt-inspector pub --topic <topic> [payload]",
		Description: `Connects to the broker, publishes one message, and disconnects.

The payload can be provided as:
- A command-line argument
- From a file with -f/--file
- From stdin if no argument is provided

Connection settings come from the config file, a saved profile (--profile),
or the connection flags.

Examples:
  mqtt-inspector pub --topic home/lights "on"
  echo '{"temp": 21.5}' | mqtt-inspector pub --topic home/temp
  mqtt-inspector pub --profile homelab --topic status --retain "online"`,
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:        "topic",
				Aliases:     []string{"t"},
				Usage:       "topic to publish to",
				Required:    true,
				Destination: &cmd.topic,
			},
			&cli.StringFlag{
				Name:        "file",
				Aliases:     []string{"f"},
				Usage:       "read payload from file",
				Destination: &cmd.file,
			},
			&cli.IntFlag{
				Name:        "qos",
				Aliases:     []string{"q"},
				Usage:       "quality of service level (0, 1, or 2)",
				Value:       0,
				Destination: &cmd.qos,
			},
			&cli.BoolFlag{
				Name:        "retain",
				Aliases:     []string{"r"},
				Usage:       "set the retain flag on the message",
				Destination: &cmd.retain,
			},
		}, cmd.conn.cliFlags()...),
		Action: cmd.run,
	})

	return app
}

func (cmd *PubCmd) run(ctx context.Context, c *cli.Command) error {
	console := printer.Ctx(ctx)

	if cmd.qos < 0 || cmd.qos > 2 {
		return fmt.Errorf("invalid qos %d: must be 0, 1, or 2", cmd.qos)
	}

	// Determine payload
	switch {
	case c.NArg() >= 1:
		cmd.payload = []byte(c.Args().Get(0))
	case cmd.file != "":
		data, err := os.ReadFile(cmd.file)
		if err != nil {
			return fmt.Errorf("read file: %w", err)
		}
		cmd.payload = data
	default:
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		cmd.payload = data
	}

	opts, err := cmd.conn.resolve(ctx, c, cmd.flags)
	if err != nil {
		return err
	}

	client := broker.New(opts, cmd.flags.Logger)
	if err := client.Connect(); err != nil {
		return err
	}
	defer client.Disconnect()

	if err := client.Publish(cmd.topic, byte(cmd.qos), cmd.retain, cmd.payload); err != nil {
		return err
	}

	console.Successf("published %d bytes to %s", len(cmd.payload), cmd.topic)
	return nil
}
