package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/yeager/mqtt-inspector/internal/broker"
	"github.com/yeager/mqtt-inspector/internal/core/config"
	"github.com/yeager/mqtt-inspector/internal/core/export"
	"github.com/yeager/mqtt-inspector/internal/core/inspect"
	"github.com/yeager/mqtt-inspector/internal/printer"
)

type SubCmd struct {
	flags *Flags
	conn  connFlags

	filter       string
	qos          int
	count        int
	timeout      string
	exportPath   string
	exportFormat string
	quiet        bool
}

// NewSubCmd creates a new sub command.
func NewSubCmd(flags *Flags) *SubCmd {
	return &SubCmd{flags: flags}
}

// Register adds the sub command to the application.
func (cmd *SubCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "sub",
		Usage:     "Subscribe to the broker and print messages",
		UsageText: "mqtt-inspector sub [--topic <filter>] [--count N] [--timeout <dur>]",
		Description: `Connects to the broker, subscribes to a topic filter, and prints each
message as it arrives. Runs until interrupted, or until --count messages
have been received or --timeout elapses.

With --export, received messages are written to a file on exit. The format
follows the file extension (.json for JSON, anything else for CSV).

Examples:
  mqtt-inspector sub
  mqtt-inspector sub --topic 'home/+/temp'
  mqtt-inspector sub --count 10 --export capture.csv
  mqtt-inspector sub --timeout 30s --export capture.json`,
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:        "topic",
				Aliases:     []string{"t"},
				Usage:       "topic filter to subscribe to (default: from config)",
				Destination: &cmd.filter,
			},
			&cli.IntFlag{
				Name:        "qos",
				Aliases:     []string{"q"},
				Usage:       "quality of service level (0, 1, or 2)",
				Value:       0,
				Destination: &cmd.qos,
			},
			&cli.IntFlag{
				Name:        "count",
				Aliases:     []string{"n"},
				Usage:       "exit after receiving N messages",
				Destination: &cmd.count,
			},
			&cli.StringFlag{
				Name:        "timeout",
				Usage:       "exit after this duration (e.g., 30s, 5m)",
				Destination: &cmd.timeout,
			},
			&cli.StringFlag{
				Name:        "export",
				Aliases:     []string{"e"},
				Usage:       "write received messages to this file on exit",
				Destination: &cmd.exportPath,
			},
			&cli.StringFlag{
				Name:        "format",
				Usage:       "export format, csv or json (default: from file extension)",
				Destination: &cmd.exportFormat,
			},
			&cli.BoolFlag{
				Name:        "quiet",
				Usage:       "do not print messages as they arrive",
				Destination: &cmd.quiet,
			},
		}, cmd.conn.cliFlags()...),
		Action: cmd.run,
	})

	return app
}

func (cmd *SubCmd) run(ctx context.Context, c *cli.Command) error {
	console := printer.Ctx(ctx)

	if cmd.qos < 0 || cmd.qos > 2 {
		return fmt.Errorf("invalid qos %d: must be 0, 1, or 2", cmd.qos)
	}
	if cmd.exportFormat != "" {
		if _, err := export.ParseFormat(cmd.exportFormat); err != nil {
			return err
		}
	}

	filter := cmd.filter
	if filter == "" {
		filter = cmd.flags.Config.Subscription
	}
	if err := config.ValidateFilter(filter); err != nil {
		return fmt.Errorf("invalid topic filter %q: %w", filter, err)
	}

	var deadline <-chan time.Time
	if cmd.timeout != "" {
		d, err := time.ParseDuration(cmd.timeout)
		if err != nil {
			return fmt.Errorf("invalid timeout: %w", err)
		}
		timer := time.NewTimer(d)
		defer timer.Stop()
		deadline = timer.C
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

	if err := client.Subscribe(filter, byte(cmd.qos)); err != nil {
		return err
	}

	console.Infof("subscribed to %s on %s", filter, opts.URI())

	agg := inspect.NewAggregator(cmd.flags.Config.History.Capacity)
	w := c.Root().Writer

	received := 0
loop:
	for {
		select {
		case <-ctx.Done():
			break loop
		case <-deadline:
			break loop
		case ev := <-client.Events():
			switch ev.Kind {
			case broker.EventDisconnected:
				return fmt.Errorf("connection lost: %w", ev.Err)
			case broker.EventMessage:
				agg.Record(ev.Message)
				received++
				if !cmd.quiet {
					fmt.Fprintf(w, "%s  %s  %s\n",
						ev.Message.ReceivedAt.Format("15:04:05"),
						ev.Message.Topic,
						ev.Message.Text,
					)
				}
				if cmd.count > 0 && received >= cmd.count {
					break loop
				}
			}
		}
	}

	if cmd.exportPath != "" && agg.TotalCount() > 0 {
		n, err := cmd.writeExport(agg)
		if err != nil {
			return err
		}
		console.Successf("exported %d messages to %s", n, cmd.exportPath)
	}

	return nil
}

func (cmd *SubCmd) writeExport(agg *inspect.Aggregator) (int, error) {
	msgs := export.Collect(agg, "")

	f, err := os.Create(cmd.exportPath)
	if err != nil {
		return 0, fmt.Errorf("create export file: %w", err)
	}
	defer f.Close()

	format := export.FormatForPath(cmd.exportPath)
	if cmd.exportFormat != "" {
		format, err = export.ParseFormat(cmd.exportFormat)
		if err != nil {
			return 0, err
		}
	}

	if err := export.Write(f, format, msgs); err != nil {
		return 0, fmt.Errorf("write export: %w", err)
	}

	return len(msgs), nil
}
