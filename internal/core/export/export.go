// Package export writes captured messages to CSV or JSON files.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/yeager/mqtt-inspector/internal/core/inspect"
)

// Format selects the output encoding.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// ParseFormat maps a flag/form string to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "csv":
		return FormatCSV, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unknown export format %q (want csv or json)", s)
	}
}

// FormatForPath infers the format from a file extension, defaulting to CSV.
func FormatForPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatCSV
}

// Write encodes the messages in the given format.
func Write(w io.Writer, format Format, messages []inspect.Message) error {
	switch format {
	case FormatJSON:
		return WriteJSON(w, messages)
	default:
		return WriteCSV(w, messages)
	}
}

// WriteCSV writes one header row followed by one row per message. Payloads
// are written as best-effort text.
func WriteCSV(w io.Writer, messages []inspect.Message) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"topic", "payload", "qos", "retain", "timestamp"}); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, m := range messages {
		row := []string{
			m.Topic,
			m.Text,
			fmt.Sprintf("%d", m.QoS),
			fmt.Sprintf("%t", m.Retain),
			m.ReceivedAt.Format(time.RFC3339),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

type jsonMessage struct {
	Topic     string `json:"topic"`
	Payload   string `json:"payload"`
	QoS       byte   `json:"qos"`
	Retain    bool   `json:"retain"`
	Timestamp string `json:"timestamp"`
}

// WriteJSON writes the messages as an indented JSON array.
func WriteJSON(w io.Writer, messages []inspect.Message) error {
	out := make([]jsonMessage, 0, len(messages))
	for _, m := range messages {
		out = append(out, jsonMessage{
			Topic:     m.Topic,
			Payload:   m.Text,
			QoS:       m.QoS,
			Retain:    m.Retain,
			Timestamp: m.ReceivedAt.Format(time.RFC3339),
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode json export: %w", err)
	}
	return nil
}

// Collect gathers the messages to export: the selected topic's history when
// topic is non-empty, otherwise every topic's history in index order.
func Collect(agg *inspect.Aggregator, topic string) []inspect.Message {
	if topic != "" {
		return agg.History(topic)
	}

	var all []inspect.Message
	for _, t := range agg.Topics() {
		all = append(all, agg.History(t)...)
	}
	return all
}
