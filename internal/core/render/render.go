// Package render turns raw payload bytes into display text: best-effort
// UTF-8, pretty-printed JSON, or a canonical hex dump.
package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Mode selects how a payload is rendered.
type Mode int

const (
	ModeText Mode = iota
	ModeJSON
	ModeHex
)

// ParseMode maps a config/flag string to a Mode. Unknown values fall back
// to ModeText.
func ParseMode(s string) Mode {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return ModeJSON
	case "hex":
		return ModeHex
	default:
		return ModeText
	}
}

func (m Mode) String() string {
	switch m {
	case ModeJSON:
		return "json"
	case ModeHex:
		return "hex"
	default:
		return "text"
	}
}

// Cycle returns the next mode in the text -> json -> hex -> text rotation.
func (m Mode) Cycle() Mode {
	switch m {
	case ModeText:
		return ModeJSON
	case ModeJSON:
		return ModeHex
	default:
		return ModeText
	}
}

// Payload renders the bytes in the given mode.
func Payload(mode Mode, payload []byte) string {
	switch mode {
	case ModeJSON:
		return PrettyJSON(payload)
	case ModeHex:
		return HexDump(payload)
	default:
		return DecodeText(payload)
	}
}

// DecodeText decodes the payload as UTF-8, substituting the replacement
// character for invalid sequences.
func DecodeText(payload []byte) string {
	return strings.ToValidUTF8(string(payload), "�")
}

// PrettyJSON re-indents a JSON payload with two-space indentation, keeping
// the original key order. Payloads that are not valid JSON are returned as
// decoded text unchanged.
func PrettyJSON(payload []byte) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, payload, "", "  "); err != nil {
		return DecodeText(payload)
	}
	return buf.String()
}

// HexDump renders the payload as a classic 16-bytes-per-line hex dump:
// offset, hex pairs, then the printable-ASCII column.
func HexDump(payload []byte) string {
	if len(payload) == 0 {
		return ""
	}

	var b strings.Builder
	for offset := 0; offset < len(payload); offset += 16 {
		end := offset + 16
		if end > len(payload) {
			end = len(payload)
		}
		chunk := payload[offset:end]

		pairs := make([]string, len(chunk))
		ascii := make([]byte, len(chunk))
		for i, c := range chunk {
			pairs[i] = fmt.Sprintf("%02x", c)
			if c >= 0x20 && c <= 0x7e {
				ascii[i] = c
			} else {
				ascii[i] = '.'
			}
		}

		if offset > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%08x  %-48s  %s", offset, strings.Join(pairs, " "), ascii)
	}
	return b.String()
}
