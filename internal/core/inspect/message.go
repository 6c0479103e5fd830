// Package inspect implements the in-memory aggregation of received MQTT
// traffic: bounded per-topic histories, cumulative counts, and the
// hierarchical topic index the tree view renders.
package inspect

import "time"

// Message is an immutable record of one received publication.
type Message struct {
	Topic      string
	Payload    []byte
	Text       string // best-effort UTF-8 decoding, derived at capture
	QoS        byte
	Retain     bool
	ReceivedAt time.Time
}
