package inspect

import "strings"

// DefaultCapacity is the per-topic history bound used when no explicit
// capacity is configured.
const DefaultCapacity = 100

// Aggregator accumulates received messages into bounded per-topic histories
// and maintains the topic index. It is not safe for concurrent use; the
// owning event loop must serialize access.
type Aggregator struct {
	capacity  int
	histories map[string][]Message
	counts    map[string]int
	tree      *Tree
	total     int
}

// NewAggregator creates an aggregator whose per-topic histories hold at most
// capacity messages. A non-positive capacity falls back to DefaultCapacity.
func NewAggregator(capacity int) *Aggregator {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}

	return &Aggregator{
		capacity:  capacity,
		histories: make(map[string][]Message),
		counts:    make(map[string]int),
		tree:      NewTree(),
	}
}

// Record folds one message into the aggregate. Messages whose topic is empty
// or all whitespace are dropped. The topic string is used exactly as
// received; no normalization is applied, so "a/b" and "a//b" are distinct.
func (a *Aggregator) Record(msg Message) {
	if strings.TrimSpace(msg.Topic) == "" {
		return
	}

	h := a.histories[msg.Topic]
	if len(h) >= a.capacity {
		h = append(h[1:], msg)
	} else {
		h = append(h, msg)
	}
	a.histories[msg.Topic] = h

	a.counts[msg.Topic]++
	a.total++

	node := a.tree.Ensure(msg.Topic)
	node.count = a.counts[msg.Topic]
}

// History returns a snapshot of the retained messages for a topic, oldest
// first. The snapshot is unaffected by later Record or Clear calls.
func (a *Aggregator) History(topic string) []Message {
	h := a.histories[topic]
	if len(h) == 0 {
		return nil
	}
	out := make([]Message, len(h))
	copy(out, h)
	return out
}

// Clear empties the retained history for a topic. Cumulative counts and the
// topic's node in the index are untouched, so the topic keeps its place in
// the tree with its lifetime count.
func (a *Aggregator) Clear(topic string) {
	if h, ok := a.histories[topic]; ok {
		a.histories[topic] = h[:0]
	}
}

// Count returns the cumulative number of messages ever recorded for the
// topic, including any evicted or cleared from its history.
func (a *Aggregator) Count(topic string) int {
	return a.counts[topic]
}

// TotalCount returns the cumulative number of messages recorded across all
// topics. It only ever grows.
func (a *Aggregator) TotalCount() int {
	return a.total
}

// Topics returns every exact topic that has received at least one message,
// in first-arrival order.
func (a *Aggregator) Topics() []string {
	topics := make([]string, 0, len(a.counts))
	a.tree.Walk(func(n *Node, _ int) {
		if a.counts[n.topic] > 0 {
			topics = append(topics, n.topic)
		}
	})
	return topics
}

// Tree returns the hierarchical topic index.
func (a *Aggregator) Tree() *Tree {
	return a.tree
}

// Capacity returns the per-topic history bound.
func (a *Aggregator) Capacity() int {
	return a.capacity
}
