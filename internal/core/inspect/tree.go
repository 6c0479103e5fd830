package inspect

import "strings"

// Node is one segment in the topic index. A node exists for every distinct
// `/`-prefix of every observed topic; it carries a cumulative message count
// once its full path has been observed as an exact topic.
type Node struct {
	segment  string
	topic    string // full prefix path up to and including this segment
	count    int
	children []*Node
	byName   map[string]*Node
}

// Segment returns the node's own path segment.
func (n *Node) Segment() string {
	return n.segment
}

// Topic returns the full topic prefix this node represents.
func (n *Node) Topic() string {
	return n.topic
}

// Count returns the cumulative message count for this node's exact topic.
// Zero for nodes that only exist as prefixes of deeper topics.
func (n *Node) Count() int {
	return n.count
}

// Children returns the node's children in insertion order.
func (n *Node) Children() []*Node {
	return n.children
}

func (n *Node) child(segment string) *Node {
	if n.byName == nil {
		return nil
	}
	return n.byName[segment]
}

func (n *Node) addChild(c *Node) {
	if n.byName == nil {
		n.byName = make(map[string]*Node)
	}
	n.children = append(n.children, c)
	n.byName[c.segment] = c
}

// Tree is the hierarchical topic index. Nodes are only ever added; sibling
// order is arrival order of the first message that created each node.
type Tree struct {
	roots  []*Node
	byName map[string]*Node // root segment -> node
	nodes  map[string]*Node // full prefix -> node
}

// NewTree creates an empty topic index.
func NewTree() *Tree {
	return &Tree{
		byName: make(map[string]*Node),
		nodes:  make(map[string]*Node),
	}
}

// Roots returns the top-level nodes in insertion order.
func (t *Tree) Roots() []*Node {
	return t.roots
}

// Lookup returns the node for the given topic prefix, or nil.
func (t *Tree) Lookup(topic string) *Node {
	return t.nodes[topic]
}

// Ensure creates any missing nodes along the topic's segment path and
// returns the leaf node for the full topic. Existing nodes are reused, so
// topic "a" arriving after "a/b" lands on the "a" node already created as a
// prefix.
func (t *Tree) Ensure(topic string) *Node {
	segments := strings.Split(topic, "/")

	var parent *Node
	path := ""
	for i, segment := range segments {
		if i == 0 {
			path = segment
		} else {
			path = path + "/" + segment
		}

		node := t.nodes[path]
		if node == nil {
			node = &Node{segment: segment, topic: path}
			t.nodes[path] = node
			if parent == nil {
				t.roots = append(t.roots, node)
				t.byName[segment] = node
			} else {
				parent.addChild(node)
			}
		}
		parent = node
	}

	return parent
}

// Walk visits every node depth-first in insertion order, passing each
// node's depth (roots are depth 0).
func (t *Tree) Walk(fn func(n *Node, depth int)) {
	var walk func(n *Node, depth int)
	walk = func(n *Node, depth int) {
		fn(n, depth)
		for _, c := range n.children {
			walk(c, depth+1)
		}
	}
	for _, r := range t.roots {
		walk(r, 0)
	}
}

// Len returns the number of nodes in the index.
func (t *Tree) Len() int {
	return len(t.nodes)
}
