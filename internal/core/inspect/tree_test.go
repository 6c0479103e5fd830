package inspect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTree_EnsureCreatesPrefixes(t *testing.T) {
	tree := NewTree()
	leaf := tree.Ensure("a/b/c")

	require.NotNil(t, leaf)
	assert.Equal(t, "a/b/c", leaf.Topic())
	assert.Equal(t, "c", leaf.Segment())

	// Every prefix exists as a node.
	require.NotNil(t, tree.Lookup("a"))
	require.NotNil(t, tree.Lookup("a/b"))
	require.NotNil(t, tree.Lookup("a/b/c"))
	assert.Equal(t, 3, tree.Len())
}

func TestTree_EnsureReusesNodes(t *testing.T) {
	tree := NewTree()
	tree.Ensure("a/b")
	shallow := tree.Ensure("a")

	assert.Same(t, tree.Lookup("a"), shallow)
	assert.Same(t, shallow, tree.Lookup("a/b").parent(tree))

	// Re-ensuring never duplicates.
	tree.Ensure("a/b")
	assert.Equal(t, 2, tree.Len())
	require.Len(t, tree.Roots(), 1)
	assert.Len(t, tree.Roots()[0].Children(), 1)
}

// parent walks from the roots to find the parent of n. Test helper only.
func (n *Node) parent(t *Tree) *Node {
	var found *Node
	t.Walk(func(cand *Node, _ int) {
		for _, c := range cand.children {
			if c == n {
				found = cand
			}
		}
	})
	return found
}

func TestTree_SiblingInsertionOrder(t *testing.T) {
	tree := NewTree()
	tree.Ensure("home/temp")
	tree.Ensure("home/humidity")
	tree.Ensure("barn/door")
	tree.Ensure("home/co2")

	roots := tree.Roots()
	require.Len(t, roots, 2)
	assert.Equal(t, "home", roots[0].Segment())
	assert.Equal(t, "barn", roots[1].Segment())

	children := roots[0].Children()
	require.Len(t, children, 3)
	assert.Equal(t, "temp", children[0].Segment())
	assert.Equal(t, "humidity", children[1].Segment())
	assert.Equal(t, "co2", children[2].Segment())
}

func TestTree_Walk(t *testing.T) {
	tree := NewTree()
	tree.Ensure("a/b/c")
	tree.Ensure("a/d")
	tree.Ensure("e")

	type visit struct {
		topic string
		depth int
	}
	var visits []visit
	tree.Walk(func(n *Node, depth int) {
		visits = append(visits, visit{n.Topic(), depth})
	})

	want := []visit{
		{"a", 0},
		{"a/b", 1},
		{"a/b/c", 2},
		{"a/d", 1},
		{"e", 0},
	}
	assert.Equal(t, want, visits)
}

func TestTree_EmptySegments(t *testing.T) {
	tree := NewTree()
	tree.Ensure("a//b")

	// "a//b" splits into three segments, the middle one empty.
	require.NotNil(t, tree.Lookup("a/"))
	require.NotNil(t, tree.Lookup("a//b"))
	assert.Equal(t, "", tree.Lookup("a/").Segment())
}
