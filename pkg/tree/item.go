package tree

import (
	"github.com/mattsolo1/grove-textpad/pkg/filesystem"
	"github.com/mattsolo1/grove-textpad/pkg/models"
)

// Node is one item of the explorer tree with its resolved children.
type Node struct {
	Item  models.Item
	Depth int

	// Hierarchy
	Parent   *Node
	Children []*Node
}

// Build resolves the flat item map into nested nodes. Roots keep RootItems
// order; children follow filesystem.State.Children ordering.
func Build(state filesystem.State) []*Node {
	visited := make(map[string]bool)
	var build func(parent *Node, items []models.Item, depth int) []*Node
	build = func(parent *Node, items []models.Item, depth int) []*Node {
		nodes := make([]*Node, 0, len(items))
		for _, item := range items {
			if visited[item.ID] {
				continue
			}
			visited[item.ID] = true
			node := &Node{Item: item, Depth: depth, Parent: parent}
			if item.IsFolder() {
				node.Children = build(node, state.Children(item.ID), depth+1)
			}
			nodes = append(nodes, node)
		}
		return nodes
	}
	return build(nil, state.Children(models.NoParent), 0)
}

// Flatten lists nodes depth-first. With respectExpanded set, the children of
// collapsed folders are skipped, as in the explorer sidebar.
func Flatten(nodes []*Node, respectExpanded bool) []*Node {
	var out []*Node
	var walk func([]*Node)
	walk = func(level []*Node) {
		for _, n := range level {
			out = append(out, n)
			if n.Item.IsFolder() && (!respectExpanded || n.Item.Expanded) {
				walk(n.Children)
			}
		}
	}
	walk(nodes)
	return out
}

// Count returns the number of nodes in the forest.
func Count(nodes []*Node) int {
	return len(Flatten(nodes, false))
}
