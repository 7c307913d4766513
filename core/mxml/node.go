package mxml

// Node is a single property in the tree: a name, an optional scalar value,
// and an ordered list of children. Nodes are read-only after parse.
type Node struct {
	Name     string
	Value    string
	ID       string
	Children []*Node
}

// Child returns the first direct child with the given name, or nil.
func (n *Node) Child(name string) *Node {
	if n == nil {
		return nil
	}
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Find returns the first node with the given name, preferring direct
// children and falling back to a depth-first search.
func (n *Node) Find(name string) *Node {
	if n == nil {
		return nil
	}
	if c := n.Child(name); c != nil {
		return c
	}
	for _, c := range n.Children {
		if found := c.Find(name); found != nil {
			return found
		}
	}
	return nil
}

// Prop returns the scalar value of the named property, searching direct
// children first and the whole subtree second. Missing properties yield def.
func (n *Node) Prop(name, def string) string {
	found := n.Find(name)
	if found == nil {
		return def
	}
	return found.Value
}

// NestedEnum resolves an enum-wrapped value: the outer node carries the enum
// type marker and an inner child of the given name carries the literal.
func (n *Node) NestedEnum(outer, inner, def string) string {
	outerNode := n.Find(outer)
	if outerNode == nil {
		return def
	}
	if inner == "" {
		inner = outer
	}
	innerNode := outerNode.Child(inner)
	if innerNode == nil {
		return def
	}
	return innerNode.Value
}

// ForEachArrayItem iterates the repeated children under the named array
// property and passes each to fn. Items for which fn returns false are
// counted as skipped; the walk always continues.
func (n *Node) ForEachArrayItem(name string, fn func(item *Node) bool) (kept, skipped int) {
	arr := n.Find(name)
	if arr == nil {
		return 0, 0
	}
	for _, item := range arr.Children {
		if fn(item) {
			kept++
		} else {
			skipped++
		}
	}
	return kept, skipped
}

// ArrayItems returns the repeated children under the named array property
// that themselves carry the array name (the table row convention), or all
// children when none match.
func (n *Node) ArrayItems(name string) []*Node {
	arr := n.Find(name)
	if arr == nil {
		return nil
	}
	rows := make([]*Node, 0, len(arr.Children))
	for _, c := range arr.Children {
		if c.Name == name {
			rows = append(rows, c)
		}
	}
	if len(rows) == 0 {
		return arr.Children
	}
	return rows
}
