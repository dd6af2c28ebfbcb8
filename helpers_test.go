package chunktree

import "strings"

// buildTree constructs a tree directly from a nested fixture without going
// through Reconcile, so mutator/cursor tests can start from an exact shape
// named in a scenario rather than whatever shape a bulk insert would produce
// from scratch. spec elements are either a string (a leaf) or a []any (a
// chunk, recursively built the same way).
func buildTree(spec []any) *Tree {
	tree := NewTree()
	tree.children = buildChildren(tree, 0, spec)
	return tree
}

func buildChildren(tree *Tree, parent NodeID, spec []any) []Descendant {
	out := make([]Descendant, len(spec))
	for i, s := range spec {
		switch v := s.(type) {
		case string:
			out[i] = leafDescendant(tree.newLeaf(Key(v), v))
		case []any:
			c := tree.newChunk(parent)
			c.children = buildChildren(tree, c.id, v)
			out[i] = chunkDescendant(c)
		}
	}
	return out
}

func collectLeaves(children []Descendant) []string {
	out := []string{}
	for _, d := range children {
		if d.IsLeaf() {
			out = append(out, d.Item().(string))
		} else {
			out = append(out, collectLeaves(d.Children())...)
		}
	}
	return out
}

// renderShape renders a children slice as bracketed notation matching the
// scenarios described for this reconciler, e.g. "[0,[1,2,[3,4,x]]]".
func renderShape(children []Descendant) string {
	parts := make([]string, len(children))
	for i, d := range children {
		if d.IsLeaf() {
			parts[i] = d.Item().(string)
		} else {
			parts[i] = renderShape(d.Children())
		}
	}
	return "[" + strings.Join(parts, ",") + "]"
}

func stringKey(item Item) Key { return Key(item.(string)) }

func itemsOf(strs ...string) []Item {
	out := make([]Item, len(strs))
	for i, s := range strs {
		out[i] = s
	}
	return out
}

func leavesOf(strs ...string) []leafSpec {
	out := make([]leafSpec, len(strs))
	for i, s := range strs {
		out[i] = leafSpec{key: Key(s), item: s}
	}
	return out
}

// drainToEnd advances cur past the last leaf, leaving it in the reachedEnd
// state exactly as a full forward scan would.
func drainToEnd(cur *Cursor) {
	for {
		if _, ok := cur.ReadLeaf(); !ok {
			return
		}
	}
}
