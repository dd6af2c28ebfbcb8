package chunktree

// Snapshot is a JSON-friendly rendering of a tree's current shape, for
// debugging and for chunktree diff's before/after visualization. It is not
// part of the reconciler's contract: nothing in this package reads a
// Snapshot back in.
type Snapshot struct {
	Children []SnapshotNode `json:"children"`
}

// SnapshotNode is either a chunk (Key and Children set) or a leaf (Key and
// Item set) in the rendered tree.
type SnapshotNode struct {
	Key      Key            `json:"key"`
	Item     string         `json:"item,omitempty"`
	Children []SnapshotNode `json:"children,omitempty"`
}

// DumpSnapshot renders t's current shape. itemString formats a leaf's item
// handle for display, e.g. func(i Item) string { return fmt.Sprint(i) }.
func DumpSnapshot(t *Tree, itemString func(Item) string) Snapshot {
	return Snapshot{Children: snapshotChildren(t.Children(), itemString)}
}

func snapshotChildren(children []Descendant, itemString func(Item) string) []SnapshotNode {
	out := make([]SnapshotNode, len(children))
	for i, d := range children {
		if d.IsChunk() {
			out[i] = SnapshotNode{
				Key:      d.Key(),
				Children: snapshotChildren(d.Children(), itemString),
			}
			continue
		}
		out[i] = SnapshotNode{
			Key:  d.Key(),
			Item: itemString(d.Item()),
		}
	}
	return out
}
