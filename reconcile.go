package chunktree

import "fmt"

// ReconcileOptions configures a single reconciliation pass over a tree.
type ReconcileOptions struct {
	// Children is the desired ordered sequence of item handles. Required.
	Children []Item

	// ChunkSize is the fanout bound C, at least 2.
	ChunkSize int

	// KeyResolver maps an item handle to its stable identity token. Required.
	KeyResolver KeyResolver

	// OnInsert fires for each item newly present in the tree.
	OnInsert func(item Item, finalIndex int)

	// OnUpdate fires when a match swaps a leaf's item handle in place.
	OnUpdate func(item Item, finalIndex int)

	// OnIndexChange fires for each already-present item whose final index
	// differs from its pre-reconciliation index.
	OnIndexChange func(item Item, finalIndex int)

	// Debug enables validateState() after every mutator call during this
	// pass. Has no effect on the result beyond the extra checking and an
	// earlier panic if the tree is already inconsistent.
	Debug bool
}

// Reconcile mutates t in place so that its leaves, read left to right, equal
// opts.Children, firing opts.OnInsert/OnUpdate/OnIndexChange for items that
// changed. It is not re-entrant: none of the callbacks may call Reconcile
// again on the same tree.
func (t *Tree) Reconcile(opts ReconcileOptions) error {
	if opts.ChunkSize < 2 {
		return fmt.Errorf("chunktree: reconcile: %w", ErrChunkSizeTooSmall)
	}
	if opts.KeyResolver == nil {
		return fmt.Errorf("chunktree: reconcile: %w", ErrNoKeyResolver)
	}

	t.debug = opts.Debug
	t.debugKeyResolver = opts.KeyResolver
	t.clearModifiedChunks()

	keyCache := make(map[int]Key, len(opts.Children))
	keyAt := func(i int) Key {
		if k, ok := keyCache[i]; ok {
			return k
		}
		k := opts.KeyResolver(opts.Children[i])
		keyCache[i] = k
		return k
	}

	cur := NewCursor(t, opts.ChunkSize)
	childrenPointer := 0
	insertionsMinusRemovals := 0

	for {
		leaf, ok := cur.ReadLeaf()
		if !ok {
			break
		}

		offset := lookahead(leaf, opts.Children, childrenPointer, keyAt)
		if offset < 0 {
			cur.Remove()
			insertionsMinusRemovals--
			continue
		}

		if offset > 0 {
			newSpecs := make([]leafSpec, offset)
			for i := 0; i < offset; i++ {
				idx := childrenPointer + i
				newSpecs[i] = leafSpec{key: keyAt(idx), item: opts.Children[idx]}
			}
			cur.InsertBefore(newSpecs)
			insertionsMinusRemovals += offset
			if opts.OnInsert != nil {
				for i, s := range newSpecs {
					opts.OnInsert(s.item, childrenPointer+i)
				}
			}
		}

		matchIdx := childrenPointer + offset
		matchItem := opts.Children[matchIdx]
		if matchItem != leaf.leaf.item {
			leaf.leaf.item = matchItem
			cur.InvalidateChunk()
			if opts.OnUpdate != nil {
				opts.OnUpdate(matchItem, matchIdx)
			}
		}

		if insertionsMinusRemovals != 0 && opts.OnIndexChange != nil {
			opts.OnIndexChange(matchItem, matchIdx)
		}

		childrenPointer = matchIdx + 1
	}

	if childrenPointer < len(opts.Children) {
		tailSpecs := make([]leafSpec, 0, len(opts.Children)-childrenPointer)
		for i := childrenPointer; i < len(opts.Children); i++ {
			tailSpecs = append(tailSpecs, leafSpec{key: keyAt(i), item: opts.Children[i]})
		}
		cur.ReturnToPreviousLeaf()
		cur.InsertAfter(tailSpecs)
		if opts.OnInsert != nil {
			for i, s := range tailSpecs {
				opts.OnInsert(s.item, childrenPointer+i)
			}
		}
	}

	t.clearMovedNodeKeys()
	return nil
}

// lookahead finds leaf's item in the unread suffix of children, trying
// identity first (cheap, covers the common unchanged-handle case) and
// falling back to key comparison (covers a rewritten handle for the same
// logical item). Returns the offset from childrenPointer, or -1 if absent.
func lookahead(leaf Descendant, children []Item, childrenPointer int, keyAt func(int) Key) int {
	item := leaf.leaf.item
	for j := childrenPointer; j < len(children); j++ {
		if children[j] == item {
			return j - childrenPointer
		}
	}
	key := leaf.leaf.key
	for j := childrenPointer; j < len(children); j++ {
		if keyAt(j) == key {
			return j - childrenPointer
		}
	}
	return -1
}
