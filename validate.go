package chunktree

import "fmt"

// validateState walks the whole tree checking the structural invariants
// that a single mutator call can disturb: fanout bounds, no empty chunks,
// parent-link consistency, and (when resolver is non-nil) that every leaf's
// key still matches what the resolver would produce for its current item.
// Order (invariant 1) and ModifiedChunks soundness/completeness (invariant
// 6) are whole-pass properties checked by the reconciler's own tests rather
// than here. Panics with ErrInvariantViolation, naming the violated
// invariant, the first time anything disagrees.
func validateState(t *Tree, chunkSize int, resolver KeyResolver) {
	walkAncestor(t.children, chunkSize, resolver, 0, true)
}

func walkAncestor(children []Descendant, chunkSize int, resolver KeyResolver, ancestorID NodeID, ancestorIsRoot bool) {
	if !ancestorIsRoot {
		if len(children) == 0 {
			panic(fmt.Sprintf("chunktree: %v: chunk has no children", ErrInvariantViolation))
		}
		if len(children) > chunkSize {
			panic(fmt.Sprintf("chunktree: %v: chunk has %d children, exceeds chunk size %d", ErrInvariantViolation, len(children), chunkSize))
		}
	}
	for _, d := range children {
		if d.IsChunk() {
			wantParent := ancestorID
			if ancestorIsRoot {
				wantParent = 0
			}
			if d.chunk.parent != wantParent {
				panic(fmt.Sprintf("chunktree: %v: chunk %q has parent %d, want %d", ErrInvariantViolation, d.chunk.key, d.chunk.parent, wantParent))
			}
			walkAncestor(d.chunk.children, chunkSize, resolver, d.chunk.id, false)
			continue
		}
		if resolver != nil {
			want := resolver(d.leaf.item)
			if want != d.leaf.key {
				panic(fmt.Sprintf("chunktree: %v: leaf key %q does not match resolved key %q", ErrInvariantViolation, d.leaf.key, want))
			}
		}
	}
}
