// Package chunktree implements a chunked-tree reconciler: it keeps a
// balanced, bounded-fanout tree of opaque child items in sync with a desired
// ordered sequence, reporting which chunks changed so a caller can repaint
// only those subtrees.
package chunktree

import "errors"

// Configuration errors
var (
	// ErrChunkSizeTooSmall indicates a chunk size below the minimum fanout of 2.
	ErrChunkSizeTooSmall = errors.New("chunk size must be at least 2")

	// ErrNoKeyResolver indicates that reconciliation was requested without a key resolver.
	ErrNoKeyResolver = errors.New("key resolver not configured")
)

// Forest errors
var (
	// ErrTreeNotFound indicates that no tree is registered for the given parent.
	ErrTreeNotFound = errors.New("tree not found for parent")
)

// Tree structure errors. These normally surface as panics (see validate.go);
// the sentinels exist so panic messages and any recover-and-wrap layers can
// compare against a stable value with errors.Is.
var (
	// ErrNotAChunk indicates that an operation expected a chunk but found a leaf.
	ErrNotAChunk = errors.New("expected chunk node")

	// ErrEmptyChunk indicates that an operation encountered a chunk with no children.
	ErrEmptyChunk = errors.New("chunk has no children")

	// ErrAtRoot indicates that an operation tried to exit past the root.
	ErrAtRoot = errors.New("cursor is already at the root")

	// ErrPastEnd indicates that a read was attempted after the cursor reached the end.
	ErrPastEnd = errors.New("cursor has reached the end of the tree")

	// ErrDetachedPointer indicates that a saved pointer's chunk is no longer part of the tree.
	ErrDetachedPointer = errors.New("saved pointer chunk is detached from the tree")

	// ErrStalePointer indicates that a saved pointer's node is no longer present in its chunk.
	ErrStalePointer = errors.New("saved pointer node is no longer present in its chunk")

	// ErrInvariantViolation indicates that a debug-mode consistency check failed.
	ErrInvariantViolation = errors.New("tree invariant violation")
)
