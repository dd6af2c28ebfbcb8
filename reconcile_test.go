package chunktree

import (
	"fmt"
	"reflect"
	"testing"
)

func sequence(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("%d", i)
	}
	return out
}

// TestReconcileInitialInsert28 covers the depth/balance property for a
// from-empty insert of 28 items at C=3: a three-deep tree whose top level
// holds a full 27-item subtree next to a separately-wrapped 28th item.
func TestReconcileInitialInsert28(t *testing.T) {
	tree := NewTree()
	items := sequence(28)

	if err := tree.Reconcile(ReconcileOptions{
		Children:    itemsOf(items...),
		ChunkSize:   3,
		KeyResolver: stringKey,
		Debug:       true,
	}); err != nil {
		t.Fatalf("reconcile: %v", err)
	}

	if got := collectLeaves(tree.Children()); !reflect.DeepEqual(got, items) {
		t.Fatalf("leaves = %v, want %v", got, items)
	}
	if n := len(tree.Children()); n != 2 {
		t.Fatalf("top-level length = %d, want 2", n)
	}

	want := "[[[[0,1,2],[3,4,5],[6,7,8]],[[9,10,11],[12,13,14],[15,16,17]],[[18,19,20],[21,22,23],[24,25,26]]],[[[27]]]]"
	if got := renderShape(tree.Children()); got != want {
		t.Fatalf("shape = %s, want %s", got, want)
	}
}

// TestReconcileAppendAfterTwo covers appending 25 items after a shallow
// two-item tree: the new items form complete depth-1 layers of nine before
// spilling into a partial final chunk.
func TestReconcileAppendAfterTwo(t *testing.T) {
	tree := NewTree()
	if err := tree.Reconcile(ReconcileOptions{
		Children:    itemsOf("a", "b"),
		ChunkSize:   3,
		KeyResolver: stringKey,
	}); err != nil {
		t.Fatalf("seed reconcile: %v", err)
	}

	all := append([]string{"a", "b"}, sequence(25)...)
	if err := tree.Reconcile(ReconcileOptions{
		Children:    itemsOf(all...),
		ChunkSize:   3,
		KeyResolver: stringKey,
		Debug:       true,
	}); err != nil {
		t.Fatalf("append reconcile: %v", err)
	}

	if got := collectLeaves(tree.Children()); !reflect.DeepEqual(got, all) {
		t.Fatalf("leaves = %v, want %v", got, all)
	}
}

// TestReconcileRoundTripIsNoop covers idempotence: reconciling the same
// sequence twice in a row leaves ModifiedChunks empty the second time.
func TestReconcileRoundTripIsNoop(t *testing.T) {
	tree := NewTree()
	children := itemsOf(sequence(40)...)

	opts := ReconcileOptions{Children: children, ChunkSize: 3, KeyResolver: stringKey, Debug: true}
	if err := tree.Reconcile(opts); err != nil {
		t.Fatalf("first reconcile: %v", err)
	}
	before := renderShape(tree.Children())

	if err := tree.Reconcile(opts); err != nil {
		t.Fatalf("second reconcile: %v", err)
	}

	if modified := tree.ModifiedChunks(); len(modified) != 0 {
		t.Fatalf("ModifiedChunks after no-op reconcile = %v, want empty", modified)
	}
	if after := renderShape(tree.Children()); after != before {
		t.Fatalf("shape changed on no-op reconcile: before=%s after=%s", before, after)
	}
}

func TestReconcileRemovalAndInsertionCallbacks(t *testing.T) {
	tree := NewTree()
	if err := tree.Reconcile(ReconcileOptions{
		Children:    itemsOf("a", "b", "c", "d"),
		ChunkSize:   3,
		KeyResolver: stringKey,
	}); err != nil {
		t.Fatalf("seed reconcile: %v", err)
	}

	var inserted []string

	// drop "b", keep "a","c","d", insert "e" at the end.
	if err := tree.Reconcile(ReconcileOptions{
		Children:    itemsOf("a", "c", "d", "e"),
		ChunkSize:   3,
		KeyResolver: stringKey,
		Debug:       true,
		OnInsert: func(item Item, idx int) {
			inserted = append(inserted, fmt.Sprintf("%v@%d", item, idx))
		},
	}); err != nil {
		t.Fatalf("reconcile: %v", err)
	}

	if got := collectLeaves(tree.Children()); !reflect.DeepEqual(got, []string{"a", "c", "d", "e"}) {
		t.Fatalf("leaves = %v, want [a c d e]", got)
	}
	if want := []string{"e@3"}; !reflect.DeepEqual(inserted, want) {
		t.Fatalf("inserted = %v, want %v", inserted, want)
	}
}

func TestReconcileUpdateFiresOnKeyMatchWithDifferentHandle(t *testing.T) {
	type item struct {
		key string
		gen int
	}
	resolver := func(i Item) Key { return Key(i.(item).key) }

	tree := NewTree()
	first := []Item{item{"a", 0}, item{"b", 0}, item{"c", 0}}
	if err := tree.Reconcile(ReconcileOptions{Children: first, ChunkSize: 3, KeyResolver: resolver}); err != nil {
		t.Fatalf("seed reconcile: %v", err)
	}

	var updated []Item
	second := []Item{item{"a", 0}, item{"b", 1}, item{"c", 0}}
	if err := tree.Reconcile(ReconcileOptions{
		Children:    second,
		ChunkSize:   3,
		KeyResolver: resolver,
		Debug:       true,
		OnUpdate: func(i Item, idx int) {
			updated = append(updated, i)
		},
	}); err != nil {
		t.Fatalf("reconcile: %v", err)
	}

	if len(updated) != 1 || updated[0].(item).gen != 1 {
		t.Fatalf("updated = %v, want exactly item{b,1}", updated)
	}
}

func TestReconcileRejectsInvalidOptions(t *testing.T) {
	tree := NewTree()
	if err := tree.Reconcile(ReconcileOptions{Children: itemsOf("a"), ChunkSize: 1, KeyResolver: stringKey}); err == nil {
		t.Fatal("expected error for chunk size below 2")
	}
	if err := tree.Reconcile(ReconcileOptions{Children: itemsOf("a"), ChunkSize: 3}); err == nil {
		t.Fatal("expected error for missing key resolver")
	}
}
