package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/phroun/chunktree"
	"github.com/spf13/cobra"
)

func newDiffCommand() *cobra.Command {
	var beforeFile, afterFile string

	cmd := &cobra.Command{
		Use:   "diff",
		Short: "Reconcile a tree through a before/after pair of JSON string arrays and print the chunks touched",
		RunE: func(cmd *cobra.Command, args []string) error {
			before, err := readItems(beforeFile)
			if err != nil {
				return fmt.Errorf("reading before file: %w", err)
			}
			after, err := readItems(afterFile)
			if err != nil {
				return fmt.Errorf("reading after file: %w", err)
			}

			t := chunktree.NewTree()
			resolver := stringResolver

			if err := t.Reconcile(chunktree.ReconcileOptions{
				Children:    before,
				ChunkSize:   chunkSize,
				KeyResolver: resolver,
				Debug:       debugMode,
			}); err != nil {
				return fmt.Errorf("seeding before state: %w", err)
			}
			beforeSnap := chunktree.DumpSnapshot(t, stringify)

			start := time.Now()
			if err := t.Reconcile(chunktree.ReconcileOptions{
				Children:    after,
				ChunkSize:   chunkSize,
				KeyResolver: resolver,
				Debug:       debugMode,
				OnInsert: func(item chunktree.Item, idx int) {
					logger.Debug().Str("item", item.(string)).Int("index", idx).Msg("insert")
				},
				OnUpdate: func(item chunktree.Item, idx int) {
					logger.Debug().Str("item", item.(string)).Int("index", idx).Msg("update")
				},
				OnIndexChange: func(item chunktree.Item, idx int) {
					logger.Debug().Str("item", item.(string)).Int("index", idx).Msg("index change")
				},
			}); err != nil {
				return fmt.Errorf("reconciling after state: %w", err)
			}
			modified := t.ModifiedChunks()
			logger.Info().Dur("elapsed", time.Since(start)).Int("chunksTouched", len(modified)).Msg("reconciled")

			afterSnap := chunktree.DumpSnapshot(t, stringify)

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(map[string]any{
				"before":         beforeSnap,
				"after":          afterSnap,
				"modifiedChunks": keysOf(modified),
			})
		},
	}

	cmd.Flags().StringVar(&beforeFile, "before", "", "path to a JSON array of strings for the initial state")
	cmd.Flags().StringVar(&afterFile, "after", "", "path to a JSON array of strings for the desired state")
	_ = cmd.MarkFlagRequired("before")
	_ = cmd.MarkFlagRequired("after")
	return cmd
}

func stringResolver(item chunktree.Item) chunktree.Key {
	return chunktree.Key(item.(string))
}

func stringify(item chunktree.Item) string {
	return item.(string)
}

func readItems(path string) ([]chunktree.Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var raw []string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return toItems(raw), nil
}

func toItems(strs []string) []chunktree.Item {
	out := make([]chunktree.Item, len(strs))
	for i, s := range strs {
		out[i] = s
	}
	return out
}

func keysOf(set map[chunktree.Key]struct{}) []chunktree.Key {
	out := make([]chunktree.Key, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	return out
}
