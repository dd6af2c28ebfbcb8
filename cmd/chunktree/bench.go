package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/phroun/chunktree"
	"github.com/spf13/cobra"
)

func newBenchCommand() *cobra.Command {
	var count, rounds int
	var seed int64

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Benchmark repeated reconciliation against a shuffled synthetic sequence",
		RunE: func(cmd *cobra.Command, args []string) error {
			rng := rand.New(rand.NewSource(seed))
			items := make([]string, count)
			for i := range items {
				items[i] = fmt.Sprintf("item-%d", i)
			}

			t := chunktree.NewTree()
			if err := t.Reconcile(chunktree.ReconcileOptions{
				Children:    toItems(items),
				ChunkSize:   chunkSize,
				KeyResolver: stringResolver,
				Debug:       debugMode,
			}); err != nil {
				return fmt.Errorf("initial insert: %w", err)
			}

			var total time.Duration
			for round := 0; round < rounds; round++ {
				rng.Shuffle(len(items), func(i, j int) { items[i], items[j] = items[j], items[i] })

				start := time.Now()
				if err := t.Reconcile(chunktree.ReconcileOptions{
					Children:    toItems(items),
					ChunkSize:   chunkSize,
					KeyResolver: stringResolver,
					Debug:       debugMode,
				}); err != nil {
					return fmt.Errorf("round %d: %w", round, err)
				}
				elapsed := time.Since(start)
				total += elapsed
				logger.Info().Int("round", round).Dur("elapsed", elapsed).
					Int("modifiedChunks", len(t.ModifiedChunks())).Msg("reconciled")
			}

			avg := total
			if rounds > 0 {
				avg = total / time.Duration(rounds)
			}
			fmt.Printf("rounds=%d items=%d chunkSize=%d avg=%s\n", rounds, count, chunkSize, avg)
			return nil
		},
	}

	cmd.Flags().IntVar(&count, "count", 1000, "number of items in the synthetic sequence")
	cmd.Flags().IntVar(&rounds, "rounds", 10, "number of shuffle-and-reconcile rounds after the initial insert")
	cmd.Flags().Int64Var(&seed, "seed", 1, "random seed for shuffling")
	return cmd
}
