package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/phroun/chunktree"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

var (
	reconcileDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name: "chunktree_reconcile_duration_seconds",
		Help: "Duration of a single Reconcile call.",
	})
	leavesInserted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chunktree_leaves_inserted_total",
		Help: "Leaves inserted across all reconciliations.",
	})
	leavesUpdated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chunktree_leaves_updated_total",
		Help: "Leaves updated in place across all reconciliations.",
	})
	chunksInvalidated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chunktree_chunks_invalidated_total",
		Help: "Chunks added to ModifiedChunks across all reconciliations.",
	})
)

func newServeCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run an HTTP server exposing a forest of trees and Prometheus metrics",
		RunE: func(cmd *cobra.Command, args []string) error {
			forest := chunktree.NewForest(stringResolver)

			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			mux.HandleFunc("/reconcile/", func(w http.ResponseWriter, r *http.Request) {
				handleReconcile(forest, w, r)
			})

			srv := &http.Server{Addr: addr, Handler: mux}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() { errCh <- srv.ListenAndServe() }()
			logger.Info().Str("addr", addr).Msg("serving")

			select {
			case err := <-errCh:
				if err != nil && err != http.ErrServerClosed {
					return err
				}
				return nil
			case <-ctx.Done():
				logger.Info().Msg("shutting down")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				return srv.Shutdown(shutdownCtx)
			}
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "address to listen on")
	return cmd
}

type reconcileRequest struct {
	Children []string `json:"children"`
}

type reconcileResponse struct {
	ModifiedChunks []chunktree.Key `json:"modifiedChunks"`
}

// handleReconcile drives one reconciliation for the parent named in the URL
// path, e.g. POST /reconcile/sidebar with {"children": ["a","b","c"]}.
func handleReconcile(forest *chunktree.Forest, w http.ResponseWriter, r *http.Request) {
	parent := strings.TrimPrefix(r.URL.Path, "/reconcile/")
	if parent == "" {
		http.Error(w, "missing parent in path", http.StatusBadRequest)
		return
	}

	var req reconcileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("decoding request: %v", err), http.StatusBadRequest)
		return
	}

	inserted, updated := 0, 0
	start := time.Now()
	t, err := forest.TreeFor(parent, chunktree.TreeOptions{
		Reconcile: &chunktree.ReconcileOptions{
			Children:    toItems(req.Children),
			ChunkSize:   chunkSize,
			Debug:       debugMode,
			KeyResolver: stringResolver,
			OnInsert:    func(chunktree.Item, int) { inserted++ },
			OnUpdate:    func(chunktree.Item, int) { updated++ },
		},
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	reconcileDuration.Observe(time.Since(start).Seconds())
	leavesInserted.Add(float64(inserted))
	leavesUpdated.Add(float64(updated))

	modified := t.ModifiedChunks()
	chunksInvalidated.Add(float64(len(modified)))

	resp := reconcileResponse{ModifiedChunks: keysOf(modified)}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}
