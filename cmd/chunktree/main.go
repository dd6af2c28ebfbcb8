// Command chunktree drives the chunked-tree reconciler from the shell: diff
// two sequences and print which chunks changed, serve a forest of trees over
// HTTP with Prometheus metrics, or benchmark repeated reconciliation.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	chunkSize int
	debugMode bool
	logger    zerolog.Logger
)

func main() {
	root := &cobra.Command{
		Use:   "chunktree",
		Short: "Drive the chunked-tree reconciler from the command line",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			initConfig()
			level := zerolog.InfoLevel
			if debugMode {
				level = zerolog.DebugLevel
			}
			logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
			return nil
		},
	}

	root.PersistentFlags().IntVar(&chunkSize, "chunk-size", 16, "fanout bound C for the reconciler")
	root.PersistentFlags().BoolVar(&debugMode, "debug", false, "run the tree's internal invariant checker after every mutation")
	_ = viper.BindPFlag("chunk_size", root.PersistentFlags().Lookup("chunk-size"))
	_ = viper.BindPFlag("debug", root.PersistentFlags().Lookup("debug"))

	root.AddCommand(newDiffCommand(), newServeCommand(), newBenchCommand())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// initConfig layers flags over environment variables over an optional
// ./chunktree.yaml, in that order of precedence, via viper.
func initConfig() {
	viper.SetEnvPrefix("chunktree")
	viper.AutomaticEnv()
	viper.SetConfigName("chunktree")
	viper.AddConfigPath(".")
	_ = viper.ReadInConfig() // absence of a config file is not an error

	if viper.IsSet("chunk_size") {
		chunkSize = viper.GetInt("chunk_size")
	}
	if viper.IsSet("debug") {
		debugMode = viper.GetBool("debug")
	}
}
