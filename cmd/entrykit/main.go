package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/pbaille/entrykit/internal/api"
	"github.com/pbaille/entrykit/internal/comparison"
	"github.com/pbaille/entrykit/internal/entry"
	"github.com/pbaille/entrykit/internal/store"
	"github.com/pbaille/entrykit/internal/vanilla"
)

var (
	dbPath   string
	verbose  bool
	cacheTTL time.Duration
)

func main() {
	// Default database location
	defaultDB := os.Getenv("ENTRYKIT_DB")
	if defaultDB == "" {
		home, _ := os.UserHomeDir()
		defaultDB = filepath.Join(home, ".entrykit", "entrykit.db")
	}

	rootCmd := &cobra.Command{
		Use:           "entrykit",
		Short:         "Compare entry stacks and resolve ingredients",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&dbPath, "db", defaultDB, "database path (env ENTRYKIT_DB)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug output to stderr")
	rootCmd.PersistentFlags().DurationVar(&cacheTTL, "cache-ttl", 5*time.Minute, "tag cache lifetime, 0 to never expire")

	rootCmd.AddCommand(tagCmd())
	rootCmd.AddCommand(tagsCmd())
	rootCmd.AddCommand(resolveCmd())
	rootCmd.AddCommand(encodeCmd())
	rootCmd.AddCommand(decodeCmd())
	rootCmd.AddCommand(saveCmd())
	rootCmd.AddCommand(snapshotsCmd())
	rootCmd.AddCommand(showCmd())
	rootCmd.AddCommand(recipesCmd())
	rootCmd.AddCommand(schemaCmd())
	rootCmd.AddCommand(serveCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func getStore() (*store.Store, error) {
	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	return store.New(dbPath)
}

func bootstrap() (*entry.Registry, *vanilla.Kinds, error) {
	registry, kinds, err := vanilla.Bootstrap()
	if err != nil {
		return nil, nil, fmt.Errorf("bootstrap kinds: %w", err)
	}
	return registry, kinds, nil
}

func printIngredient(i int, ing entry.Ingredient, ctx comparison.Context) {
	if ing.IsEmpty() {
		fmt.Printf("[%d] (empty)\n", i)
		return
	}
	fmt.Printf("[%d]\n", i)
	for _, s := range ing.All() {
		fmt.Printf("  %-16s %-40v x%-6s %016x\n", s.Type(), s.Value(), s.Amount(), s.Hash(ctx))
	}
}

func serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the inspection server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := getStore()
			if err != nil {
				return err
			}
			defer s.Close()

			registry, kinds, err := bootstrap()
			if err != nil {
				return err
			}

			server := api.New(s, store.NewTagCache(s, cacheTTL), registry, kinds, newLogger(), addr)
			return server.Run()
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", ":8080", "server address")
	return cmd
}
