package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/abhisek/bojcoach/internal/coach"
	"github.com/abhisek/bojcoach/internal/explain"
	"github.com/abhisek/bojcoach/internal/llm"
	"github.com/abhisek/bojcoach/internal/solvedac"
	"github.com/abhisek/bojcoach/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "bojcoach",
	Short: "Adaptive coaching for Baekjoon Online Judge",
	Long: "bojcoach analyzes solved.ac profiles to find weak algorithm tags,\n" +
		"track progress, and generate adaptive study recommendations.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDashboard(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides BOJCOACH_DB env var)")
	rootCmd.PersistentFlags().Bool("no-llm", false, "Disable LLM coaching messages even when a provider is configured")
	rootCmd.PersistentFlags().Bool("verbose", false, "Enable debug logging")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(weaknessCmd)
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(recommendCmd)
	rootCmd.AddCommand(predictCmd)
	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest
// priority), then BOJCOACH_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

func newLogger(cmd *cobra.Command) zerolog.Logger {
	level := zerolog.InfoLevel
	if v, _ := cmd.Flags().GetBool("verbose"); v {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
}

// buildCoach assembles the full service stack: HTTP client wrapped in
// resilience and cache decorators, SQLite-backed events, and an LLM
// explainer when one is configured. The returned closer releases the
// store and rate limiter.
func buildCoach(cmd *cobra.Command) (*coach.Service, func(), error) {
	log := newLogger(cmd)

	base := solvedac.NewHTTPClient(solvedac.DefaultConfig())
	resilient := solvedac.WithResilience(base, solvedac.DefaultResilientConfig())
	client := solvedac.WithCache(resilient, solvedac.DefaultCacheConfig())

	opts := []coach.Option{coach.WithLogger(log)}
	closers := []func(){func() { _ = resilient.Close() }}

	var st *store.Store
	dbPath, err := resolveDBPath(cmd)
	if err == nil {
		st, err = store.Open(dbPath)
	}
	if err != nil {
		// The store is an enhancement; analysis works without it.
		log.Warn().Err(err).Msg("event store unavailable, continuing without persistence")
		st = nil
	} else {
		opts = append(opts, coach.WithEventRepo(st.EventRepo()))
		opts = append(opts, coach.WithSnapshotRepo(st.SnapshotRepo()))
		closers = append(closers, func() { st.Close() })
	}

	if noLLM, _ := cmd.Flags().GetBool("no-llm"); !noLLM {
		if provider := buildProvider(cmd, st); provider != nil {
			opts = append(opts, coach.WithExplainer(explain.NewLLMExplainer(provider)))
		}
	}

	svc := coach.NewService(client, opts...)
	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}
	return svc, closeAll, nil
}

// buildProvider returns a configured LLM provider or nil when none of
// the provider env vars are set.
func buildProvider(cmd *cobra.Command, st *store.Store) llm.Provider {
	cfg := llm.ConfigFromEnv()
	if cfg.Validate() != nil {
		discovered, ok := llm.DiscoverConfig()
		if !ok {
			return nil
		}
		cfg = discovered
	}

	var repo store.EventRepo
	if st != nil {
		repo = st.EventRepo()
	} else {
		repo = noopEventRepo{}
	}

	provider, err := llm.NewProvider(cmd.Context(), cfg, repo)
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		return nil
	}
	return provider
}
