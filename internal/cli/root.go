// Package cli defines the cobra command tree for propfinder.
package cli

import (
	"database/sql"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/evcraddock/propfinder/internal/db"
	"github.com/evcraddock/propfinder/internal/logging"
	"github.com/evcraddock/propfinder/internal/narrative"
	"github.com/evcraddock/propfinder/internal/recommend"
	"github.com/evcraddock/propfinder/internal/scoring"
	"github.com/evcraddock/propfinder/internal/search"
	"github.com/evcraddock/propfinder/internal/source"
)

var (
	flagFormat  string
	flagDB      string
	flagVerbose bool
)

// NewRootCmd creates the root cobra command with global flags.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "pf",
		Short:         "Search and rank commercial investment properties",
		Long:          "A tool to search commercial property listings across sources, compute market statistics, and rank properties against an investment profile.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.Setup(flagVerbose)
		},
	}

	root.PersistentFlags().StringVar(&flagFormat, "format", "text", "output format (text|json)")
	root.PersistentFlags().StringVar(&flagDB, "db", "", "SQLite database path (default: ~/.propfinder/propfinder.db)")
	root.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newSearchCmd(),
		newRecommendCmd(),
		newSourcesCmd(),
		newServeCmd(),
		newVersionCmd(),
	)

	return root
}

// openDB opens the SQLite database using the --db flag, config, or default.
func openDB() (*sql.DB, error) {
	path := flagDB
	if path == "" {
		cfg, err := loadConfig()
		if err == nil && cfg.DBPath != "" {
			path = cfg.DBPath
		}
	}
	if path == "" {
		var err error
		path, err = db.DefaultPath()
		if err != nil {
			return nil, err
		}
	}
	return db.Open(path)
}

// closeDB closes the database, logging any error to stderr.
func closeDB(database *sql.DB) {
	if err := database.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: closing database: %v\n", err)
	}
}

// isJSON returns true if the --format flag is set to json.
func isJSON() bool {
	return flagFormat == "json"
}

// pipeline bundles the wired search/recommendation components.
type pipeline struct {
	service *search.Service
	orch    *recommend.Orchestrator
	sources []source.Source
	limiter *source.Limiter
}

// buildPipeline wires sources, cache, aggregator, scoring, and narrative
// from config and the open database.
func buildPipeline(database *sql.DB, cfg CLIConfig) (*pipeline, error) {
	sources := []source.Source{source.NewSQLiteSource("local", database)}
	for _, sc := range cfg.Sources {
		src, err := source.NewHTTPSource(sc.Name, sc.URL, sc.APIKey)
		if err != nil {
			return nil, fmt.Errorf("configuring source %s: %w", sc.Name, err)
		}
		sources = append(sources, src)
	}

	limiter := source.NewLimiter(cfg.RateLimit, source.Window)
	fallback := source.NewSynthetic(0, nil)
	aggregator := search.NewAggregator(sources, fallback, limiter, sourceTimeout(cfg))
	service := search.NewService(search.NewCache(), aggregator)

	weights := scoring.DefaultWeights()
	if cfg.WeightsFile != "" {
		w, err := scoring.LoadWeights(cfg.WeightsFile)
		if err != nil {
			return nil, err
		}
		weights = w
	}
	engine := scoring.NewEngine(weights)

	var generator narrative.Generator
	if cfg.Narrative.APIKey != "" {
		g, err := narrative.NewOpenAIGenerator(cfg.Narrative.APIKey, cfg.Narrative.BaseURL, cfg.Narrative.Model)
		if err != nil {
			return nil, fmt.Errorf("configuring narrative generator: %w", err)
		}
		generator = g
	}

	orch := recommend.NewOrchestrator(service, engine, generator, 0)
	return &pipeline{service: service, orch: orch, sources: sources, limiter: limiter}, nil
}

// sourceTimeout returns the configured per-source query timeout.
func sourceTimeout(cfg CLIConfig) time.Duration {
	if cfg.SourceTimeout > 0 {
		return time.Duration(cfg.SourceTimeout) * time.Second
	}
	return search.DefaultSourceTimeout
}
