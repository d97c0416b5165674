package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/evcraddock/propfinder/internal/property"
	"github.com/evcraddock/propfinder/internal/source"
)

func newSourcesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sources",
		Short: "List configured property sources",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSources()
		},
	}

	cmd.AddCommand(newSeedCmd())
	return cmd
}

func runSources() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	database, err := openDB()
	if err != nil {
		return err
	}
	defer closeDB(database)

	p, err := buildPipeline(database, cfg)
	if err != nil {
		return err
	}

	type sourceStatus struct {
		Name      string `json:"name"`
		Remaining int    `json:"budget_remaining"`
	}
	statuses := make([]sourceStatus, 0, len(p.sources))
	for _, src := range p.sources {
		statuses = append(statuses, sourceStatus{
			Name:      src.Name(),
			Remaining: p.limiter.Remaining(src.Name()),
		})
	}

	if isJSON() {
		return printJSON(statuses)
	}
	for _, s := range statuses {
		fmt.Printf("%-12s budget remaining: %d/min\n", s.Name, s.Remaining)
	}
	return nil
}

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed <listings.json>",
		Short: "Load listings into the local source from a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd.Context(), args[0])
		},
	}
}

func runSeed(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading listings file: %w", err)
	}

	var records []property.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return fmt.Errorf("parsing listings file: %w", err)
	}

	database, err := openDB()
	if err != nil {
		return err
	}
	defer closeDB(database)

	local := source.NewSQLiteSource("local", database)
	for i := range records {
		if err := local.Insert(ctx, &records[i]); err != nil {
			return fmt.Errorf("listing %d: %w", i, err)
		}
	}

	fmt.Printf("Loaded %d listings into the local source\n", len(records))
	return nil
}
