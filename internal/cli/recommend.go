package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/evcraddock/propfinder/internal/property"
	"github.com/evcraddock/propfinder/internal/scoring"
)

func newRecommendCmd() *cobra.Command {
	var (
		strategy  string
		risk      string
		budgetMin float64
		budgetMax float64
		types     []string
		cities    []string
		states    []string
		timeline  int
		max       int
	)

	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Generate ranked investment recommendations",
		Long:  "Search properties matching an investment profile and rank them by a weighted multi-factor score, with a portfolio rollup and market insights.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			profile := scoring.Profile{
				Strategy:        scoring.Strategy(strategy),
				RiskTolerance:   scoring.RiskTolerance(risk),
				BudgetMin:       budgetMin,
				BudgetMax:       budgetMax,
				PreferredCities: cities,
				PreferredStates: states,
				TimelineYears:   timeline,
			}
			for _, t := range types {
				pt := property.Type(t)
				if !pt.IsValid() {
					return fmt.Errorf("unknown property type %q", t)
				}
				profile.PreferredTypes = append(profile.PreferredTypes, pt)
			}
			return runRecommend(cmd.Context(), &profile, max)
		},
	}

	cmd.Flags().StringVar(&strategy, "strategy", "core", "investment strategy: cash-flow|appreciation|value-add|development|core|opportunistic")
	cmd.Flags().StringVar(&risk, "risk", "moderate", "risk tolerance: conservative|moderate|aggressive")
	cmd.Flags().Float64Var(&budgetMin, "budget-min", 0, "minimum budget")
	cmd.Flags().Float64Var(&budgetMax, "budget-max", 0, "maximum budget")
	cmd.Flags().StringSliceVar(&types, "type", nil, "preferred property type (repeatable)")
	cmd.Flags().StringSliceVar(&cities, "city", nil, "preferred city (repeatable)")
	cmd.Flags().StringSliceVar(&states, "state", nil, "preferred state (repeatable)")
	cmd.Flags().IntVar(&timeline, "timeline", 0, "holding period in years (default 5)")
	cmd.Flags().IntVar(&max, "max", 0, "maximum recommendations (default 10)")

	return cmd
}

func runRecommend(ctx context.Context, profile *scoring.Profile, max int) error {
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
	if max > 0 {
		p.orch.SetMax(max)
	}

	report, err := p.orch.Generate(ctx, profile)
	if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(report)
	}
	return printReport(report)
}
