package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/evcraddock/propfinder/internal/property"
	"github.com/evcraddock/propfinder/internal/saved"
	"github.com/evcraddock/propfinder/internal/search"
)

// searchFlags collects the filter flags for the search command.
type searchFlags struct {
	cities          []string
	states          []string
	types           []string
	minPrice        float64
	maxPrice        float64
	minCapRate      float64
	maxCapRate      float64
	minOccupancy    float64
	maxOccupancy    float64
	minYearBuilt    int
	maxYearBuilt    int
	maxDaysOnMarket int
	limit           int
	save            string
	runSaved        string
}

func newSearchCmd() *cobra.Command {
	var flags searchFlags

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search properties across all configured sources",
		Long:  "Search properties across all configured sources, apply filters, and print the result set with market statistics.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd.Context(), &flags)
		},
	}

	cmd.Flags().StringSliceVar(&flags.cities, "city", nil, "filter by city (repeatable)")
	cmd.Flags().StringSliceVar(&flags.states, "state", nil, "filter by state (repeatable)")
	cmd.Flags().StringSliceVar(&flags.types, "type", nil, "property type: office|retail|industrial|multifamily|mixed-use|land")
	cmd.Flags().Float64Var(&flags.minPrice, "min-price", 0, "minimum price")
	cmd.Flags().Float64Var(&flags.maxPrice, "max-price", 0, "maximum price")
	cmd.Flags().Float64Var(&flags.minCapRate, "min-cap-rate", 0, "minimum cap rate (percent)")
	cmd.Flags().Float64Var(&flags.maxCapRate, "max-cap-rate", 0, "maximum cap rate (percent)")
	cmd.Flags().Float64Var(&flags.minOccupancy, "min-occupancy", 0, "minimum occupancy (percent)")
	cmd.Flags().Float64Var(&flags.maxOccupancy, "max-occupancy", 0, "maximum occupancy (percent)")
	cmd.Flags().IntVar(&flags.minYearBuilt, "min-year-built", 0, "earliest year built")
	cmd.Flags().IntVar(&flags.maxYearBuilt, "max-year-built", 0, "latest year built")
	cmd.Flags().IntVar(&flags.maxDaysOnMarket, "max-dom", 0, "maximum days on market")
	cmd.Flags().IntVar(&flags.limit, "limit", 0, "maximum number of results")
	cmd.Flags().StringVar(&flags.save, "save", "", "save these filters under a name")
	cmd.Flags().StringVar(&flags.runSaved, "saved", "", "run a previously saved search")

	return cmd
}

func runSearch(ctx context.Context, flags *searchFlags) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	database, err := openDB()
	if err != nil {
		return err
	}
	defer closeDB(database)

	repo := saved.NewRepository(database)

	var filters search.Filters
	if flags.runSaved != "" {
		s, err := repo.Get(flags.runSaved)
		if err != nil {
			return err
		}
		filters = s.Filters
	} else {
		f, err := buildFilters(flags)
		if err != nil {
			return err
		}
		filters = *f
	}

	if flags.save != "" {
		if _, err := repo.Save(flags.save, &filters); err != nil {
			return err
		}
		fmt.Printf("Saved search %q\n", flags.save)
	}

	p, err := buildPipeline(database, cfg)
	if err != nil {
		return err
	}

	result, err := p.service.Search(ctx, filters)
	if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(result)
	}
	return printSearchResult(result)
}

// buildFilters translates command flags into search filters. A zero-valued
// flag means unconstrained.
func buildFilters(flags *searchFlags) (*search.Filters, error) {
	f := &search.Filters{Limit: flags.limit}

	if len(flags.cities) > 0 || len(flags.states) > 0 {
		f.Location = &search.LocationFilter{Cities: flags.cities, States: flags.states}
	}

	for _, t := range flags.types {
		pt := property.Type(t)
		if !pt.IsValid() {
			return nil, fmt.Errorf("unknown property type %q", t)
		}
		f.Types = append(f.Types, pt)
	}

	if flags.minPrice > 0 || flags.maxPrice > 0 {
		fin := &search.FinancialFilter{}
		if flags.minPrice > 0 {
			fin.MinPrice = &flags.minPrice
		}
		if flags.maxPrice > 0 {
			fin.MaxPrice = &flags.maxPrice
		}
		f.Financial = fin
	}

	if flags.minYearBuilt > 0 || flags.maxYearBuilt > 0 {
		ph := &search.PhysicalFilter{}
		if flags.minYearBuilt > 0 {
			ph.MinYearBuilt = &flags.minYearBuilt
		}
		if flags.maxYearBuilt > 0 {
			ph.MaxYearBuilt = &flags.maxYearBuilt
		}
		f.Physical = ph
	}

	if flags.minCapRate > 0 || flags.maxCapRate > 0 || flags.minOccupancy > 0 || flags.maxOccupancy > 0 {
		inv := &search.InvestmentFilter{}
		if flags.minCapRate > 0 {
			inv.MinCapRate = &flags.minCapRate
		}
		if flags.maxCapRate > 0 {
			inv.MaxCapRate = &flags.maxCapRate
		}
		if flags.minOccupancy > 0 {
			inv.MinOccupancy = &flags.minOccupancy
		}
		if flags.maxOccupancy > 0 {
			inv.MaxOccupancy = &flags.maxOccupancy
		}
		f.Investment = inv
	}

	if flags.maxDaysOnMarket > 0 {
		f.Market = &search.MarketFilter{MaxDaysOnMarket: &flags.maxDaysOnMarket}
	}

	return f, nil
}
