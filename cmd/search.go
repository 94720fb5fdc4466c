package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vicwinsj/holidaze/internal/application/usecases"
	"github.com/vicwinsj/holidaze/internal/config"
	"github.com/vicwinsj/holidaze/internal/domain/availability"
	"github.com/vicwinsj/holidaze/internal/domain/venue"
)

func newSearchCmd() *cobra.Command {
	var (
		query     string
		minPrice  float64
		maxPrice  float64
		guests    int
		rating    int
		wifi      bool
		parking   bool
		breakfast bool
		pets      bool
		dateFrom  string
		dateTo    string
	)

	c := &cobra.Command{
		Use:   "search",
		Short: "Search venues by text, price, guests, amenities, rating and dates",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.FromEnv()
			if err != nil {
				return err
			}

			criteria := venue.Criteria{
				SearchText: query,
				Guests:     guests,
				Rating:     rating,
				Wifi:       wifi,
				Parking:    parking,
				Breakfast:  breakfast,
				Pets:       pets,
			}
			if cmd.Flags().Changed("min-price") || cmd.Flags().Changed("max-price") {
				band := venue.DefaultPriceBand()
				if cmd.Flags().Changed("min-price") {
					band.Min = minPrice
				}
				if cmd.Flags().Changed("max-price") {
					band.Max = maxPrice
				}
				criteria.Price = &band
			}
			if dateFrom != "" || dateTo != "" {
				if dateFrom == "" || dateTo == "" {
					return fmt.Errorf("--from and --to must be given together")
				}
				from, err := time.Parse("2006-01-02", dateFrom)
				if err != nil {
					return fmt.Errorf("invalid --from (want YYYY-MM-DD)")
				}
				to, err := time.Parse("2006-01-02", dateTo)
				if err != nil {
					return fmt.Errorf("invalid --to (want YYYY-MM-DD)")
				}
				criteria.Dates = &availability.DateRange{
					From: availability.Day(from),
					To:   availability.Day(to),
				}
			}

			ctx, cancel := context.WithTimeout(context.Background(), cfg.CatalogTimeout+5*time.Second)
			defer cancel()

			metrics := newMetrics()
			catalog := newCatalog(cfg, metrics)
			search := usecases.NewSearchVenues(catalog, newLogger(), metrics)
			if !criteria.HasText() {
				if err := search.Refresh(ctx); err != nil {
					return err
				}
			}

			results, err := search.Apply(ctx, criteria)
			if err != nil {
				return err
			}

			if len(results) == 0 {
				fmt.Println("no venues match")
				return nil
			}
			for _, v := range results {
				fmt.Printf("%s  %-30s %8.2f/night  sleeps %d  %.1f★  %s, %s\n",
					v.ID, v.Name, v.Price, v.MaxGuests, v.Rating, v.Location.City, v.Location.Country)
			}
			return nil
		},
	}

	c.Flags().StringVarP(&query, "q", "q", "", "free-text query (name, city, country, description)")
	c.Flags().Float64Var(&minPrice, "min-price", 0, "minimum nightly price")
	c.Flags().Float64Var(&maxPrice, "max-price", 0, "maximum nightly price")
	c.Flags().IntVar(&guests, "guests", 0, "minimum sleeping capacity")
	c.Flags().IntVar(&rating, "rating", 0, "minimum rating (1-5)")
	c.Flags().BoolVar(&wifi, "wifi", false, "require wifi")
	c.Flags().BoolVar(&parking, "parking", false, "require parking")
	c.Flags().BoolVar(&breakfast, "breakfast", false, "require breakfast")
	c.Flags().BoolVar(&pets, "pets", false, "require pets allowed")
	c.Flags().StringVar(&dateFrom, "from", "", "check-in date (YYYY-MM-DD)")
	c.Flags().StringVar(&dateTo, "to", "", "check-out date (YYYY-MM-DD)")

	return c
}
