package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vicwinsj/holidaze/internal/application/usecases"
	"github.com/vicwinsj/holidaze/internal/config"
)

func newVenueCmd() *cobra.Command {
	var showAvailability bool

	c := &cobra.Command{
		Use:   "venue <id>",
		Short: "Show one venue, optionally with its blocked date ranges",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.FromEnv()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(context.Background(), cfg.CatalogTimeout+5*time.Second)
			defer cancel()

			catalog := newCatalog(cfg, newMetrics())
			v, err := catalog.Get(ctx, args[0])
			if err != nil {
				return err
			}

			fmt.Printf("%s\n%s\n", v.Name, v.Description)
			fmt.Printf("price: %.2f/night  sleeps: %d  rating: %.1f\n", v.Price, v.MaxGuests, v.Rating)
			fmt.Printf("location: %s, %s\n", v.Location.City, v.Location.Country)
			fmt.Printf("amenities: wifi=%v parking=%v breakfast=%v pets=%v\n",
				v.Meta.Wifi, v.Meta.Parking, v.Meta.Breakfast, v.Meta.Pets)

			if !showAvailability {
				return nil
			}

			avail := usecases.GetAvailability{Catalog: catalog}
			blocked, err := avail.Execute(ctx, v.ID)
			if err != nil {
				return err
			}
			fmt.Println("blocked ranges:")
			for _, r := range blocked {
				if r.From.IsZero() {
					fmt.Printf("  (past) .. %s\n", r.To.Format("2006-01-02"))
					continue
				}
				fmt.Printf("  %s .. %s\n", r.From.Format("2006-01-02"), r.To.Format("2006-01-02"))
			}
			return nil
		},
	}

	c.Flags().BoolVar(&showAvailability, "availability", false, "list blocked date ranges")
	return c
}
