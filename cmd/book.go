package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vicwinsj/holidaze/internal/application/usecases"
	"github.com/vicwinsj/holidaze/internal/config"
	"github.com/vicwinsj/holidaze/internal/domain/venue"
)

func newBookCmd() *cobra.Command {
	var (
		dateFrom string
		dateTo   string
		guests   int
	)

	c := &cobra.Command{
		Use:   "book <venue-id>",
		Short: "Reserve a contiguous block of nights at a venue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.FromEnv()
			if err != nil {
				return err
			}
			from, err := time.Parse("2006-01-02", dateFrom)
			if err != nil {
				return fmt.Errorf("invalid --from (want YYYY-MM-DD)")
			}
			to, err := time.Parse("2006-01-02", dateTo)
			if err != nil {
				return fmt.Errorf("invalid --to (want YYYY-MM-DD)")
			}

			ctx, cancel := context.WithTimeout(context.Background(), cfg.CatalogTimeout+5*time.Second)
			defer cancel()

			log := newLogger()
			metrics := newMetrics()
			catalog := newCatalog(cfg, metrics)

			v, err := catalog.Get(ctx, args[0])
			if err != nil {
				return err
			}

			reserve := usecases.NewReserve(catalog, log, metrics)
			outcome, err := reserve.Execute(ctx, v, venue.ReservationRequest{
				VenueID:  v.ID,
				DateFrom: from,
				DateTo:   to,
				Guests:   guests,
			})
			if err != nil {
				return err
			}

			fmt.Printf("booked %s at %s: %s .. %s for %d guests (booking %s)\n",
				outcome.State, v.Name,
				outcome.Booking.DateFrom.Format("2006-01-02"),
				outcome.Booking.DateTo.Format("2006-01-02"),
				outcome.Booking.Guests, outcome.Booking.ID)
			return nil
		},
	}

	c.Flags().StringVar(&dateFrom, "from", "", "check-in date (YYYY-MM-DD)")
	c.Flags().StringVar(&dateTo, "to", "", "check-out date (YYYY-MM-DD)")
	c.Flags().IntVar(&guests, "guests", 1, "number of guests")
	_ = c.MarkFlagRequired("from")
	_ = c.MarkFlagRequired("to")

	return c
}
