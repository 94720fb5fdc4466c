package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vicwinsj/holidaze/internal/application/usecases"
	"github.com/vicwinsj/holidaze/internal/config"
	"github.com/vicwinsj/holidaze/internal/interfaces/web"
)

func newServerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "server",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.FromEnv()
			if err != nil {
				return err
			}

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			log := newLogger()
			metrics := newMetrics()
			catalog := newCatalog(cfg, metrics)

			search := usecases.NewSearchVenues(catalog, log, metrics)
			if err := search.Refresh(ctx); err != nil {
				log.Warn("initial venue load failed, continuing with empty collection", "err", err)
			}
			reserve := usecases.NewReserve(catalog, log, metrics)
			avail := usecases.GetAvailability{Catalog: catalog}

			srv := web.New(cfg.ListenAddr, log, metrics, catalog, search, reserve, avail)
			return srv.ListenAndServe(ctx)
		},
	}
}
