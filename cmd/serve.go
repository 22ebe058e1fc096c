package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/yeremiapane/resto-backoffice/database"
	"github.com/yeremiapane/resto-backoffice/floor"
	"github.com/yeremiapane/resto-backoffice/repository"
	"github.com/yeremiapane/resto-backoffice/router"
	"github.com/yeremiapane/resto-backoffice/services"
	"github.com/yeremiapane/resto-backoffice/utils"
)

func newServeCmd() *cobra.Command {
	var (
		migrateUp  bool
		restaurant string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API, the floor websocket and the arrival monitor",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, db, err := bootstrap()
			if err != nil {
				return err
			}

			if cfg.GinMode == "release" {
				gin.SetMode(gin.ReleaseMode)
			}

			if migrateUp {
				if err := database.Migrate(db); err != nil {
					return err
				}
			}

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			hub := floor.NewHub()
			engine := newEngine(cfg, db)

			monitor := services.NewArrivalMonitor(repository.NewReservationRepository(db), hub, cfg.ArrivalWindow, cfg.Location)
			monitor.Interval = cfg.ArrivalInterval
			monitor.Start()
			defer monitor.Stop()

			r := router.SetupRouter(db, engine, hub, router.Options{
				Restaurant: restaurant,
				CORSOrigin: cfg.CORSOrigin,
				RateLimit:  cfg.RateLimit,
				RateBurst:  cfg.RateBurst,
			})

			srv := &http.Server{
				Addr:              ":" + cfg.Port,
				Handler:           r,
				ReadHeaderTimeout: 10 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				utils.InfoLogger.Printf("Listening on port %s", cfg.Port)
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
			}

			utils.InfoLogger.Println("Shutting down")
			shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
			defer stop()
			return srv.Shutdown(shutdownCtx)
		},
	}

	cmd.Flags().BoolVar(&migrateUp, "migrate", true, "run database migrations on startup")
	cmd.Flags().StringVar(&restaurant, "restaurant", "Restaurant", "name printed on reports")
	return cmd
}
