package cmd

import (
	"github.com/yeremiapane/resto-backoffice/config"
	"github.com/yeremiapane/resto-backoffice/repository"
	"github.com/yeremiapane/resto-backoffice/reservation"
	"github.com/yeremiapane/resto-backoffice/utils"
	"gorm.io/gorm"
)

// bootstrap loads the configuration, the loggers and the database.
func bootstrap() (*config.Config, *gorm.DB, error) {
	utils.InitLogger()

	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	utils.SetJWTSecret(cfg.JWTSecret)

	db, err := config.InitDB(cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, db, nil
}

func newEngine(cfg *config.Config, db *gorm.DB) *reservation.Engine {
	return reservation.NewEngine(
		repository.NewOpeningHourRepository(db),
		repository.NewTableRepository(db),
		repository.NewReservationRepository(db),
		reservation.WithLocation(cfg.Location),
		reservation.WithLockTimeout(cfg.BookingLockTimeout),
		reservation.WithLogger(utils.InfoLogger),
	)
}
