package database

import (
	"time"

	"github.com/yeremiapane/resto-backoffice/models"
	"github.com/yeremiapane/resto-backoffice/utils"
	"gorm.io/gorm"
)

// Models lists every table owned by the back office, in dependency order.
func Models() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Table{},
		&models.OpeningHour{},
		&models.BookingDay{},
		&models.Reservation{},
	}
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return err
	}
	utils.InfoLogger.Println("AutoMigrate completed.")
	return nil
}

// DefaultOpeningHours is the week used when nothing was configured yet:
// 11:00-22:00 every day except Monday.
func DefaultOpeningHours() []models.OpeningHour {
	var hours []models.OpeningHour
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		if wd == time.Monday {
			continue
		}
		hours = append(hours, models.OpeningHour{
			Weekday:     wd,
			OpeningTime: 11 * 60,
			ClosingTime: 22 * 60,
		})
	}
	return hours
}

// SeedOpeningHours inserts DefaultOpeningHours when the table is empty. It
// reports how many rows were written.
func SeedOpeningHours(db *gorm.DB) (int, error) {
	var n int64
	if err := db.Model(&models.OpeningHour{}).Count(&n).Error; err != nil {
		return 0, err
	}
	if n > 0 {
		utils.InfoLogger.Printf("Opening hours already configured (%d days), skipping seed", n)
		return 0, nil
	}

	hours := DefaultOpeningHours()
	if err := db.Create(&hours).Error; err != nil {
		return 0, err
	}
	utils.InfoLogger.Printf("Seeded opening hours for %d days", len(hours))
	return len(hours), nil
}
