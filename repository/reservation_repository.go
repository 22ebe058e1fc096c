package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/yeremiapane/resto-backoffice/models"
	"github.com/yeremiapane/resto-backoffice/reservation"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReservationRepository struct {
	DB *gorm.DB
}

func NewReservationRepository(db *gorm.DB) *ReservationRepository {
	return &ReservationRepository{DB: db}
}

func (r *ReservationRepository) FindAllByDate(ctx context.Context, date time.Time) ([]models.Reservation, error) {
	var out []models.Reservation
	err := r.DB.WithContext(ctx).
		Where("date = ?", models.DateKey(date)).
		Order("start_time ASC, id ASC").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("reservations on %s: %w", models.DateKey(date), err)
	}
	return out, nil
}

func (r *ReservationRepository) Save(ctx context.Context, res *models.Reservation) error {
	if err := r.DB.WithContext(ctx).Create(res).Error; err != nil {
		return fmt.Errorf("save reservation: %w", err)
	}
	return nil
}

func (r *ReservationRepository) FindByID(ctx context.Context, id uint) (*models.Reservation, error) {
	var res models.Reservation
	if err := r.DB.WithContext(ctx).First(&res, id).Error; err != nil {
		return nil, err
	}
	return &res, nil
}

// WithinDay implements reservation.Transactor. The booking_days row of the
// date is locked FOR UPDATE, so bookers on other instances wait for the
// transaction to end, at most until ctx expires. sqlite has no row locks and
// relies on its single writer. Lock-wait failures wrap reservation.ErrDayBusy.
func (r *ReservationRepository) WithinDay(ctx context.Context, date time.Time, fn func(reservation.Store) error) error {
	key := models.DateKey(date)
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		day := models.BookingDay{Date: key}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&day).Error; err != nil {
			return fmt.Errorf("booking day %s: %w", key, err)
		}
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("date = ?", key).First(&day).Error; err != nil {
			return fmt.Errorf("lock booking day %s: %w", key, err)
		}
		return fn(&ReservationRepository{DB: tx})
	})
	if isLockWait(err) {
		return fmt.Errorf("%w: %w", reservation.ErrDayBusy, err)
	}
	return err
}
