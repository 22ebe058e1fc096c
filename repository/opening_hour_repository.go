package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/yeremiapane/resto-backoffice/models"
	"github.com/yeremiapane/resto-backoffice/reservation"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OpeningHourRepository struct {
	DB *gorm.DB
}

func NewOpeningHourRepository(db *gorm.DB) *OpeningHourRepository {
	return &OpeningHourRepository{DB: db}
}

// Get implements reservation.OpeningHours. A missing row means closed.
func (r *OpeningHourRepository) Get(ctx context.Context, weekday time.Weekday) (reservation.Hours, bool, error) {
	var oh models.OpeningHour
	err := r.DB.WithContext(ctx).Where("weekday = ?", weekday).First(&oh).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return reservation.Hours{}, false, nil
	}
	if err != nil {
		return reservation.Hours{}, false, fmt.Errorf("opening hours for %s: %w", weekday, err)
	}
	return reservation.Hours{Opening: oh.OpeningTime, Closing: oh.ClosingTime}, true, nil
}

func (r *OpeningHourRepository) List(ctx context.Context) ([]models.OpeningHour, error) {
	var hours []models.OpeningHour
	if err := r.DB.WithContext(ctx).Order("weekday ASC").Find(&hours).Error; err != nil {
		return nil, err
	}
	return hours, nil
}

// Set creates or replaces the hours of a weekday.
func (r *OpeningHourRepository) Set(ctx context.Context, weekday time.Weekday, opening, closing models.Clock) (*models.OpeningHour, error) {
	oh := models.OpeningHour{Weekday: weekday, OpeningTime: opening, ClosingTime: closing}
	err := r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "weekday"}},
		DoUpdates: clause.AssignmentColumns([]string{"opening_time", "closing_time", "updated_at"}),
	}).Create(&oh).Error
	if err != nil {
		return nil, err
	}
	if err := r.DB.WithContext(ctx).Where("weekday = ?", weekday).First(&oh).Error; err != nil {
		return nil, err
	}
	return &oh, nil
}

// Delete marks the weekday closed. It reports whether a row existed.
func (r *OpeningHourRepository) Delete(ctx context.Context, weekday time.Weekday) (bool, error) {
	res := r.DB.WithContext(ctx).Where("weekday = ?", weekday).Delete(&models.OpeningHour{})
	return res.RowsAffected > 0, res.Error
}
