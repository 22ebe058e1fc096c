package repository

import (
	"context"
	"fmt"

	"github.com/yeremiapane/resto-backoffice/models"
	"gorm.io/gorm"
)

type TableRepository struct {
	DB *gorm.DB
}

func NewTableRepository(db *gorm.DB) *TableRepository {
	return &TableRepository{DB: db}
}

// CountWithCapacityAtLeast implements reservation.TableInventory. Inactive
// tables are not bookable.
func (r *TableRepository) CountWithCapacityAtLeast(ctx context.Context, partySize int) (int, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&models.Table{}).
		Where("capacity >= ? AND status <> ?", partySize, models.TableInactive).
		Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("count tables seating %d: %w", partySize, err)
	}
	return int(n), nil
}
