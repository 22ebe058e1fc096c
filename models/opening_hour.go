package models

import "time"

type OpeningHour struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	Weekday     time.Weekday `gorm:"uniqueIndex;not null" json:"weekday"`
	OpeningTime Clock        `gorm:"not null" json:"opening_time"`
	ClosingTime Clock        `gorm:"not null" json:"closing_time"`
	CreatedAt   time.Time    `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time    `gorm:"not null" json:"updated_at"`
}
