package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Reservation struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Code       string    `gorm:"type:varchar(36);uniqueIndex;not null" json:"code"`
	Date       string    `gorm:"type:varchar(10);index;not null" json:"date"`
	StartTime  Clock     `gorm:"not null" json:"start_time"`
	EndTime    Clock     `gorm:"not null" json:"end_time"`
	Duration   int       `gorm:"not null" json:"duration"`
	PartySize  int       `gorm:"not null" json:"people"`
	CustomerID *uint     `gorm:"index" json:"customer_id,omitempty"`
	Customer   *User     `gorm:"foreignKey:CustomerID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"-"`
	Name       string    `gorm:"type:varchar(255)" json:"name,omitempty"`
	Phone      string    `gorm:"type:varchar(50)" json:"phone,omitempty"`
	Notes      string    `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
}

// BeforeCreate assigns the confirmation code handed to the guest.
func (r *Reservation) BeforeCreate(tx *gorm.DB) error {
	if r.Code == "" {
		r.Code = uuid.NewString()
	}
	return nil
}

// WalkIn reports whether the reservation was made without a customer account.
func (r *Reservation) WalkIn() bool {
	return r.CustomerID == nil
}

// Overlaps applies the closed-interval rule: touching endpoints conflict.
func (r *Reservation) Overlaps(start, end Clock) bool {
	return start <= r.EndTime && end >= r.StartTime
}

// BookingDay is the per-date row locked while a booking is validated and written.
type BookingDay struct {
	Date      string    `gorm:"type:varchar(10);primaryKey" json:"date"`
	CreatedAt time.Time `json:"created_at"`
}
