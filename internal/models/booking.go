package models

import (
	"math"
	"time"

	"gorm.io/gorm"
)

const (
	BookingPending   = "pending"
	BookingConfirmed = "confirmed"
	BookingActive    = "active"
	BookingCompleted = "completed"
	BookingCancelled = "cancelled"
	BookingRejected  = "rejected"
)

var PaymentMethods = []string{"card", "upi", "netbanking", "wallet", "cash"}

type BookingLocation struct {
	Address string  `json:"address"`
	City    string  `json:"city"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
}

type Booking struct {
	ID                 uint            `gorm:"primaryKey" json:"id"`
	UserID             uint            `gorm:"index;not null" json:"userId"`
	User               *User           `json:"user,omitempty"`
	CarID              uint            `gorm:"index;not null" json:"carId"`
	Car                *Car            `json:"car,omitempty"`
	StartDate          time.Time       `gorm:"not null" json:"startDate"`
	EndDate            time.Time       `gorm:"not null" json:"endDate"`
	PickupLocation     BookingLocation `gorm:"embedded;embeddedPrefix:pickup_" json:"pickupLocation"`
	DropLocation       BookingLocation `gorm:"embedded;embeddedPrefix:drop_" json:"dropLocation"`
	TotalDays          int             `json:"totalDays"`
	TotalHours         int             `json:"totalHours"`
	TotalAmount        float64         `gorm:"not null" json:"totalAmount"`
	SecurityDeposit    float64         `gorm:"not null" json:"securityDeposit"`
	Status             string          `gorm:"default:pending" json:"status"`
	PaymentStatus      string          `gorm:"default:pending" json:"paymentStatus"`
	PaymentMethod      string          `json:"paymentMethod,omitempty"`
	TransactionID      string          `json:"transactionId,omitempty"`
	CancellationReason string          `json:"cancellationReason,omitempty"`
	AdminNotes         string          `json:"adminNotes,omitempty"`
	CreatedAt          time.Time       `json:"createdAt"`
	UpdatedAt          time.Time       `json:"updatedAt"`
}

// BeforeSave keeps the day and hour totals in sync with the rental window.
func (b *Booking) BeforeSave(tx *gorm.DB) error {
	if !b.StartDate.IsZero() && !b.EndDate.IsZero() {
		span := b.EndDate.Sub(b.StartDate)
		if span < 0 {
			span = -span
		}
		b.TotalDays = int(math.Ceil(span.Hours() / 24))
		b.TotalHours = int(math.Ceil(span.Hours()))
	}
	return nil
}
