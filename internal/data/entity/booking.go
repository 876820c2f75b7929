package entity

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusActive    BookingStatus = "active"
	BookingStatusCompleted BookingStatus = "completed"
)

type Booking struct {
	Base
	UserID    uuid.UUID     `db:"user_id"`
	ZoneID    uuid.UUID     `db:"zone_id"`
	StartTime time.Time     `db:"start_time"`
	EndTime   *time.Time    `db:"end_time"`
	Status    BookingStatus `db:"status"`
	TotalCost float64       `db:"total_cost"`
}

func (b *Booking) IsActive() bool {
	return b.Status == BookingStatusActive
}
