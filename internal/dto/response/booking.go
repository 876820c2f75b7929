package response

import (
	"time"

	"parkeasy/internal/data/entity"
)

type BookingResponse struct {
	ID        string               `json:"id"`
	UserID    string               `json:"user_id"`
	ZoneID    string               `json:"zone_id"`
	ZoneName  string               `json:"zone_name,omitempty"`
	StartTime time.Time            `json:"start_time"`
	EndTime   *time.Time           `json:"end_time,omitempty"`
	Status    entity.BookingStatus `json:"status"`
	TotalCost float64              `json:"total_cost"`
}

type ActiveSessionResponse struct {
	BookingResponse
	DurationMinutes int     `json:"duration_minutes"`
	CurrentCost     float64 `json:"current_cost"`
}

func BookingToResponse(booking *entity.Booking, zoneName string) BookingResponse {
	return BookingResponse{
		ID:        booking.ID.String(),
		UserID:    booking.UserID.String(),
		ZoneID:    booking.ZoneID.String(),
		ZoneName:  zoneName,
		StartTime: booking.StartTime,
		EndTime:   booking.EndTime,
		Status:    booking.Status,
		TotalCost: booking.TotalCost,
	}
}
