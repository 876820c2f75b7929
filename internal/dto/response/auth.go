package response

import (
	"time"

	"parkeasy/internal/data/entity"
)

type UserResponse struct {
	ID            string    `json:"id"`
	Username      string    `json:"username"`
	Email         string    `json:"email"`
	VehicleNumber *string   `json:"vehicle_number,omitempty"`
	Role          string    `json:"role"`
	CreatedAt     time.Time `json:"created_at"`
}

type AuthResponse struct {
	User      UserResponse `json:"user"`
	Token     string       `json:"token,omitempty"`
	ExpiresAt *time.Time   `json:"expires_at,omitempty"`
}

func UserToResponse(user *entity.User) UserResponse {
	return UserResponse{
		ID:            user.ID.String(),
		Username:      user.Username,
		Email:         user.Email,
		VehicleNumber: user.VehicleNumber,
		Role:          string(user.Role),
		CreatedAt:     user.CreatedAt,
	}
}
