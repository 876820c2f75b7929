package request

type RegisterRequest struct {
	Username      string  `json:"username" validate:"required,min=3,max=80"`
	Email         string  `json:"email" validate:"required,email"`
	Password      string  `json:"password" validate:"required,min=8"`
	VehicleNumber *string `json:"vehicle_number,omitempty" validate:"omitempty,max=20"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
