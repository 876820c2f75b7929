package entity

type UserRole string

const (
	RoleIndividual UserRole = "individual"
	RoleAdmin      UserRole = "admin"
)

type User struct {
	Base
	Username      string   `db:"username"`
	Email         string   `db:"email"`
	PasswordHash  string   `db:"password"`
	VehicleNumber *string  `db:"vehicle_number"`
	Role          UserRole `db:"role"`
}
