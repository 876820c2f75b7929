package repository

import (
	"parkeasy/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User    UserRepository
	Session SessionRepository
	Zone    ZoneRepository
	Booking BookingRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:    NewUserRepository(db, log),
		Session: NewSessionRepository(db, log),
		Zone:    NewZoneRepository(db, log),
		Booking: NewBookingRepository(db, log),
	}
}
