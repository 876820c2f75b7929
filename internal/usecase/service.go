package usecase

import (
	"parkeasy/internal/data/repository"
	"parkeasy/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth    AuthService
	User    UserService
	Zone    ZoneService
	Booking BookingService
}

func NewService(repo *repository.Repository, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Auth:    NewAuthService(repo, config, log),
		User:    NewUserService(repo.User, log),
		Zone:    NewZoneService(repo, log),
		Booking: NewBookingService(repo, log),
	}
}
