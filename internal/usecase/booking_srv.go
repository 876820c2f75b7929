package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"parkeasy/internal/data/entity"
	"parkeasy/internal/data/repository"
	"parkeasy/internal/dto/request"
	"parkeasy/internal/dto/response"
	"parkeasy/internal/pricing"
	"parkeasy/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingService interface {
	StartSession(ctx context.Context, userID string, req *request.StartSessionRequest) (*response.BookingResponse, error)
	EndSession(ctx context.Context, bookingID string) (*response.BookingResponse, error)
	ActiveSession(ctx context.Context, userID string) (*response.ActiveSessionResponse, error)
	History(ctx context.Context, userID string) ([]response.BookingResponse, error)
}

type bookingService struct {
	repo *repository.Repository
	log  *zap.Logger
	now  func() time.Time

	// Serializes the check-then-create in StartSession and the close in
	// EndSession per user, so two concurrent starts cannot both pass the
	// no-active-session check.
	mu        sync.Mutex
	userLocks map[uuid.UUID]*sync.Mutex
}

func NewBookingService(repo *repository.Repository, log *zap.Logger) BookingService {
	return &bookingService{
		repo:      repo,
		log:       log.With(zap.String("service", "booking")),
		now:       time.Now,
		userLocks: make(map[uuid.UUID]*sync.Mutex),
	}
}

func (s *bookingService) userLock(userID uuid.UUID) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.userLocks[userID]
	if !ok {
		lock = &sync.Mutex{}
		s.userLocks[userID] = lock
	}
	return lock
}

func (s *bookingService) StartSession(ctx context.Context, userID string, req *request.StartSessionRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Start session validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	zoneID, err := uuid.Parse(req.ZoneID)
	if err != nil {
		return nil, fmt.Errorf("invalid zone ID format %s: %w", req.ZoneID, err)
	}

	lock := s.userLock(userUUID)
	lock.Lock()
	defer lock.Unlock()

	existing, err := s.repo.Booking.FindActiveByUserID(ctx, userUUID)
	if err != nil {
		s.log.Error("Failed to check active booking",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		return nil, fmt.Errorf("check active booking: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("user %s: %w", userID, entity.ErrAlreadyActive)
	}

	// Grab the slot first. On ZoneFull or NotFound no booking is created.
	if err := s.repo.Zone.Reserve(ctx, zoneID); err != nil {
		return nil, err
	}

	now := s.now()
	booking := &entity.Booking{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserID:    userUUID,
		ZoneID:    zoneID,
		StartTime: now,
		Status:    entity.BookingStatusActive,
	}

	if err := s.repo.Booking.Create(ctx, booking); err != nil {
		// Give the slot back so the reserve/release pair stays balanced.
		if relErr := s.repo.Zone.Release(ctx, zoneID); relErr != nil {
			s.log.Error("Failed to release slot after create failure",
				zap.Error(relErr),
				zap.String("zone_id", zoneID.String()),
			)
		}
		return nil, fmt.Errorf("create booking: %w", err)
	}

	s.log.Info("Session started",
		zap.String("booking_id", booking.ID.String()),
		zap.String("user_id", userID),
		zap.String("zone_id", req.ZoneID),
	)

	resp := response.BookingToResponse(booking, s.zoneName(ctx, zoneID))
	return &resp, nil
}

func (s *bookingService) EndSession(ctx context.Context, bookingID string) (*response.BookingResponse, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, fmt.Errorf("invalid booking ID format %s: %w", bookingID, err)
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, fmt.Errorf("booking %s: %w", bookingID, entity.ErrBookingNotFound)
	}

	lock := s.userLock(booking.UserID)
	lock.Lock()
	defer lock.Unlock()

	// Re-read under the lock: a concurrent EndSession may have closed it.
	booking, err = s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, fmt.Errorf("booking %s: %w", bookingID, entity.ErrBookingNotFound)
	}

	if booking.Status == entity.BookingStatusCompleted {
		// Already closed. Ending twice is a no-op, not an error.
		resp := response.BookingToResponse(booking, s.zoneName(ctx, booking.ZoneID))
		return &resp, nil
	}

	zone, err := s.repo.Zone.FindByID(ctx, booking.ZoneID)
	if err != nil {
		return nil, err
	}
	if zone == nil {
		return nil, fmt.Errorf("zone %s: %w", booking.ZoneID.String(), entity.ErrZoneNotFound)
	}

	end := s.now()
	cost, err := pricing.Cost(booking.StartTime, end, zone.PricePerHour)
	if err != nil {
		s.log.Error("Failed to compute session cost",
			zap.Error(err),
			zap.String("booking_id", bookingID),
			zap.Time("start_time", booking.StartTime),
			zap.Time("end_time", end),
		)
		return nil, fmt.Errorf("compute cost for booking %s: %w", bookingID, err)
	}

	booking.EndTime = &end
	booking.Status = entity.BookingStatusCompleted
	booking.TotalCost = cost
	booking.UpdatedAt = end

	if err := s.repo.Booking.Update(ctx, booking); err != nil {
		return nil, err
	}

	// Exactly one release per successful start, triggered by the first
	// effective end. The booking is closed at this point either way.
	if err := s.repo.Zone.Release(ctx, booking.ZoneID); err != nil {
		s.log.Error("Failed to release slot on session end",
			zap.Error(err),
			zap.String("booking_id", bookingID),
			zap.String("zone_id", booking.ZoneID.String()),
		)
	}

	s.log.Info("Session ended",
		zap.String("booking_id", bookingID),
		zap.String("user_id", booking.UserID.String()),
		zap.Float64("total_cost", cost),
	)

	resp := response.BookingToResponse(booking, zone.Name)
	return &resp, nil
}

func (s *bookingService) ActiveSession(ctx context.Context, userID string) (*response.ActiveSessionResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	booking, err := s.repo.Booking.FindActiveByUserID(ctx, userUUID)
	if err != nil {
		s.log.Error("Failed to find active booking",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		return nil, fmt.Errorf("find active booking: %w", err)
	}
	if booking == nil {
		return nil, fmt.Errorf("active booking for user %s: %w", userID, entity.ErrBookingNotFound)
	}

	zone, err := s.repo.Zone.FindByID(ctx, booking.ZoneID)
	if err != nil {
		return nil, err
	}
	if zone == nil {
		return nil, fmt.Errorf("zone %s: %w", booking.ZoneID.String(), entity.ErrZoneNotFound)
	}

	now := s.now()
	currentCost, err := pricing.LiveCost(booking.StartTime, now, zone.PricePerHour)
	if err != nil {
		return nil, fmt.Errorf("compute running cost for booking %s: %w", booking.ID.String(), err)
	}

	return &response.ActiveSessionResponse{
		BookingResponse: response.BookingToResponse(booking, zone.Name),
		DurationMinutes: int(now.Sub(booking.StartTime).Minutes()),
		CurrentCost:     currentCost,
	}, nil
}

func (s *bookingService) History(ctx context.Context, userID string) ([]response.BookingResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	bookings, err := s.repo.Booking.FindCompletedByUserID(ctx, userUUID)
	if err != nil {
		s.log.Error("Failed to get booking history",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		return nil, fmt.Errorf("get booking history: %w", err)
	}

	results := make([]response.BookingResponse, len(bookings))
	for i, booking := range bookings {
		results[i] = response.BookingToResponse(booking, s.zoneName(ctx, booking.ZoneID))
	}

	return results, nil
}

// zoneName is display-only. Lookup failures leave the name blank rather
// than failing the whole request.
func (s *bookingService) zoneName(ctx context.Context, zoneID uuid.UUID) string {
	zone, err := s.repo.Zone.FindByID(ctx, zoneID)
	if err != nil || zone == nil {
		return ""
	}
	return zone.Name
}
