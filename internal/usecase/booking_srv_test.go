package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"parkeasy/internal/data/entity"
	"parkeasy/internal/data/repository"
	"parkeasy/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testZone(name string, total, occupied int, price float64) *entity.Zone {
	now := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	return &entity.Zone{
		Base:          entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Name:          name,
		Location:      "Test City",
		TotalSlots:    total,
		OccupiedSlots: occupied,
		PricePerHour:  price,
		Rating:        entity.DefaultZoneRating,
	}
}

func newBookingTestService(zones ...*entity.Zone) (*bookingService, *fakeZoneRepo, *fakeBookingRepo) {
	zoneRepo := newFakeZoneRepo(zones...)
	bookingRepo := newFakeBookingRepo()
	repo := &repository.Repository{Zone: zoneRepo, Booking: bookingRepo}

	svc := NewBookingService(repo, zap.NewNop()).(*bookingService)
	return svc, zoneRepo, bookingRepo
}

func startReq(zoneID uuid.UUID) *request.StartSessionRequest {
	return &request.StartSessionRequest{ZoneID: zoneID.String()}
}

func TestStartSession(t *testing.T) {
	ctx := context.Background()

	t.Run("creates active booking and takes a slot", func(t *testing.T) {
		zone := testZone("Marine Drive Parking", 200, 150, 30.00)
		svc, zoneRepo, _ := newBookingTestService(zone)

		start := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
		svc.now = func() time.Time { return start }

		userID := uuid.New()
		booking, err := svc.StartSession(ctx, userID.String(), startReq(zone.ID))
		require.NoError(t, err)

		assert.Equal(t, entity.BookingStatusActive, booking.Status)
		assert.Equal(t, userID.String(), booking.UserID)
		assert.Equal(t, start, booking.StartTime)
		assert.Nil(t, booking.EndTime)
		assert.Zero(t, booking.TotalCost)
		assert.Equal(t, 151, zoneRepo.occupied(zone.ID))
	})

	t.Run("rejects second active session for the same user", func(t *testing.T) {
		zone := testZone("Marine Drive Parking", 200, 0, 30.00)
		svc, zoneRepo, _ := newBookingTestService(zone)

		userID := uuid.New()
		_, err := svc.StartSession(ctx, userID.String(), startReq(zone.ID))
		require.NoError(t, err)

		_, err = svc.StartSession(ctx, userID.String(), startReq(zone.ID))
		assert.ErrorIs(t, err, entity.ErrAlreadyActive)
		assert.Equal(t, 1, zoneRepo.occupied(zone.ID))
	})

	t.Run("propagates zone full without creating a booking", func(t *testing.T) {
		zone := testZone("Kovalam Beach Parking", 100, 100, 50.00)
		svc, _, bookingRepo := newBookingTestService(zone)

		_, err := svc.StartSession(ctx, uuid.New().String(), startReq(zone.ID))
		assert.ErrorIs(t, err, entity.ErrZoneFull)
		assert.Empty(t, bookingRepo.bookings)
	})

	t.Run("unknown zone", func(t *testing.T) {
		svc, _, _ := newBookingTestService()

		_, err := svc.StartSession(ctx, uuid.New().String(), startReq(uuid.New()))
		assert.ErrorIs(t, err, entity.ErrZoneNotFound)
	})

	t.Run("releases the slot when the booking cannot be stored", func(t *testing.T) {
		zone := testZone("Munnar Central", 80, 60, 60.00)
		svc, zoneRepo, bookingRepo := newBookingTestService(zone)
		bookingRepo.failCreate = true

		_, err := svc.StartSession(ctx, uuid.New().String(), startReq(zone.ID))
		require.Error(t, err)
		assert.Equal(t, 60, zoneRepo.occupied(zone.ID))
	})

	t.Run("invalid zone id fails validation", func(t *testing.T) {
		svc, _, _ := newBookingTestService()

		_, err := svc.StartSession(ctx, uuid.New().String(), &request.StartSessionRequest{ZoneID: "not-a-uuid"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "validation failed")
	})
}

func TestStartSessionConcurrent(t *testing.T) {
	ctx := context.Background()

	// 3 remaining slots, 10 concurrent users: exactly 3 must win.
	zone := testZone("Thampanoor Central", 300, 297, 25.00)
	svc, zoneRepo, _ := newBookingTestService(zone)

	const workers = 10
	errs := make([]error, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.StartSession(ctx, uuid.New().String(), startReq(zone.ID))
		}(i)
	}
	wg.Wait()

	var succeeded, full int
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, entity.ErrZoneFull):
			full++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 3, succeeded)
	assert.Equal(t, 7, full)
	assert.Equal(t, 300, zoneRepo.occupied(zone.ID))
}

func TestEndSession(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	startSession := func(t *testing.T, svc *bookingService, zoneID uuid.UUID) string {
		t.Helper()
		svc.now = func() time.Time { return start }
		booking, err := svc.StartSession(ctx, uuid.New().String(), startReq(zoneID))
		require.NoError(t, err)
		return booking.ID
	}

	t.Run("closes the booking and releases the slot", func(t *testing.T) {
		zone := testZone("Lulu Mall Main Deck", 3000, 1200, 40.00)
		svc, zoneRepo, _ := newBookingTestService(zone)
		bookingID := startSession(t, svc, zone.ID)

		svc.now = func() time.Time { return start.Add(90 * time.Minute) }
		booking, err := svc.EndSession(ctx, bookingID)
		require.NoError(t, err)

		assert.Equal(t, entity.BookingStatusCompleted, booking.Status)
		require.NotNil(t, booking.EndTime)
		assert.Equal(t, start.Add(90*time.Minute), *booking.EndTime)
		assert.Equal(t, 60.00, booking.TotalCost)
		assert.Equal(t, 1200, zoneRepo.occupied(zone.ID))
		assert.Equal(t, 1, zoneRepo.releases)
	})

	t.Run("short session pays the minimum charge", func(t *testing.T) {
		zone := testZone("Kochi Metro Station", 500, 120, 20.00)
		svc, _, _ := newBookingTestService(zone)
		bookingID := startSession(t, svc, zone.ID)

		svc.now = func() time.Time { return start.Add(time.Minute) }
		booking, err := svc.EndSession(ctx, bookingID)
		require.NoError(t, err)

		assert.Equal(t, 2.00, booking.TotalCost)
	})

	t.Run("ending twice is a no-op", func(t *testing.T) {
		zone := testZone("Sobha City Mall", 1200, 500, 30.00)
		svc, zoneRepo, _ := newBookingTestService(zone)
		bookingID := startSession(t, svc, zone.ID)

		svc.now = func() time.Time { return start.Add(time.Hour) }
		first, err := svc.EndSession(ctx, bookingID)
		require.NoError(t, err)

		svc.now = func() time.Time { return start.Add(2 * time.Hour) }
		second, err := svc.EndSession(ctx, bookingID)
		require.NoError(t, err)

		assert.Equal(t, first.TotalCost, second.TotalCost)
		assert.Equal(t, first.EndTime, second.EndTime)
		assert.Equal(t, 1, zoneRepo.releases)
		assert.Equal(t, 500, zoneRepo.occupied(zone.ID))
	})

	t.Run("unknown booking", func(t *testing.T) {
		svc, _, _ := newBookingTestService()

		_, err := svc.EndSession(ctx, uuid.New().String())
		assert.ErrorIs(t, err, entity.ErrBookingNotFound)
	})
}

func TestEndToEndSingleSlot(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	zone := testZone("Alappuzha Boat Jetty", 1, 0, 30.00)
	svc, zoneRepo, _ := newBookingTestService(zone)
	svc.now = func() time.Time { return start }

	first, err := svc.StartSession(ctx, uuid.New().String(), startReq(zone.ID))
	require.NoError(t, err)
	assert.Equal(t, 1, zoneRepo.occupied(zone.ID))

	// Zone is now full, a second driver is turned away.
	_, err = svc.StartSession(ctx, uuid.New().String(), startReq(zone.ID))
	assert.ErrorIs(t, err, entity.ErrZoneFull)

	svc.now = func() time.Time { return start.Add(25 * time.Minute) }
	closed, err := svc.EndSession(ctx, first.ID)
	require.NoError(t, err)

	assert.Equal(t, entity.BookingStatusCompleted, closed.Status)
	assert.GreaterOrEqual(t, closed.TotalCost, 2.00)
	assert.Equal(t, 0, zoneRepo.occupied(zone.ID))
}

func TestActiveSession(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	t.Run("reports running cost without the floor", func(t *testing.T) {
		zone := testZone("HiLITE Mall", 2000, 1800, 40.00)
		svc, _, _ := newBookingTestService(zone)
		svc.now = func() time.Time { return start }

		userID := uuid.New()
		_, err := svc.StartSession(ctx, userID.String(), startReq(zone.ID))
		require.NoError(t, err)

		svc.now = func() time.Time { return start.Add(time.Minute) }
		session, err := svc.ActiveSession(ctx, userID.String())
		require.NoError(t, err)

		assert.Equal(t, 1, session.DurationMinutes)
		assert.Equal(t, 0.67, session.CurrentCost)
		assert.Equal(t, entity.BookingStatusActive, session.Status)
	})

	t.Run("no active session", func(t *testing.T) {
		svc, _, _ := newBookingTestService()

		_, err := svc.ActiveSession(ctx, uuid.New().String())
		assert.ErrorIs(t, err, entity.ErrBookingNotFound)
	})
}

func TestHistory(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	zone := testZone("Vadakkumnathan South", 250, 0, 25.00)
	svc, _, _ := newBookingTestService(zone)

	userID := uuid.New()

	// Three sessions back to back; history must come back newest first.
	var bookingIDs []string
	for i := 0; i < 3; i++ {
		sessionStart := start.Add(time.Duration(i) * 3 * time.Hour)
		svc.now = func() time.Time { return sessionStart }
		booking, err := svc.StartSession(ctx, userID.String(), startReq(zone.ID))
		require.NoError(t, err)

		svc.now = func() time.Time { return sessionStart.Add(time.Hour) }
		_, err = svc.EndSession(ctx, booking.ID)
		require.NoError(t, err)

		bookingIDs = append(bookingIDs, booking.ID)
	}

	history, err := svc.History(ctx, userID.String())
	require.NoError(t, err)
	require.Len(t, history, 3)

	assert.Equal(t, bookingIDs[2], history[0].ID)
	assert.Equal(t, bookingIDs[1], history[1].ID)
	assert.Equal(t, bookingIDs[0], history[2].ID)

	for i := 0; i < len(history)-1; i++ {
		require.NotNil(t, history[i].EndTime)
		assert.True(t, !history[i].EndTime.Before(*history[i+1].EndTime),
			fmt.Sprintf("history[%d] should not end before history[%d]", i, i+1))
	}
}
