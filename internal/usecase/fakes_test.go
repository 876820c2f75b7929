package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"parkeasy/internal/data/entity"

	"github.com/google/uuid"
)

// In-memory repositories for service tests. Reserve and Release mirror the
// conditional updates of the SQL implementation.

type fakeZoneRepo struct {
	mu       sync.Mutex
	zones    map[uuid.UUID]*entity.Zone
	order    []uuid.UUID
	releases int
}

func newFakeZoneRepo(zones ...*entity.Zone) *fakeZoneRepo {
	repo := &fakeZoneRepo{zones: make(map[uuid.UUID]*entity.Zone)}
	for _, z := range zones {
		repo.zones[z.ID] = z
		repo.order = append(repo.order, z.ID)
	}
	return repo
}

func (r *fakeZoneRepo) Create(ctx context.Context, zone *entity.Zone) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.zones[zone.ID] = zone
	r.order = append(r.order, zone.ID)
	return nil
}

func (r *fakeZoneRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Zone, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	zone, ok := r.zones[id]
	if !ok {
		return nil, nil
	}
	copied := *zone
	return &copied, nil
}

func (r *fakeZoneRepo) FindAll(ctx context.Context) ([]*entity.Zone, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	zones := make([]*entity.Zone, 0, len(r.order))
	for _, id := range r.order {
		copied := *r.zones[id]
		zones = append(zones, &copied)
	}
	return zones, nil
}

func (r *fakeZoneRepo) FindByName(ctx context.Context, query string) ([]*entity.Zone, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var zones []*entity.Zone
	for _, id := range r.order {
		zone := r.zones[id]
		if strings.Contains(strings.ToLower(zone.Name), strings.ToLower(query)) {
			copied := *zone
			zones = append(zones, &copied)
		}
	}
	return zones, nil
}

func (r *fakeZoneRepo) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.zones)), nil
}

func (r *fakeZoneRepo) Reserve(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	zone, ok := r.zones[id]
	if !ok {
		return fmt.Errorf("reserve slot in zone %s: %w", id.String(), entity.ErrZoneNotFound)
	}
	if zone.OccupiedSlots >= zone.TotalSlots {
		return fmt.Errorf("reserve slot in zone %s: %w", id.String(), entity.ErrZoneFull)
	}
	zone.OccupiedSlots++
	return nil
}

func (r *fakeZoneRepo) Release(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	zone, ok := r.zones[id]
	if !ok {
		return fmt.Errorf("release slot in zone %s: %w", id.String(), entity.ErrZoneNotFound)
	}
	r.releases++
	if zone.OccupiedSlots > 0 {
		zone.OccupiedSlots--
	}
	return nil
}

func (r *fakeZoneRepo) occupied(id uuid.UUID) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.zones[id].OccupiedSlots
}

type fakeBookingRepo struct {
	mu         sync.Mutex
	bookings   map[uuid.UUID]*entity.Booking
	order      []uuid.UUID
	failCreate bool
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[uuid.UUID]*entity.Booking)}
}

func (r *fakeBookingRepo) Create(ctx context.Context, booking *entity.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failCreate {
		return fmt.Errorf("create booking: store unavailable")
	}
	copied := *booking
	r.bookings[booking.ID] = &copied
	r.order = append(r.order, booking.ID)
	return nil
}

func (r *fakeBookingRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	booking, ok := r.bookings[id]
	if !ok {
		return nil, nil
	}
	copied := *booking
	return &copied, nil
}

func (r *fakeBookingRepo) FindActiveByUserID(ctx context.Context, userID uuid.UUID) (*entity.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var latest *entity.Booking
	for _, id := range r.order {
		b := r.bookings[id]
		if b.UserID != userID || b.Status != entity.BookingStatusActive {
			continue
		}
		if latest == nil || b.StartTime.After(latest.StartTime) {
			latest = b
		}
	}
	if latest == nil {
		return nil, nil
	}
	copied := *latest
	return &copied, nil
}

func (r *fakeBookingRepo) FindCompletedByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var bookings []*entity.Booking
	for _, id := range r.order {
		b := r.bookings[id]
		if b.UserID == userID && b.Status == entity.BookingStatusCompleted {
			copied := *b
			bookings = append(bookings, &copied)
		}
	}
	sort.SliceStable(bookings, func(i, j int) bool {
		return bookings[i].EndTime.After(*bookings[j].EndTime)
	})
	return bookings, nil
}

func (r *fakeBookingRepo) Update(ctx context.Context, booking *entity.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bookings[booking.ID]; !ok {
		return fmt.Errorf("update booking %s: %w", booking.ID.String(), entity.ErrBookingNotFound)
	}
	copied := *booking
	r.bookings[booking.ID] = &copied
	return nil
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

type fakeSessionRepo struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*entity.Session
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[uuid.UUID]*entity.Session)}
}

func (r *fakeSessionRepo) Create(ctx context.Context, session *entity.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *session
	r.sessions[session.Token] = &copied
	return nil
}

func (r *fakeSessionRepo) FindValidSession(ctx context.Context, token string) (*entity.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	parsed, err := uuid.Parse(token)
	if err != nil {
		return nil, nil
	}
	session, ok := r.sessions[parsed]
	if !ok || session.RevokedAt != nil {
		return nil, nil
	}
	copied := *session
	return &copied, nil
}

func (r *fakeSessionRepo) Revoke(ctx context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	parsed, err := uuid.Parse(token)
	if err != nil {
		return nil
	}
	if session, ok := r.sessions[parsed]; ok && session.RevokedAt == nil {
		revoked := session.CreatedAt
		session.RevokedAt = &revoked
	}
	return nil
}
