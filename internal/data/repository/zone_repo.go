package repository

import (
	"context"
	"fmt"

	"parkeasy/internal/data/entity"
	"parkeasy/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ZoneRepository interface {
	Create(ctx context.Context, zone *entity.Zone) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Zone, error)
	FindAll(ctx context.Context) ([]*entity.Zone, error)
	FindByName(ctx context.Context, query string) ([]*entity.Zone, error)
	Count(ctx context.Context) (int64, error)

	// Slot accounting. Reserve and Release are single conditional updates,
	// so concurrent callers can never overrun capacity or drive the count
	// below zero.
	Reserve(ctx context.Context, id uuid.UUID) error
	Release(ctx context.Context, id uuid.UUID) error
}

type zoneRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewZoneRepository(db database.PgxIface, log *zap.Logger) ZoneRepository {
	return &zoneRepository{
		db:  db,
		log: log.With(zap.String("repository", "zone")),
	}
}

const zoneColumns = `id, name, location, lat, lon, total_slots, occupied_slots, price_per_hour, rating, created_at, updated_at`

func scanZone(row pgx.Row) (*entity.Zone, error) {
	var zone entity.Zone
	err := row.Scan(
		&zone.ID,
		&zone.Name,
		&zone.Location,
		&zone.Lat,
		&zone.Lon,
		&zone.TotalSlots,
		&zone.OccupiedSlots,
		&zone.PricePerHour,
		&zone.Rating,
		&zone.CreatedAt,
		&zone.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &zone, nil
}

func (r *zoneRepository) Create(ctx context.Context, zone *entity.Zone) error {
	query := `
		INSERT INTO parking_zones (id, name, location, lat, lon, total_slots, occupied_slots, price_per_hour, rating, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.Exec(ctx, query,
		zone.ID,
		zone.Name,
		zone.Location,
		zone.Lat,
		zone.Lon,
		zone.TotalSlots,
		zone.OccupiedSlots,
		zone.PricePerHour,
		zone.Rating,
		zone.CreatedAt,
		zone.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create zone",
			zap.Error(err),
			zap.String("name", zone.Name),
		)
		return fmt.Errorf("create zone %s: %w", zone.Name, err)
	}

	return nil
}

func (r *zoneRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Zone, error) {
	query := `SELECT ` + zoneColumns + ` FROM parking_zones WHERE id = $1`

	zone, err := scanZone(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find zone by ID",
			zap.Error(err),
			zap.String("zone_id", id.String()),
		)
		return nil, fmt.Errorf("find zone by ID %s: %w", id.String(), err)
	}

	return zone, nil
}

func (r *zoneRepository) FindAll(ctx context.Context) ([]*entity.Zone, error) {
	query := `SELECT ` + zoneColumns + ` FROM parking_zones ORDER BY name`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find zones", zap.Error(err))
		return nil, fmt.Errorf("find all zones: %w", err)
	}
	defer rows.Close()

	return collectZones(rows)
}

func (r *zoneRepository) FindByName(ctx context.Context, query string) ([]*entity.Zone, error) {
	sql := `SELECT ` + zoneColumns + ` FROM parking_zones WHERE name ILIKE $1 ORDER BY name`

	rows, err := r.db.Query(ctx, sql, "%"+query+"%")
	if err != nil {
		r.log.Error("Failed to find zones by name",
			zap.Error(err),
			zap.String("query", query),
		)
		return nil, fmt.Errorf("find zones by name %q: %w", query, err)
	}
	defer rows.Close()

	return collectZones(rows)
}

func collectZones(rows pgx.Rows) ([]*entity.Zone, error) {
	var zones []*entity.Zone
	for rows.Next() {
		zone, err := scanZone(rows)
		if err != nil {
			return nil, fmt.Errorf("scan zone row: %w", err)
		}
		zones = append(zones, zone)
	}
	return zones, rows.Err()
}

func (r *zoneRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM parking_zones`).Scan(&count); err != nil {
		r.log.Error("Failed to count zones", zap.Error(err))
		return 0, fmt.Errorf("count zones: %w", err)
	}
	return count, nil
}

func (r *zoneRepository) Reserve(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE parking_zones
		SET occupied_slots = occupied_slots + 1, updated_at = NOW()
		WHERE id = $1 AND occupied_slots < total_slots
	`

	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to reserve slot",
			zap.Error(err),
			zap.String("zone_id", id.String()),
		)
		return fmt.Errorf("reserve slot in zone %s: %w", id.String(), err)
	}

	if tag.RowsAffected() == 0 {
		zone, err := r.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if zone == nil {
			return fmt.Errorf("reserve slot in zone %s: %w", id.String(), entity.ErrZoneNotFound)
		}
		return fmt.Errorf("reserve slot in zone %s: %w", id.String(), entity.ErrZoneFull)
	}

	return nil
}

func (r *zoneRepository) Release(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE parking_zones
		SET occupied_slots = occupied_slots - 1, updated_at = NOW()
		WHERE id = $1 AND occupied_slots > 0
	`

	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to release slot",
			zap.Error(err),
			zap.String("zone_id", id.String()),
		)
		return fmt.Errorf("release slot in zone %s: %w", id.String(), err)
	}

	if tag.RowsAffected() == 0 {
		zone, err := r.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if zone == nil {
			return fmt.Errorf("release slot in zone %s: %w", id.String(), entity.ErrZoneNotFound)
		}
		// Occupancy was already zero. Reserve/release pairs should make this
		// unreachable, so report the drift but do not fail the caller.
		r.log.Warn("Release on zone with zero occupancy, count drifted",
			zap.String("zone_id", id.String()),
			zap.String("zone_name", zone.Name),
		)
	}

	return nil
}
