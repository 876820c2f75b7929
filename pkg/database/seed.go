package database

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id UUID PRIMARY KEY,
	username VARCHAR(80) UNIQUE NOT NULL,
	email VARCHAR(120) UNIQUE NOT NULL,
	password VARCHAR(120) NOT NULL,
	vehicle_number VARCHAR(20),
	role VARCHAR(20) NOT NULL DEFAULT 'individual',
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS sessions (
	id UUID PRIMARY KEY,
	user_id UUID NOT NULL REFERENCES users(id),
	token UUID UNIQUE NOT NULL,
	expires_at TIMESTAMPTZ NOT NULL,
	revoked_at TIMESTAMPTZ,
	created_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS parking_zones (
	id UUID PRIMARY KEY,
	name VARCHAR(100) NOT NULL,
	location VARCHAR(200) NOT NULL,
	lat DOUBLE PRECISION,
	lon DOUBLE PRECISION,
	total_slots INTEGER NOT NULL,
	occupied_slots INTEGER NOT NULL DEFAULT 0,
	price_per_hour DOUBLE PRECISION NOT NULL,
	rating DOUBLE PRECISION NOT NULL DEFAULT 4.5,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL,
	CONSTRAINT occupied_within_capacity CHECK (occupied_slots >= 0 AND occupied_slots <= total_slots)
);

CREATE TABLE IF NOT EXISTS bookings (
	id UUID PRIMARY KEY,
	user_id UUID NOT NULL REFERENCES users(id),
	zone_id UUID NOT NULL REFERENCES parking_zones(id),
	start_time TIMESTAMPTZ NOT NULL,
	end_time TIMESTAMPTZ,
	status VARCHAR(20) NOT NULL DEFAULT 'active',
	total_cost DOUBLE PRECISION NOT NULL DEFAULT 0,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

-- One active session per user, enforced by the store as well as the service.
CREATE UNIQUE INDEX IF NOT EXISTS one_active_booking_per_user
	ON bookings (user_id) WHERE status = 'active';
`

type seedZone struct {
	name     string
	location string
	lat      float64
	lon      float64
	total    int
	occupied int
	price    float64
}

var seedZones = []seedZone{
	// Kochi
	{"Lulu Mall Main Deck", "Edappally, Kochi", 10.0271, 76.3082, 3000, 1200, 40.00},
	{"Marine Drive Parking", "Marine Drive, Kochi", 9.9776, 76.2759, 200, 150, 30.00},
	{"Kochi Metro Station", "Aluva, Kochi", 10.1098, 76.3496, 500, 120, 20.00},

	// Thiruvananthapuram
	{"Mall of Travancore", "Chackai, Trivandrum", 8.4907, 76.9312, 1500, 400, 40.00},
	{"Thampanoor Central", "Thampanoor, Trivandrum", 8.4876, 76.9532, 300, 280, 25.00},
	{"Kovalam Beach Parking", "Kovalam", 8.3976, 76.9743, 100, 80, 50.00},

	// Kozhikode
	{"HiLITE Mall", "Palazhi, Calicut", 11.2464, 75.8341, 2000, 1800, 35.00},
	{"Kozhikode Beach", "Beach Rd, Calicut", 11.2618, 75.7664, 150, 140, 20.00},

	// Thrissur
	{"Sobha City Mall", "Puzhakkal, Thrissur", 10.5562, 76.1824, 1200, 500, 30.00},
	{"Vadakkumnathan South", "Round South, Thrissur", 10.5230, 76.2144, 250, 200, 25.00},

	// Other major spots
	{"Munnar Central", "Munnar Town", 10.0889, 77.0595, 80, 60, 60.00},
	{"Alappuzha Boat Jetty", "Finishing Point, Alappuzha", 9.4925, 76.3387, 120, 100, 30.00},
}

// Migrate creates the schema if it does not exist yet.
func Migrate(ctx context.Context, db PgxIface) error {
	if _, err := db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// SeedZones loads the initial zone set when the zones table is empty.
func SeedZones(ctx context.Context, db PgxIface) error {
	var count int64
	if err := db.QueryRow(ctx, `SELECT COUNT(*) FROM parking_zones`).Scan(&count); err != nil {
		return fmt.Errorf("count zones: %w", err)
	}
	if count > 0 {
		return nil
	}

	query := `
		INSERT INTO parking_zones (id, name, location, lat, lon, total_slots, occupied_slots, price_per_hour, rating, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
	`

	for _, z := range seedZones {
		_, err := db.Exec(ctx, query,
			uuid.New(), z.name, z.location, z.lat, z.lon, z.total, z.occupied, z.price, 4.5,
		)
		if err != nil {
			return fmt.Errorf("seed zone %s: %w", z.name, err)
		}
	}

	return nil
}
