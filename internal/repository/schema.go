package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// InitializeSchema creates the tables on startup when they do not exist yet.
func InitializeSchema(ctx context.Context, db *pgxpool.Pool) error {
	_, err := db.Exec(ctx, `
CREATE TABLE IF NOT EXISTS flights (
	id BIGSERIAL PRIMARY KEY,
	flight_no VARCHAR(10) NOT NULL,
	airline_name VARCHAR(50) NOT NULL,
	origin VARCHAR(50) NOT NULL,
	destination VARCHAR(50) NOT NULL,
	departure_time TIMESTAMPTZ NOT NULL,
	arrival_time TIMESTAMPTZ NOT NULL,
	duration_minutes INTEGER NOT NULL,
	base_fare NUMERIC(10, 2) NOT NULL,
	total_seats INTEGER NOT NULL,
	seats_available INTEGER NOT NULL,
	demand_level VARCHAR(10),
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`)
	if err != nil {
		return fmt.Errorf("create flights table: %w", err)
	}

	_, err = db.Exec(ctx, `
CREATE TABLE IF NOT EXISTS bookings (
	id BIGSERIAL PRIMARY KEY,
	pnr VARCHAR(12) NOT NULL UNIQUE,
	flight_id BIGINT NOT NULL REFERENCES flights(id),
	passenger_name VARCHAR(100) NOT NULL,
	seat_no VARCHAR(5) NOT NULL DEFAULT '',
	price NUMERIC(10, 2) NOT NULL,
	status VARCHAR(20) NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`)
	if err != nil {
		return fmt.Errorf("create bookings table: %w", err)
	}

	_, err = db.Exec(ctx, `
CREATE TABLE IF NOT EXISTS fare_history (
	id BIGSERIAL PRIMARY KEY,
	flight_id BIGINT NOT NULL REFERENCES flights(id),
	recorded_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	price NUMERIC(10, 2) NOT NULL,
	seats_available INTEGER NOT NULL,
	demand_level VARCHAR(10) NOT NULL
);`)
	if err != nil {
		return fmt.Errorf("create fare_history table: %w", err)
	}
	return nil
}
