package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/arunkx/skyfare/internal/domain"
)

type FareHistoryRepository interface {
	ListByFlight(ctx context.Context, flightID int64) ([]domain.FareSnapshot, error)
}

type PGFareHistoryRepository struct {
	db *pgxpool.Pool
}

func NewFareHistoryRepository(db *pgxpool.Pool) FareHistoryRepository {
	return &PGFareHistoryRepository{db: db}
}

// ListByFlight returns snapshots newest first.
func (r *PGFareHistoryRepository) ListByFlight(ctx context.Context, flightID int64) ([]domain.FareSnapshot, error) {
	rows, err := r.db.Query(ctx, `SELECT id, flight_id, recorded_at, price, seats_available, demand_level FROM fare_history WHERE flight_id=$1 ORDER BY recorded_at DESC`, flightID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	history := make([]domain.FareSnapshot, 0)
	for rows.Next() {
		var s domain.FareSnapshot
		if err := rows.Scan(&s.ID, &s.FlightID, &s.RecordedAt, &s.Price, &s.SeatsAvailable, &s.Demand); err != nil {
			return nil, err
		}
		history = append(history, s)
	}
	return history, rows.Err()
}

var _ FareHistoryRepository = (*PGFareHistoryRepository)(nil)
