package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/arunkx/skyfare/internal/domain"
)

// PerturbFunc mutates a locked flight in place (seats, demand) and returns
// the fare snapshot to append for it.
type PerturbFunc func(f *domain.Flight) domain.FareSnapshot

type MarketRepository interface {
	FlightIDs(ctx context.Context) ([]int64, error)
	ApplyTick(ctx context.Context, flightIDs []int64, perturb PerturbFunc) ([]domain.FareSnapshot, error)
}

type PGMarketRepository struct {
	db *pgxpool.Pool
}

func NewMarketRepository(db *pgxpool.Pool) MarketRepository {
	return &PGMarketRepository{db: db}
}

func (r *PGMarketRepository) FlightIDs(ctx context.Context) ([]int64, error) {
	rows, err := r.db.Query(ctx, `SELECT id FROM flights ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// ApplyTick perturbs the given flights and appends one fare snapshot each,
// all in a single transaction. A failure anywhere rolls the whole tick back.
func (r *PGMarketRepository) ApplyTick(ctx context.Context, flightIDs []int64, perturb PerturbFunc) ([]domain.FareSnapshot, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	snapshots := make([]domain.FareSnapshot, 0, len(flightIDs))
	for _, id := range flightIDs {
		row := tx.QueryRow(ctx, `SELECT `+flightColumns+` FROM flights WHERE id=$1 FOR UPDATE`, id)
		flight, err := scanFlight(row)
		if err != nil {
			return nil, err
		}

		snap := perturb(flight)

		if _, err := tx.Exec(ctx, `UPDATE flights SET seats_available=$1, demand_level=$2, updated_at=now() WHERE id=$3`,
			flight.SeatsAvailable, flight.Demand, flight.ID); err != nil {
			return nil, err
		}
		if err := tx.QueryRow(ctx, `INSERT INTO fare_history (flight_id, recorded_at, price, seats_available, demand_level)
			VALUES ($1, $2, $3, $4, $5) RETURNING id`,
			snap.FlightID, snap.RecordedAt, snap.Price, snap.SeatsAvailable, snap.Demand).Scan(&snap.ID); err != nil {
			return nil, err
		}
		snapshots = append(snapshots, snap)
	}

	return snapshots, tx.Commit(ctx)
}

var _ MarketRepository = (*PGMarketRepository)(nil)
