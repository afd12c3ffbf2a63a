package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/arunkx/skyfare/internal/domain"
)

// Sort keys accepted by List and Search.
const (
	SortByPrice    = "price"
	SortByDuration = "duration"

	OrderAsc  = "asc"
	OrderDesc = "desc"
)

type FlightRepository interface {
	List(ctx context.Context, sortBy, order string) ([]domain.Flight, error)
	Search(ctx context.Context, origin, destination string, dayStart, dayEnd time.Time) ([]domain.Flight, error)
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	SeedIfEmpty(ctx context.Context, flights []domain.Flight) (int, error)
}

type PGFlightRepository struct {
	db *pgxpool.Pool
}

func NewFlightRepository(db *pgxpool.Pool) FlightRepository {
	return &PGFlightRepository{db: db}
}

const flightColumns = `id, flight_no, airline_name, origin, destination, departure_time, arrival_time, duration_minutes, base_fare, total_seats, seats_available, demand_level, created_at, updated_at`

func (r *PGFlightRepository) List(ctx context.Context, sortBy, order string) ([]domain.Flight, error) {
	rows, err := r.db.Query(ctx, `SELECT `+flightColumns+` FROM flights ORDER BY `+orderClause(sortBy, order))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanFlights(rows)
}

func (r *PGFlightRepository) Search(ctx context.Context, origin, destination string, dayStart, dayEnd time.Time) ([]domain.Flight, error) {
	rows, err := r.db.Query(ctx, `SELECT `+flightColumns+` FROM flights
		WHERE origin=$1 AND destination=$2 AND departure_time >= $3 AND departure_time <= $4
		ORDER BY departure_time`, origin, destination, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanFlights(rows)
}

func (r *PGFlightRepository) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	row := r.db.QueryRow(ctx, `SELECT `+flightColumns+` FROM flights WHERE id=$1`, id)
	f, err := scanFlight(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrFlightNotFound
	}
	if err != nil {
		return nil, err
	}
	return f, nil
}

// SeedIfEmpty inserts the given flights only when the table holds none.
// Returns the number of rows inserted.
func (r *PGFlightRepository) SeedIfEmpty(ctx context.Context, flights []domain.Flight) (int, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	var count int
	if err := tx.QueryRow(ctx, `SELECT count(*) FROM flights`).Scan(&count); err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}

	for _, f := range flights {
		if _, err := tx.Exec(ctx, `INSERT INTO flights (flight_no, airline_name, origin, destination, departure_time, arrival_time, duration_minutes, base_fare, total_seats, seats_available)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			f.FlightNo, f.AirlineName, f.Origin, f.Destination, f.DepartureTime, f.ArrivalTime, f.DurationMinutes, f.BaseFare, f.TotalSeats, f.SeatsAvailable); err != nil {
			return 0, err
		}
	}
	return len(flights), tx.Commit(ctx)
}

func orderClause(sortBy, order string) string {
	col := "base_fare"
	if sortBy == SortByDuration {
		col = "duration_minutes"
	}
	dir := "ASC"
	if order == OrderDesc {
		dir = "DESC"
	}
	return col + " " + dir
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFlight(row rowScanner) (*domain.Flight, error) {
	var f domain.Flight
	var demand *string
	if err := row.Scan(&f.ID, &f.FlightNo, &f.AirlineName, &f.Origin, &f.Destination, &f.DepartureTime, &f.ArrivalTime, &f.DurationMinutes, &f.BaseFare, &f.TotalSeats, &f.SeatsAvailable, &demand, &f.CreatedAt, &f.UpdatedAt); err != nil {
		return nil, err
	}
	if demand != nil {
		d := domain.DemandLevel(*demand)
		f.Demand = &d
	}
	return &f, nil
}

func scanFlights(rows pgx.Rows) ([]domain.Flight, error) {
	flights := make([]domain.Flight, 0)
	for rows.Next() {
		f, err := scanFlight(rows)
		if err != nil {
			return nil, err
		}
		flights = append(flights, *f)
	}
	return flights, rows.Err()
}

var _ FlightRepository = (*PGFlightRepository)(nil)
