package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/arunkx/skyfare/internal/domain"
)

// PriceFunc quotes a fare for the flight snapshot seen inside the booking
// transaction, after the seat decrement.
type PriceFunc func(f domain.Flight) decimal.Decimal

type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking, quote PriceFunc) error
	GetByPNR(ctx context.Context, pnr string) (*domain.Booking, error)
	List(ctx context.Context) ([]domain.Booking, error)
	UpdateStatus(ctx context.Context, pnr string, status domain.BookingStatus) (*domain.Booking, error)
	Cancel(ctx context.Context, pnr string) (*domain.Booking, error)
}

type PGBookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) BookingRepository {
	return &PGBookingRepository{db: db}
}

const bookingColumns = `id, pnr, flight_id, passenger_name, seat_no, price, status, created_at, updated_at`

// Create runs the whole booking as one transaction: lock the flight row,
// check seats while holding the lock, decrement, quote the price off the
// post-decrement count, insert the booking. Either everything commits or
// nothing does.
func (r *PGBookingRepository) Create(ctx context.Context, booking *domain.Booking, quote PriceFunc) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx, `SELECT `+flightColumns+` FROM flights WHERE id=$1 FOR UPDATE`, booking.FlightID)
	flight, err := scanFlight(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrFlightNotFound
	}
	if err != nil {
		return err
	}
	if flight.SeatsAvailable <= 0 {
		return domain.ErrNoSeatsAvailable
	}

	if _, err := tx.Exec(ctx, `UPDATE flights SET seats_available = seats_available - 1, updated_at = now() WHERE id=$1`, flight.ID); err != nil {
		return err
	}
	flight.SeatsAvailable--

	booking.Price = quote(*flight)
	booking.Status = domain.BookingStatusConfirmed
	if err := tx.QueryRow(ctx, `INSERT INTO bookings (pnr, flight_id, passenger_name, seat_no, price, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`,
		booking.PNR, booking.FlightID, booking.PassengerName, booking.SeatNo, booking.Price, booking.Status).
		Scan(&booking.ID, &booking.CreatedAt, &booking.UpdatedAt); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *PGBookingRepository) GetByPNR(ctx context.Context, pnr string) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE pnr=$1`, pnr)
	b, err := scanBooking(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrBookingNotFound
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *PGBookingRepository) List(ctx context.Context) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `SELECT `+bookingColumns+` FROM bookings ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}

func (r *PGBookingRepository) UpdateStatus(ctx context.Context, pnr string, status domain.BookingStatus) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `UPDATE bookings SET status=$1, updated_at=now() WHERE pnr=$2 RETURNING `+bookingColumns, status, pnr)
	b, err := scanBooking(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrBookingNotFound
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

// Cancel restores one seat (capped at total_seats) and marks the booking
// CANCELLED in a single transaction. Cancelling an already cancelled booking
// is a no-op success.
func (r *PGBookingRepository) Cancel(ctx context.Context, pnr string) (*domain.Booking, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE pnr=$1 FOR UPDATE`, pnr)
	b, err := scanBooking(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrBookingNotFound
	}
	if err != nil {
		return nil, err
	}
	if b.Status == domain.BookingStatusCancelled {
		return b, nil
	}

	if _, err := tx.Exec(ctx, `UPDATE flights SET seats_available = LEAST(total_seats, seats_available + 1), updated_at = now() WHERE id=$1`, b.FlightID); err != nil {
		return nil, err
	}

	row = tx.QueryRow(ctx, `UPDATE bookings SET status=$1, updated_at=now() WHERE pnr=$2 RETURNING `+bookingColumns, domain.BookingStatusCancelled, pnr)
	b, err = scanBooking(row)
	if err != nil {
		return nil, err
	}

	return b, tx.Commit(ctx)
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var b domain.Booking
	if err := row.Scan(&b.ID, &b.PNR, &b.FlightID, &b.PassengerName, &b.SeatNo, &b.Price, &b.Status, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	return &b, nil
}

var _ BookingRepository = (*PGBookingRepository)(nil)
