package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Domenick1991/flightservice/internal/domain"
	"github.com/jackc/pgx/v5"
)

// ReservationRepository is the reservation ledger. Every method runs against
// the querier of the active unit of work, so the booking, payment and
// cancellation protocols decide the transaction boundaries, not the ledger.
type ReservationRepository interface {
	// HasSameDay reports whether the user holds a non-cancelled reservation
	// on the given day. Absence of rows is false, not an error; store
	// failures are returned as errors.
	HasSameDay(ctx context.Context, username string, day int) (bool, error)
	// SeatsTaken counts non-cancelled reservations referencing the flight.
	SeatsTaken(ctx context.Context, flightID int64) (int, error)
	// Create allocates the next reservation id from the watermark and
	// inserts the row unpaid. Safe against concurrent allocation only
	// inside a serializable unit of work.
	Create(ctx context.Context, username string, fid1, fid2 int64, day int) (int64, error)
	FindUnpaid(ctx context.Context, username string, id int64) (bool, error)
	// Price sums the prices of the reservation's referenced flights.
	Price(ctx context.Context, id int64) (int64, error)
	SetPaid(ctx context.Context, id int64) error
	// Clear cancels the reservation: owner, flights, date and paid flag are
	// reset but the row stays, so the id is never reused.
	Clear(ctx context.Context, id int64) error
	OwnerAndPaid(ctx context.Context, id int64) (string, bool, error)
	ListByUser(ctx context.Context, username string) ([]domain.Reservation, error)
}

type PGReservationRepository struct {
	db Store
}

func NewReservationRepository(db Store) ReservationRepository {
	return &PGReservationRepository{db: db}
}

func (r *PGReservationRepository) HasSameDay(ctx context.Context, username string, day int) (bool, error) {
	var exists bool
	err := r.db.GetQuerier(ctx).QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM reservations WHERE username=$1 AND flight_date=$2)`,
		username, day).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("same-day lookup: %w", err)
	}
	return exists, nil
}

func (r *PGReservationRepository) SeatsTaken(ctx context.Context, flightID int64) (int, error) {
	// Cancelled rows have both flight references cleared to 0 and so never
	// match a real flight id.
	var taken int
	err := r.db.GetQuerier(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM reservations WHERE flight_id_1=$1 OR flight_id_2=$1`,
		flightID).Scan(&taken)
	if err != nil {
		return 0, fmt.Errorf("seat count: %w", err)
	}
	return taken, nil
}

func (r *PGReservationRepository) Create(ctx context.Context, username string, fid1, fid2 int64, day int) (int64, error) {
	q := r.db.GetQuerier(ctx)

	// The watermark row keeps MAX(next_id) at the next free id. Two units
	// reading the same watermark cannot both commit under serializable
	// isolation; the loser aborts with a serialization failure.
	var id int64
	if err := q.QueryRow(ctx, `SELECT MAX(next_id) FROM reservations`).Scan(&id); err != nil {
		return 0, fmt.Errorf("read id watermark: %w", err)
	}

	_, err := q.Exec(ctx, `INSERT INTO reservations (reservation_id, next_id, username, flight_id_1, flight_id_2, flight_date, paid)
		VALUES ($1, $2, $3, $4, $5, $6, false)`, id, id+1, username, fid1, fid2, day)
	if err != nil {
		return 0, fmt.Errorf("insert reservation: %w", err)
	}
	return id, nil
}

func (r *PGReservationRepository) FindUnpaid(ctx context.Context, username string, id int64) (bool, error) {
	var exists bool
	err := r.db.GetQuerier(ctx).QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM reservations WHERE username=$1 AND reservation_id=$2 AND NOT paid)`,
		username, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("unpaid lookup: %w", err)
	}
	return exists, nil
}

func (r *PGReservationRepository) Price(ctx context.Context, id int64) (int64, error) {
	var total int64
	err := r.db.GetQuerier(ctx).QueryRow(ctx,
		`SELECT COALESCE(SUM(f.price), 0) FROM reservations r
		JOIN flights f ON f.id IN (r.flight_id_1, r.flight_id_2)
		WHERE r.reservation_id=$1`, id).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("reservation price: %w", err)
	}
	return total, nil
}

func (r *PGReservationRepository) SetPaid(ctx context.Context, id int64) error {
	cmd, err := r.db.GetQuerier(ctx).Exec(ctx,
		`UPDATE reservations SET paid=true WHERE reservation_id=$1`, id)
	if err != nil {
		return fmt.Errorf("mark paid: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrReservationNotFound
	}
	return nil
}

func (r *PGReservationRepository) Clear(ctx context.Context, id int64) error {
	cmd, err := r.db.GetQuerier(ctx).Exec(ctx,
		`UPDATE reservations SET username='', flight_id_1=0, flight_id_2=0, flight_date=0, paid=false WHERE reservation_id=$1`, id)
	if err != nil {
		return fmt.Errorf("clear reservation: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrReservationNotFound
	}
	return nil
}

func (r *PGReservationRepository) OwnerAndPaid(ctx context.Context, id int64) (string, bool, error) {
	var owner string
	var paid bool
	err := r.db.GetQuerier(ctx).QueryRow(ctx,
		`SELECT username, paid FROM reservations WHERE reservation_id=$1`, id).Scan(&owner, &paid)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, domain.ErrReservationNotFound
		}
		return "", false, fmt.Errorf("reservation lookup: %w", err)
	}
	return owner, paid, nil
}

func (r *PGReservationRepository) ListByUser(ctx context.Context, username string) ([]domain.Reservation, error) {
	rows, err := r.db.GetQuerier(ctx).Query(ctx,
		`SELECT reservation_id, username, flight_id_1, flight_id_2, flight_date, paid
		FROM reservations WHERE username=$1 ORDER BY reservation_id`, username)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reservations := make([]domain.Reservation, 0)
	for rows.Next() {
		var res domain.Reservation
		if err := rows.Scan(&res.ID, &res.Username, &res.FlightID1, &res.FlightID2, &res.FlightDate, &res.Paid); err != nil {
			return nil, err
		}
		reservations = append(reservations, res)
	}
	return reservations, rows.Err()
}

var _ ReservationRepository = (*PGReservationRepository)(nil)
