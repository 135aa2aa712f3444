package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Domenick1991/flightservice/internal/domain"
	"github.com/Domenick1991/flightservice/internal/storage/postgres"
	"github.com/jackc/pgx/v5"
)

// Store hands out the querier of the active unit of work.
type Store interface {
	GetQuerier(ctx context.Context) postgres.Querier
}

// FlightRepository reads the flight catalog. The catalog is an external
// read-only dataset, so these are pure reads with no locking concerns.
type FlightRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	FindDirect(ctx context.Context, origin, dest string, day, limit int) ([]domain.Flight, error)
	FindConnections(ctx context.Context, origin, dest string, day, limit int) ([][2]domain.Flight, error)
}

type PGFlightRepository struct {
	db Store
}

func NewFlightRepository(db Store) FlightRepository {
	return &PGFlightRepository{db: db}
}

const flightColumns = `id, day_of_month, carrier, flight_number, origin, destination, duration, capacity, price, canceled`

func (r *PGFlightRepository) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	row := r.db.GetQuerier(ctx).QueryRow(ctx, `SELECT `+flightColumns+` FROM flights WHERE id=$1`, id)
	var f domain.Flight
	if err := row.Scan(&f.ID, &f.DayOfMonth, &f.Carrier, &f.FlightNumber, &f.Origin, &f.Destination, &f.Duration, &f.Capacity, &f.Price, &f.Canceled); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("flight %d: %w", id, pgx.ErrNoRows)
		}
		return nil, err
	}
	return &f, nil
}

func (r *PGFlightRepository) FindDirect(ctx context.Context, origin, dest string, day, limit int) ([]domain.Flight, error) {
	rows, err := r.db.GetQuerier(ctx).Query(ctx, `SELECT `+flightColumns+` FROM flights
		WHERE origin=$1 AND destination=$2 AND day_of_month=$3 AND NOT canceled
		ORDER BY duration, id
		LIMIT $4`, origin, dest, day, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	flights := make([]domain.Flight, 0)
	for rows.Next() {
		var f domain.Flight
		if err := rows.Scan(&f.ID, &f.DayOfMonth, &f.Carrier, &f.FlightNumber, &f.Origin, &f.Destination, &f.Duration, &f.Capacity, &f.Price, &f.Canceled); err != nil {
			return nil, err
		}
		flights = append(flights, f)
	}
	return flights, rows.Err()
}

func (r *PGFlightRepository) FindConnections(ctx context.Context, origin, dest string, day, limit int) ([][2]domain.Flight, error) {
	rows, err := r.db.GetQuerier(ctx).Query(ctx, `SELECT
			f1.id, f1.day_of_month, f1.carrier, f1.flight_number, f1.origin, f1.destination, f1.duration, f1.capacity, f1.price, f1.canceled,
			f2.id, f2.day_of_month, f2.carrier, f2.flight_number, f2.origin, f2.destination, f2.duration, f2.capacity, f2.price, f2.canceled
		FROM flights f1
		JOIN flights f2 ON f1.destination = f2.origin AND f1.day_of_month = f2.day_of_month
		WHERE f1.origin=$1 AND f2.destination=$2 AND f1.day_of_month=$3 AND NOT f1.canceled AND NOT f2.canceled
		ORDER BY f1.duration + f2.duration, f1.id, f2.id
		LIMIT $4`, origin, dest, day, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	pairs := make([][2]domain.Flight, 0)
	for rows.Next() {
		var a, b domain.Flight
		if err := rows.Scan(
			&a.ID, &a.DayOfMonth, &a.Carrier, &a.FlightNumber, &a.Origin, &a.Destination, &a.Duration, &a.Capacity, &a.Price, &a.Canceled,
			&b.ID, &b.DayOfMonth, &b.Carrier, &b.FlightNumber, &b.Origin, &b.Destination, &b.Duration, &b.Capacity, &b.Price, &b.Canceled,
		); err != nil {
			return nil, err
		}
		pairs = append(pairs, [2]domain.Flight{a, b})
	}
	return pairs, rows.Err()
}

var _ FlightRepository = (*PGFlightRepository)(nil)
