package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/Domenick1991/flightservice/internal/storage/postgres"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
)

func TestNewFlightRepository(t *testing.T) {
	db := postgres.NewTxManager(&pgxpool.Pool{})
	repo := NewFlightRepository(db)
	assert.NotNil(t, repo)
}

func TestNewReservationRepository(t *testing.T) {
	db := postgres.NewTxManager(&pgxpool.Pool{})
	repo := NewReservationRepository(db)
	assert.NotNil(t, repo)
}

func TestNewUserRepository(t *testing.T) {
	db := postgres.NewTxManager(&pgxpool.Pool{})
	repo := NewUserRepository(db)
	assert.NotNil(t, repo)
}

// fakeQuerier answers the watermark read and records the insert.
type fakeQuerier struct {
	watermark int64
	execSQL   string
	execArgs  []any
}

func (q *fakeQuerier) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	q.execSQL = sql
	q.execArgs = args
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func (q *fakeQuerier) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, errors.New("unexpected query")
}

func (q *fakeQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return scanFunc(func(dest ...any) error {
		*(dest[0].(*int64)) = q.watermark
		return nil
	})
}

type scanFunc func(dest ...any) error

func (f scanFunc) Scan(dest ...any) error { return f(dest...) }

type fakeStore struct {
	q postgres.Querier
}

func (s fakeStore) GetQuerier(ctx context.Context) postgres.Querier { return s.q }

// The allocator reads the MAX(next_id) watermark w, inserts the reservation
// under id w with next_id w+1, and returns w. Every allocation therefore
// moves the watermark forward, so ids are strictly increasing and a cleared
// row's id can never be handed out again.
func TestReservationRepository_CreateAdvancesWatermark(t *testing.T) {
	q := &fakeQuerier{watermark: 41}
	repo := NewReservationRepository(fakeStore{q: q})

	id, err := repo.Create(context.Background(), "alice", 4, 0, 12)

	assert.NoError(t, err)
	assert.Equal(t, int64(41), id)
	assert.Contains(t, q.execSQL, "INSERT INTO reservations")
	assert.Equal(t, []any{int64(41), int64(42), "alice", int64(4), int64(0), 12}, q.execArgs)

	q.watermark = 42
	next, err := repo.Create(context.Background(), "bob", 5, 6, 14)

	assert.NoError(t, err)
	assert.Greater(t, next, id)
	assert.Equal(t, []any{int64(42), int64(43), "bob", int64(5), int64(6), 14}, q.execArgs)
}
