package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Domenick1991/flightservice/internal/domain"
	"github.com/Domenick1991/flightservice/internal/storage/postgres"
	"github.com/jackc/pgx/v5"
)

// UserRepository is the account ledger. Balances are debited on payment and
// credited on cancellation of a paid reservation, always inside the calling
// protocol's unit of work.
type UserRepository interface {
	Create(ctx context.Context, username, password string, balance int64) error
	PasswordOf(ctx context.Context, username string) (string, error)
	Balance(ctx context.Context, username string) (int64, error)
	Debit(ctx context.Context, username string, amount int64) error
	Credit(ctx context.Context, username string, amount int64) error
}

type PGUserRepository struct {
	db Store
}

func NewUserRepository(db Store) UserRepository {
	return &PGUserRepository{db: db}
}

func (r *PGUserRepository) Create(ctx context.Context, username, password string, balance int64) error {
	_, err := r.db.GetQuerier(ctx).Exec(ctx,
		`INSERT INTO users (username, password, balance) VALUES ($1, $2, $3)`,
		username, password, balance)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return domain.ErrUserExists
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *PGUserRepository) PasswordOf(ctx context.Context, username string) (string, error) {
	var password string
	err := r.db.GetQuerier(ctx).QueryRow(ctx,
		`SELECT password FROM users WHERE username=$1`, username).Scan(&password)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", domain.ErrUserNotFound
		}
		return "", fmt.Errorf("password lookup: %w", err)
	}
	return password, nil
}

func (r *PGUserRepository) Balance(ctx context.Context, username string) (int64, error) {
	var balance int64
	err := r.db.GetQuerier(ctx).QueryRow(ctx,
		`SELECT balance FROM users WHERE username=$1`, username).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrUserNotFound
		}
		return 0, fmt.Errorf("balance lookup: %w", err)
	}
	return balance, nil
}

func (r *PGUserRepository) Debit(ctx context.Context, username string, amount int64) error {
	return r.adjustBalance(ctx, username, -amount)
}

func (r *PGUserRepository) Credit(ctx context.Context, username string, amount int64) error {
	return r.adjustBalance(ctx, username, amount)
}

func (r *PGUserRepository) adjustBalance(ctx context.Context, username string, delta int64) error {
	cmd, err := r.db.GetQuerier(ctx).Exec(ctx,
		`UPDATE users SET balance = balance + $2 WHERE username=$1`, username, delta)
	if err != nil {
		return fmt.Errorf("adjust balance: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

var _ UserRepository = (*PGUserRepository)(nil)
