package accounts

import (
	"context"
	"errors"
	"strings"

	"github.com/Domenick1991/flightservice/internal/domain"
	"github.com/Domenick1991/flightservice/internal/repository"
	"github.com/Domenick1991/flightservice/internal/session"
)

type AccountUseCase interface {
	CreateUser(ctx context.Context, username, password string, balance int64) error
	Login(ctx context.Context, sess *session.Session, username, password string) error
}

type AccountService struct {
	users repository.UserRepository
}

func NewAccountService(users repository.UserRepository) *AccountService {
	return &AccountService{users: users}
}

// CreateUser signs up a customer with an initial deposit. The deposit must be
// non-negative; balances only change afterwards through payment and refund.
func (s *AccountService) CreateUser(ctx context.Context, username, password string, balance int64) error {
	if balance < 0 {
		return domain.ErrNegativeBalance
	}
	return s.users.Create(ctx, username, password, balance)
}

// Login binds the session to a verified identity. The already-logged-in check
// happens before any store access. Password comparison is case-insensitive,
// matching the legacy service.
func (s *AccountService) Login(ctx context.Context, sess *session.Session, username, password string) error {
	if _, ok := sess.User(); ok {
		return domain.ErrAlreadyLoggedIn
	}

	stored, err := s.users.PasswordOf(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrAuthFailed
		}
		return err
	}
	if !strings.EqualFold(password, stored) {
		return domain.ErrAuthFailed
	}

	return sess.Authenticate(username)
}

var _ AccountUseCase = (*AccountService)(nil)
