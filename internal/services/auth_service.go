package services

import (
	"context"
	"errors"

	"bookstore/internal/apperr"
	"bookstore/internal/auth"
	"bookstore/internal/domain"
	"bookstore/internal/metrics"
	"bookstore/internal/repos"
)

var ErrBadCreds = errors.New("invalid email or password")

type UserStore interface {
	Create(ctx context.Context, username, email, hash string) (int64, error)
	ByEmail(ctx context.Context, email string) (*domain.User, error)
}

type AuthService struct {
	Users   UserStore
	Hasher  auth.Hasher
	Metrics *metrics.AppMetrics
}

func NewAuthService(users UserStore, hasher auth.Hasher, m *metrics.AppMetrics) *AuthService {
	return &AuthService{Users: users, Hasher: hasher, Metrics: m}
}

// Signup creates an account and returns its id.
func (s *AuthService) Signup(ctx context.Context, username, email, password string) (int64, error) {
	hash, err := s.Hasher.Hash(password)
	if err != nil {
		return 0, apperr.New(apperr.Unhandled, "hash password", err)
	}
	id, err := s.Users.Create(ctx, username, email, hash)
	if errors.Is(err, repos.ErrDuplicateKey) {
		return 0, apperr.Duplicate("Username or email already exists", err)
	}
	if err != nil {
		return 0, apperr.Store("create user", err)
	}
	s.Metrics.SignedUp(ctx)
	return id, nil
}

// Login returns the user whose email and password match.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, error) {
	u, err := s.Users.ByEmail(ctx, email)
	if errors.Is(err, repos.ErrNotFound) {
		s.Metrics.LoginAttempt(ctx, "denied")
		return nil, apperr.New(apperr.Auth, "Invalid email or password", ErrBadCreds)
	}
	if err != nil {
		s.Metrics.LoginAttempt(ctx, "error")
		return nil, apperr.Store("find user", err)
	}
	if !auth.Verify(u.Hash, password) {
		s.Metrics.LoginAttempt(ctx, "denied")
		return nil, apperr.New(apperr.Auth, "Invalid email or password", ErrBadCreds)
	}
	s.Metrics.LoginAttempt(ctx, "ok")
	return u, nil
}
