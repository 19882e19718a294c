package service

import (
	"context"
	"fmt"

	"jobly/internal/auth"
	"jobly/internal/models"
	"jobly/internal/query"

	"go.uber.org/zap"
)

// UserStore is implemented by *postgres.Store.
type UserStore interface {
	ListUsers(ctx context.Context) ([]models.UserSummary, error)
	GetUser(ctx context.Context, username string) (*models.User, error)
	GetUserCredentials(ctx context.Context, username string) (*models.User, error)
	CreateUser(ctx context.Context, u models.NewUser) (*models.User, error)
	UpdateUser(ctx context.Context, username string, upd models.UserUpdate) (*models.User, error)
	DeleteUser(ctx context.Context, username string) (*models.UserSummary, error)
}

// Users hashes passwords on the way in. Profiles are not cached.
type Users struct {
	store  UserStore
	hasher auth.Hasher
	logger *zap.Logger
}

func NewUsers(store UserStore, hasher auth.Hasher, logger *zap.Logger) *Users {
	return &Users{store: store, hasher: hasher, logger: logger}
}

func (s *Users) List(ctx context.Context) ([]models.UserSummary, error) {
	return s.store.ListUsers(ctx)
}

func (s *Users) Get(ctx context.Context, username string) (*models.User, error) {
	return s.store.GetUser(ctx, username)
}

// Register stores u with its password hashed.
func (s *Users) Register(ctx context.Context, u models.NewUser) (*models.User, error) {
	hash, err := s.hasher.Hash(u.Password)
	if err != nil {
		return nil, fmt.Errorf("register user: %w", err)
	}
	u.Password = hash

	return s.store.CreateUser(ctx, u)
}

// Update applies upd, hashing a present password first. It returns nil if
// username is unknown.
func (s *Users) Update(ctx context.Context, username string, upd models.UserUpdate) (*models.User, error) {
	if plain, ok := upd.Password.Get(); ok {
		hash, err := s.hasher.Hash(plain)
		if err != nil {
			return nil, fmt.Errorf("update user: %w", err)
		}
		upd.Password = query.Some(hash)
	}

	return s.store.UpdateUser(ctx, username, upd)
}

func (s *Users) Delete(ctx context.Context, username string) (*models.UserSummary, error) {
	return s.store.DeleteUser(ctx, username)
}

// Authenticate returns the user when password matches the stored hash, with
// IsAdmin filled in. An unknown username or a wrong password yields nil.
func (s *Users) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	creds, err := s.store.GetUserCredentials(ctx, username)
	if err != nil {
		return nil, err
	}
	if creds == nil {
		s.logger.Info("authentication failed", zap.String("username", username), zap.String("reason", "unknown user"))
		return nil, nil
	}

	ok, err := s.hasher.Compare(creds.Password, password)
	if err != nil {
		return nil, fmt.Errorf("authenticate user: %w", err)
	}
	if !ok {
		s.logger.Info("authentication failed", zap.String("username", username), zap.String("reason", "password mismatch"))
		return nil, nil
	}

	user, err := s.store.GetUser(ctx, username)
	if err != nil {
		return nil, err
	}
	if user != nil {
		user.IsAdmin = creds.IsAdmin
	}
	return user, nil
}
