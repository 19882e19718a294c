package postgres

import (
	"context"
	"fmt"

	"jobly/internal/models"
	"jobly/internal/query"

	"go.uber.org/zap"
)

const userColumns = "username, first_name, last_name, email, photo_url"

var userReserved = query.Deny("username", "is_admin")

func (s *Store) ListUsers(ctx context.Context) ([]models.UserSummary, error) {
	users := []models.UserSummary{}

	stmt := query.Raw(`SELECT username, first_name, last_name, email FROM users ORDER BY username`)
	if _, err := s.q.Query(ctx, stmt, &users); err != nil {
		s.logger.Error("failed to list users", zap.Error(err))
		return nil, fmt.Errorf("list users: %w", err)
	}

	return users, nil
}

// GetUser returns the public profile of a user, or nil if unknown.
func (s *Store) GetUser(ctx context.Context, username string) (*models.User, error) {
	var user models.User

	n, err := s.q.Query(ctx, query.Raw(`SELECT `+userColumns+` FROM users WHERE username = $1`, username), &user)
	if err != nil {
		s.logger.Error("failed to get user",
			zap.String("username", username),
			zap.Error(err),
		)
		return nil, fmt.Errorf("get user: %w", err)
	}
	if n == 0 {
		return nil, nil
	}

	return &user, nil
}

// GetUserCredentials returns the stored password hash and admin flag. It is
// meant for authentication only; the result must not reach a client.
func (s *Store) GetUserCredentials(ctx context.Context, username string) (*models.User, error) {
	var user models.User

	stmt := query.Raw(`SELECT username, password, is_admin FROM users WHERE username = $1`, username)
	n, err := s.q.Query(ctx, stmt, &user)
	if err != nil {
		s.logger.Error("failed to get user credentials",
			zap.String("username", username),
			zap.Error(err),
		)
		return nil, fmt.Errorf("get user credentials: %w", err)
	}
	if n == 0 {
		return nil, nil
	}

	return &user, nil
}

// CreateUser inserts u. u.Password must already be hashed. A taken username
// or email yields ErrDuplicateKey.
func (s *Store) CreateUser(ctx context.Context, u models.NewUser) (*models.User, error) {
	var user models.User

	stmt := query.Raw(`
		INSERT INTO users (username, password, first_name, last_name, email, photo_url)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+userColumns,
		u.Username, u.Password, u.FirstName, u.LastName, u.Email, u.PhotoURL,
	)
	if _, err := s.q.Query(ctx, stmt, &user); err != nil {
		s.logger.Error("failed to create user",
			zap.String("username", u.Username),
			zap.Error(err),
		)
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.logger.Info("user created", zap.String("username", user.Username))
	return &user, nil
}

// UpdateUser applies upd. A present password must already be hashed. The
// returned user never carries the password hash or the admin flag.
func (s *Store) UpdateUser(ctx context.Context, username string, upd models.UserUpdate) (*models.User, error) {
	stmt, err := query.PartialUpdate("users", upd.Fields(), query.Field{Column: "username", Value: username}, userReserved)
	if err != nil {
		return nil, err
	}

	var user models.User
	n, err := s.q.Query(ctx, stmt, &user)
	if err != nil {
		s.logger.Error("failed to update user",
			zap.String("username", username),
			zap.Error(err),
		)
		return nil, fmt.Errorf("update user: %w", err)
	}
	if n == 0 {
		return nil, nil
	}

	user.Password = ""
	user.IsAdmin = false

	s.logger.Info("user updated", zap.String("username", username))
	return &user, nil
}

func (s *Store) DeleteUser(ctx context.Context, username string) (*models.UserSummary, error) {
	var deleted models.UserSummary

	stmt := query.Raw(`DELETE FROM users WHERE username = $1 RETURNING username, first_name, last_name, email`, username)
	n, err := s.q.Query(ctx, stmt, &deleted)
	if err != nil {
		s.logger.Error("failed to delete user",
			zap.String("username", username),
			zap.Error(err),
		)
		return nil, fmt.Errorf("delete user: %w", err)
	}
	if n == 0 {
		return nil, nil
	}

	s.logger.Info("user deleted", zap.String("username", username))
	return &deleted, nil
}
