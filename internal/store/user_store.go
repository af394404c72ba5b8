package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sporthub/sporthub/internal/community"
)

type UserStore struct {
	db *sqlx.DB
}

const (
	getUserQuery       = "SELECT * FROM users WHERE id = ?"
	getUserByNameQuery = "SELECT * FROM users WHERE username = ? AND password = ?"
	listUsersQuery     = "SELECT * FROM users LIMIT ? OFFSET ?"
	createUserQuery    = `
		INSERT INTO users (id, username, password, avatar_url) VALUES
		(:id, :username, :password, :avatar_url)
	`
	updateUserQuery = `
		UPDATE users SET
		username = :username,
		password = :password,
		avatar_url = :avatar_url
		WHERE id = :id
	`
	deleteUserQuery    = "DELETE FROM users WHERE id = ?"
	incrementFollowers = "UPDATE users SET followers_count = followers_count + 1 WHERE id = ?"
	decrementFollowers = "UPDATE users SET followers_count = followers_count - 1 WHERE id = ? AND followers_count > 0"
	incrementReviews   = "UPDATE users SET reviews_count = reviews_count + 1 WHERE id = ?"
)

func NewUserStore(db *sqlx.DB) *UserStore {
	return &UserStore{db: db}
}

func (s *UserStore) GetUser(ctx context.Context, id uuid.UUID) (*community.User, error) {
	var user community.User
	err := s.db.GetContext(ctx, &user, getUserQuery, id)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserStore) GetUserByCredentials(ctx context.Context, username, password string) (*community.User, error) {
	var user community.User
	err := s.db.GetContext(ctx, &user, getUserByNameQuery, username, password)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserStore) ListUsers(ctx context.Context, limit, offset int) ([]community.User, error) {
	var users []community.User
	err := s.db.SelectContext(ctx, &users, listUsersQuery, limit, offset)
	return users, err
}

func (s *UserStore) CreateUser(ctx context.Context, user *community.User) error {
	_, err := s.db.NamedExecContext(ctx, createUserQuery, user)
	return err
}

func (s *UserStore) UpdateUser(ctx context.Context, user *community.User) error {
	_, err := s.db.NamedExecContext(ctx, updateUserQuery, user)
	return err
}

func (s *UserStore) DeleteUser(ctx context.Context, id uuid.UUID) (bool, error) {
	res, err := s.db.ExecContext(ctx, deleteUserQuery, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (s *UserStore) IncrementFollowers(ctx context.Context, id uuid.UUID) (bool, error) {
	res, err := s.db.ExecContext(ctx, incrementFollowers, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// DecrementFollowers is a no-op when the counter is already at zero.
func (s *UserStore) DecrementFollowers(ctx context.Context, id uuid.UUID) (bool, error) {
	res, err := s.db.ExecContext(ctx, decrementFollowers, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (s *UserStore) IncrementReviews(ctx context.Context, id uuid.UUID) (bool, error) {
	res, err := s.db.ExecContext(ctx, incrementReviews, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}
