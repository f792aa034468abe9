package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/AnshRaj112/aed-backend/internal/models"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// uniqueViolation is the Postgres SQLSTATE for a unique constraint failure.
const uniqueViolation = "23505"

type PostgresUserStore struct {
	db *sql.DB
}

func NewPostgresUserStore(db *sql.DB) *PostgresUserStore {
	return &PostgresUserStore{db: db}
}

func (s *PostgresUserStore) Create(ctx context.Context, user *models.User) error {
	id := uuid.New()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, created_at, updated_at, name, email, password_hash)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, id, user.CreatedAt, user.UpdatedAt, user.Name, user.Email, user.PasswordHash)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return ErrDuplicate
		}
		return fmt.Errorf("insert user: %w", err)
	}

	user.ID = id.String()
	return nil
}

func (s *PostgresUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, created_at, updated_at, name, email, password_hash
		FROM users WHERE LOWER(email) = LOWER($1)
	`, email)
	return scanUser(row)
}

func (s *PostgresUserStore) FindByID(ctx context.Context, id string) (*models.User, error) {
	parsedID, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrNotFound
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT id, created_at, updated_at, name, email, password_hash
		FROM users WHERE id = $1
	`, parsedID)
	return scanUser(row)
}

func scanUser(row *sql.Row) (*models.User, error) {
	var (
		id   uuid.UUID
		user models.User
	)
	err := row.Scan(&id, &user.CreatedAt, &user.UpdatedAt, &user.Name, &user.Email, &user.PasswordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan user: %w", err)
	}
	user.ID = id.String()
	return &user, nil
}
