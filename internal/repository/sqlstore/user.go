package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shark062/EridesSouzaStudio/internal/model"
	"github.com/shark062/EridesSouzaStudio/internal/repository"
)

type UserRepository struct {
	db *DB
}

func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, username, password_hash, name, email, phone,
	birth_date, role, loyalty_points, total_visits, created_at`

func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	query := r.db.Rebind(`
		INSERT INTO users (` + userColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.Username, user.PasswordHash, user.Name,
		user.Email, user.Phone, user.BirthDate, user.Role,
		user.LoyaltyPoints, user.TotalVisits, user.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrUsernameTaken
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.getBy(ctx, "username", username)
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	return r.getBy(ctx, "id", id)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.getBy(ctx, "email", email)
}

func (r *UserRepository) getBy(ctx context.Context, column, value string) (*model.User, error) {
	query := r.db.Rebind(`SELECT ` + userColumns + ` FROM users WHERE ` + column + ` = ?`)

	var user model.User
	if err := r.db.GetContext(ctx, &user, query, value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

func (r *UserRepository) Update(ctx context.Context, user *model.User) error {
	query := r.db.Rebind(`
		UPDATE users
		SET password_hash = ?, name = ?, email = ?, phone = ?,
			birth_date = ?, role = ?, loyalty_points = ?, total_visits = ?
		WHERE username = ?
	`)
	result, err := r.db.ExecContext(ctx, query,
		user.PasswordHash, user.Name, user.Email, user.Phone,
		user.BirthDate, user.Role, user.LoyaltyPoints, user.TotalVisits,
		user.Username,
	)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	return requireRow(result)
}

func (r *UserRepository) Rename(ctx context.Context, oldUsername string, user *model.User) error {
	query := r.db.Rebind(`
		UPDATE users
		SET username = ?, password_hash = ?, name = ?, email = ?, phone = ?,
			birth_date = ?, role = ?, loyalty_points = ?, total_visits = ?
		WHERE username = ?
	`)
	result, err := r.db.ExecContext(ctx, query,
		user.Username, user.PasswordHash, user.Name, user.Email, user.Phone,
		user.BirthDate, user.Role, user.LoyaltyPoints, user.TotalVisits,
		oldUsername,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrUsernameTaken
		}
		return fmt.Errorf("failed to rename user: %w", err)
	}
	return requireRow(result)
}

func (r *UserRepository) List(ctx context.Context) ([]*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at ASC`

	var users []*model.User
	if err := r.db.SelectContext(ctx, &users, query); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func requireRow(result sql.Result) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return repository.ErrNotFound
	}
	return nil
}
