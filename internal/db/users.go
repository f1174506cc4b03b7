package db

import (
	"context"

	"github.com/shangobashi/NoteSquared-C/internal/model"
)

func (r *repository) CreateUser(ctx context.Context, user *model.User) error {
	query := `INSERT INTO users (id, email, hashed_password, full_name, is_active, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, NOW(), NOW())`
	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.Email, user.HashedPassword, user.FullName, user.IsActive)
	return err
}

func (r *repository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT id, email, hashed_password, full_name, is_active, created_at, updated_at
			  FROM users WHERE email = ?`

	var user model.User
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&user.ID, &user.Email, &user.HashedPassword, &user.FullName,
		&user.IsActive, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *repository) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	query := `SELECT id, email, hashed_password, full_name, is_active, created_at, updated_at
			  FROM users WHERE id = ?`

	var user model.User
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&user.ID, &user.Email, &user.HashedPassword, &user.FullName,
		&user.IsActive, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &user, nil
}
