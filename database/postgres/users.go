package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sagarc03/filedock"
)

type userRepo struct {
	pool      *pgxpool.Pool
	tableName string
}

func (r *userRepo) Create(ctx context.Context, user filedock.User) (filedock.User, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (username, email)
		VALUES ($1, $2)
		RETURNING id
	`, r.tableName)

	err := r.pool.QueryRow(ctx, query, user.Username, user.Email).Scan(&user.ID)
	if err != nil {
		return filedock.User{}, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

func (r *userRepo) UpdateEmail(ctx context.Context, id int64, email string) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET email = $2
		WHERE id = $1
	`, r.tableName)

	result, err := r.pool.Exec(ctx, query, id, email)
	if err != nil {
		return fmt.Errorf("update user email: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("update user email: %w", filedock.ErrNotFound)
	}

	return nil
}

func (r *userRepo) FindByID(ctx context.Context, id int64) (filedock.User, error) {
	query := fmt.Sprintf(`
		SELECT id, username, email
		FROM %s
		WHERE id = $1
	`, r.tableName)

	return r.findOne(ctx, query, id)
}

func (r *userRepo) FindByEmail(ctx context.Context, email string) (filedock.User, error) {
	query := fmt.Sprintf(`
		SELECT id, username, email
		FROM %s
		WHERE LOWER(email) = LOWER($1)
	`, r.tableName)

	return r.findOne(ctx, query, email)
}

func (r *userRepo) FindByUsername(ctx context.Context, username string) (filedock.User, error) {
	query := fmt.Sprintf(`
		SELECT id, username, email
		FROM %s
		WHERE LOWER(username) = LOWER($1)
	`, r.tableName)

	return r.findOne(ctx, query, username)
}

func (r *userRepo) findOne(ctx context.Context, query string, arg any) (filedock.User, error) {
	var u filedock.User
	err := r.pool.QueryRow(ctx, query, arg).Scan(&u.ID, &u.Username, &u.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return filedock.User{}, filedock.ErrNotFound
		}
		return filedock.User{}, fmt.Errorf("find user: %w", err)
	}

	return u, nil
}
