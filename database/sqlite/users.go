package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sagarc03/filedock"
)

type userRepo struct {
	db        *sql.DB
	tableName string
}

func (r *userRepo) Create(ctx context.Context, user filedock.User) (filedock.User, error) {
	query := fmt.Sprintf( //nolint:gosec // G201: table name is validated
		`INSERT INTO %s (username, email) VALUES (?, ?)`, r.tableName)

	result, err := r.db.ExecContext(ctx, query, user.Username, user.Email)
	if err != nil {
		return filedock.User{}, fmt.Errorf("create user: %w", err)
	}

	user.ID, err = result.LastInsertId()
	if err != nil {
		return filedock.User{}, fmt.Errorf("create user: last insert id: %w", err)
	}

	return user, nil
}

func (r *userRepo) UpdateEmail(ctx context.Context, id int64, email string) error {
	query := fmt.Sprintf( //nolint:gosec // G201: table name is validated
		`UPDATE %s SET email = ? WHERE id = ?`, r.tableName)

	result, err := r.db.ExecContext(ctx, query, email, id)
	if err != nil {
		return fmt.Errorf("update user email: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update user email: rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("update user email: %w", filedock.ErrNotFound)
	}

	return nil
}

func (r *userRepo) FindByID(ctx context.Context, id int64) (filedock.User, error) {
	query := fmt.Sprintf( //nolint:gosec // G201: table name is validated
		`SELECT id, username, email FROM %s WHERE id = ?`, r.tableName)

	return r.findOne(ctx, query, id)
}

func (r *userRepo) FindByEmail(ctx context.Context, email string) (filedock.User, error) {
	query := fmt.Sprintf( //nolint:gosec // G201: table name is validated
		`SELECT id, username, email FROM %s WHERE LOWER(email) = LOWER(?)`, r.tableName)

	return r.findOne(ctx, query, email)
}

func (r *userRepo) FindByUsername(ctx context.Context, username string) (filedock.User, error) {
	query := fmt.Sprintf( //nolint:gosec // G201: table name is validated
		`SELECT id, username, email FROM %s WHERE LOWER(username) = LOWER(?)`, r.tableName)

	return r.findOne(ctx, query, username)
}

func (r *userRepo) findOne(ctx context.Context, query string, arg any) (filedock.User, error) {
	var u filedock.User
	err := r.db.QueryRowContext(ctx, query, arg).Scan(&u.ID, &u.Username, &u.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return filedock.User{}, filedock.ErrNotFound
		}
		return filedock.User{}, fmt.Errorf("find user: %w", err)
	}

	return u, nil
}
