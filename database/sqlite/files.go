package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/sagarc03/filedock"
)

// timeLayout is RFC 3339 with a fixed nine-digit fraction. RFC3339Nano
// trims trailing zeros, which breaks lexicographic ordering of the stored
// text ('Z' sorts above digits), so the fraction is kept fixed-width.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

type fileRepo struct {
	db        *sql.DB
	tableName string
}

func (r *fileRepo) Create(ctx context.Context, file filedock.File) (filedock.File, error) {
	query := fmt.Sprintf( //nolint:gosec // G201: table name is validated
		`INSERT INTO %s (file_name, file_type, user_id, last_updated_on)
		VALUES (?, ?, ?, ?)`, r.tableName)

	updatedOn := file.LastUpdatedOn.UTC().Format(timeLayout)
	result, err := r.db.ExecContext(ctx, query, file.FileName, file.FileType, file.UserID, updatedOn)
	if err != nil {
		return filedock.File{}, fmt.Errorf("create file: %w", err)
	}

	file.ID, err = result.LastInsertId()
	if err != nil {
		return filedock.File{}, fmt.Errorf("create file: last insert id: %w", err)
	}

	return file, nil
}

func (r *fileRepo) Rename(ctx context.Context, id int64, fileName string) error {
	query := fmt.Sprintf( //nolint:gosec // G201: table name is validated
		`UPDATE %s SET file_name = ? WHERE id = ?`, r.tableName)

	result, err := r.db.ExecContext(ctx, query, fileName, id)
	if err != nil {
		return fmt.Errorf("rename file: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rename file: rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("rename file: %w", filedock.ErrNotFound)
	}

	return nil
}

func (r *fileRepo) Delete(ctx context.Context, id int64) error {
	query := fmt.Sprintf( //nolint:gosec // G201: table name is validated
		`DELETE FROM %s WHERE id = ?`, r.tableName)

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete file: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete file: rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("delete file: %w", filedock.ErrNotFound)
	}

	return nil
}

func (r *fileRepo) FindByID(ctx context.Context, id int64) (filedock.File, error) {
	query := fmt.Sprintf( //nolint:gosec // G201: table name is validated
		`SELECT id, file_name, file_type, user_id, last_updated_on
		FROM %s
		WHERE id = ?`, r.tableName)

	var f filedock.File
	var updatedOn string

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&f.ID, &f.FileName, &f.FileType, &f.UserID, &updatedOn,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return filedock.File{}, filedock.ErrNotFound
		}
		return filedock.File{}, fmt.Errorf("find file by id: %w", err)
	}

	f.LastUpdatedOn, err = time.Parse(timeLayout, updatedOn)
	if err != nil {
		return filedock.File{}, fmt.Errorf("find file by id: parse last_updated_on: %w", err)
	}

	return f, nil
}

func (r *fileRepo) FindByNamePrefix(ctx context.Context, prefix string) ([]filedock.File, error) {
	query := fmt.Sprintf( //nolint:gosec // G201: table name is validated
		`SELECT id, file_name, file_type, user_id, last_updated_on
		FROM %s
		WHERE file_name LIKE ? || '%%' ESCAPE '\'
		ORDER BY last_updated_on DESC, id DESC`, r.tableName)

	rows, err := r.db.QueryContext(ctx, query, filedock.EscapeLikePattern(prefix))
	if err != nil {
		return nil, fmt.Errorf("find files by name prefix: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanFiles(rows)
}

func (r *fileRepo) List(ctx context.Context, q filedock.FileListQuery) (filedock.FileListResult, error) {
	where, args := listConditions(q)

	countQuery := fmt.Sprintf( //nolint:gosec // G201: table name is validated
		`SELECT COUNT(*) FROM %s WHERE %s`, r.tableName, where)

	var total int64
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return filedock.FileListResult{}, fmt.Errorf("list files: count: %w", err)
	}

	pageQuery := fmt.Sprintf( //nolint:gosec // G201: table name is validated
		`SELECT id, file_name, file_type, user_id, last_updated_on
		FROM %s
		WHERE %s
		ORDER BY last_updated_on DESC, id DESC
		LIMIT ? OFFSET ?`, r.tableName, where)

	args = append(args, q.Size, (q.Page-1)*q.Size)

	rows, err := r.db.QueryContext(ctx, pageQuery, args...)
	if err != nil {
		return filedock.FileListResult{}, fmt.Errorf("list files: %w", err)
	}
	defer func() { _ = rows.Close() }()

	items, err := scanFiles(rows)
	if err != nil {
		return filedock.FileListResult{}, fmt.Errorf("list files: %w", err)
	}

	return filedock.FileListResult{
		Items:      items,
		TotalCount: total,
		TotalPages: filedock.TotalPages(total, q.Size),
		Page:       q.Page,
		PageSize:   q.Size,
	}, nil
}

func listConditions(q filedock.FileListQuery) (string, []any) {
	where := "1=1"
	var args []any

	if q.UserID > 0 {
		where += " AND user_id = ?"
		args = append(args, q.UserID)
	}

	if q.NamePrefix != "" {
		where += ` AND file_name LIKE ? || '%' ESCAPE '\'`
		args = append(args, filedock.EscapeLikePattern(q.NamePrefix))
	}

	return where, args
}

func scanFiles(rows *sql.Rows) ([]filedock.File, error) {
	items := make([]filedock.File, 0)
	for rows.Next() {
		var f filedock.File
		var updatedOn string

		if err := rows.Scan(&f.ID, &f.FileName, &f.FileType, &f.UserID, &updatedOn); err != nil {
			return nil, fmt.Errorf("scan file: %w", err)
		}

		parsed, err := time.Parse(timeLayout, updatedOn)
		if err != nil {
			return nil, fmt.Errorf("parse last_updated_on: %w", err)
		}
		f.LastUpdatedOn = parsed

		items = append(items, f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	return items, nil
}
