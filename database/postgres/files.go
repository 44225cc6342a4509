package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sagarc03/filedock"
)

type fileRepo struct {
	pool      *pgxpool.Pool
	tableName string
}

func (r *fileRepo) Create(ctx context.Context, file filedock.File) (filedock.File, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (file_name, file_type, user_id, last_updated_on)
		VALUES ($1, $2, $3, $4)
		RETURNING id, last_updated_on
	`, r.tableName)

	err := r.pool.QueryRow(ctx, query, file.FileName, file.FileType, file.UserID, file.LastUpdatedOn).
		Scan(&file.ID, &file.LastUpdatedOn)
	if err != nil {
		return filedock.File{}, fmt.Errorf("create file: %w", err)
	}

	return file, nil
}

func (r *fileRepo) Rename(ctx context.Context, id int64, fileName string) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET file_name = $2
		WHERE id = $1
	`, r.tableName)

	result, err := r.pool.Exec(ctx, query, id, fileName)
	if err != nil {
		return fmt.Errorf("rename file: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("rename file: %w", filedock.ErrNotFound)
	}

	return nil
}

func (r *fileRepo) Delete(ctx context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tableName)

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete file: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("delete file: %w", filedock.ErrNotFound)
	}

	return nil
}

func (r *fileRepo) FindByID(ctx context.Context, id int64) (filedock.File, error) {
	query := fmt.Sprintf(`
		SELECT id, file_name, file_type, user_id, last_updated_on
		FROM %s
		WHERE id = $1
	`, r.tableName)

	var f filedock.File
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&f.ID, &f.FileName, &f.FileType, &f.UserID, &f.LastUpdatedOn,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return filedock.File{}, filedock.ErrNotFound
		}
		return filedock.File{}, fmt.Errorf("find file by id: %w", err)
	}

	return f, nil
}

func (r *fileRepo) FindByNamePrefix(ctx context.Context, prefix string) ([]filedock.File, error) {
	query := fmt.Sprintf(`
		SELECT id, file_name, file_type, user_id, last_updated_on
		FROM %s
		WHERE file_name LIKE $1 || '%%'
		ORDER BY last_updated_on DESC, id DESC
	`, r.tableName)

	rows, err := r.pool.Query(ctx, query, filedock.EscapeLikePattern(prefix))
	if err != nil {
		return nil, fmt.Errorf("find files by name prefix: %w", err)
	}
	defer rows.Close()

	return scanFiles(rows)
}

func (r *fileRepo) List(ctx context.Context, q filedock.FileListQuery) (filedock.FileListResult, error) {
	where, args := listConditions(q)

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s`, r.tableName, where)

	var total int64
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return filedock.FileListResult{}, fmt.Errorf("list files: count: %w", err)
	}

	pageQuery := fmt.Sprintf(`
		SELECT id, file_name, file_type, user_id, last_updated_on
		FROM %s
		WHERE %s
		ORDER BY last_updated_on DESC, id DESC
		LIMIT $%d OFFSET $%d
	`, r.tableName, where, len(args)+1, len(args)+2)

	args = append(args, q.Size, (q.Page-1)*q.Size)

	rows, err := r.pool.Query(ctx, pageQuery, args...)
	if err != nil {
		return filedock.FileListResult{}, fmt.Errorf("list files: %w", err)
	}
	defer rows.Close()

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

// listConditions builds the WHERE clause shared by the count and page
// queries. Filters are optional; an empty query matches every row.
func listConditions(q filedock.FileListQuery) (string, []any) {
	conditions := []string{"TRUE"}
	var args []any

	if q.UserID > 0 {
		args = append(args, q.UserID)
		conditions = append(conditions, fmt.Sprintf("user_id = $%d", len(args)))
	}

	if q.NamePrefix != "" {
		args = append(args, filedock.EscapeLikePattern(q.NamePrefix))
		conditions = append(conditions, fmt.Sprintf("file_name LIKE $%d || '%%'", len(args)))
	}

	return joinAnd(conditions), args
}

func joinAnd(conditions []string) string {
	out := conditions[0]
	for _, c := range conditions[1:] {
		out += " AND " + c
	}
	return out
}

func scanFiles(rows pgx.Rows) ([]filedock.File, error) {
	items := make([]filedock.File, 0)
	for rows.Next() {
		var f filedock.File
		if err := rows.Scan(&f.ID, &f.FileName, &f.FileType, &f.UserID, &f.LastUpdatedOn); err != nil {
			return nil, fmt.Errorf("scan file: %w", err)
		}
		items = append(items, f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	return items, nil
}
