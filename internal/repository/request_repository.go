package repository

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"

	"github.com/suar-net/suar-rest/internal/config"
	"github.com/suar-net/suar-rest/internal/model"
)

const recordColumns = `id, method, url, headers, body, response, status_code, response_time, created_at`

// requestRepository is the implementation of IRequestRepository.
type requestRepository struct {
	db     *sql.DB
	driver string
}

// NewRequestRepository is the constructor for requestRepository.
func NewRequestRepository(db *sql.DB, driver string) IRequestRepository {
	return &requestRepository{db: db, driver: driver}
}

// Create inserts a new record and returns the id assigned by the database.
func (r *requestRepository) Create(ctx context.Context, record *model.RequestRecord) (int64, error) {
	query := r.rebind(`
		INSERT INTO request_history (method, url, headers, body, response, status_code, response_time, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id`)

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		record.Method,
		record.URL,
		record.Headers,
		record.Body,
		record.Response,
		record.StatusCode,
		record.ResponseTime,
		record.CreatedAt,
	).Scan(&id)
	if err != nil {
		return 0, err
	}

	record.ID = id
	return id, nil
}

// List returns records newest first. Ties on created_at fall back to insertion order.
func (r *requestRepository) List(ctx context.Context, limit, offset int) ([]*model.RequestRecord, error) {
	query := r.rebind(`
		SELECT ` + recordColumns + `
		FROM request_history
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?`)

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]*model.RequestRecord, 0, limit)
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return records, rows.Err()
}

func (r *requestRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM request_history`).Scan(&count)
	return count, err
}

// GetByID returns nil, nil when no record has the given id.
func (r *requestRepository) GetByID(ctx context.Context, id int64) (*model.RequestRecord, error) {
	query := r.rebind(`
		SELECT ` + recordColumns + `
		FROM request_history
		WHERE id = ?`)

	record, err := scanRecord(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return record, nil
}

// Delete reports whether a record was removed.
func (r *requestRepository) Delete(ctx context.Context, id int64) (bool, error) {
	result, err := r.db.ExecContext(ctx, r.rebind(`DELETE FROM request_history WHERE id = ?`), id)
	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(s scanner) (*model.RequestRecord, error) {
	var record model.RequestRecord
	if err := s.Scan(
		&record.ID,
		&record.Method,
		&record.URL,
		&record.Headers,
		&record.Body,
		&record.Response,
		&record.StatusCode,
		&record.ResponseTime,
		&record.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &record, nil
}

// rebind rewrites ? placeholders to $n for PostgreSQL.
func (r *requestRepository) rebind(query string) string {
	if r.driver != config.DriverPostgres {
		return query
	}

	var b strings.Builder
	n := 0
	for _, c := range query {
		if c == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(c)
	}
	return b.String()
}
