package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/suar-net/suar-rest/internal/model"
	"github.com/suar-net/suar-rest/internal/repository"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// PageQuery holds 1-based pagination parameters.
type PageQuery struct {
	Page  int
	Limit int
}

// ParsePageQuery parses query-string values. Missing, non-numeric and
// non-positive values fall back to the defaults; limit is capped at MaxLimit.
func ParsePageQuery(page, limit string) PageQuery {
	return PageQuery{
		Page:  parsePositive(page, DefaultPage),
		Limit: parsePositive(limit, DefaultLimit),
	}.normalize()
}

func (q PageQuery) normalize() PageQuery {
	if q.Page <= 0 {
		q.Page = DefaultPage
	}
	if q.Limit <= 0 {
		q.Limit = DefaultLimit
	}
	if q.Limit > MaxLimit {
		q.Limit = MaxLimit
	}
	return q
}

func (q PageQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}

func parsePositive(s string, fallback int) int {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 32)
	if err != nil || n <= 0 {
		return fallback
	}
	return int(n)
}

// ParseID validates a record identifier taken from a path or query string.
func ParseID(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: ID is required", ErrInvalidInput)
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: ID must be a positive integer", ErrInvalidInput)
	}
	return id, nil
}

type historyService struct {
	repo repository.IRequestRepository
}

func NewHistoryService(repo repository.IRequestRepository) IHistoryService {
	return &historyService{repo: repo}
}

// List returns one page of records, newest first. A page past the end is
// empty, not an error.
func (s *historyService) List(ctx context.Context, q PageQuery) (*model.HistoryPage, error) {
	q = q.normalize()

	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count request history: %w", err)
	}

	records, err := s.repo.List(ctx, q.Limit, q.Offset())
	if err != nil {
		return nil, fmt.Errorf("failed to list request history: %w", err)
	}

	return &model.HistoryPage{
		Records:    records,
		Page:       q.Page,
		Limit:      q.Limit,
		TotalCount: total,
		TotalPages: int((total + int64(q.Limit) - 1) / int64(q.Limit)),
	}, nil
}

func (s *historyService) Get(ctx context.Context, id int64) (*model.RequestRecord, error) {
	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load request %d: %w", id, err)
	}
	if record == nil {
		return nil, fmt.Errorf("%w: request %d", ErrNotFound, id)
	}
	return record, nil
}

func (s *historyService) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete request %d: %w", id, err)
	}
	// Removed concurrently between lookup and delete.
	if !deleted {
		return fmt.Errorf("%w: request %d", ErrNotFound, id)
	}
	return nil
}
