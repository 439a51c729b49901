package repository

import (
	"context"
	"database/sql"

	"github.com/suar-net/suar-rest/internal/model"
)

// IRequestRepository persists dispatch records. Records are never updated.
type IRequestRepository interface {
	Create(ctx context.Context, record *model.RequestRecord) (int64, error)
	List(ctx context.Context, limit, offset int) ([]*model.RequestRecord, error)
	Count(ctx context.Context) (int64, error)
	GetByID(ctx context.Context, id int64) (*model.RequestRecord, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type IRepository interface {
	Request() IRequestRepository
}

type Repository struct {
	request IRequestRepository
}

func NewRepository(db *sql.DB, driver string) *Repository {
	return &Repository{
		request: NewRequestRepository(db, driver),
	}
}

func (r *Repository) Request() IRequestRepository {
	return r.request
}
