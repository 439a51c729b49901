package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sort"
	"sync"

	"github.com/suar-net/suar-rest/internal/model"
)

var errStoreDown = errors.New("store unavailable")

type fakeRequestRepo struct {
	mu        sync.Mutex
	records   []*model.RequestRecord
	nextID    int64
	createErr error
}

func (f *fakeRequestRepo) Create(_ context.Context, record *model.RequestRecord) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return 0, f.createErr
	}
	f.nextID++
	record.ID = f.nextID
	stored := *record
	f.records = append(f.records, &stored)
	return record.ID, nil
}

func (f *fakeRequestRepo) List(_ context.Context, limit, offset int) ([]*model.RequestRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	sorted := append([]*model.RequestRecord(nil), f.records...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].CreatedAt.Equal(sorted[j].CreatedAt) {
			return sorted[i].ID > sorted[j].ID
		}
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})
	if offset >= len(sorted) {
		return []*model.RequestRecord{}, nil
	}
	end := offset + limit
	if end > len(sorted) {
		end = len(sorted)
	}
	return sorted[offset:end], nil
}

func (f *fakeRequestRepo) Count(_ context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.records)), nil
}

func (f *fakeRequestRepo) GetByID(_ context.Context, id int64) (*model.RequestRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.records {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, nil
}

func (f *fakeRequestRepo) Delete(_ context.Context, id int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, r := range f.records {
		if r.ID == id {
			f.records = append(f.records[:i], f.records[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
