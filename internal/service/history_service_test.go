package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suar-net/suar-rest/internal/model"
)

func seedRecords(t *testing.T, repo *fakeRequestRepo, n int) {
	t.Helper()
	base := model.Now().Add(-time.Hour)
	for i := 0; i < n; i++ {
		_, err := repo.Create(context.Background(), &model.RequestRecord{
			Method:    "GET",
			URL:       "https://example.com",
			Headers:   "{}",
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		})
		require.NoError(t, err)
	}
}

func TestParsePageQuery(t *testing.T) {
	tests := []struct {
		name        string
		page, limit string
		want        PageQuery
	}{
		{"absent", "", "", PageQuery{Page: 1, Limit: 10}},
		{"explicit", "3", "25", PageQuery{Page: 3, Limit: 25}},
		{"non numeric", "abc", "x", PageQuery{Page: 1, Limit: 10}},
		{"zero", "0", "0", PageQuery{Page: 1, Limit: 10}},
		{"negative", "-2", "-5", PageQuery{Page: 1, Limit: 10}},
		{"limit capped", "1", "5000", PageQuery{Page: 1, Limit: MaxLimit}},
		{"overflow", "99999999999999999999", "10", PageQuery{Page: 1, Limit: 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParsePageQuery(tt.page, tt.limit))
		})
	}
}

func TestPageQuery_Offset(t *testing.T) {
	assert.Equal(t, 0, PageQuery{Page: 1, Limit: 10}.Offset())
	assert.Equal(t, 20, PageQuery{Page: 3, Limit: 10}.Offset())
}

func TestParseID(t *testing.T) {
	id, err := ParseID("42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	for _, bad := range []string{"", "  ", "abc", "0", "-1", "1.5"} {
		_, err := ParseID(bad)
		assert.True(t, errors.Is(err, ErrInvalidInput), "input %q", bad)
	}
}

func TestHistoryList_Pagination(t *testing.T) {
	repo := &fakeRequestRepo{}
	seedRecords(t, repo, 25)
	svc := NewHistoryService(repo)
	ctx := context.Background()

	page1, err := svc.List(ctx, PageQuery{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 3, page1.TotalPages)
	assert.Equal(t, int64(25), page1.TotalCount)
	assert.Len(t, page1.Records, 10)
	assert.Equal(t, int64(25), page1.Records[0].ID, "newest first")

	page3, err := svc.List(ctx, PageQuery{Page: 3, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, page3.Records, 5)
	assert.Equal(t, 3, page3.Page)

	page4, err := svc.List(ctx, PageQuery{Page: 4, Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, page4.Records)
	assert.Equal(t, 4, page4.Page)
}

func TestHistoryList_Empty(t *testing.T) {
	svc := NewHistoryService(&fakeRequestRepo{})

	page, err := svc.List(context.Background(), PageQuery{})
	require.NoError(t, err)
	assert.Equal(t, 0, page.TotalPages)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 10, page.Limit)
	assert.Empty(t, page.Records)
}

func TestHistoryGet(t *testing.T) {
	repo := &fakeRequestRepo{}
	seedRecords(t, repo, 2)
	svc := NewHistoryService(repo)

	rec, err := svc.Get(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, int64(2), rec.ID)

	_, err = svc.Get(context.Background(), 999999)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestHistoryDelete(t *testing.T) {
	repo := &fakeRequestRepo{}
	seedRecords(t, repo, 3)
	svc := NewHistoryService(repo)
	ctx := context.Background()

	require.NoError(t, svc.Delete(ctx, 2))

	page, err := svc.List(ctx, PageQuery{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.TotalCount)
	ids := []int64{page.Records[0].ID, page.Records[1].ID}
	assert.Equal(t, []int64{3, 1}, ids)
}

func TestHistoryDelete_NotFoundKeepsCount(t *testing.T) {
	repo := &fakeRequestRepo{}
	seedRecords(t, repo, 3)
	svc := NewHistoryService(repo)
	ctx := context.Background()

	err := svc.Delete(ctx, 999999)
	assert.True(t, errors.Is(err, ErrNotFound))

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}
