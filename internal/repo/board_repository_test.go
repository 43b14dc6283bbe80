package repo

import (
	"context"
	"testing"

	"AptInspect/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestBoardRepository_CreateForReport_GetByReport(t *testing.T) {
	db := newTestDB(t)
	r := NewBoardRepository(db)
	ctx := context.Background()
	seedReport(t, db, "r1")

	entry := &model.BoardEntry{ReportID: "r1", Title: "Lakeview 101-1203", Content: "inspection summary", Status: model.BoardStatusActive}
	assert.NoError(t, r.CreateForReport(ctx, entry))
	assert.NotZero(t, entry.ID)

	got, err := r.GetByReport(ctx, "r1")
	assert.NoError(t, err)
	assert.Equal(t, entry.ID, got.ID)
	assert.Equal(t, model.BoardStatusActive, got.Status)

	// отсутствующая публикация — nil без ошибки
	got, err = r.GetByReport(ctx, "missing")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestBoardRepository_SetStatus(t *testing.T) {
	db := newTestDB(t)
	r := NewBoardRepository(db)
	ctx := context.Background()
	seedReport(t, db, "r1")

	entry := &model.BoardEntry{ReportID: "r1", Title: "t", Status: model.BoardStatusActive}
	assert.NoError(t, r.CreateForReport(ctx, entry))

	assert.NoError(t, r.SetStatus(ctx, entry.ID, model.BoardStatusInactive))

	got, err := r.GetByReport(ctx, "r1")
	assert.NoError(t, err)
	assert.Equal(t, model.BoardStatusInactive, got.Status)
}

func TestBoardRepository_IncrementViews(t *testing.T) {
	db := newTestDB(t)
	r := NewBoardRepository(db)
	ctx := context.Background()
	seedReport(t, db, "r1")

	entry := &model.BoardEntry{ReportID: "r1", Title: "t", Status: model.BoardStatusActive}
	assert.NoError(t, r.CreateForReport(ctx, entry))

	assert.NoError(t, r.IncrementViews(ctx, entry.ID))
	assert.NoError(t, r.IncrementViews(ctx, entry.ID))

	got, err := r.GetByReport(ctx, "r1")
	assert.NoError(t, err)
	assert.Equal(t, int64(2), got.ViewCount)
}

func TestBoardRepository_DeleteByReport(t *testing.T) {
	db := newTestDB(t)
	r := NewBoardRepository(db)
	ctx := context.Background()
	seedReport(t, db, "r1")

	entry := &model.BoardEntry{ReportID: "r1", Title: "t", Status: model.BoardStatusActive}
	assert.NoError(t, r.CreateForReport(ctx, entry))
	assert.NoError(t, r.DeleteByReport(ctx, "r1"))

	got, err := r.GetByReport(ctx, "r1")
	assert.NoError(t, err)
	assert.Nil(t, got)

	// удаление без публикации — не ошибка
	assert.NoError(t, r.DeleteByReport(ctx, "r1"))
}
