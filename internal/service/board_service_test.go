package service

import (
	"context"
	"testing"

	"AptInspect/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestBoardService_Publish(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	report := env.newReport(t, 0)

	entry, err := env.board.Publish(ctx, report.ID, "Lakeview 101-1203", "inspection done")
	assert.NoError(t, err)
	assert.Equal(t, model.BoardStatusActive, entry.Status)
	assert.NotZero(t, entry.ID)

	// пустой заголовок
	_, err = env.board.Publish(ctx, report.ID, "", "")
	assert.ErrorIs(t, err, ErrInvalidBoardEntry)

	// несуществующий отчёт
	_, err = env.board.Publish(ctx, uuid.NewString(), "title", "")
	assert.ErrorIs(t, err, ErrReportNotFound)

	// отчёт публикуется только один раз
	_, err = env.board.Publish(ctx, report.ID, "again", "")
	assert.ErrorIs(t, err, ErrBoardDuplicate)
}

func TestBoardService_List(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	r1 := env.newReport(t, 0)
	r2 := env.newReport(t, 0)
	_, err := env.board.Publish(ctx, r1.ID, "first", "")
	assert.NoError(t, err)
	_, err = env.board.Publish(ctx, r2.ID, "second", "")
	assert.NoError(t, err)

	items, err := env.board.List(ctx)
	assert.NoError(t, err)
	assert.Len(t, items, 2)
	// адрес отчёта подшивается к записи
	assert.Equal(t, "Lakeview", items[0].AptName)
	assert.Equal(t, "1203", items[0].Ho)
}

func TestBoardService_ToggleStatus(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	report := env.newReport(t, 0)

	entry, err := env.board.Publish(ctx, report.ID, "title", "")
	assert.NoError(t, err)

	next, err := env.board.ToggleStatus(ctx, entry.ID, model.BoardStatusActive)
	assert.NoError(t, err)
	assert.Equal(t, model.BoardStatusInactive, next)

	next, err = env.board.ToggleStatus(ctx, entry.ID, next)
	assert.NoError(t, err)
	assert.Equal(t, model.BoardStatusActive, next)
}

func TestBoardService_View(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	report := env.newReport(t, 0)

	entry, err := env.board.Publish(ctx, report.ID, "title", "")
	assert.NoError(t, err)

	// каждый просмотр увеличивает счётчик
	got, err := env.board.View(ctx, report.ID)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), got.ViewCount)
	got, err = env.board.View(ctx, report.ID)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), got.ViewCount)

	// неактивная запись не открывается
	_, err = env.board.ToggleStatus(ctx, entry.ID, model.BoardStatusActive)
	assert.NoError(t, err)
	_, err = env.board.View(ctx, report.ID)
	assert.ErrorIs(t, err, ErrBoardInactive)

	// записи нет
	_, err = env.board.View(ctx, uuid.NewString())
	assert.ErrorIs(t, err, ErrBoardEntryNotFound)
}

func TestBoardService_Remove(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	report := env.newReport(t, 0)

	entry, err := env.board.Publish(ctx, report.ID, "title", "")
	assert.NoError(t, err)

	assert.NoError(t, env.board.Remove(ctx, entry.ID))

	// отчёт остаётся, публикация снимается
	_, err = env.reports.GetReport(ctx, report.ID)
	assert.NoError(t, err)
	_, err = env.board.View(ctx, report.ID)
	assert.ErrorIs(t, err, ErrBoardEntryNotFound)
}
