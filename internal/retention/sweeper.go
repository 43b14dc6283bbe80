// Package retention — фоновая зачистка отчётов, переживших срок хранения.
//
// Отчёт старше visibility.WindowDays удаляется вместе со всем, что ему
// принадлежит: объектами хранилища, строками визуального и приборного
// осмотра и записью клиентской доски. Каждый шаг идемпотентен, поэтому
// повторный запуск после частичного сбоя безопасен.
package retention

import (
	"AptInspect/internal/repo"
	"AptInspect/internal/storage"
	"AptInspect/internal/visibility"
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Sweeper выполняет один проход зачистки. Часы инжектируются, чтобы
// тесты не ждали реального времени.
type Sweeper struct {
	reports   repo.ReportRepository
	visual    repo.VisualRepository
	equipment repo.EquipmentRepository
	board     repo.BoardRepository
	store     storage.ObjectStore
	logger    *zap.SugaredLogger
	now       func() time.Time
}

// NewSweeper создаёт зачистку с часами time.Now.
func NewSweeper(
	reports repo.ReportRepository,
	visual repo.VisualRepository,
	equipment repo.EquipmentRepository,
	board repo.BoardRepository,
	store storage.ObjectStore,
	logger *zap.SugaredLogger,
) *Sweeper {
	return &Sweeper{
		reports:   reports,
		visual:    visual,
		equipment: equipment,
		board:     board,
		store:     store,
		logger:    logger,
		now:       time.Now,
	}
}

// WithClock подменяет источник времени (для тестов).
func (s *Sweeper) WithClock(now func() time.Time) *Sweeper {
	s.now = now
	return s
}

// Sweep удаляет все отчёты старше порога хранения. Сбой на одном отчёте
// логируется и не прерывает обработку остальных. Возвращает число
// удалённых и число отказавших отчётов.
func (s *Sweeper) Sweep(ctx context.Context) (swept, failed int) {
	cutoff := visibility.Cutoff(s.now())

	old, err := s.reports.ListCreatedBefore(ctx, cutoff)
	if err != nil {
		s.logger.Errorw("sweep: failed to list expired reports", "error", err)
		return 0, 0
	}
	if len(old) == 0 {
		s.logger.Debugw("sweep: nothing to clean up")
		return 0, 0
	}

	s.logger.Infow("sweep: found expired reports",
		"count", len(old),
		"cutoff", cutoff,
	)

	for _, report := range old {
		if err := s.PurgeReport(ctx, report.ID); err != nil {
			// Частично удалённый отчёт доберёт следующий проход.
			s.logger.Errorw("sweep: report cleanup failed",
				"report_id", report.ID,
				"error", err,
			)
			failed++
			continue
		}
		swept++
	}

	s.logger.Infow("sweep: completed", "swept", swept, "failed", failed)
	return swept, failed
}

// PurgeReport удаляет один отчёт в фиксированном порядке: сначала объекты
// хранилища, затем зависимые строки, последней — строка самого отчёта.
// Порядок гарантирует, что частичный сбой не оставит объекты без
// ссылающихся на них строк навсегда. Тем же путём идёт и ручное
// удаление отчёта администратором.
func (s *Sweeper) PurgeReport(ctx context.Context, reportID string) error {
	paths, err := s.blobPaths(ctx, reportID)
	if err != nil {
		return fmt.Errorf("collect blob paths: %w", err)
	}
	if len(paths) > 0 {
		if err := s.store.Remove(ctx, paths); err != nil {
			return fmt.Errorf("remove %d objects: %w", len(paths), err)
		}
		s.logger.Infow("sweep: images deleted",
			"report_id", reportID,
			"count", len(paths),
		)
	}

	if err := s.visual.DeleteByReport(ctx, reportID); err != nil {
		return fmt.Errorf("delete visual rows: %w", err)
	}
	if err := s.equipment.DeleteByReport(ctx, reportID); err != nil {
		return fmt.Errorf("delete equipment rows: %w", err)
	}
	if err := s.board.DeleteByReport(ctx, reportID); err != nil {
		return fmt.Errorf("delete board entry: %w", err)
	}
	if err := s.reports.Delete(ctx, reportID); err != nil {
		return fmt.Errorf("delete report row: %w", err)
	}

	s.logger.Infow("sweep: report deleted", "report_id", reportID)
	return nil
}

// blobPaths объединяет пути из строк визуального осмотра с листингом
// бакета по префиксу отчёта: листинг добирает объекты, осиротевшие при
// прошлом частичном сбое.
func (s *Sweeper) blobPaths(ctx context.Context, reportID string) ([]string, error) {
	paths, err := s.visual.ListPathsByReport(ctx, reportID)
	if err != nil {
		return nil, err
	}
	listed, err := s.store.ListPrefix(ctx, reportID+"/")
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(paths)+len(listed))
	merged := make([]string, 0, len(paths)+len(listed))
	for _, p := range append(paths, listed...) {
		if p == "" {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		merged = append(merged, p)
	}
	return merged, nil
}
