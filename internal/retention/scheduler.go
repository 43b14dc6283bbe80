package retention

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// DefaultSchedule — раз в сутки, плюс немедленный проход при старте.
const DefaultSchedule = "@every 24h"

// Scheduler запускает зачистку периодически на время жизни процесса.
// Взаимного исключения между проходами нет: каждый шаг идемпотентен,
// пересёкшиеся проходы лишь выдадут избыточные delete-вызовы.
type Scheduler struct {
	sweeper  *Sweeper
	schedule string
	cron     *cron.Cron
	logger   *zap.SugaredLogger

	mu      sync.Mutex
	running bool
}

// NewScheduler создаёт планировщик зачистки. Пустое расписание
// заменяется на DefaultSchedule.
func NewScheduler(sweeper *Sweeper, schedule string, logger *zap.SugaredLogger) *Scheduler {
	if schedule == "" {
		schedule = DefaultSchedule
	}
	return &Scheduler{
		sweeper:  sweeper,
		schedule: schedule,
		cron:     cron.New(),
		logger:   logger,
	}
}

// Start проверяет расписание, выполняет немедленный проход в фоне и
// включает периодические запуски. Отмена ctx останавливает планировщик.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return nil
	}

	if _, err := cron.ParseStandard(s.schedule); err != nil {
		return fmt.Errorf("invalid sweep schedule %q: %w", s.schedule, err)
	}
	if _, err := s.cron.AddFunc(s.schedule, func() {
		s.run(ctx)
	}); err != nil {
		return fmt.Errorf("schedule sweep: %w", err)
	}

	// Немедленный проход при старте процесса.
	go s.run(ctx)

	s.cron.Start()
	s.running = true

	s.logger.Infow("retention scheduler started", "schedule", s.schedule)

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return nil
}

// Stop останавливает планировщик и дожидается завершения идущего прохода.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}
	<-s.cron.Stop().Done()
	s.running = false
	s.logger.Infow("retention scheduler stopped")
}

// IsRunning сообщает, запущен ли планировщик.
func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// NextRun возвращает время следующего планового прохода.
func (s *Scheduler) NextRun() *time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.cron.Entries()
	if len(entries) == 0 {
		return nil
	}
	next := entries[0].Next
	return &next
}

func (s *Scheduler) run(ctx context.Context) {
	swept, failed := s.sweeper.Sweep(ctx)
	if failed > 0 {
		s.logger.Warnw("scheduled sweep finished with failures",
			"swept", swept,
			"failed", failed,
		)
	}
}
