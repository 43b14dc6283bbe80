package service

import (
	"AptInspect/internal/model"
	"AptInspect/internal/repo"
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// Ошибки уровня сервиса доски.
var (
	ErrBoardEntryNotFound = errors.New("board entry not found")
	ErrBoardDuplicate     = errors.New("report already published to board")
	ErrBoardInactive      = errors.New("board entry is inactive")
	ErrInvalidBoardEntry  = errors.New("invalid board entry")
)

// BoardService — клиентская доска: публикация отчётов и просмотр.
type BoardService struct {
	board   repo.BoardRepository
	reports repo.ReportRepository
	logger  *zap.SugaredLogger
}

func NewBoardService(board repo.BoardRepository, reports repo.ReportRepository, logger *zap.SugaredLogger) *BoardService {
	return &BoardService{board: board, reports: reports, logger: logger}
}

// BoardItem — запись доски вместе с адресной информацией отчёта.
type BoardItem struct {
	Entry   model.BoardEntry `json:"entry"`
	AptName string           `json:"apt_name"`
	Dong    string           `json:"dong"`
	Ho      string           `json:"ho"`
}

// Publish создаёт запись доски для отчёта со статусом active.
func (s *BoardService) Publish(ctx context.Context, reportID, title, content string) (*model.BoardEntry, error) {
	if title == "" {
		return nil, ErrInvalidBoardEntry
	}
	report, err := s.reports.GetByID(ctx, reportID)
	if err != nil {
		return nil, fmt.Errorf("get report: %w", err)
	}
	if report == nil {
		return nil, ErrReportNotFound
	}
	existing, err := s.board.GetByReport(ctx, reportID)
	if err != nil {
		return nil, fmt.Errorf("check existing entry: %w", err)
	}
	if existing != nil {
		return nil, ErrBoardDuplicate
	}

	entry := &model.BoardEntry{
		ReportID: reportID,
		Title:    title,
		Content:  content,
		Status:   model.BoardStatusActive,
	}
	if err := s.board.CreateForReport(ctx, entry); err != nil {
		return nil, fmt.Errorf("create board entry: %w", err)
	}

	s.logger.Infow("report published to board", "report_id", reportID, "entry_id", entry.ID)
	return entry, nil
}

// List возвращает все записи доски с адресами отчётов, новые первыми.
func (s *BoardService) List(ctx context.Context) ([]BoardItem, error) {
	entries, err := s.board.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list board: %w", err)
	}

	items := make([]BoardItem, 0, len(entries))
	for _, e := range entries {
		item := BoardItem{Entry: e}
		report, err := s.reports.GetByID(ctx, e.ReportID)
		if err != nil {
			return nil, fmt.Errorf("get report %s: %w", e.ReportID, err)
		}
		if report != nil {
			item.AptName = report.AptName
			item.Dong = report.Dong
			item.Ho = report.Ho
		}
		items = append(items, item)
	}
	return items, nil
}

// ToggleStatus переключает статус записи active/inactive и возвращает новый.
func (s *BoardService) ToggleStatus(ctx context.Context, id int64, current string) (string, error) {
	next := model.BoardStatusActive
	if current == model.BoardStatusActive {
		next = model.BoardStatusInactive
	}
	if err := s.board.SetStatus(ctx, id, next); err != nil {
		return "", fmt.Errorf("set status: %w", err)
	}
	return next, nil
}

// View открывает активную запись доски по отчёту и увеличивает счётчик
// просмотров.
func (s *BoardService) View(ctx context.Context, reportID string) (*model.BoardEntry, error) {
	entry, err := s.board.GetByReport(ctx, reportID)
	if err != nil {
		return nil, fmt.Errorf("get board entry: %w", err)
	}
	if entry == nil {
		return nil, ErrBoardEntryNotFound
	}
	if entry.Status != model.BoardStatusActive {
		return nil, ErrBoardInactive
	}
	if err := s.board.IncrementViews(ctx, entry.ID); err != nil {
		return nil, fmt.Errorf("increment views: %w", err)
	}
	entry.ViewCount++
	return entry, nil
}

// Remove снимает запись с доски. Сам отчёт не трогается.
func (s *BoardService) Remove(ctx context.Context, id int64) error {
	if err := s.board.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete board entry: %w", err)
	}
	return nil
}
