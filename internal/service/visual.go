package service

import (
	"AptInspect/internal/model"
	"context"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/google/uuid"
)

// ErrInvalidDefect — дефект без обязательных полей либо со слишком
// коротким описанием.
var ErrInvalidDefect = errors.New("invalid defect data")

// minDetailsLen — минимальная длина описания дефекта в рунах.
const minDetailsLen = 10

// DefectImage — один загружаемый снимок дефекта.
type DefectImage struct {
	Type     string // full | closeup | angle
	FileName string
	Content  io.Reader
	Size     int64
}

// DefectGroup — один логический дефект: тройка (помещение, классификация,
// описание) и до трёх снимков разных ролей.
type DefectGroup struct {
	Location       string
	Classification string
	Details        string
	Images         []DefectImage
}

// ImageRef — сохранённый снимок.
type ImageRef struct {
	Path string `json:"path"`
	URL  string `json:"url"`
}

// DefectView — дефект при чтении: снимки разложены по ролям.
type DefectView struct {
	Location       string    `json:"location"`
	Classification string    `json:"classification"`
	Details        string    `json:"details"`
	Full           *ImageRef `json:"full,omitempty"`
	Closeup        *ImageRef `json:"closeup,omitempty"`
	Angle          *ImageRef `json:"angle,omitempty"`
}

// SaveVisual перезаписывает визуальный осмотр отчёта: прежние объекты
// хранилища удаляются, новые снимки загружаются под префиксом
// "<reportID>/", строки заменяются батчем.
func (s *ReportService) SaveVisual(ctx context.Context, reportID string, groups []DefectGroup) error {
	if _, err := s.GetReport(ctx, reportID); err != nil {
		return err
	}
	for _, g := range groups {
		if err := validateDefect(g); err != nil {
			return err
		}
	}

	// Снимки прежней версии осмотра больше никому не нужны.
	oldPaths, err := s.visual.ListPathsByReport(ctx, reportID)
	if err != nil {
		return fmt.Errorf("list old image paths: %w", err)
	}
	if len(oldPaths) > 0 {
		if err := s.store.Remove(ctx, oldPaths); err != nil {
			return fmt.Errorf("remove old images: %w", err)
		}
	}

	var rows []model.VisualItem
	for _, g := range groups {
		for _, img := range g.Images {
			path := fmt.Sprintf("%s/%s_%s_%s", reportID, uuid.NewString(), img.Type, img.FileName)
			if err := s.store.Put(ctx, path, img.Content, img.Size, "image/jpeg"); err != nil {
				return fmt.Errorf("upload image %s: %w", path, err)
			}
			rows = append(rows, model.VisualItem{
				Location:       g.Location,
				Classification: g.Classification,
				Details:        g.Details,
				ImagePath:      path,
				ImageURL:       s.store.PublicURL(path),
				ImageType:      img.Type,
			})
		}
	}

	if err := s.visual.ReplaceForReport(ctx, reportID, rows); err != nil {
		return fmt.Errorf("save visual rows: %w", err)
	}

	s.logger.Infow("visual check saved",
		"report_id", reportID,
		"defects", len(groups),
		"images", len(rows),
	)
	return nil
}

// LoadVisual группирует строки отчёта в дефекты по составному ключу,
// сохраняя порядок первого появления. В группе держится не больше
// одного снимка каждой роли.
func (s *ReportService) LoadVisual(ctx context.Context, reportID string) ([]DefectView, error) {
	rows, err := s.visual.ListByReport(ctx, reportID)
	if err != nil {
		return nil, fmt.Errorf("load visual: %w", err)
	}
	return groupDefects(rows), nil
}

func groupDefects(rows []model.VisualItem) []DefectView {
	var views []DefectView
	index := make(map[string]int)

	for _, row := range rows {
		key := row.Location + "\x00" + row.Classification + "\x00" + row.Details
		i, ok := index[key]
		if !ok {
			views = append(views, DefectView{
				Location:       row.Location,
				Classification: row.Classification,
				Details:        row.Details,
			})
			i = len(views) - 1
			index[key] = i
		}

		ref := &ImageRef{Path: row.ImagePath, URL: row.ImageURL}
		switch row.ImageType {
		case model.ImageTypeFull:
			views[i].Full = ref
		case model.ImageTypeCloseup:
			views[i].Closeup = ref
		case model.ImageTypeAngle:
			views[i].Angle = ref
		}
	}

	return views
}

func validateDefect(g DefectGroup) error {
	if g.Location == "" || g.Classification == "" {
		return ErrInvalidDefect
	}
	if utf8.RuneCountInString(g.Details) < minDetailsLen {
		return ErrInvalidDefect
	}
	for _, img := range g.Images {
		switch img.Type {
		case model.ImageTypeFull, model.ImageTypeCloseup, model.ImageTypeAngle:
		default:
			return ErrInvalidDefect
		}
	}
	return nil
}
