package model

// Роли снимков одного дефекта.
const (
	ImageTypeFull    = "full"
	ImageTypeCloseup = "closeup"
	ImageTypeAngle   = "angle"
)

// VisualItem — одна строка визуального осмотра, по строке на снимок.
// Строки с одинаковой тройкой (Location, Classification, Details)
// принадлежат одному логическому дефекту; в группе не больше одного
// снимка каждой роли.
type VisualItem struct {
	ID       int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	ReportID string `gorm:"type:uuid;not null;index" json:"report_id"`

	Location       string `gorm:"not null" json:"location"`
	Classification string `gorm:"not null" json:"classification"`
	Details        string `json:"details"`

	ImagePath string `gorm:"not null" json:"image_path"`
	ImageURL  string `json:"image_url"`
	ImageType string `gorm:"not null" json:"image_type"`
}
