package model

// EquipmentItem — одна строка приборного осмотра.
// ItemName хранит составной ключ "<категория>_<помещение>",
// InputText — упакованную строку деталей (см. internal/codec).
type EquipmentItem struct {
	ID       int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	ReportID string `gorm:"type:uuid;not null;index" json:"report_id"`

	ItemName  string `gorm:"not null" json:"item_name"`
	IsChecked bool   `gorm:"not null;default:false" json:"is_checked"`
	InputText string `json:"input_text"`
}
