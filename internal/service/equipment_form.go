package service

import (
	"AptInspect/internal/codec"
	"AptInspect/internal/model"
)

// Секции приборного осмотра. Формы устроены как в бумажном протоколе:
// на каждое помещение — строка с флагом "норма" и деталями.

type RadonItem struct {
	Location        string `json:"location"`
	Normal          bool   `json:"normal"`
	ExceedsStandard bool   `json:"exceeds_standard"`
	Value           string `json:"value"`
}

type FormaldehydeItem struct {
	Location        string `json:"location"`
	Normal          bool   `json:"normal"`
	ExceedsStandard bool   `json:"exceeds_standard"`
	Value           string `json:"value"`
}

type ThermalItem struct {
	Location string              `json:"location"`
	Normal   bool                `json:"normal"`
	Details  codec.ThermalDetails `json:"details"`
}

type PipingItem struct {
	Location string              `json:"location"`
	Normal   bool                `json:"normal"`
	Details  codec.PipingDetails `json:"details"`
}

type FloorLevelItem struct {
	Location string                  `json:"location"`
	Normal   bool                    `json:"normal"`
	Details  codec.FloorLevelDetails `json:"details"`
}

type DrainageItem struct {
	Location string                `json:"location"`
	Normal   bool                  `json:"normal"`
	Details  codec.DrainageDetails `json:"details"`
}

// EquipmentForm — все шесть секций приборного осмотра одного отчёта.
type EquipmentForm struct {
	Radon        []RadonItem        `json:"radon"`
	Formaldehyde []FormaldehydeItem `json:"formaldehyde"`
	Thermal      []ThermalItem      `json:"thermal"`
	Piping       []PipingItem       `json:"piping"`
	FloorLevel   []FloorLevelItem   `json:"floor_level"`
	Drainage     []DrainageItem     `json:"drainage"`
}

// equipmentRows разворачивает форму в строки таблицы в фиксированном
// порядке секций.
func equipmentRows(form EquipmentForm) []model.EquipmentItem {
	var rows []model.EquipmentItem

	for _, it := range form.Radon {
		rows = append(rows, model.EquipmentItem{
			ItemName:  codec.JoinItemName(codec.CategoryRadon, it.Location),
			IsChecked: it.Normal,
			InputText: codec.EncodeRadonValue(it.Value),
		})
	}
	for _, it := range form.Formaldehyde {
		rows = append(rows, model.EquipmentItem{
			ItemName:  codec.JoinItemName(codec.CategoryFormaldehyde, it.Location),
			IsChecked: it.Normal,
			InputText: codec.EncodeFormaldehydeValue(it.Value),
		})
	}
	for _, it := range form.Thermal {
		rows = append(rows, model.EquipmentItem{
			ItemName:  codec.JoinItemName(codec.CategoryThermal, it.Location),
			IsChecked: it.Normal,
			InputText: it.Details.Encode(),
		})
	}
	for _, it := range form.Piping {
		rows = append(rows, model.EquipmentItem{
			ItemName:  codec.JoinItemName(codec.CategoryPiping, it.Location),
			IsChecked: it.Normal,
			InputText: it.Details.Encode(),
		})
	}
	for _, it := range form.FloorLevel {
		rows = append(rows, model.EquipmentItem{
			ItemName:  codec.JoinItemName(codec.CategoryFloorLevel, it.Location),
			IsChecked: it.Normal,
			InputText: it.Details.Encode(),
		})
	}
	for _, it := range form.Drainage {
		rows = append(rows, model.EquipmentItem{
			ItemName:  codec.JoinItemName(codec.CategoryDrainage, it.Location),
			IsChecked: it.Normal,
			InputText: it.Details.Encode(),
		})
	}

	return rows
}

// equipmentFormFromRows собирает форму обратно из строк таблицы.
// Разбор снисходительный: строка незнакомой категории пропускается,
// битые детали дают пустые поля.
func equipmentFormFromRows(rows []model.EquipmentItem) EquipmentForm {
	var form EquipmentForm

	for _, row := range rows {
		category, location := codec.SplitItemName(row.ItemName)
		switch category {
		case codec.CategoryRadon:
			form.Radon = append(form.Radon, RadonItem{
				Location: location,
				Normal:   row.IsChecked,
				// Превышение нормы фиксируется снятым флагом при
				// непустом показании.
				ExceedsStandard: !row.IsChecked && row.InputText != "",
				Value:           codec.DecodeRadonValue(row.InputText),
			})
		case codec.CategoryFormaldehyde:
			form.Formaldehyde = append(form.Formaldehyde, FormaldehydeItem{
				Location:        location,
				Normal:          row.IsChecked,
				ExceedsStandard: !row.IsChecked && row.InputText != "",
				Value:           codec.DecodeFormaldehydeValue(row.InputText),
			})
		case codec.CategoryThermal:
			form.Thermal = append(form.Thermal, ThermalItem{
				Location: location,
				Normal:   row.IsChecked,
				Details:  codec.ParseThermalDetails(row.InputText),
			})
		case codec.CategoryPiping:
			form.Piping = append(form.Piping, PipingItem{
				Location: location,
				Normal:   row.IsChecked,
				Details:  codec.ParsePipingDetails(row.InputText),
			})
		case codec.CategoryFloorLevel:
			form.FloorLevel = append(form.FloorLevel, FloorLevelItem{
				Location: location,
				Normal:   row.IsChecked,
				Details:  codec.ParseFloorLevelDetails(row.InputText),
			})
		case codec.CategoryDrainage:
			form.Drainage = append(form.Drainage, DrainageItem{
				Location: location,
				Normal:   row.IsChecked,
				Details:  codec.ParseDrainageDetails(row.InputText),
			})
		}
	}

	return form
}
