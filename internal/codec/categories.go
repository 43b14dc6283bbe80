package codec

// Категории приборного осмотра. Используются как префикс составного
// ключа ItemName.
const (
	CategoryRadon        = "radon"
	CategoryFormaldehyde = "formaldehyde"
	CategoryThermal      = "thermal"
	CategoryPiping       = "piping"
	CategoryFloorLevel   = "floor_level"
	CategoryDrainage     = "drainage"
)

// knownCategories перечисляет категории для разбора составного ключа
// в SplitItemName.
var knownCategories = []string{
	CategoryRadon,
	CategoryFormaldehyde,
	CategoryThermal,
	CategoryPiping,
	CategoryFloorLevel,
	CategoryDrainage,
}

// Единицы измерения числовых полей.
const (
	unitRadon        = " Pci/L"
	unitFormaldehyde = " ppm"
	unitMillimeters  = "mm"
)

// EncodeRadonValue упаковывает показание радона: "<значение> Pci/L".
func EncodeRadonValue(value string) string {
	return value + unitRadon
}

// DecodeRadonValue возвращает показание без единицы измерения.
func DecodeRadonValue(s string) string {
	return trimUnit(s, unitRadon)
}

// EncodeFormaldehydeValue упаковывает показание формальдегида: "<значение> ppm".
func EncodeFormaldehydeValue(value string) string {
	return value + unitFormaldehyde
}

// DecodeFormaldehydeValue возвращает показание без единицы измерения.
func DecodeFormaldehydeValue(s string) string {
	return trimUnit(s, unitFormaldehyde)
}

// ThermalDetails — результат осмотра тепловизором.
type ThermalDetails struct {
	Mold              bool
	Condensation      bool
	MissingInsulation bool
	Leakage           bool
}

func (d ThermalDetails) Encode() string {
	return Encode([]Field{
		{"mold", boolString(d.Mold)},
		{"condensation", boolString(d.Condensation)},
		{"missing_insulation", boolString(d.MissingInsulation)},
		{"leakage", boolString(d.Leakage)},
	})
}

func ParseThermalDetails(s string) ThermalDetails {
	return ThermalDetails{
		Mold:              LookupBool(s, "mold"),
		Condensation:      LookupBool(s, "condensation"),
		MissingInsulation: LookupBool(s, "missing_insulation"),
		Leakage:           LookupBool(s, "leakage"),
	}
}

// PipingDetails — результат осмотра канализационных труб.
type PipingDetails struct {
	Damage        bool
	WasteMaterial bool
	PipeClog      bool
	Other         bool
}

func (d PipingDetails) Encode() string {
	return Encode([]Field{
		{"damage", boolString(d.Damage)},
		{"waste_material", boolString(d.WasteMaterial)},
		{"pipe_clog", boolString(d.PipeClog)},
		{"other", boolString(d.Other)},
	})
}

func ParsePipingDetails(s string) PipingDetails {
	return PipingDetails{
		Damage:        LookupBool(s, "damage"),
		WasteMaterial: LookupBool(s, "waste_material"),
		PipeClog:      LookupBool(s, "pipe_clog"),
		Other:         LookupBool(s, "other"),
	}
}

// FloorLevelDetails — замеры лазерного уровня пола, миллиметры в строковом
// виде (разница может быть отрицательной).
type FloorLevelDetails struct {
	Left  string
	Right string
	Diff  string
}

func (d FloorLevelDetails) Encode() string {
	return Encode([]Field{
		{"left", d.Left + unitMillimeters},
		{"right", d.Right + unitMillimeters},
		{"diff", d.Diff + unitMillimeters},
	})
}

func ParseFloorLevelDetails(s string) FloorLevelDetails {
	return FloorLevelDetails{
		Left:  trimUnit(Lookup(s, "left"), unitMillimeters),
		Right: trimUnit(Lookup(s, "right"), unitMillimeters),
		Diff:  trimUnit(Lookup(s, "diff"), unitMillimeters),
	}
}

// DrainageDetails — осмотр уклона слива в ванных и на балконе.
type DrainageDetails struct {
	DefectDetails string
	Remarks       string
}

func (d DrainageDetails) Encode() string {
	return Encode([]Field{
		{"defect_details", d.DefectDetails},
		{"remarks", d.Remarks},
	})
}

func ParseDrainageDetails(s string) DrainageDetails {
	return DrainageDetails{
		DefectDetails: Lookup(s, "defect_details"),
		Remarks:       Lookup(s, "remarks"),
	}
}
