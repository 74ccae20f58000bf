package entity

// RemedyType — тип рекомендации.
type RemedyType string

const (
	RemedyChemical RemedyType = "Chemical"
	RemedyOrganic  RemedyType = "Organic/Cultural"
)

// Remedy — одна рекомендация из ответа консультанта.
type Remedy struct {
	Type   RemedyType
	Action string
}

// Advice — структурированный совет ИИ-эксперта по диагнозу.
type Advice struct {
	Diagnosis  string
	Symptoms   string
	Prevention string
	Remedies   []Remedy
}

// CropTips — советы по выращиванию культуры, по разделам.
type CropTips struct {
	SoilClimate        string
	SowingPlanting     string
	WaterManagement    string
	NutrientManagement string
	PestDiseaseMgmt    string
	Harvesting         string
}
