package schema

type RiskLevel string

const (
	RiskLow      RiskLevel = "Low"
	RiskModerate RiskLevel = "Moderate"
	RiskHigh     RiskLevel = "High"
	RiskSevere   RiskLevel = "Severe"
)

// RiskAssessment is a derived indicator computed from the recent log
// window. Scores are always within [0, 100].
type RiskAssessment struct {
	Title       string    `json:"title"`
	Score       int       `json:"score"`
	Level       RiskLevel `json:"level"`
	Description string    `json:"description"`
	Suggestions []string  `json:"suggestions"`
}
