package schema

type InsightType string

const (
	InsightPattern     InsightType = "pattern"
	InsightImprovement InsightType = "improvement"
	InsightWarning     InsightType = "warning"
)

// HealthInsight is one short, actionable observation derived from the
// owner's recent logs and reports. Insights are generated on request
// and never persisted.
type HealthInsight struct {
	Type        InsightType `json:"type"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
}
