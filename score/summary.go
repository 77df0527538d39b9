package score

import (
	"math"
	"time"

	"github.com/vitalis-inc/vitalis-api/schema"
)

// MonthlyData is the compact figure set used by the report export.
type MonthlyData struct {
	Month     string                  `json:"month"`
	TotalLogs int                     `json:"total_logs"`
	AvgSteps  int                     `json:"avg_steps"`
	Risks     []schema.RiskAssessment `json:"risks"`
}

// MonthlySummary condenses a log window and its risk assessments into
// the numbers shown on the exported monthly report.
func MonthlySummary(logs []schema.DailyLogEntry, risks []schema.RiskAssessment) MonthlyData {
	var steps float64
	for _, l := range logs {
		if l.Steps != nil {
			steps += float64(*l.Steps)
		}
	}

	divisor := float64(len(logs))
	if divisor == 0 {
		divisor = 1
	}

	return MonthlyData{
		Month:     time.Now().Format("January 2006"),
		TotalLogs: len(logs),
		AvgSteps:  int(math.Round(steps / divisor)),
		Risks:     risks,
	}
}
