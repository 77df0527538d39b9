package schema

import "time"

const (
	HealthReportCollection = "healthReport"

	// FileTypeSymptomCheck marks a report that was produced by the
	// symptom checker rather than an uploaded document.
	FileTypeSymptomCheck = "symptom-check"
)

type FindingStatus string

const (
	FindingNormal   FindingStatus = "Normal"
	FindingWarning  FindingStatus = "Warning"
	FindingCritical FindingStatus = "Critical"
	FindingUnknown  FindingStatus = "Unknown"
)

// Finding is one extracted parameter of an analyzed document.
type Finding struct {
	Parameter      string        `json:"parameter" bson:"parameter"`
	Value          string        `json:"value" bson:"value"`
	Unit           string        `json:"unit,omitempty" bson:"unit,omitempty"`
	ReferenceRange string        `json:"reference_range,omitempty" bson:"reference_range,omitempty"`
	Status         FindingStatus `json:"status" bson:"status"`
	Interpretation string        `json:"interpretation" bson:"interpretation"`
	Category       string        `json:"category,omitempty" bson:"category,omitempty"`
}

// AnalysisResult is the structured outcome of a document analysis or a
// symptom check. Content is stored as delivered by the analysis boundary.
type AnalysisResult struct {
	Summary         string    `json:"summary" bson:"summary"`
	Findings        []Finding `json:"findings" bson:"findings"`
	ResearchContext string    `json:"research_context" bson:"research_context"`
	PatientAdvice   []string  `json:"patient_advice" bson:"patient_advice"`
	Disclaimer      string    `json:"disclaimer" bson:"disclaimer"`
}

// SavedReport is a stored analysis. UserID is empty for guest records,
// which are returned to the caller but never listed for any owner.
type SavedReport struct {
	ID        string         `json:"id" bson:"id"`
	UserID    string         `json:"user_id,omitempty" bson:"user_id,omitempty"`
	Timestamp time.Time      `json:"timestamp" bson:"ts"`
	FileName  string         `json:"file_name" bson:"file_name"`
	FileType  string         `json:"file_type" bson:"file_type"`
	Result    AnalysisResult `json:"result" bson:"result"`
}
