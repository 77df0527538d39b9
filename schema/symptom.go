package schema

// SymptomInput is the payload for a symptom triage request.
type SymptomInput struct {
	Symptoms []string `json:"symptoms"`
	Duration string   `json:"duration"`
	Severity string   `json:"severity"`
	Age      string   `json:"age"`
	Sex      string   `json:"sex"`
	History  string   `json:"history"`
	Activity string   `json:"activity"`
}

type SymptomCondition struct {
	Name             string   `json:"name"`
	Probability      string   `json:"probability"`
	Description      string   `json:"description"`
	MatchingSymptoms []string `json:"matching_symptoms"`
}

type SymptomRecommendations struct {
	SelfCare    []string `json:"self_care"`
	DoctorVisit string   `json:"doctor_visit"`
	Emergency   string   `json:"emergency"`
}

// SymptomCheckResult is the triage outcome delivered by the analysis
// boundary. It is folded into an AnalysisResult for storage.
type SymptomCheckResult struct {
	Conditions      []SymptomCondition     `json:"conditions"`
	SeverityLevel   string                 `json:"severity_level"`
	Recommendations SymptomRecommendations `json:"recommendations"`
	Disclaimer      string                 `json:"disclaimer"`
}
