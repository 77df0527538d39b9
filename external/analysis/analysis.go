// Package analysis is the boundary to the external document-analysis
// and symptom-triage completion service. Replies are parsed into the
// structured result types with per-field defaulting: a malformed reply
// degrades to safe empty values, it never aborts the flow.
package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	log "github.com/sirupsen/logrus"

	"github.com/vitalis-inc/vitalis-api/schema"
)

const analysisLogPrefix = "analysis"

// Input is one document to analyze: either base64 content with its
// MIME type, or extracted text. Language optionally requests the
// output language of the generated text.
type Input struct {
	Base64      string
	TextContent string
	MimeType    string
	Language    string
}

type Analyzer interface {
	AnalyzeReport(ctx context.Context, input Input) (*schema.AnalysisResult, error)
	CheckSymptoms(ctx context.Context, input schema.SymptomInput) (*schema.SymptomCheckResult, error)
	GenerateHealthInsights(ctx context.Context, logs []schema.DailyLogEntry, reports []schema.SavedReport) ([]schema.HealthInsight, error)
}

type client struct {
	openai *openai.Client
	model  string
}

// New returns an OpenAI-backed Analyzer.
func New(apiKey, model string) Analyzer {
	return &client{
		openai: openai.NewClient(apiKey),
		model:  model,
	}
}

const reportPrompt = `You are Vitalis, a world-class advanced medical AI assistant.
Analyze the provided medical document, imaging, or visual symptom input thoroughly.

Respond with a single JSON object with these fields:
- "summary": patient-friendly summary of the overall health status
- "findings": array of objects with "parameter", "value", "unit", "reference_range",
  "status" (one of "Normal", "Warning", "Critical", "Unknown"), "interpretation", "category"
- "research_context": detailed medical context about the conditions or markers found
- "patient_advice": array of actionable steps or questions for the doctor
- "disclaimer": standard medical AI disclaimer

Extract every distinct medical parameter. If the document provides a reference range,
extract it; otherwise provide the standard medical reference range if known.
If the input is NOT related to health or medicine, return a polite error in "summary"
and empty arrays for the other fields.`

// AnalyzeReport sends one document to the completion service and
// parses its reply into an AnalysisResult.
func (c *client) AnalyzeReport(ctx context.Context, input Input) (*schema.AnalysisResult, error) {
	prompt := reportPrompt
	if input.Language != "" {
		prompt += fmt.Sprintf("\nWrite all generated text in the language with BCP-47 tag %q.", input.Language)
	}

	message := openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser}
	switch {
	case input.Base64 != "":
		message.MultiContent = []openai.ChatMessagePart{
			{
				Type: openai.ChatMessagePartTypeImageURL,
				ImageURL: &openai.ChatMessageImageURL{
					URL: fmt.Sprintf("data:%s;base64,%s", input.MimeType, input.Base64),
				},
			},
			{
				Type: openai.ChatMessagePartTypeText,
				Text: prompt,
			},
		}
	default:
		message.Content = fmt.Sprintf("Here is the content of the medical file (%s):\n\n%s\n\n%s",
			input.MimeType, input.TextContent, prompt)
	}

	reply, err := c.complete(ctx, message)
	if err != nil {
		return nil, err
	}

	return parseAnalysisResult(reply), nil
}

const symptomPrompt = `Act as an experienced triage nurse and medical AI.
Analyze the following patient inputs and provide a symptom assessment.

Patient Data:
- Symptoms: %s
- Duration: %s
- Reported Severity: %s
- Age/Sex: %s, %s
- Medical History: %s
- Recent Activity: %s

Respond with a single JSON object with these fields:
- "conditions": array of 2-3 likely conditions, each with "name",
  "probability" (one of "Low", "Medium", "High"), "description", "matching_symptoms"
- "severity_level": one of "Low", "Medium", "High" (High means immediate medical attention)
- "recommendations": object with "self_care" (array), "doctor_visit", "emergency"
- "disclaimer": standard medical AI disclaimer`

// CheckSymptoms runs the triage assessment over the reported symptoms.
func (c *client) CheckSymptoms(ctx context.Context, input schema.SymptomInput) (*schema.SymptomCheckResult, error) {
	history := input.History
	if history == "" {
		history = "None provided"
	}
	activity := input.Activity
	if activity == "" {
		activity = "None provided"
	}

	reply, err := c.complete(ctx, openai.ChatCompletionMessage{
		Role: openai.ChatMessageRoleUser,
		Content: fmt.Sprintf(symptomPrompt,
			strings.Join(input.Symptoms, ", "), input.Duration, input.Severity,
			input.Age, input.Sex, history, activity),
	})
	if err != nil {
		return nil, err
	}

	return parseSymptomResult(reply), nil
}

const (
	insightLogWindow    = 30
	insightReportWindow = 5
)

const insightPrompt = `Analyze the following user health data to identify patterns, risks, and improvements.

Daily Logs (Last 30 days):
%s

Recent Medical Reports/Analyses:
%s

Task:
Generate 3-5 specific, short, actionable insights.
Look for correlations (e.g., "High stress correlates with poor sleep").
Look for trends (e.g., "Mood has improved over the last week").
Look for recurring issues from reports.

Respond with a single JSON object with one field:
- "insights": array of objects with "type" (one of "pattern", "improvement", "warning"),
  "title", "description"`

// GenerateHealthInsights derives short observations from the owner's
// recent logs and report summaries. The log and report windows are
// capped before the request is built.
func (c *client) GenerateHealthInsights(ctx context.Context, logs []schema.DailyLogEntry, reports []schema.SavedReport) ([]schema.HealthInsight, error) {
	if len(logs) > insightLogWindow {
		logs = logs[:insightLogWindow]
	}

	type reportDigest struct {
		Date    string `json:"date"`
		Summary string `json:"summary"`
	}
	digests := make([]reportDigest, 0, insightReportWindow)
	for _, r := range reports {
		if len(digests) == insightReportWindow {
			break
		}
		digests = append(digests, reportDigest{
			Date:    r.Timestamp.Format("2006-01-02"),
			Summary: r.Result.Summary,
		})
	}

	logsJSON, _ := json.Marshal(logs)
	digestsJSON, _ := json.Marshal(digests)

	reply, err := c.complete(ctx, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: fmt.Sprintf(insightPrompt, logsJSON, digestsJSON),
	})
	if err != nil {
		return nil, err
	}

	return parseInsights(reply), nil
}

func (c *client) complete(ctx context.Context, message openai.ChatCompletionMessage) (string, error) {
	resp, err := c.openai.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    c.model,
		Messages: []openai.ChatCompletionMessage{message},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Temperature: 0.2,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}

// parseAnalysisResult decodes a reply with field-level defaulting.
func parseAnalysisResult(reply string) *schema.AnalysisResult {
	var result schema.AnalysisResult
	if err := json.Unmarshal([]byte(reply), &result); err != nil {
		log.WithField("prefix", analysisLogPrefix).WithError(err).Warn("malformed analysis reply")
	}

	if result.Summary == "" {
		result.Summary = "Could not generate summary."
	}
	if result.Findings == nil {
		result.Findings = []schema.Finding{}
	}
	if result.ResearchContext == "" {
		result.ResearchContext = "No context provided."
	}
	if result.PatientAdvice == nil {
		result.PatientAdvice = []string{}
	}
	if result.Disclaimer == "" {
		result.Disclaimer = "Consult a doctor."
	}

	return &result
}

func parseSymptomResult(reply string) *schema.SymptomCheckResult {
	var result schema.SymptomCheckResult
	if err := json.Unmarshal([]byte(reply), &result); err != nil {
		log.WithField("prefix", analysisLogPrefix).WithError(err).Warn("malformed symptom reply")
	}

	if result.Conditions == nil {
		result.Conditions = []schema.SymptomCondition{}
	}
	if result.SeverityLevel == "" {
		result.SeverityLevel = "Low"
	}
	if result.Recommendations.SelfCare == nil {
		result.Recommendations.SelfCare = []string{}
	}
	if result.Disclaimer == "" {
		result.Disclaimer = "Consult a doctor."
	}

	return &result
}

// parseInsights decodes a reply into the insight list. A malformed
// reply degrades to an empty list, never an error.
func parseInsights(reply string) []schema.HealthInsight {
	var result struct {
		Insights []schema.HealthInsight `json:"insights"`
	}
	if err := json.Unmarshal([]byte(reply), &result); err != nil {
		log.WithField("prefix", analysisLogPrefix).WithError(err).Warn("malformed insights reply")
	}

	if result.Insights == nil {
		return []schema.HealthInsight{}
	}
	return result.Insights
}

// FoldSymptomResult maps a triage outcome into an AnalysisResult so a
// symptom check is stored like any other report.
func FoldSymptomResult(input schema.SymptomInput, result *schema.SymptomCheckResult) schema.AnalysisResult {
	findings := make([]schema.Finding, 0, len(result.Conditions))
	for _, c := range result.Conditions {
		status := schema.FindingNormal
		switch c.Probability {
		case "High":
			status = schema.FindingCritical
		case "Medium":
			status = schema.FindingWarning
		}
		findings = append(findings, schema.Finding{
			Parameter:      c.Name,
			Value:          c.Probability,
			Status:         status,
			Interpretation: c.Description,
			Category:       "Symptom Analysis",
		})
	}

	advice := append([]string{}, result.Recommendations.SelfCare...)
	if result.Recommendations.DoctorVisit != "" {
		advice = append(advice, fmt.Sprintf("Medical Advice: %s", result.Recommendations.DoctorVisit))
	}

	return schema.AnalysisResult{
		Summary: fmt.Sprintf("Symptom Check: %s. Severity: %s",
			strings.Join(input.Symptoms, ", "), result.SeverityLevel),
		Findings:        findings,
		ResearchContext: "This analysis is based on reported symptoms and does not constitute a clinical diagnosis.",
		PatientAdvice:   advice,
		Disclaimer:      result.Disclaimer,
	}
}
