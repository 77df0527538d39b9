package schema

type TimelineEventType string

const (
	TimelineEventReport       TimelineEventType = "report"
	TimelineEventLog          TimelineEventType = "log"
	TimelineEventSymptomCheck TimelineEventType = "symptom_check"
)

// TimelineEvent is a derived view over one stored record. It is rebuilt
// on every aggregation request and never persisted.
type TimelineEvent struct {
	ID      string            `json:"id"`
	Date    string            `json:"date"`
	Type    TimelineEventType `json:"type"`
	Title   string            `json:"title"`
	Summary string            `json:"summary"`
	Details interface{}       `json:"details,omitempty"`
}
