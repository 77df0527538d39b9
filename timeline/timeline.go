package timeline

import (
	"fmt"
	"sort"
	"time"

	"github.com/vitalis-inc/vitalis-api/schema"
)

const summaryLimit = 100

// FromReports maps stored reports to timeline events. Symptom-check
// reports become symptom_check events, everything else a report event.
func FromReports(reports []schema.SavedReport) []schema.TimelineEvent {
	events := make([]schema.TimelineEvent, 0, len(reports))
	for _, r := range reports {
		event := schema.TimelineEvent{
			ID:      r.ID,
			Date:    r.Timestamp.Format(time.RFC3339),
			Type:    schema.TimelineEventReport,
			Title:   fmt.Sprintf("Analysis: %s", r.FileName),
			Summary: truncate(r.Result.Summary, summaryLimit) + "...",
			Details: r,
		}
		if r.FileType == schema.FileTypeSymptomCheck {
			event.Type = schema.TimelineEventSymptomCheck
			event.Title = "Symptom Check"
		}
		events = append(events, event)
	}
	return events
}

// FromLogs maps daily log entries to timeline events with a synthesized
// mood/stress summary.
func FromLogs(logs []schema.DailyLogEntry) []schema.TimelineEvent {
	events := make([]schema.TimelineEvent, 0, len(logs))
	for _, l := range logs {
		summary := fmt.Sprintf("Mood: %d/5, Stress: %d/5", l.Mood, l.Stress)
		if l.Notes != "" {
			summary = fmt.Sprintf("%s - %s", summary, l.Notes)
		}
		events = append(events, schema.TimelineEvent{
			ID:      l.ID,
			Date:    l.Date,
			Type:    schema.TimelineEventLog,
			Title:   "Daily Health Log",
			Summary: summary,
			Details: l,
		})
	}
	return events
}

// Merge concatenates the mapped report and log events and orders them by
// descending date. The sort is stable: events on the same date keep
// their original relative order.
func Merge(reports []schema.SavedReport, logs []schema.DailyLogEntry) []schema.TimelineEvent {
	events := append(FromReports(reports), FromLogs(logs)...)

	sort.SliceStable(events, func(i, j int) bool {
		return eventTime(events[i].Date).After(eventTime(events[j].Date))
	})

	return events
}

// eventTime parses an event date, which is either a full RFC3339
// timestamp (reports) or a plain ISO date (daily logs).
func eventTime(date string) time.Time {
	if t, err := time.Parse(time.RFC3339, date); err == nil {
		return t
	}
	t, _ := time.Parse("2006-01-02", date)
	return t
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
