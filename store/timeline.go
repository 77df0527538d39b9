package store

import (
	"golang.org/x/sync/errgroup"

	"github.com/vitalis-inc/vitalis-api/schema"
	"github.com/vitalis-inc/vitalis-api/timeline"
)

type Timeline interface {
	GetTimelineEvents(userID string) ([]schema.TimelineEvent, error)
}

// GetTimelineEvents merges the owner's reports and daily logs into one
// reverse-chronological event stream. Both lists are fetched
// concurrently; the merge itself is pure.
func (m *mongoDB) GetTimelineEvents(userID string) ([]schema.TimelineEvent, error) {
	var (
		reports []schema.SavedReport
		logs    []schema.DailyLogEntry
	)

	var g errgroup.Group
	g.Go(func() error {
		var err error
		reports, err = m.ListReports(userID)
		return err
	})
	g.Go(func() error {
		var err error
		logs, err = m.ListLogs(userID)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return timeline.Merge(reports, logs), nil
}
