package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vitalis-inc/vitalis-api/schema"
)

type HealthReport interface {
	UpsertReport(report schema.SavedReport) (*schema.SavedReport, error)
	ListReports(userID string) ([]schema.SavedReport, error)
	DeleteReport(userID, id string) error
	DeleteAllReports(userID string) error
}

// UpsertReport stores an analyzed report. A missing id is assigned and
// the creation time is stamped; an existing id is replaced in place.
func (m *mongoDB) UpsertReport(report schema.SavedReport) (*schema.SavedReport, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	if report.ID == "" {
		report.ID = uuid.New().String()
	}
	report.Timestamp = time.Now().UTC()

	c := m.client.Database(m.database).Collection(schema.HealthReportCollection)

	opts := options.Replace().SetUpsert(true)
	if _, err := c.ReplaceOne(ctx, bson.M{"id": report.ID}, &report, opts); err != nil {
		return nil, err
	}

	return &report, nil
}

// ListReports returns all reports of an owner, newest first.
func (m *mongoDB) ListReports(userID string) ([]schema.SavedReport, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	c := m.client.Database(m.database).Collection(schema.HealthReportCollection)

	cursor, err := c.Find(ctx, bson.M{"user_id": userID},
		options.Find().SetSort(bson.M{"ts": -1}))
	if err != nil {
		return nil, err
	}

	reports := make([]schema.SavedReport, 0)
	for cursor.Next(ctx) {
		var r schema.SavedReport
		if err := cursor.Decode(&r); err != nil {
			return nil, err
		}
		reports = append(reports, r)
	}

	return reports, nil
}

// DeleteReport removes one report by id, scoped to its owner. Deleting
// an unknown id or another owner's report is a no-op.
func (m *mongoDB) DeleteReport(userID, id string) error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	c := m.client.Database(m.database).Collection(schema.HealthReportCollection)
	_, err := c.DeleteOne(ctx, bson.M{"id": id, "user_id": userID})
	return err
}

// DeleteAllReports removes every report of an owner.
func (m *mongoDB) DeleteAllReports(userID string) error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	c := m.client.Database(m.database).Collection(schema.HealthReportCollection)
	_, err := c.DeleteMany(ctx, bson.M{"user_id": userID})
	return err
}
