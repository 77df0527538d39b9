package store

import (
	"context"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vitalis-inc/vitalis-api/schema"
)

type DailyLog interface {
	AppendLog(entry schema.DailyLogEntry) (*schema.DailyLogEntry, error)
	ListLogs(userID string) ([]schema.DailyLogEntry, error)
}

// AppendLog stores a daily wellness entry. Entries are append-only;
// there is no update or delete path. Ratings are clamped to 1..5.
func (m *mongoDB) AppendLog(entry schema.DailyLogEntry) (*schema.DailyLogEntry, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	entry.ID = uuid.New().String()
	entry.Normalize()

	c := m.client.Database(m.database).Collection(schema.DailyLogCollection)
	if _, err := c.InsertOne(ctx, &entry); err != nil {
		return nil, err
	}

	return &entry, nil
}

// ListLogs returns all log entries of an owner, newest date first.
func (m *mongoDB) ListLogs(userID string) ([]schema.DailyLogEntry, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	c := m.client.Database(m.database).Collection(schema.DailyLogCollection)

	cursor, err := c.Find(ctx, bson.M{"user_id": userID},
		options.Find().SetSort(bson.M{"date": -1}))
	if err != nil {
		return nil, err
	}

	logs := make([]schema.DailyLogEntry, 0)
	for cursor.Next(ctx) {
		var e schema.DailyLogEntry
		if err := cursor.Decode(&e); err != nil {
			return nil, err
		}
		logs = append(logs, e)
	}

	return logs, nil
}
