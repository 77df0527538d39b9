package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vitalis-inc/vitalis-api/schema"
)

type Emergency interface {
	UpsertEmergencyProfile(profile schema.EmergencyProfile) (*schema.EmergencyProfile, error)
	GetEmergencyProfile(userID string) (*schema.EmergencyProfile, error)
}

// UpsertEmergencyProfile replaces the owner's emergency card wholesale.
// At most one record exists per user.
func (m *mongoDB) UpsertEmergencyProfile(profile schema.EmergencyProfile) (*schema.EmergencyProfile, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	c := m.client.Database(m.database).Collection(schema.EmergencyProfileCollection)

	opts := options.Replace().SetUpsert(true)
	if _, err := c.ReplaceOne(ctx, bson.M{"user_id": profile.UserID}, &profile, opts); err != nil {
		return nil, err
	}

	return &profile, nil
}

// GetEmergencyProfile returns the owner's emergency card, or nil when
// none has been saved.
func (m *mongoDB) GetEmergencyProfile(userID string) (*schema.EmergencyProfile, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	c := m.client.Database(m.database).Collection(schema.EmergencyProfileCollection)

	var p schema.EmergencyProfile
	err := c.FindOne(ctx, bson.M{"user_id": userID}).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &p, nil
}
