package schema

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoDBIndexer struct {
	ctx      context.Context
	dbName   string
	Client   *mongo.Client
	Database *mongo.Database
}

func NewMongoDBIndexer(connectionString, dbName string) *MongoDBIndexer {
	ctx := context.Background()
	opts := options.Client().ApplyURI(connectionString)
	client, err := mongo.NewClient(opts)
	if err != nil {
		panic(err)
	}
	if err := client.Connect(ctx); err != nil {
		panic(err)
	}

	return &MongoDBIndexer{
		ctx:      ctx,
		dbName:   dbName,
		Client:   client,
		Database: client.Database(dbName),
	}
}

func (m *MongoDBIndexer) createIndex(collection string, index mongo.IndexModel) error {
	c := m.Database.Collection(collection)
	_, err := c.Indexes().CreateOne(m.ctx, index)
	return err
}

func panicIfError(err error) {
	if err != nil {
		panic(err)
	}
}

func (m *MongoDBIndexer) IndexAll() {
	panicIfError(m.IndexHealthReportCollection())
	panicIfError(m.IndexDailyLogCollection())
	panicIfError(m.IndexEmergencyProfileCollection())
	panicIfError(m.IndexConversationCollection())
}

func (m *MongoDBIndexer) IndexHealthReportCollection() error {
	if err := m.createIndex(HealthReportCollection, mongo.IndexModel{
		Keys: bson.M{
			"id": 1,
		},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return err
	}

	return m.createIndex(HealthReportCollection, mongo.IndexModel{
		Keys: bson.D{
			{Key: "user_id", Value: 1},
			{Key: "ts", Value: -1},
		},
	})
}

func (m *MongoDBIndexer) IndexDailyLogCollection() error {
	return m.createIndex(DailyLogCollection, mongo.IndexModel{
		Keys: bson.D{
			{Key: "user_id", Value: 1},
			{Key: "date", Value: -1},
		},
	})
}

func (m *MongoDBIndexer) IndexEmergencyProfileCollection() error {
	return m.createIndex(EmergencyProfileCollection, mongo.IndexModel{
		Keys: bson.M{
			"user_id": 1,
		},
		Options: options.Index().SetUnique(true),
	})
}

func (m *MongoDBIndexer) IndexConversationCollection() error {
	return m.createIndex(ConversationCollection, mongo.IndexModel{
		Keys: bson.M{
			"user_id": 1,
		},
		Options: options.Index().SetUnique(true),
	})
}
