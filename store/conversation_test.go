package store

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vitalis-inc/vitalis-api/schema"
)

type ConversationTestSuite struct {
	suite.Suite
	connURI      string
	testDBName   string
	mongoClient  *mongo.Client
	testDatabase *mongo.Database
}

func NewConversationTestSuite(connURI, dbName string) *ConversationTestSuite {
	return &ConversationTestSuite{
		connURI:    connURI,
		testDBName: dbName,
	}
}

func (s *ConversationTestSuite) SetupSuite() {
	if s.connURI == "" || s.testDBName == "" {
		s.T().Fatal("invalid test suite configuration")
	}

	opts := options.Client().ApplyURI(s.connURI)
	mongoClient, err := mongo.NewClient(opts)
	if nil != err {
		s.T().Fatalf("create mongo client with error: %s", err)
	}

	if err = mongoClient.Connect(context.Background()); nil != err {
		s.T().Fatalf("connect mongo database with error: %s", err.Error())
	}

	s.mongoClient = mongoClient
	s.testDatabase = mongoClient.Database(s.testDBName)

	// make sure the test suite is run with a clean environment
	if err := s.CleanMongoDB(); err != nil {
		s.T().Fatal(err)
	}
	schema.NewMongoDBIndexer(s.connURI, s.testDBName).IndexAll()
	if err := s.LoadMongoDBFixtures(); err != nil {
		s.T().Fatal(err)
	}
}

// LoadMongoDBFixtures will preload fixtures into test mongodb
func (s *ConversationTestSuite) LoadMongoDBFixtures() error {
	ctx := context.Background()

	if _, err := s.testDatabase.Collection(schema.ConversationCollection).InsertOne(ctx, schema.Conversation{
		UserID: "account-test-conversation-clear",
		Messages: []schema.ChatMessage{
			{ID: "m1", Role: schema.RoleUser, Text: "hello"},
			{ID: "m2", Role: schema.RoleAssistant, Text: "hi there"},
		},
	}); err != nil {
		return err
	}

	return nil
}

// CleanMongoDB drop the whole test mongodb
func (s *ConversationTestSuite) CleanMongoDB() error {
	return s.testDatabase.Drop(context.Background())
}

// TestSaveAndLoadConversation tests the round trip for one owner
func (s *ConversationTestSuite) TestSaveAndLoadConversation() {
	store := NewMongoStore(s.mongoClient, s.testDBName)

	messages := []schema.ChatMessage{
		{ID: "m1", Role: schema.RoleUser, Text: "how do I read this?"},
		{ID: "m2", Role: schema.RoleAssistant, Text: "start with the summary"},
	}
	s.NoError(store.SaveConversation("account-test-conversation", messages))

	loaded, err := store.LoadConversation("account-test-conversation")
	s.NoError(err)
	s.Len(loaded, 2)
	s.Equal("how do I read this?", loaded[0].Text)
	s.Equal(schema.RoleAssistant, loaded[1].Role)
}

// TestSaveConversationReplacesDocument tests that an owner only ever
// has one stored conversation
func (s *ConversationTestSuite) TestSaveConversationReplacesDocument() {
	ctx := context.Background()
	store := NewMongoStore(s.mongoClient, s.testDBName)

	s.NoError(store.SaveConversation("account-test-conversation-replace", []schema.ChatMessage{
		{ID: "m1", Role: schema.RoleUser, Text: "first"},
	}))
	s.NoError(store.SaveConversation("account-test-conversation-replace", []schema.ChatMessage{
		{ID: "m1", Role: schema.RoleUser, Text: "first"},
		{ID: "m2", Role: schema.RoleAssistant, Text: "second"},
	}))

	count, err := s.testDatabase.Collection(schema.ConversationCollection).CountDocuments(ctx, bson.M{
		"user_id": "account-test-conversation-replace",
	})
	s.NoError(err)
	s.Equal(int64(1), count)

	loaded, err := store.LoadConversation("account-test-conversation-replace")
	s.NoError(err)
	s.Len(loaded, 2)
}

// TestSaveConversationPrunesToBound tests that only the most recent 50
// messages survive persistence
func (s *ConversationTestSuite) TestSaveConversationPrunesToBound() {
	store := NewMongoStore(s.mongoClient, s.testDBName)

	messages := make([]schema.ChatMessage, 0, schema.MaxConversationMessages+1)
	for i := 0; i <= schema.MaxConversationMessages; i++ {
		messages = append(messages, schema.ChatMessage{
			ID:   fmt.Sprintf("m%d", i),
			Role: schema.RoleUser,
			Text: fmt.Sprintf("turn %d", i),
		})
	}
	s.NoError(store.SaveConversation("account-test-conversation-prune", messages))

	loaded, err := store.LoadConversation("account-test-conversation-prune")
	s.NoError(err)
	s.Len(loaded, schema.MaxConversationMessages)
	s.Equal("turn 1", loaded[0].Text, "oldest message must be dropped")
	s.Equal(fmt.Sprintf("turn %d", schema.MaxConversationMessages), loaded[len(loaded)-1].Text)
}

// TestLoadConversationMissingOwner tests that an owner without history
// gets an empty sequence, not an error
func (s *ConversationTestSuite) TestLoadConversationMissingOwner() {
	store := NewMongoStore(s.mongoClient, s.testDBName)

	loaded, err := store.LoadConversation("account-without-conversation")
	s.NoError(err)
	s.NotNil(loaded)
	s.Len(loaded, 0)
}

// TestClearConversation tests removing a stored history
func (s *ConversationTestSuite) TestClearConversation() {
	ctx := context.Background()
	store := NewMongoStore(s.mongoClient, s.testDBName)

	s.NoError(store.ClearConversation("account-test-conversation-clear"))

	count, err := s.testDatabase.Collection(schema.ConversationCollection).CountDocuments(ctx, bson.M{
		"user_id": "account-test-conversation-clear",
	})
	s.NoError(err)
	s.Equal(int64(0), count)

	// clearing again is a no-op
	s.NoError(store.ClearConversation("account-test-conversation-clear"))
}

// In order for 'go test' to run this suite, we need to create
// a normal test function and pass our suite to s.Run
func TestConversationTestSuite(t *testing.T) {
	suite.Run(t, NewConversationTestSuite("mongodb://127.0.0.1:27017/?compressors=disabled", "test-db"))
}
