package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vitalis-inc/vitalis-api/schema"
)

type Conversation interface {
	SaveConversation(userID string, messages []schema.ChatMessage) error
	LoadConversation(userID string) ([]schema.ChatMessage, error)
	ClearConversation(userID string) error
}

// SaveConversation persists the owner's message sequence, pruned to the
// most recent 50 entries. The stored document is replaced wholesale;
// concurrent writes for the same owner are last-write-wins.
func (m *mongoDB) SaveConversation(userID string, messages []schema.ChatMessage) error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	conversation := schema.Conversation{
		UserID:    userID,
		Messages:  schema.PruneMessages(messages),
		UpdatedAt: time.Now().UTC(),
	}

	c := m.client.Database(m.database).Collection(schema.ConversationCollection)

	opts := options.Replace().SetUpsert(true)
	_, err := c.ReplaceOne(ctx, bson.M{"user_id": userID}, &conversation, opts)
	return err
}

// LoadConversation returns the owner's stored history, or an empty
// sequence when nothing has been persisted.
func (m *mongoDB) LoadConversation(userID string) ([]schema.ChatMessage, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	c := m.client.Database(m.database).Collection(schema.ConversationCollection)

	var conversation schema.Conversation
	err := c.FindOne(ctx, bson.M{"user_id": userID}).Decode(&conversation)
	if err == mongo.ErrNoDocuments {
		return []schema.ChatMessage{}, nil
	}
	if err != nil {
		return nil, err
	}

	return conversation.Messages, nil
}

// ClearConversation removes the owner's stored history.
func (m *mongoDB) ClearConversation(userID string) error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	c := m.client.Database(m.database).Collection(schema.ConversationCollection)
	_, err := c.DeleteOne(ctx, bson.M{"user_id": userID})
	return err
}
