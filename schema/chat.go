package schema

import "time"

const ConversationCollection = "conversation"

// MaxConversationMessages bounds a persisted conversation. Older turns
// are evicted permanently once the bound is exceeded.
const MaxConversationMessages = 50

type ChatRole string

const (
	RoleUser      ChatRole = "user"
	RoleAssistant ChatRole = "assistant"
)

type ChatMessage struct {
	ID   string   `json:"id" bson:"id"`
	Role ChatRole `json:"role" bson:"role"`
	Text string   `json:"text" bson:"text"`
}

// Conversation is the persisted message sequence of one owner.
type Conversation struct {
	UserID    string        `json:"user_id" bson:"user_id"`
	Messages  []ChatMessage `json:"messages" bson:"messages"`
	UpdatedAt time.Time     `json:"updated_at" bson:"updated_at"`
}

// PruneMessages keeps the most recent MaxConversationMessages entries.
func PruneMessages(messages []ChatMessage) []ChatMessage {
	if len(messages) <= MaxConversationMessages {
		return messages
	}
	return messages[len(messages)-MaxConversationMessages:]
}
