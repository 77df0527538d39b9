package schema

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPruneMessages(t *testing.T) {
	messages := make([]ChatMessage, MaxConversationMessages+3)
	for i := range messages {
		messages[i] = ChatMessage{ID: fmt.Sprintf("m%d", i)}
	}

	pruned := PruneMessages(messages)
	assert.Len(t, pruned, MaxConversationMessages)
	assert.Equal(t, "m3", pruned[0].ID, "oldest messages are dropped")

	short := messages[:10]
	assert.Len(t, PruneMessages(short), 10)
}
