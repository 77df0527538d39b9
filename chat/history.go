package chat

import "github.com/vitalis-inc/vitalis-api/schema"

// History is a bounded message sequence. Appending beyond the capacity
// evicts the oldest turns permanently.
type History struct {
	capacity int
	messages []schema.ChatMessage
}

func NewHistory(capacity int) *History {
	return &History{
		capacity: capacity,
		messages: make([]schema.ChatMessage, 0, capacity),
	}
}

func (h *History) Append(m schema.ChatMessage) {
	h.messages = append(h.messages, m)
	if len(h.messages) > h.capacity {
		h.messages = h.messages[len(h.messages)-h.capacity:]
	}
}

// Replace swaps the whole sequence, keeping only the most recent turns
// that fit the capacity.
func (h *History) Replace(messages []schema.ChatMessage) {
	if len(messages) > h.capacity {
		messages = messages[len(messages)-h.capacity:]
	}
	h.messages = append(h.messages[:0], messages...)
}

func (h *History) Clear() {
	h.messages = h.messages[:0]
}

func (h *History) Len() int {
	return len(h.messages)
}

// Messages returns a copy of the current sequence.
func (h *History) Messages() []schema.ChatMessage {
	out := make([]schema.ChatMessage, len(h.messages))
	copy(out, h.messages)
	return out
}
