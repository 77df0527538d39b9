package chat

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	log "github.com/sirupsen/logrus"

	"github.com/vitalis-inc/vitalis-api/schema"
	"github.com/vitalis-inc/vitalis-api/utils"
)

const chatLogPrefix = "chat"

// ErrBusy is returned when a submission arrives while another one is
// still in flight. Turns are never interleaved.
var ErrBusy = errors.New("a chat submission is already in flight")

// Completer is the external completion-service boundary. It receives a
// system preamble plus the ordered turn history and returns a single
// reply.
type Completer interface {
	Complete(ctx context.Context, preamble string, turns []schema.ChatMessage) (string, error)
}

// ConversationStore is the slice of the record store the manager needs.
type ConversationStore interface {
	SaveConversation(userID string, messages []schema.ChatMessage) error
	LoadConversation(userID string) ([]schema.ChatMessage, error)
	ClearConversation(userID string) error
}

// Manager owns one conversation: its turn history, the injected
// context, the display language, and the busy flag. All methods are
// safe for concurrent use; per-owner mutual exclusion lives here.
type Manager struct {
	mu        sync.Mutex
	store     ConversationStore
	completer Completer

	lang       string
	user       *schema.UserProfile
	history    *History
	busy       bool
	open       bool
	injected   map[string]struct{}
	lastResult *schema.AnalysisResult
}

func NewManager(store ConversationStore, completer Completer, lang string) *Manager {
	return &Manager{
		store:     store,
		completer: completer,
		lang:      lang,
		history:   NewHistory(schema.MaxConversationMessages),
		injected:  map[string]struct{}{},
	}
}

// SetLanguage binds the display language. All generated text, including
// fallback messages, follows it from the next mutation on.
func (m *Manager) SetLanguage(lang string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lang = lang
}

// SetUser switches the conversation identity. The in-memory history is
// discarded and replaced by whatever is persisted for the new identity;
// a guest (nil profile) always starts empty and is never persisted.
func (m *Manager) SetUser(user *schema.UserProfile) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.user = user
	m.history.Clear()

	if user == nil {
		return nil
	}

	stored, err := m.store.LoadConversation(user.ID)
	if err != nil {
		return err
	}
	m.history.Replace(stored)
	return nil
}

// InjectAnalysis makes a freshly analyzed result the active chat
// context and, at most once per distinct summary string, appends an
// assistant message introducing the findings and opens the
// conversation.
func (m *Manager) InjectAnalysis(result *schema.AnalysisResult) {
	if result == nil {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.lastResult = result

	if _, seen := m.injected[result.Summary]; seen {
		return
	}
	m.injected[result.Summary] = struct{}{}

	m.history.Append(schema.ChatMessage{
		ID:   uuid.New().String(),
		Role: schema.RoleAssistant,
		Text: m.localize("chat.analysis_intro",
			"I've finished analyzing your report. Feel free to ask me any questions about the findings!"),
	})
	m.open = true

	if err := m.persistLocked(); err != nil {
		log.WithField("prefix", chatLogPrefix).WithError(err).Warn("persist injected message")
	}
}

// Send submits one user turn. The user message is appended before the
// completion call resolves; a failure of any kind is converted into a
// fallback assistant message rather than surfaced. Only a persistence
// error is returned, alongside the appended assistant message.
func (m *Manager) Send(ctx context.Context, text string) (schema.ChatMessage, error) {
	m.mu.Lock()
	if m.busy {
		m.mu.Unlock()
		return schema.ChatMessage{}, ErrBusy
	}
	m.busy = true
	// The busy flag must clear even if the completion call panics.
	defer m.clearBusy()

	preamble := BuildPreamble(m.lang, m.user, m.lastResult)

	m.history.Append(schema.ChatMessage{
		ID:   uuid.New().String(),
		Role: schema.RoleUser,
		Text: text,
	})
	turns := m.history.Messages()
	m.mu.Unlock()

	reply, err := m.completer.Complete(ctx, preamble, turns)

	m.mu.Lock()
	defer m.mu.Unlock()

	message := schema.ChatMessage{
		ID:   uuid.New().String(),
		Role: schema.RoleAssistant,
	}
	switch {
	case err != nil:
		log.WithField("prefix", chatLogPrefix).WithError(err).Warn("completion failed")
		message.Text = m.localize("chat.fallback",
			"Sorry, I encountered a connection error. Please try again.")
	case reply == "":
		message.Text = m.localize("chat.fallback",
			"Sorry, I encountered a connection error. Please try again.")
	default:
		message.Text = reply
	}
	m.history.Append(message)

	return message, m.persistLocked()
}

func (m *Manager) clearBusy() {
	m.mu.Lock()
	m.busy = false
	m.mu.Unlock()
}

// Reset closes a guest conversation and drops its history. For a
// signed-in identity it is a no-op: assistant memory outlives a single
// analysis session.
func (m *Manager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.user != nil {
		return
	}

	m.history.Clear()
	m.lastResult = nil
	m.open = false
}

// Messages returns a copy of the current turn history.
func (m *Manager) Messages() []schema.ChatMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.history.Messages()
}

func (m *Manager) Busy() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.busy
}

func (m *Manager) Open() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.open
}

// persistLocked writes through the pruned history for signed-in users.
// Callers must hold the mutex.
func (m *Manager) persistLocked() error {
	if m.user == nil || m.history.Len() == 0 {
		return nil
	}
	return m.store.SaveConversation(m.user.ID, m.history.Messages())
}

func (m *Manager) localize(id, fallback string) string {
	return utils.NewLocalizer(m.lang).MustLocalize(&i18n.LocalizeConfig{
		DefaultMessage: &i18n.Message{
			ID:    id,
			Other: fallback,
		},
	})
}
