package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"runtime"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/vitalis-inc/vitalis-api/chat"
	"github.com/vitalis-inc/vitalis-api/schema"
)

type scriptedCompleter struct {
	reply string
	block chan struct{}
}

func (c *scriptedCompleter) Complete(ctx context.Context, preamble string, turns []schema.ChatMessage) (string, error) {
	if c.block != nil {
		<-c.block
	}
	return c.reply, nil
}

// conversation overrides for testMongo so the chat manager can hydrate
// and persist against the fake.
type chatTestMongo struct {
	testMongo
	mu       sync.Mutex
	messages []schema.ChatMessage
}

func (m *chatTestMongo) LoadConversation(userID string) ([]schema.ChatMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.messages, nil
}

func (m *chatTestMongo) SaveConversation(userID string, messages []schema.ChatMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = schema.PruneMessages(messages)
	return nil
}

func (m *chatTestMongo) ClearConversation(userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = nil
	return nil
}

func newChatTestServer(completer *scriptedCompleter, mongo *chatTestMongo) (*Server, *gin.Engine) {
	s := &Server{
		store: &testCore{account: &schema.UserProfile{
			ID:   "1",
			Name: "Demo User",
		}},
		mongoStore:   mongo,
		completer:    completer,
		chatManagers: map[string]*chat.Manager{},
	}

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(s.recognizeAccountMiddleware())
	router.POST("/chat/messages", s.chatSend)
	router.GET("/chat/messages", s.chatHistory)

	return s, router
}

func sendChat(router *gin.Engine, message string) *httptest.ResponseRecorder {
	body, _ := json.Marshal(map[string]string{"message": message})
	req := httptest.NewRequest("POST", "/chat/messages", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestChatSend(t *testing.T) {
	mongo := &chatTestMongo{}
	_, router := newChatTestServer(&scriptedCompleter{reply: "drink more water"}, mongo)

	w := sendChat(router, "any hydration tips?")
	assert.Equal(t, http.StatusOK, w.Code, "wrong status code")

	var jResp struct {
		Reply schema.ChatMessage `json:"reply"`
	}
	err := json.Unmarshal([]byte(w.Body.String()), &jResp)
	assert.Nil(t, err, "wrong json unmarshal")
	assert.Equal(t, schema.RoleAssistant, jResp.Reply.Role)
	assert.Equal(t, "drink more water", jResp.Reply.Text)

	// the exchange is written through to the store
	assert.Len(t, mongo.messages, 2)
}

func TestChatSendWhileBusy(t *testing.T) {
	completer := &scriptedCompleter{reply: "done", block: make(chan struct{})}
	_, router := newChatTestServer(completer, &chatTestMongo{})

	firstDone := make(chan *httptest.ResponseRecorder, 1)
	go func() {
		firstDone <- sendChat(router, "first")
	}()

	// wait until the first submission holds the busy flag
	for {
		req := httptest.NewRequest("GET", "/chat/messages", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		var jResp struct {
			Busy bool `json:"busy"`
		}
		if err := json.Unmarshal([]byte(w.Body.String()), &jResp); err == nil && jResp.Busy {
			break
		}
		runtime.Gosched()
	}

	w := sendChat(router, "second")
	assert.Equal(t, http.StatusTooManyRequests, w.Code, "wrong status code")

	close(completer.block)
	assert.Equal(t, http.StatusOK, (<-firstDone).Code)
}

func TestChatSendEmptyMessage(t *testing.T) {
	_, router := newChatTestServer(&scriptedCompleter{reply: "unused"}, &chatTestMongo{})

	w := sendChat(router, "")
	assert.Equal(t, http.StatusBadRequest, w.Code, "wrong status code")
}

func TestChatHistoryHydratesFromStore(t *testing.T) {
	mongo := &chatTestMongo{messages: []schema.ChatMessage{
		{ID: "m1", Role: schema.RoleUser, Text: "earlier question"},
		{ID: "m2", Role: schema.RoleAssistant, Text: "earlier answer"},
	}}
	_, router := newChatTestServer(&scriptedCompleter{reply: "unused"}, mongo)

	req := httptest.NewRequest("GET", "/chat/messages", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code, "wrong status code")

	var jResp struct {
		Messages []schema.ChatMessage `json:"messages"`
		Busy     bool                 `json:"busy"`
		Open     bool                 `json:"open"`
	}
	err := json.Unmarshal([]byte(w.Body.String()), &jResp)
	assert.Nil(t, err, "wrong json unmarshal")
	assert.Len(t, jResp.Messages, 2)
	assert.Equal(t, "earlier question", jResp.Messages[0].Text)
	assert.False(t, jResp.Busy)
	assert.False(t, jResp.Open)
}
