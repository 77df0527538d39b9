package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vitalis-inc/vitalis-api/chat"
)

// chatSend is the API to submit one conversation turn. A submission
// arriving while another one is in flight is rejected; a completion
// failure still answers with a fallback assistant message.
func (s *Server) chatSend(c *gin.Context) {
	account, ok := currentAccount(c)
	if !ok {
		abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer)
		return
	}

	var params struct {
		Message string `json:"message"`
	}

	if err := c.BindJSON(&params); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorCannotParseRequest, err)
		return
	}

	if params.Message == "" {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters)
		return
	}

	manager, err := s.chatManager(account, requestLanguage(c))
	if shouldInterupt(err, c) {
		return
	}

	reply, err := manager.Send(c, params.Message)
	if err == chat.ErrBusy {
		abortWithEncoding(c, http.StatusTooManyRequests, errorChatBusy)
		return
	}
	if shouldInterupt(err, c) {
		return
	}

	c.JSON(http.StatusOK, gin.H{"reply": reply})
}

// chatHistory is the API to fetch the requester's current turn history
func (s *Server) chatHistory(c *gin.Context) {
	account, ok := currentAccount(c)
	if !ok {
		abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer)
		return
	}

	manager, err := s.chatManager(account, requestLanguage(c))
	if shouldInterupt(err, c) {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"messages": manager.Messages(),
		"busy":     manager.Busy(),
		"open":     manager.Open(),
	})
}

// chatReset is the API to reset a conversation. For signed-in users
// assistant memory is kept; only the stored history of a departing
// guest would be dropped, and guests never hit this authenticated
// route, so this is effectively a close.
func (s *Server) chatReset(c *gin.Context) {
	account, ok := currentAccount(c)
	if !ok {
		abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer)
		return
	}

	manager, err := s.chatManager(account, requestLanguage(c))
	if shouldInterupt(err, c) {
		return
	}

	manager.Reset()

	c.JSON(http.StatusOK, gin.H{"result": "OK"})
}
