package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vitalis-inc/vitalis-api/schema"
)

// appendDailyLog is the API to submit one day of wellness ratings.
// Entries are append-only; out-of-range ratings are clamped, not
// rejected.
func (s *Server) appendDailyLog(c *gin.Context) {
	account, ok := currentAccount(c)
	if !ok {
		abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer)
		return
	}

	var entry schema.DailyLogEntry
	if err := c.BindJSON(&entry); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorCannotParseRequest, err)
		return
	}

	if entry.Date == "" {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters)
		return
	}

	entry.UserID = account.ID

	stored, err := s.mongoStore.AppendLog(entry)
	if shouldInterupt(err, c) {
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": stored})
}

// listDailyLogs is the API to list the requester's log entries
func (s *Server) listDailyLogs(c *gin.Context) {
	account, ok := currentAccount(c)
	if !ok {
		abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer)
		return
	}

	logs, err := s.mongoStore.ListLogs(account.ID)
	if shouldInterupt(err, c) {
		return
	}

	c.JSON(http.StatusOK, gin.H{"daily_logs": logs})
}
