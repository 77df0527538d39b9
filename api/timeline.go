package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// getTimeline is the API to fetch the requester's merged event stream,
// newest first.
func (s *Server) getTimeline(c *gin.Context) {
	account, ok := currentAccount(c)
	if !ok {
		abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer)
		return
	}

	events, err := s.mongoStore.GetTimelineEvents(account.ID)
	if shouldInterupt(err, c) {
		return
	}

	c.JSON(http.StatusOK, gin.H{"timeline": events})
}
