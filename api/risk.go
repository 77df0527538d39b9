package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vitalis-inc/vitalis-api/score"
)

// getRisks is the API to derive risk assessments from the requester's
// recent log window.
func (s *Server) getRisks(c *gin.Context) {
	account, ok := currentAccount(c)
	if !ok {
		abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer)
		return
	}

	logs, err := s.mongoStore.ListLogs(account.ID)
	if shouldInterupt(err, c) {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"risks": score.CalculateHealthRisks(logs),
	})
}

// getMonthlySummary is the API behind the monthly report export.
func (s *Server) getMonthlySummary(c *gin.Context) {
	account, ok := currentAccount(c)
	if !ok {
		abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer)
		return
	}

	logs, err := s.mongoStore.ListLogs(account.ID)
	if shouldInterupt(err, c) {
		return
	}

	risks := score.CalculateHealthRisks(logs)

	c.JSON(http.StatusOK, gin.H{
		"summary": score.MonthlySummary(logs, risks),
	})
}
