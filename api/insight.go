package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// getInsights is the API to generate health insights from the
// requester's recent logs and report summaries. Insights are derived on
// demand and never stored.
func (s *Server) getInsights(c *gin.Context) {
	account, ok := currentAccount(c)
	if !ok {
		abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer)
		return
	}

	logs, err := s.mongoStore.ListLogs(account.ID)
	if shouldInterupt(err, c) {
		return
	}

	reports, err := s.mongoStore.ListReports(account.ID)
	if shouldInterupt(err, c) {
		return
	}

	insights, err := s.analyzer.GenerateHealthInsights(c, logs, reports)
	if err != nil {
		abortWithEncoding(c, http.StatusBadGateway, errorAnalysisService, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"insights": insights})
}
