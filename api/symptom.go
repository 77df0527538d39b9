package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vitalis-inc/vitalis-api/external/analysis"
	"github.com/vitalis-inc/vitalis-api/schema"
)

// checkSymptoms is the API to run the symptom triage. The outcome is
// folded into an AnalysisResult and stored like any other report so it
// shows up on the timeline as a symptom_check event.
func (s *Server) checkSymptoms(c *gin.Context) {
	account, ok := currentAccount(c)
	if !ok {
		abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer)
		return
	}

	var input schema.SymptomInput
	if err := c.BindJSON(&input); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorCannotParseRequest, err)
		return
	}

	if len(input.Symptoms) == 0 {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters)
		return
	}

	result, err := s.analyzer.CheckSymptoms(c, input)
	if err != nil {
		abortWithEncoding(c, http.StatusBadGateway, errorAnalysisService, err)
		return
	}

	report, err := s.mongoStore.UpsertReport(schema.SavedReport{
		UserID:   account.ID,
		FileName: fmt.Sprintf("Symptom Check - %s", time.Now().Format("2006-01-02")),
		FileType: schema.FileTypeSymptomCheck,
		Result:   analysis.FoldSymptomResult(input, result),
	})
	if shouldInterupt(err, c) {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"result": result,
		"report": report,
	})
}
