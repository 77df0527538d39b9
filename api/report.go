package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vitalis-inc/vitalis-api/external/analysis"
	"github.com/vitalis-inc/vitalis-api/schema"
)

// analyzeReport is the API to analyze an uploaded medical document and
// store the outcome as a report. The freshly analyzed result also
// becomes the active chat context for the owner.
func (s *Server) analyzeReport(c *gin.Context) {
	account, ok := currentAccount(c)
	if !ok {
		abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer)
		return
	}

	var params struct {
		ID          string `json:"id"`
		FileName    string `json:"file_name"`
		MimeType    string `json:"mime_type"`
		Base64      string `json:"base64"`
		TextContent string `json:"text_content"`
	}

	if err := c.BindJSON(&params); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorCannotParseRequest, err)
		return
	}

	if params.Base64 == "" && params.TextContent == "" {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters)
		return
	}

	lang := requestLanguage(c)

	result, err := s.analyzer.AnalyzeReport(c, analysis.Input{
		Base64:      params.Base64,
		TextContent: params.TextContent,
		MimeType:    params.MimeType,
		Language:    lang,
	})
	if err != nil {
		abortWithEncoding(c, http.StatusBadGateway, errorAnalysisService, err)
		return
	}

	report, err := s.mongoStore.UpsertReport(schema.SavedReport{
		ID:       params.ID,
		UserID:   account.ID,
		FileName: params.FileName,
		FileType: params.MimeType,
		Result:   *result,
	})
	if shouldInterupt(err, c) {
		return
	}

	if manager, err := s.chatManager(account, lang); err == nil {
		manager.InjectAnalysis(result)
	} else {
		c.Error(err)
	}

	c.JSON(http.StatusOK, gin.H{"result": report})
}

// listReports is the API to list all reports of the requester
func (s *Server) listReports(c *gin.Context) {
	account, ok := currentAccount(c)
	if !ok {
		abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer)
		return
	}

	reports, err := s.mongoStore.ListReports(account.ID)
	if shouldInterupt(err, c) {
		return
	}

	c.JSON(http.StatusOK, gin.H{"reports": reports})
}

// deleteReport is the API to delete one of the requester's reports by id
func (s *Server) deleteReport(c *gin.Context) {
	account, ok := currentAccount(c)
	if !ok {
		abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer)
		return
	}

	if err := s.mongoStore.DeleteReport(account.ID, c.Param("reportID")); shouldInterupt(err, c) {
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": "OK"})
}

// deleteAllReports is the API to delete every report of the requester
func (s *Server) deleteAllReports(c *gin.Context) {
	account, ok := currentAccount(c)
	if !ok {
		abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer)
		return
	}

	if err := s.mongoStore.DeleteAllReports(account.ID); shouldInterupt(err, c) {
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": "OK"})
}
