package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vitalis-inc/vitalis-api/schema"
)

// upsertEmergencyProfile is the API to replace the requester's
// emergency card wholesale.
func (s *Server) upsertEmergencyProfile(c *gin.Context) {
	account, ok := currentAccount(c)
	if !ok {
		abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer)
		return
	}

	var profile schema.EmergencyProfile
	if err := c.BindJSON(&profile); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorCannotParseRequest, err)
		return
	}

	profile.UserID = account.ID

	stored, err := s.mongoStore.UpsertEmergencyProfile(profile)
	if shouldInterupt(err, c) {
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": stored})
}

// getEmergencyProfile is the API to fetch the requester's emergency card
func (s *Server) getEmergencyProfile(c *gin.Context) {
	account, ok := currentAccount(c)
	if !ok {
		abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer)
		return
	}

	profile, err := s.mongoStore.GetEmergencyProfile(account.ID)
	if shouldInterupt(err, c) {
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": profile})
}
