package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vitalis-inc/vitalis-api/schema"
	"github.com/vitalis-inc/vitalis-api/store"
)

// accountRegister is the API for register a new account
func (s *Server) accountRegister(c *gin.Context) {
	logger := log.WithField("api", "accountRegister")
	requester := c.GetString("requester")

	var params struct {
		Name          string               `json:"name"`
		Email         string               `json:"email"`
		Image         string               `json:"image"`
		Sex           schema.Sex           `json:"sex"`
		HealthHistory schema.HealthHistory `json:"health_history"`
	}

	if err := c.BindJSON(&params); err != nil {
		logger.WithError(err).Error(errorInvalidParameters.Message)
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters)
		return
	}

	profile, err := s.store.CreateAccount(schema.UserProfile{
		ID:            requester,
		Name:          params.Name,
		Email:         params.Email,
		Image:         params.Image,
		Sex:           params.Sex,
		HealthHistory: params.HealthHistory,
	})
	if err == store.ErrAccountTaken {
		abortWithEncoding(c, http.StatusForbidden, errorAccountTaken)
		return
	} else if err != nil {
		abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"result": profile,
	})
}

// accountDetail is the API to query an account
func (s *Server) accountDetail(c *gin.Context) {
	account, ok := currentAccount(c)
	if !ok {
		abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"result": account,
	})
}

// accountUpdateProfile is the API to update profile fields for a user
func (s *Server) accountUpdateProfile(c *gin.Context) {
	requester := c.GetString("requester")

	var params struct {
		Name          *string               `json:"name"`
		Image         *string               `json:"image"`
		Sex           *schema.Sex           `json:"sex"`
		HealthHistory *schema.HealthHistory `json:"health_history"`
	}

	if err := c.BindJSON(&params); err != nil {
		c.Error(err)
		abortWithEncoding(c, http.StatusBadRequest, errorCannotParseRequest)
		return
	}

	if err := s.store.UpdateAccountProfile(requester, store.ProfileUpdates{
		Name:          params.Name,
		Image:         params.Image,
		Sex:           params.Sex,
		HealthHistory: params.HealthHistory,
	}); err != nil {
		c.Error(err)
		abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": "OK"})
}

// accountDelete is the API to remove an account from our service
func (s *Server) accountDelete(c *gin.Context) {
	requester := c.GetString("requester")

	if err := s.store.DeleteAccount(requester); err != nil {
		abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": "OK"})
}
