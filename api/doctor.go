package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type doctorQueryParams struct {
	Latitude  float64 `form:"lat" binding:"required"`
	Longitude float64 `form:"lng" binding:"required"`
	Context   string  `form:"context"`
}

// findDoctors is the API to look up nearby medical providers suited to
// the requester's situation.
func (s *Server) findDoctors(c *gin.Context) {
	var params doctorQueryParams
	if err := c.Bind(&params); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}

	doctors, err := s.places.FindNearbyDoctors(params.Context, params.Latitude, params.Longitude)
	if err != nil {
		abortWithEncoding(c, http.StatusBadGateway, errorDoctorLookup, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"doctors": doctors})
}
