package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) GetKPIs(c *gin.Context) {
	resp, err := s.kpiSvc.Snapshot(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
