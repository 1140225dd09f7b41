package server

import (
	"net/http"
	"strings"

	historydomain "github.com/buestan/buestanflow/internal/history/domain"
	"github.com/gin-gonic/gin"
)

func (s *Server) ListHistory(c *gin.Context) {
	var query struct {
		OrderID string `form:"order_id"`
		ActorID string `form:"actor_id"`
		Status  string `form:"status"`
		Limit   int    `form:"limit"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.historySvc.ListStatusChanges(c.Request.Context(), historydomain.StatusChangeFilter{
		OrderID: strings.TrimSpace(query.OrderID),
		ActorID: strings.TrimSpace(query.ActorID),
		Status:  strings.TrimSpace(query.Status),
		Limit:   query.Limit,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetOrderHistory(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.historySvc.ListStatusChanges(c.Request.Context(), historydomain.StatusChangeFilter{
		OrderID: id,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetOrderConsumption(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.historySvc.ListConsumption(c.Request.Context(), historydomain.ConsumptionFilter{
		OrderID: id,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
