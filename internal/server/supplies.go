package server

import (
	"net/http"
	"strings"

	consumptiondomain "github.com/buestan/buestanflow/internal/consumption/domain"
	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type consumeItemRequest struct {
	SupplyID string `json:"supply_id"`
	Quantity string `json:"quantity"`
	Note     string `json:"note"`
}

type consumeRequest struct {
	OrderID string               `json:"order_id"`
	Items   []consumeItemRequest `json:"items"`
}

func (s *Server) ConsumeSupplies(c *gin.Context) {
	var req consumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	items := make([]consumptiondomain.ConsumeItem, 0, len(req.Items))
	for _, item := range req.Items {
		supplyID, err := snowflake.ParseString(strings.TrimSpace(item.SupplyID))
		if err != nil {
			AbortWithError(c, ErrInvalidRequest)
			return
		}
		quantity, err := decimal.NewFromString(strings.TrimSpace(item.Quantity))
		if err != nil {
			AbortWithError(c, ErrInvalidRequest)
			return
		}
		items = append(items, consumptiondomain.ConsumeItem{
			SupplyID: supplyID,
			Quantity: quantity,
			Note:     item.Note,
		})
	}

	resp, err := s.consumptionSvc.Consume(c.Request.Context(), consumptiondomain.ConsumeRequest{
		OrderID: strings.TrimSpace(req.OrderID),
		Items:   items,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
