package server

import (
	"net/http"
	"strings"

	orderdomain "github.com/buestan/buestanflow/internal/order/domain"
	orderservice "github.com/buestan/buestanflow/internal/order/service"
	"github.com/gin-gonic/gin"
)

type createOrderRequest struct {
	ClientName  string `json:"client_name"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
	Priority    string `json:"priority"`
	Notes       string `json:"notes"`
}

func (s *Server) CreateOrder(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.orderSvc.Create(c.Request.Context(), orderservice.CreateRequest{
		ClientName:  strings.TrimSpace(req.ClientName),
		ProductName: strings.TrimSpace(req.ProductName),
		Quantity:    req.Quantity,
		Priority:    strings.TrimSpace(req.Priority),
		Notes:       req.Notes,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (s *Server) ListOrders(c *gin.Context) {
	var query struct {
		Status   string `form:"status"`
		ClientID string `form:"client_id"`
		Limit    int    `form:"limit"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	filter := orderdomain.ListFilter{Limit: query.Limit}
	if trimmed := strings.TrimSpace(query.Status); trimmed != "" {
		status, err := orderdomain.ParseStatus(trimmed)
		if err != nil {
			AbortWithError(c, err)
			return
		}
		filter.Status = status
	}
	clientID, err := parseOptionalSnowflakeID(query.ClientID)
	if err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	if clientID != nil {
		filter.ClientID = *clientID
	}

	resp, err := s.orderSvc.List(c.Request.Context(), filter)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetOrder(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.orderSvc.Get(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type updateOrderStatusRequest struct {
	Status string `json:"status"`
	Note   string `json:"note"`
}

func (s *Server) UpdateOrderStatus(c *gin.Context) {
	var req updateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.orderSvc.Transition(c.Request.Context(), id, strings.TrimSpace(req.Status), req.Note)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// GetOrderSupplies resolves the order's supply requirements, materializing
// them on first access.
func (s *Server) GetOrderSupplies(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.requirementSvc.Resolve(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
