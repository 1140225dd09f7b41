package server

import (
	"database/sql/driver"
	"errors"
	"net"
	"net/http"
	"strings"

	catalogdomain "github.com/buestan/buestanflow/internal/catalog/domain"
	consumptiondomain "github.com/buestan/buestanflow/internal/consumption/domain"
	orderdomain "github.com/buestan/buestanflow/internal/order/domain"
	requirementdomain "github.com/buestan/buestanflow/internal/requirement/domain"
	supplydomain "github.com/buestan/buestanflow/internal/supply/domain"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type errorPayload struct {
	Type    string                 `json:"type"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrUnauthorized   = errors.New("unauthorized")
	ErrInvalidRequest = errors.New("invalid_request")
)

// ErrorHandlingMiddleware converts errors attached to the gin context into the
// canonical JSON error envelope. Handlers call AbortWithError and return.
func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

// isStoreUnavailable reports whether err means the datastore cannot be
// reached, as opposed to a query that ran and failed.
func isStoreUnavailable(err error) bool {
	if errors.Is(err, gorm.ErrInvalidTransaction) ||
		errors.Is(err, gorm.ErrInvalidDB) ||
		errors.Is(err, driver.ErrBadConn) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	// Drivers wrap connectivity failures in plain errors; match the usual
	// suspects by message.
	msg := err.Error()
	for _, fragment := range []string{
		"connection refused",
		"connection reset",
		"broken pipe",
		"database is closed",
	} {
		if strings.Contains(msg, fragment) {
			return true
		}
	}
	return false
}

func mapError(err error) (int, errorPayload) {
	if err == nil {
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}

	if isStoreUnavailable(err) {
		return http.StatusServiceUnavailable, errorPayload{
			Type:    "store_unavailable",
			Message: "datastore unavailable",
		}
	}

	var insufficient *consumptiondomain.InsufficientStockError
	if errors.As(err, &insufficient) {
		return http.StatusBadRequest, errorPayload{
			Type:    "insufficient_stock",
			Message: insufficient.Error(),
			Details: map[string]interface{}{
				"supply_id": insufficient.SupplyID.String(),
				"supply":    insufficient.Name,
				"available": insufficient.Available.String(),
				"requested": insufficient.Requested.String(),
			},
		}
	}

	switch {
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized, errorPayload{
			Type:    "unauthorized",
			Message: "actor identification required",
		}
	case errors.Is(err, orderdomain.ErrNotFound),
		errors.Is(err, requirementdomain.ErrOrderNotFound),
		errors.Is(err, supplydomain.ErrNotFound),
		errors.Is(err, catalogdomain.ErrProductNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "resource not found",
		}
	case errors.Is(err, orderdomain.ErrInvalidTransition):
		return http.StatusBadRequest, errorPayload{
			Type:    "invalid_transition",
			Message: "status transition not allowed",
		}
	case errors.Is(err, consumptiondomain.ErrInvalidOrderState):
		return http.StatusBadRequest, errorPayload{
			Type:    "invalid_order_state",
			Message: "order must be in progress to consume supplies",
		}
	case errors.Is(err, consumptiondomain.ErrEmptyConsumptionSet):
		return http.StatusBadRequest, errorPayload{
			Type:    "empty_consumption_set",
			Message: "no consumable items in request",
		}
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, orderdomain.ErrInvalidStatus),
		errors.Is(err, orderdomain.ErrInvalidPriority),
		errors.Is(err, orderdomain.ErrInvalidQuantity),
		errors.Is(err, consumptiondomain.ErrInvalidQuantity),
		errors.Is(err, catalogdomain.ErrInvalidClient),
		errors.Is(err, catalogdomain.ErrInvalidProduct),
		errors.Is(err, supplydomain.ErrInvalidName):
		return http.StatusBadRequest, errorPayload{
			Type:    "invalid_request",
			Message: err.Error(),
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

// classifyErrorForLog labels the request log line without leaking internals.
func classifyErrorForLog(err error) (string, string) {
	status, payload := mapError(err)
	if status >= http.StatusInternalServerError {
		return "internal", payload.Type
	}
	return "client", payload.Type
}
