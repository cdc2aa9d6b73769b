package handler

import (
	"errors"
	"net/http"

	"campushub/internal/middleware"
	"campushub/internal/service"

	"github.com/gin-gonic/gin"
)

func userIDFromCtx(c *gin.Context) uint64 {
	if v, ok := c.Get(middleware.ContextUserIDKey); ok {
		if id, ok2 := v.(uint64); ok2 {
			return id
		}
	}
	return 0
}

// respondErr maps service errors onto the response taxonomy: authorization
// failures are explicit denials, missing entities are 404s, everything else
// is a validation failure. Nothing reaches the transport layer unhandled.
func respondErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotAuthorized),
		errors.Is(err, service.ErrPremiumRequired):
		c.JSON(http.StatusForbidden, gin.H{"msg": err.Error()})
	case errors.Is(err, service.ErrRoomNotFound),
		errors.Is(err, service.ErrMessageNotFound),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrCounterpartGone):
		c.JSON(http.StatusNotFound, gin.H{"msg": err.Error()})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
	}
}
