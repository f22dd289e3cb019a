package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/colson89/ambulance-planning-sub001/pkg/jwt"
	"github.com/colson89/ambulance-planning-sub001/pkg/response"
)

// MustGetUserID safely extracts user_id from the Gin context. When the
// auth middleware did not inject it, a 401 is written and ok is false;
// callers should return immediately.
func MustGetUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		response.Unauthorized(c, 10002, "not authenticated")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "not authenticated")
		return "", false
	}
	return s, true
}

// MustGetStationID safely extracts station_id from the Gin context.
func MustGetStationID(c *gin.Context) (string, bool) {
	v, exists := c.Get("station_id")
	if !exists {
		response.Unauthorized(c, 10002, "not authenticated")
		return "", false
	}
	s, ok := v.(string)
	if !ok {
		response.Unauthorized(c, 10002, "not authenticated")
		return "", false
	}
	return s, true
}

// MustGetClaims safely extracts the full token claims.
func MustGetClaims(c *gin.Context) (*jwt.Claims, bool) {
	v, exists := c.Get("claims")
	if !exists {
		response.Unauthorized(c, 10002, "not authenticated")
		return nil, false
	}
	claims, ok := v.(*jwt.Claims)
	if !ok {
		response.Unauthorized(c, 10002, "not authenticated")
		return nil, false
	}
	return claims, true
}
