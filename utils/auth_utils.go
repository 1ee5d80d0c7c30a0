package utils

import (
	"github.com/gin-gonic/gin"
)

// AdminClaims is the authenticated admin identity threaded through the
// request context by the auth middleware.
type AdminClaims struct {
	AdminID  uint   `json:"admin_id"`
	Username string `json:"username"`
}

type contextKey string

const AdminContextKey contextKey = "admin"

func GetAdmin(c *gin.Context) *AdminClaims {
	admin, exists := c.Get(string(AdminContextKey))
	if !exists {
		return nil
	}
	if claims, ok := admin.(*AdminClaims); ok {
		return claims
	}
	return nil
}
