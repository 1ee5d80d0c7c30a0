package middleware

import (
	"net/http"

	"github.com/acr-platform/api-go/utils"
	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
)

// SessionCookie carries the signed admin session token.
const SessionCookie = "acr_session_token"

// AuthMiddleware parses the admin session cookie and threads the admin
// identity through the request context. Browser requests without a
// valid session are redirected to the login page.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookie)
		if err != nil || token == "" {
			redirectToLogin(c)
			return
		}

		claims := jwt.MapClaims{}
		parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !parsed.Valid {
			redirectToLogin(c)
			return
		}

		adminID, ok := claims["admin_id"].(float64)
		if !ok {
			redirectToLogin(c)
			return
		}
		username, _ := claims["username"].(string)

		c.Set(string(utils.AdminContextKey), &utils.AdminClaims{
			AdminID:  uint(adminID),
			Username: username,
		})

		c.Next()
	}
}

func redirectToLogin(c *gin.Context) {
	c.Redirect(http.StatusFound, "/admin/login")
	c.Abort()
}
