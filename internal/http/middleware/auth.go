package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/MahmoudAkram21/um-qura-back/internal/auth"
)

const currentAdminKey = "currentAdmin"

// retrieves the verified admin claims from Gin context (after JWTMiddleware has run).
func GetCurrentAdmin(c *gin.Context) (auth.Claims, bool) {
	v, exists := c.Get(currentAdminKey)
	if !exists {
		return auth.Claims{}, false
	}
	claims, ok := v.(auth.Claims)
	return claims, ok
}
