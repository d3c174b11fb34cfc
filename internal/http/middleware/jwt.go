package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/MahmoudAkram21/um-qura-back/internal/auth"
)

const (
	MsgAuthRequired = "Authorization required"
	MsgInvalidToken = "Invalid or expired token"
)

// TokenVerifier is satisfied by *auth.Authenticator.
type TokenVerifier interface {
	VerifyToken(token string) (auth.Claims, error)
}

// checks "Authorization: Bearer <token>", verifies it and sets "currentAdmin" in context.
func JWTMiddleware(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			abort(c, http.StatusUnauthorized, MsgAuthRequired)
			return
		}

		claims, err := verifier.VerifyToken(strings.TrimSpace(token))
		if err != nil {
			log.Debug().Err(err).Str("path", c.Request.URL.Path).Msg("rejected bearer token")
			abort(c, http.StatusUnauthorized, MsgInvalidToken)
			return
		}

		c.Set(currentAdminKey, claims)
		c.Next()
	}
}

func abort(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"status": false, "message": message})
}
