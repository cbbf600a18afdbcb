package middleware

import (
	"strings"

	"room-booking/services"
	"room-booking/utils"

	"github.com/gin-gonic/gin"
)

const claimsKey = "claims"

// TokenVerifier turns a bearer token into session claims.
type TokenVerifier interface {
	VerifyToken(raw string) (*services.Claims, error)
}

// Authenticate requires a valid bearer token and stores its claims in the
// context. A missing header is Unauthenticated; anything else that fails is
// InvalidToken.
func Authenticate(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := strings.TrimSpace(c.GetHeader("Authorization"))
		if header == "" {
			utils.AbortWithError(c, services.ErrUnauthenticated)
			return
		}

		scheme, token, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			utils.AbortWithError(c, services.ErrInvalidToken)
			return
		}

		claims, err := verifier.VerifyToken(strings.TrimSpace(token))
		if err != nil {
			utils.AbortWithError(c, err)
			return
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

// RequireAdmin must run after Authenticate. Non-admins are stopped before the
// handler touches any data.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := ClaimsFrom(c)
		if !ok {
			utils.AbortWithError(c, services.ErrUnauthenticated)
			return
		}
		if !claims.IsAdmin() {
			utils.AbortWithError(c, services.ErrForbidden)
			return
		}
		c.Next()
	}
}

// ClaimsFrom returns the claims stored by Authenticate.
func ClaimsFrom(c *gin.Context) (*services.Claims, bool) {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*services.Claims)
	return claims, ok && claims != nil
}
