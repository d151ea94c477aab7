package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"fileshare-api/internal/application/ports"
)

const ctxIdentity = "callerIdentity"

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}
	tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenStr == authHeader {
		return "", false
	}
	return tokenStr, true
}

// RequireAuth rejects requests without a valid bearer credential.
func RequireAuth(verifier ports.IdentityVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(
				http.StatusUnauthorized,
				gin.H{"error": "Authentication required"},
			)
			return
		}

		identity, ok := verifier.Verify(tokenStr)
		if !ok {
			c.AbortWithStatusJSON(
				http.StatusUnauthorized,
				gin.H{"error": "Invalid token"},
			)
			return
		}

		c.Set(ctxIdentity, identity)

		c.Next()
	}
}

// ResolveIdentity resolves the caller when a valid credential is
// present and lets the request through as anonymous otherwise. The
// access rules downstream decide what anonymous callers may see.
func ResolveIdentity(verifier ports.IdentityVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenStr, ok := bearerToken(c); ok {
			if identity, valid := verifier.Verify(tokenStr); valid {
				c.Set(ctxIdentity, identity)
			}
		}

		c.Next()
	}
}

// IdentityFrom returns the resolved caller, nil for anonymous.
func IdentityFrom(c *gin.Context) *ports.Identity {
	v, ok := c.Get(ctxIdentity)
	if !ok {
		return nil
	}
	identity, ok := v.(*ports.Identity)
	if !ok {
		return nil
	}
	return identity
}
