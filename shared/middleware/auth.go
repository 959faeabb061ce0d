package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/eaglebank/banking-service/shared/auth"
	"github.com/gin-gonic/gin"
)

// SessionCookie is the name of the cookie that carries the session token.
const SessionCookie = "session"

const (
	userIDKey         = "userId"
	tokenIDKey        = "tokenId"
	tokenExpiresAtKey = "tokenExpiresAt"
)

// TokenParser verifies a raw session token.
type TokenParser interface {
	Parse(token string) (*auth.Claims, error)
}

// RevocationChecker reports whether a token id was revoked at logout.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// AuthMiddleware accepts a token from the Authorization header
// ("Bearer <token>") or, failing that, from the session cookie. The caller's
// identity is stored on the gin context only.
func AuthMiddleware(tokens TokenParser, revocations RevocationChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := extractToken(c)
		if !ok {
			RespondWithError(c, http.StatusUnauthorized, "Authentication required")
			c.Abort()
			return
		}

		claims, err := tokens.Parse(tokenString)
		if err != nil {
			RespondWithError(c, http.StatusUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}

		revoked, err := revocations.IsRevoked(c.Request.Context(), claims.ID)
		if err != nil {
			RespondWithError(c, http.StatusServiceUnavailable, "Session store unavailable")
			c.Abort()
			return
		}
		if revoked {
			RespondWithError(c, http.StatusUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(userIDKey, claims.UserID)
		c.Set(tokenIDKey, claims.ID)
		c.Set(tokenExpiresAtKey, claims.ExpiresAt.Time)
		c.Next()
	}
}

func extractToken(c *gin.Context) (string, bool) {
	if header := c.GetHeader("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			return "", false
		}
		return parts[1], true
	}
	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie != "" {
		return cookie, true
	}
	return "", false
}

func GetUserID(c *gin.Context) (string, bool) {
	userID, exists := c.Get(userIDKey)
	if !exists {
		return "", false
	}
	return userID.(string), true
}

// GetToken returns the id and expiry of the token that authenticated the request.
func GetToken(c *gin.Context) (string, time.Time, bool) {
	id, ok := c.Get(tokenIDKey)
	if !ok {
		return "", time.Time{}, false
	}
	exp, _ := c.Get(tokenExpiresAtKey)
	expiresAt, _ := exp.(time.Time)
	return id.(string), expiresAt, true
}
