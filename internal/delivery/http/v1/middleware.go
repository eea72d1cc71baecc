package v1

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const userIDCtxKey = "user_id"

// HandleIdentityMiddleware resolves the caller's identity from a bearer
// token when one is present. Identity is optional: square reads work
// anonymously, and writes fall back to the userId the client sends, as
// the mobile shells have no token until they finish their OAuth flow.
func (h *handlerImpl) HandleIdentityMiddleware(c *gin.Context) {
	const authHeader = "Authorization"
	header := c.GetHeader(authHeader)
	if header == "" {
		c.Next()
		return
	}

	const bearerPrefix = "Bearer"
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], bearerPrefix) {
		c.Next()
		return
	}

	claims, err := h.parseJWTToken(parts[1])
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("ignoring unparsable bearer token")
		c.Next()
		return
	}

	if claims.Subject != "" {
		c.Set(userIDCtxKey, claims.Subject)
	}
	c.Next()
}

func (h *handlerImpl) parseJWTToken(tokenString string) (*jwt.RegisteredClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (any, error) {
		return h.jwtSigningKey, nil
	}, jwt.WithIssuer(h.jwtIssuer))
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return nil, fmt.Errorf("failed to parse token claims")
	}
	return claims, nil
}

// resolveUserID prefers the authenticated identity over whatever id
// the request body or query carried.
func resolveUserID(c *gin.Context, fallback string) string {
	userIDValue, exists := c.Get(userIDCtxKey)
	if exists {
		if userID, ok := userIDValue.(string); ok && userID != "" {
			return userID
		}
	}
	return strings.TrimSpace(fallback)
}
