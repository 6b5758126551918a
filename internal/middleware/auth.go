package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/BruksfildServices01/services-marketplace/internal/config"
)

const (
	ContextUserID   = "userID"
	ContextUserRole = "userRole"
)

// Identity é o resultado do Identity Gate: quem é e qual a role.
type Identity struct {
	UserID uint
	Role   string
}

// ParseToken valida um JWT HS256 e extrai a identidade. Compartilhado
// entre o middleware HTTP e o gateway WebSocket.
func ParseToken(cfg *config.Config, tokenString string) (*Identity, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenMalformed
		}
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, jwt.ErrTokenMalformed
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, jwt.ErrTokenInvalidClaims
	}

	userID, ok := claims["sub"].(float64)
	if !ok {
		return nil, jwt.ErrTokenInvalidClaims
	}
	role, _ := claims["role"].(string)

	return &Identity{
		UserID: uint(userID),
		Role:   role,
	}, nil
}

func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing_authorization_header"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_authorization_header"})
			return
		}

		ident, err := ParseToken(cfg, parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token"})
			return
		}

		c.Set(ContextUserID, ident.UserID)
		c.Set(ContextUserRole, ident.Role)

		c.Next()
	}
}
