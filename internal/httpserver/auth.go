package httpserver

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"storefront/internal/domain"
)

const userCtxKey = "storefront.user"

// authMiddleware verifies the bearer token issued by the hosted auth
// provider (HS256, shared secret) and stores the identity on the request.
// The storefront never issues tokens itself.
func authMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(raw) == "" {
			respondError(c, domain.ErrUnauthenticated)
			c.Abort()
			return
		}

		claims := jwt.MapClaims{}
		_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		}, jwt.WithValidMethods([]string{"HS256"}))
		if err != nil {
			respondError(c, domain.ErrUnauthenticated)
			c.Abort()
			return
		}

		user := domain.User{}
		if sub, ok := claims["sub"].(string); ok {
			user.ID = sub
		}
		if email, ok := claims["email"].(string); ok {
			user.Email = email
		}
		if name, ok := claims["name"].(string); ok {
			user.DisplayName = name
		}
		if user.ID == "" {
			respondError(c, domain.ErrUnauthenticated)
			c.Abort()
			return
		}

		c.Set(userCtxKey, user)
		c.Next()
	}
}

func currentUser(c *gin.Context) domain.User {
	if v, ok := c.Get(userCtxKey); ok {
		if user, ok := v.(domain.User); ok {
			return user
		}
	}
	return domain.User{}
}

func meHandler(c *gin.Context) {
	c.JSON(http.StatusOK, currentUser(c))
}
