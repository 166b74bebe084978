package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	apperrors "github.com/sOuL2000s/Shoppy-Assignment-First-Track/pkg/errors"
)

const (
	UserContextKey = "userID"
	RoleContextKey = "role"

	RoleCustomer = "customer"
	RoleSeller   = "seller"
)

// Claims are the access token claims issued by the auth service.
type Claims struct {
	ID   string `json:"id"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// ParseToken verifies an HS256 token and returns its claims.
func ParseToken(tokenStr string, secret []byte) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil || token == nil || !token.Valid {
		return nil, fmt.Errorf("invalid or expired token")
	}
	return claims, nil
}

// AuthMiddleware requires a valid bearer token and stores the caller's id
// and role in the context.
func AuthMiddleware(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		tokenStr := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		if header == "" || tokenStr == "" {
			abort(c, http.StatusUnauthorized, "No token provided!")
			return
		}

		claims, err := ParseToken(tokenStr, secret)
		if err != nil {
			abort(c, http.StatusUnauthorized, "Unauthorized! Token is invalid or expired.")
			return
		}

		userID, err := uuid.Parse(claims.ID)
		if err != nil {
			abort(c, http.StatusUnauthorized, "Unauthorized! Token is invalid or expired.")
			return
		}

		c.Set(UserContextKey, userID)
		c.Set(RoleContextKey, claims.Role)
		c.Next()
	}
}

// RequireRole allows only callers whose token carries role.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(RoleContextKey) != role {
			abort(c, http.StatusForbidden, fmt.Sprintf("Access Forbidden: Require %s Role.", role))
			return
		}
		c.Next()
	}
}

func GetUserID(c *gin.Context) (uuid.UUID, error) {
	if val, ok := c.Get(UserContextKey); ok {
		if id, ok := val.(uuid.UUID); ok && id != uuid.Nil {
			return id, nil
		}
	}
	return uuid.Nil, errors.New("user ID not found in context")
}

func abort(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, apperrors.Response{Success: false, Message: message})
}
