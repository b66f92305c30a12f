package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"hris-admin/internal/shared/contextutil"
	"hris-admin/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

const ContextUserID = "user_id"

// AuthMiddleware accepts an HMAC-signed bearer token (header or
// access_token cookie) carrying a user_id claim. An empty secret disables
// authentication.
func AuthMiddleware(secret string) gin.HandlerFunc {
	if secret == "" {
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		tokenString, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !found {
			tokenString = ""
		}

		if tokenString == "" {
			if cookie, err := c.Cookie("access_token"); err == nil {
				tokenString = cookie
			}
		}

		if tokenString == "" {
			response.AbortError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Token not found")
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			if errors.Is(err, jwt.ErrTokenExpired) {
				response.AbortError(c, http.StatusUnauthorized, "TOKEN_EXPIRED", "Token has expired")
				return
			}
			response.AbortError(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid token")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			response.AbortError(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid token claims")
			return
		}

		userID, _ := claims["user_id"].(string)
		if userID == "" {
			response.AbortError(c, http.StatusUnauthorized, "INVALID_TOKEN", "User ID not found in token")
			return
		}

		c.Set(ContextUserID, userID)

		ctx := contextutil.WithUserID(c.Request.Context(), userID)
		reqLogger := contextutil.GetLogger(ctx, zap.L()).With(zap.String("user_id", userID))
		ctx = contextutil.WithLogger(ctx, reqLogger)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
