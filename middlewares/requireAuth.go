package middlewares

import (
	"net/http"
	"os"
	"strings"

	"github.com/foodway/foodway-api/models"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Context keys set by RequireAuth and trusted by every downstream handler.
const (
	ContextUserID = "userID"
	ContextRole   = "role"
)

// RequireAuth verifies the bearer token and resolves the caller's identity
// to {userID, role}. Handlers never re-validate credentials.
func RequireAuth() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		if header == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Authorization header is missing"})
			return
		}

		tokenString := strings.TrimPrefix(header, "Bearer ")

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(os.Getenv("JWT_SECRET")), nil
		})
		if err != nil || !token.Valid {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid or expired token"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid token claims"})
			return
		}

		userID, _ := claims["sub"].(string)
		role, _ := claims["role"].(string)
		if userID == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid token claims"})
			return
		}

		ctx.Set(ContextUserID, userID)
		ctx.Set(ContextRole, role)
		ctx.Next()
	}
}

// RequireAdmin gates admin-only endpoints. Must run after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if ctx.GetString(ContextRole) != models.RoleAdmin {
			ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "message": "Admin access required"})
			return
		}
		ctx.Next()
	}
}

// RequireSeller gates seller endpoints. Admins pass as well.
func RequireSeller() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		role := ctx.GetString(ContextRole)
		if role != models.RoleSeller && role != models.RoleAdmin {
			ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "message": "Access denied. Seller privileges required."})
			return
		}
		ctx.Next()
	}
}
