package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/linkdeck/linkdeck/internal/auth"
	"github.com/linkdeck/linkdeck/internal/types"
)

// AuthMiddleware requires a decodable bearer token and stores the embedded
// user id in the context. It never touches the database: the token itself is
// the whole session state.
func AuthMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		authHeader := ctx.GetHeader("Authorization")

		if authHeader == "" {
			abortUnauthorized(ctx, "Authorization token is required")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)

		if len(parts) != 2 || parts[0] != "Bearer" {
			abortUnauthorized(ctx, "Authorization header format must be Bearer {token}")
			return
		}

		userID, ok := auth.VerifyToken(parts[1])

		if !ok {
			abortUnauthorized(ctx, "Invalid token")
			return
		}

		ctx.Set(types.ContextUserKey, userID)
		ctx.Next()
	}
}

func abortUnauthorized(ctx *gin.Context, message string) {
	ctx.AbortWithStatusJSON(http.StatusUnauthorized, types.ErrorEnvelope{
		Success: false,
		Message: "Unauthorized",
		Error:   message,
		Code:    types.CodeUnauthorized,
	})
}
