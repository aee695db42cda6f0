package utils

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/linkdeck/linkdeck/internal/types"
)

// CurrentUserID returns the user id the auth middleware stored in the context.
func CurrentUserID(ctx *gin.Context) (string, error) {
	value, exists := ctx.Get(types.ContextUserKey)

	if !exists {
		return "", fmt.Errorf("user not authenticated")
	}

	userID, ok := value.(string)

	if !ok || userID == "" {
		return "", fmt.Errorf("invalid user id in context")
	}

	return userID, nil
}
