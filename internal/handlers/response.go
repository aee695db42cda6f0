package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/linkdeck/linkdeck/internal/apperr"
	"github.com/linkdeck/linkdeck/internal/types"
)

func respond(ctx *gin.Context, data interface{}, message string) {
	ctx.JSON(http.StatusOK, types.SuccessEnvelope{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func respondWithMeta(ctx *gin.Context, data interface{}, message string, meta interface{}) {
	ctx.JSON(http.StatusOK, types.SuccessEnvelope{
		Success: true,
		Message: message,
		Data:    data,
		Meta:    meta,
	})
}

// respondError maps the error's kind onto the fixed status/code taxonomy.
func respondError(ctx *gin.Context, message string, err error) {
	status, code := classify(err)

	ctx.JSON(status, types.ErrorEnvelope{
		Success: false,
		Message: message,
		Error:   err.Error(),
		Code:    code,
	})
}

func respondErrorCode(ctx *gin.Context, status int, message, detail, code string) {
	ctx.JSON(status, types.ErrorEnvelope{
		Success: false,
		Message: message,
		Error:   detail,
		Code:    code,
	})
}

func classify(err error) (int, string) {
	switch apperr.KindOf(err) {
	case apperr.Validation, apperr.Duplicate:
		return http.StatusBadRequest, types.CodeValidationError
	case apperr.Unauthorized:
		return http.StatusUnauthorized, types.CodeUnauthorized
	case apperr.NotFound:
		return http.StatusNotFound, types.CodeNotFound
	case apperr.Query:
		return http.StatusInternalServerError, types.CodeQueryError
	default:
		return http.StatusInternalServerError, types.CodeServerError
	}
}
