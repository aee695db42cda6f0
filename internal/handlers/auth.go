package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/linkdeck/linkdeck/internal/auth"
	"github.com/linkdeck/linkdeck/internal/services"
	"github.com/linkdeck/linkdeck/internal/types"
)

type AuthHandler struct {
	auth *services.AuthService
}

func NewAuthHandler(authSvc *services.AuthService) *AuthHandler {
	return &AuthHandler{auth: authSvc}
}

type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Nickname string `json:"nickname"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Register(ctx *gin.Context) {
	var body RegisterRequest

	if err := ctx.BindJSON(&body); err != nil {
		respondErrorCode(ctx, http.StatusBadRequest, "Missing required parameters",
			"username and password must not be empty", types.CodeValidationError)
		return
	}

	if len(body.Password) < 6 {
		respondErrorCode(ctx, http.StatusBadRequest, "Password too short",
			"password must be at least 6 characters", types.CodeValidationError)
		return
	}

	user, err := h.auth.Register(body.Username, body.Password, body.Nickname)

	if err != nil {
		log.Printf("Registration failed for %q: %v", body.Username, err)
		respondError(ctx, "Registration failed", err)
		return
	}

	respond(ctx, gin.H{
		"user":  user,
		"token": auth.GenerateToken(user.ID),
	}, "Registration successful")
}

func (h *AuthHandler) Login(ctx *gin.Context) {
	var body LoginRequest

	if err := ctx.BindJSON(&body); err != nil {
		respondErrorCode(ctx, http.StatusBadRequest, "Missing required parameters",
			"username and password must not be empty", types.CodeValidationError)
		return
	}

	user, err := h.auth.Login(body.Username, body.Password)

	if err != nil {
		log.Printf("Login failed for %q: %v", body.Username, err)
		respondError(ctx, "Login failed", err)
		return
	}

	// Wrong username and wrong password are indistinguishable to the client.
	// 401 with a VALIDATION_ERROR code is the contract existing clients expect.
	if user == nil {
		respondErrorCode(ctx, http.StatusUnauthorized, "Login failed",
			"invalid username or password", types.CodeValidationError)
		return
	}

	respond(ctx, gin.H{
		"user":  user,
		"token": auth.GenerateToken(user.ID),
	}, "Login successful")
}

// Logout always succeeds: sessions live entirely in the client-held token,
// so there is no server state to clear.
func (h *AuthHandler) Logout(ctx *gin.Context) {
	respond(ctx, nil, "Logout successful")
}
