package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/linkdeck/linkdeck/internal/services"
	"github.com/linkdeck/linkdeck/internal/types"
	"github.com/linkdeck/linkdeck/internal/utils"
)

type UserHandler struct {
	users *services.UserService
}

func NewUserHandler(users *services.UserService) *UserHandler {
	return &UserHandler{users: users}
}

type CreateUserRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Nickname string `json:"nickname"`
	Avatar   string `json:"avatar"`
	Email    string `json:"email" binding:"omitempty,email"`
}

// UpdateProfileRequest carries the mutable profile fields. Username and id
// are immutable; absent fields are left untouched.
type UpdateProfileRequest struct {
	Nickname *string `json:"nickname"`
	Avatar   *string `json:"avatar"`
	Email    *string `json:"email" binding:"omitempty,email"`
}

func (h *UserHandler) List(ctx *gin.Context) {
	users, err := h.users.FindAll()

	if err != nil {
		respondError(ctx, "Failed to retrieve users", err)
		return
	}

	respond(ctx, users, "Users retrieved successfully")
}

func (h *UserHandler) Get(ctx *gin.Context) {
	user, err := h.users.FindByID(ctx.Param("id"))

	if err != nil {
		respondError(ctx, "Failed to retrieve user", err)
		return
	}

	respond(ctx, user, "User retrieved successfully")
}

// Create has no password-length requirement; that check belongs to the
// register route only. Duplicate usernames are not pre-checked here either
// and surface as a server error from the unique index.
func (h *UserHandler) Create(ctx *gin.Context) {
	var body CreateUserRequest

	if err := ctx.BindJSON(&body); err != nil {
		respondErrorCode(ctx, http.StatusBadRequest, "Invalid user data",
			err.Error(), types.CodeValidationError)
		return
	}

	user, err := h.users.Create(services.CreateUserParams{
		Username: body.Username,
		Password: body.Password,
		Nickname: body.Nickname,
		Avatar:   body.Avatar,
		Email:    body.Email,
	})

	if err != nil {
		respondError(ctx, "Failed to create user", err)
		return
	}

	respond(ctx, user, "User created successfully")
}

func (h *UserHandler) Update(ctx *gin.Context) {
	var body UpdateProfileRequest

	if err := ctx.BindJSON(&body); err != nil {
		respondErrorCode(ctx, http.StatusBadRequest, "Invalid user data",
			err.Error(), types.CodeValidationError)
		return
	}

	user, err := h.users.UpdateByID(ctx.Param("id"), profileUpdates(body))

	if err != nil {
		respondError(ctx, "Failed to update user", err)
		return
	}

	respond(ctx, user, "User updated successfully")
}

func (h *UserHandler) Delete(ctx *gin.Context) {
	deleted, err := h.users.DeleteByID(ctx.Param("id"))

	if err != nil {
		respondError(ctx, "Failed to delete user", err)
		return
	}

	if !deleted {
		respondErrorCode(ctx, http.StatusNotFound, "User not found",
			"no user with id "+ctx.Param("id"), types.CodeNotFound)
		return
	}

	respond(ctx, nil, "User deleted successfully")
}

// UpdateProfile updates the authenticated user's own record.
func (h *UserHandler) UpdateProfile(ctx *gin.Context) {
	userID, err := utils.CurrentUserID(ctx)

	if err != nil {
		respondErrorCode(ctx, http.StatusUnauthorized, "Unauthorized",
			err.Error(), types.CodeUnauthorized)
		return
	}

	var body UpdateProfileRequest

	if err := ctx.BindJSON(&body); err != nil {
		respondErrorCode(ctx, http.StatusBadRequest, "Invalid profile data",
			err.Error(), types.CodeValidationError)
		return
	}

	user, err := h.users.UpdateByID(userID, profileUpdates(body))

	if err != nil {
		respondError(ctx, "Failed to update profile", err)
		return
	}

	respond(ctx, user, "Profile updated successfully")
}

func profileUpdates(body UpdateProfileRequest) map[string]interface{} {
	updates := make(map[string]interface{})

	if body.Nickname != nil {
		updates["nickname"] = *body.Nickname
	}

	if body.Avatar != nil {
		updates["avatar"] = *body.Avatar
	}

	if body.Email != nil {
		updates["email"] = *body.Email
	}

	return updates
}
