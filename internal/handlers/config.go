package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/linkdeck/linkdeck/internal/services"
	"github.com/linkdeck/linkdeck/internal/types"
)

type ConfigHandler struct {
	configs *services.ConfigService
}

func NewConfigHandler(configs *services.ConfigService) *ConfigHandler {
	return &ConfigHandler{configs: configs}
}

type UpdateConfigRequest struct {
	Value *string `json:"value"`
}

func (h *ConfigHandler) GetAll(ctx *gin.Context) {
	configs, err := h.configs.AsMap()

	if err != nil {
		respondError(ctx, "Failed to retrieve configs", err)
		return
	}

	respond(ctx, configs, "Configs retrieved successfully")
}

// BulkUpsert takes a flat object and upserts every string-valued entry.
// Non-string values are skipped without error.
func (h *ConfigHandler) BulkUpsert(ctx *gin.Context) {
	var body map[string]interface{}

	if err := ctx.BindJSON(&body); err != nil {
		respondErrorCode(ctx, http.StatusBadRequest, "Invalid config data",
			"request body must be an object", types.CodeValidationError)
		return
	}

	for key, value := range body {
		text, ok := value.(string)

		if !ok {
			continue
		}

		if _, err := h.configs.Upsert(key, text); err != nil {
			respondError(ctx, "Failed to update configs", err)
			return
		}
	}

	respond(ctx, nil, "Configs updated successfully")
}

func (h *ConfigHandler) Get(ctx *gin.Context) {
	config, err := h.configs.FindByKey(ctx.Param("key"))

	if err != nil {
		respondError(ctx, "Failed to retrieve config", err)
		return
	}

	respond(ctx, config, "Config retrieved successfully")
}

func (h *ConfigHandler) Update(ctx *gin.Context) {
	var body UpdateConfigRequest

	if err := ctx.BindJSON(&body); err != nil || body.Value == nil {
		respondErrorCode(ctx, http.StatusBadRequest, "Invalid config value",
			"config value must be a string", types.CodeValidationError)
		return
	}

	config, err := h.configs.Upsert(ctx.Param("key"), *body.Value)

	if err != nil {
		respondError(ctx, "Failed to update config", err)
		return
	}

	respond(ctx, config, "Config updated successfully")
}

func (h *ConfigHandler) Delete(ctx *gin.Context) {
	deleted, err := h.configs.DeleteByKey(ctx.Param("key"))

	if err != nil {
		respondError(ctx, "Failed to delete config", err)
		return
	}

	if !deleted {
		respondErrorCode(ctx, http.StatusNotFound, "Config not found",
			"no config with key "+ctx.Param("key"), types.CodeNotFound)
		return
	}

	respond(ctx, nil, "Config deleted successfully")
}
