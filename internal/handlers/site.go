package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/linkdeck/linkdeck/internal/services"
	"github.com/linkdeck/linkdeck/internal/types"
)

type SiteHandler struct {
	sites *services.SiteService
}

func NewSiteHandler(sites *services.SiteService) *SiteHandler {
	return &SiteHandler{sites: sites}
}

type CreateSiteRequest struct {
	GroupID     uint   `json:"group_id" binding:"required"`
	Name        string `json:"name" binding:"required"`
	URL         string `json:"url" binding:"required"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
	Notes       string `json:"notes"`
	OrderNum    int    `json:"order_num"`
}

type UpdateSiteRequest struct {
	GroupID     *uint   `json:"group_id"`
	Name        *string `json:"name"`
	URL         *string `json:"url"`
	Icon        *string `json:"icon"`
	Description *string `json:"description"`
	Notes       *string `json:"notes"`
	OrderNum    *int    `json:"order_num"`
}

// List returns the sites of one group when groupId is given, or every site
// otherwise, always sorted by order_num.
func (h *SiteHandler) List(ctx *gin.Context) {
	groupParam := ctx.Query("groupId")

	if groupParam == "" {
		sites, err := h.sites.FindAll()

		if err != nil {
			respondError(ctx, "Failed to retrieve sites", err)
			return
		}

		respond(ctx, sites, "Sites retrieved successfully")
		return
	}

	groupID, err := strconv.ParseUint(groupParam, 10, 32)

	if err != nil {
		respondErrorCode(ctx, http.StatusBadRequest, "Invalid group id",
			"groupId must be a number", types.CodeValidationError)
		return
	}

	sites, svcErr := h.sites.FindByGroup(uint(groupID))

	if svcErr != nil {
		respondError(ctx, "Failed to retrieve sites", svcErr)
		return
	}

	respond(ctx, sites, "Sites retrieved successfully")
}

func (h *SiteHandler) Get(ctx *gin.Context) {
	id, ok := parseID(ctx, "site id must be a number")

	if !ok {
		return
	}

	site, err := h.sites.FindByID(id)

	if err != nil {
		respondError(ctx, "Failed to retrieve site", err)
		return
	}

	respond(ctx, site, "Site retrieved successfully")
}

func (h *SiteHandler) Create(ctx *gin.Context) {
	var body CreateSiteRequest

	if err := ctx.BindJSON(&body); err != nil {
		respondErrorCode(ctx, http.StatusBadRequest, "Invalid site data",
			err.Error(), types.CodeValidationError)
		return
	}

	site, err := h.sites.Create(services.CreateSiteParams{
		GroupID:     body.GroupID,
		Name:        body.Name,
		URL:         body.URL,
		Icon:        body.Icon,
		Description: body.Description,
		Notes:       body.Notes,
		OrderNum:    body.OrderNum,
	})

	if err != nil {
		respondError(ctx, "Failed to create site", err)
		return
	}

	respond(ctx, site, "Site created successfully")
}

func (h *SiteHandler) Update(ctx *gin.Context) {
	id, ok := parseID(ctx, "site id must be a number")

	if !ok {
		return
	}

	var body UpdateSiteRequest

	if err := ctx.BindJSON(&body); err != nil {
		respondErrorCode(ctx, http.StatusBadRequest, "Invalid site data",
			err.Error(), types.CodeValidationError)
		return
	}

	updates := make(map[string]interface{})

	if body.GroupID != nil {
		updates["group_id"] = *body.GroupID
	}

	if body.Name != nil {
		updates["name"] = *body.Name
	}

	if body.URL != nil {
		updates["url"] = *body.URL
	}

	if body.Icon != nil {
		updates["icon"] = *body.Icon
	}

	if body.Description != nil {
		updates["description"] = *body.Description
	}

	if body.Notes != nil {
		updates["notes"] = *body.Notes
	}

	if body.OrderNum != nil {
		updates["order_num"] = *body.OrderNum
	}

	site, err := h.sites.UpdateByID(id, updates)

	if err != nil {
		respondError(ctx, "Failed to update site", err)
		return
	}

	respond(ctx, site, "Site updated successfully")
}

func (h *SiteHandler) Delete(ctx *gin.Context) {
	id, ok := parseID(ctx, "site id must be a number")

	if !ok {
		return
	}

	deleted, err := h.sites.DeleteByID(id)

	if err != nil {
		respondError(ctx, "Failed to delete site", err)
		return
	}

	if !deleted {
		respondErrorCode(ctx, http.StatusNotFound, "Site not found",
			"no site with id "+ctx.Param("id"), types.CodeNotFound)
		return
	}

	respond(ctx, nil, "Site deleted successfully")
}

func (h *SiteHandler) Order(ctx *gin.Context) {
	items, ok := bindOrderItems(ctx)

	if !ok {
		return
	}

	if err := h.sites.Reorder(items); err != nil {
		respondError(ctx, "Failed to update site order", err)
		return
	}

	respond(ctx, nil, "Site order updated successfully")
}
