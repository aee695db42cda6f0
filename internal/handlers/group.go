package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/linkdeck/linkdeck/internal/services"
	"github.com/linkdeck/linkdeck/internal/types"
)

type GroupHandler struct {
	groups *services.GroupService
}

func NewGroupHandler(groups *services.GroupService) *GroupHandler {
	return &GroupHandler{groups: groups}
}

type CreateGroupRequest struct {
	Name     string `json:"name" binding:"required"`
	OrderNum int    `json:"order_num"`
}

type UpdateGroupRequest struct {
	Name     *string `json:"name"`
	OrderNum *int    `json:"order_num"`
}

// orderItemRequest uses pointers so a present-but-zero order_num passes and
// a missing field fails: every item must carry both numeric values or the
// whole batch is rejected before any write.
type orderItemRequest struct {
	ID       *uint `json:"id" binding:"required"`
	OrderNum *int  `json:"order_num" binding:"required"`
}

func (h *GroupHandler) All(ctx *gin.Context) {
	groups, err := h.groups.FindAll()

	if err != nil {
		respondError(ctx, "Failed to retrieve groups", err)
		return
	}

	respond(ctx, groups, "Groups retrieved successfully")
}

func (h *GroupHandler) List(ctx *gin.Context) {
	pageNum, _ := strconv.Atoi(ctx.DefaultQuery("pageNum", "1"))
	pageSize, _ := strconv.Atoi(ctx.DefaultQuery("pageSize", "10"))

	filter := services.GroupFilter{
		Name:     ctx.Query("name"),
		Type:     ctx.Query("type"),
		IsHot:    ctx.Query("isHot") == "true",
		PageNum:  pageNum,
		PageSize: pageSize,
	}

	groups, total, err := h.groups.List(filter)

	if err != nil {
		respondError(ctx, "Failed to retrieve groups", err)
		return
	}

	if pageNum < 1 {
		pageNum = 1
	}

	if pageSize < 1 {
		pageSize = 10
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))

	respondWithMeta(ctx, groups, "Groups retrieved successfully", types.PageMeta{
		Total:      total,
		PageNum:    pageNum,
		PageSize:   pageSize,
		TotalPages: totalPages,
	})
}

func (h *GroupHandler) Get(ctx *gin.Context) {
	id, ok := parseID(ctx, "group id must be a number")

	if !ok {
		return
	}

	group, err := h.groups.FindByID(id)

	if err != nil {
		respondError(ctx, "Failed to retrieve group", err)
		return
	}

	respond(ctx, group, "Group retrieved successfully")
}

func (h *GroupHandler) Create(ctx *gin.Context) {
	var body CreateGroupRequest

	if err := ctx.BindJSON(&body); err != nil {
		respondErrorCode(ctx, http.StatusBadRequest, "Invalid group data",
			err.Error(), types.CodeValidationError)
		return
	}

	group, err := h.groups.Create(body.Name, body.OrderNum)

	if err != nil {
		respondError(ctx, "Failed to create group", err)
		return
	}

	respond(ctx, group, "Group created successfully")
}

func (h *GroupHandler) Update(ctx *gin.Context) {
	id, ok := parseID(ctx, "group id must be a number")

	if !ok {
		return
	}

	var body UpdateGroupRequest

	if err := ctx.BindJSON(&body); err != nil {
		respondErrorCode(ctx, http.StatusBadRequest, "Invalid group data",
			err.Error(), types.CodeValidationError)
		return
	}

	updates := make(map[string]interface{})

	if body.Name != nil {
		updates["name"] = *body.Name
	}

	if body.OrderNum != nil {
		updates["order_num"] = *body.OrderNum
	}

	group, err := h.groups.UpdateByID(id, updates)

	if err != nil {
		respondError(ctx, "Failed to update group", err)
		return
	}

	respond(ctx, group, "Group updated successfully")
}

func (h *GroupHandler) Delete(ctx *gin.Context) {
	id, ok := parseID(ctx, "group id must be a number")

	if !ok {
		return
	}

	deleted, err := h.groups.DeleteByID(id)

	if err != nil {
		respondError(ctx, "Failed to delete group", err)
		return
	}

	if !deleted {
		respondErrorCode(ctx, http.StatusNotFound, "Group not found",
			"no group with id "+ctx.Param("id"), types.CodeNotFound)
		return
	}

	respond(ctx, nil, "Group deleted successfully")
}

func (h *GroupHandler) Order(ctx *gin.Context) {
	items, ok := bindOrderItems(ctx)

	if !ok {
		return
	}

	if err := h.groups.Reorder(items); err != nil {
		respondError(ctx, "Failed to update group order", err)
		return
	}

	respond(ctx, nil, "Group order updated successfully")
}

func parseID(ctx *gin.Context, detail string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)

	if err != nil {
		respondErrorCode(ctx, http.StatusBadRequest, "Invalid id",
			detail, types.CodeValidationError)
		return 0, false
	}

	return uint(id), true
}

func bindOrderItems(ctx *gin.Context) ([]services.OrderItem, bool) {
	var body []orderItemRequest

	if err := ctx.BindJSON(&body); err != nil {
		respondErrorCode(ctx, http.StatusBadRequest, "Invalid order data",
			"each item must contain a numeric id and order_num", types.CodeValidationError)
		return nil, false
	}

	items := make([]services.OrderItem, 0, len(body))

	for _, item := range body {
		items = append(items, services.OrderItem{ID: *item.ID, OrderNum: *item.OrderNum})
	}

	return items, true
}
