package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/linkdeck/linkdeck/internal/services"
	"github.com/linkdeck/linkdeck/internal/types"
)

type DataHandler struct {
	data *services.DataService
}

func NewDataHandler(data *services.DataService) *DataHandler {
	return &DataHandler{data: data}
}

func (h *DataHandler) Export(ctx *gin.Context) {
	doc, err := h.data.Export()

	if err != nil {
		respondError(ctx, "Failed to export data", err)
		return
	}

	respond(ctx, doc, "Data exported successfully")
}

// Import applies the document item by item. Items written before a failure
// stay committed; the aggregated error wins over the success counts in the
// response.
func (h *DataHandler) Import(ctx *gin.Context) {
	var doc services.ImportDocument

	if err := ctx.BindJSON(&doc); err != nil {
		respondErrorCode(ctx, http.StatusBadRequest, "Invalid import data",
			"request body must be an object", types.CodeValidationError)
		return
	}

	result, err := h.data.Import(doc)

	if err != nil {
		log.Printf("Data import finished with errors: %v", err)
		respondErrorCode(ctx, http.StatusInternalServerError, "Failed to import data",
			err.Error(), types.CodeServerError)
		return
	}

	respond(ctx, result, "Data imported successfully")
}
