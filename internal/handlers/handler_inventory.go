package handlers

import (
	"net/http"

	portssvc "github.com/algoplusmessflow-tech/Messflow-sub001/internal/core/ports/services"
	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/dto"
	"github.com/gin-gonic/gin"
)

type inventoryHandler struct {
	inventoryService portssvc.InventorySvcFacade
}

func registerInventoryRoutes(rg *gin.RouterGroup, inventoryService portssvc.InventorySvcFacade) {
	h := &inventoryHandler{inventoryService: inventoryService}

	items := rg.Group("/inventory")
	{
		items.POST("", h.createItem)
		items.GET("", h.listItems)
		items.GET("/:id", h.getItem)
		items.PUT("/:id", h.updateItem)
		items.DELETE("/:id", h.deleteItem)
		items.POST("/:id/adjust", h.adjustQuantity)
	}
}

// createItem godoc
// @Summary Stock a new item
// @Tags inventory
// @Accept  json
// @Produce  json
// @Param   item body dto.CreateInventoryItemRequest true "Item details"
// @Success 201 {object} dto.InventoryItemResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create inventory item"
// @Security BearerAuth
// @Router /inventory [post]
func (h *inventoryHandler) createItem(c *gin.Context) {
	ownerID, ok := requireOwner(c)
	if !ok {
		return
	}
	var req dto.CreateInventoryItemRequest
	if !bindJSON(c, &req) {
		return
	}
	item, err := h.inventoryService.CreateItem(c.Request.Context(), ownerID, req)
	if err != nil {
		respondWithError(c, err, "create inventory item")
		return
	}
	c.JSON(http.StatusCreated, dto.ToInventoryItemResponse(item))
}

// listItems godoc
// @Summary List inventory items
// @Tags inventory
// @Produce  json
// @Param   limit query int false "Page size" default(50)
// @Param   offset query int false "Offset" default(0)
// @Success 200 {array} dto.InventoryItemResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list inventory items"
// @Security BearerAuth
// @Router /inventory [get]
func (h *inventoryHandler) listItems(c *gin.Context) {
	ownerID, ok := requireOwner(c)
	if !ok {
		return
	}
	var params dto.ListInventoryParams
	if !bindQuery(c, &params) {
		return
	}
	items, err := h.inventoryService.ListItems(c.Request.Context(), ownerID, params)
	if err != nil {
		respondWithError(c, err, "list inventory items")
		return
	}
	c.JSON(http.StatusOK, dto.ToInventoryItemResponses(items))
}

// getItem godoc
// @Summary Get an inventory item
// @Tags inventory
// @Produce  json
// @Param   id path string true "Item ID"
// @Success 200 {object} dto.InventoryItemResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Item not found"
// @Failure 500 {object} map[string]string "Failed to retrieve inventory item"
// @Security BearerAuth
// @Router /inventory/{id} [get]
func (h *inventoryHandler) getItem(c *gin.Context) {
	ownerID, ok := requireOwner(c)
	if !ok {
		return
	}
	item, err := h.inventoryService.GetItem(c.Request.Context(), ownerID, c.Param("id"))
	if err != nil {
		respondWithError(c, err, "retrieve inventory item")
		return
	}
	c.JSON(http.StatusOK, dto.ToInventoryItemResponse(item))
}

// updateItem godoc
// @Summary Update an inventory item
// @Tags inventory
// @Accept  json
// @Produce  json
// @Param   id path string true "Item ID"
// @Param   item body dto.UpdateInventoryItemRequest true "Fields to change"
// @Success 200 {object} dto.InventoryItemResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Item not found"
// @Failure 500 {object} map[string]string "Failed to update inventory item"
// @Security BearerAuth
// @Router /inventory/{id} [put]
func (h *inventoryHandler) updateItem(c *gin.Context) {
	ownerID, ok := requireOwner(c)
	if !ok {
		return
	}
	var req dto.UpdateInventoryItemRequest
	if !bindJSON(c, &req) {
		return
	}
	item, err := h.inventoryService.UpdateItem(c.Request.Context(), ownerID, c.Param("id"), req)
	if err != nil {
		respondWithError(c, err, "update inventory item")
		return
	}
	c.JSON(http.StatusOK, dto.ToInventoryItemResponse(item))
}

// deleteItem godoc
// @Summary Delete an inventory item
// @Tags inventory
// @Param   id path string true "Item ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Item not found"
// @Failure 500 {object} map[string]string "Failed to delete inventory item"
// @Security BearerAuth
// @Router /inventory/{id} [delete]
func (h *inventoryHandler) deleteItem(c *gin.Context) {
	ownerID, ok := requireOwner(c)
	if !ok {
		return
	}
	if err := h.inventoryService.DeleteItem(c.Request.Context(), ownerID, c.Param("id")); err != nil {
		respondWithError(c, err, "delete inventory item")
		return
	}
	c.Status(http.StatusNoContent)
}

// adjustQuantity godoc
// @Summary Move stock in or out
// @Description Adds delta to the quantity. Refused when the result would be negative.
// @Tags inventory
// @Accept  json
// @Produce  json
// @Param   id path string true "Item ID"
// @Param   adjustment body dto.AdjustInventoryRequest true "Quantity delta"
// @Success 200 {object} dto.InventoryItemResponse
// @Failure 400 {object} map[string]string "Invalid delta or insufficient stock"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Item not found"
// @Failure 500 {object} map[string]string "Failed to adjust inventory"
// @Security BearerAuth
// @Router /inventory/{id}/adjust [post]
func (h *inventoryHandler) adjustQuantity(c *gin.Context) {
	ownerID, ok := requireOwner(c)
	if !ok {
		return
	}
	var req dto.AdjustInventoryRequest
	if !bindJSON(c, &req) {
		return
	}
	item, err := h.inventoryService.AdjustQuantity(c.Request.Context(), ownerID, c.Param("id"), req)
	if err != nil {
		respondWithError(c, err, "adjust inventory")
		return
	}
	c.JSON(http.StatusOK, dto.ToInventoryItemResponse(item))
}
