package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/invento/backend/internal/application/inventory"
	"github.com/invento/backend/internal/interfaces/http/dto"
)

// InventoryHandler serves the inventory item endpoints
type InventoryHandler struct {
	BaseHandler
	service *inventory.ItemService
}

// NewInventoryHandler creates an inventory handler
func NewInventoryHandler(service *inventory.ItemService, logger *zap.Logger) *InventoryHandler {
	return &InventoryHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// RegisterRoutes registers inventory routes on the given group
func (h *InventoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	items := rg.Group("/items")
	{
		items.GET("", h.List)
		items.POST("", h.Create)
		items.GET("/:id", h.Get)
		items.PUT("/:id", h.Update)
		items.PATCH("/:id", h.PartialUpdate)
		items.DELETE("/:id", h.Delete)
	}
}

// List handles GET /items
func (h *InventoryHandler) List(c *gin.Context) {
	var filter inventory.ListItemsFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, "Invalid query parameters.")
		return
	}

	page, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Create handles POST /items. The payload is bound as a raw map so the
// validator can distinguish missing fields from empty ones.
func (h *InventoryHandler) Create(c *gin.Context) {
	payload, ok := h.bindPayload(c)
	if !ok {
		return
	}

	item, err := h.service.Create(c.Request.Context(), payload)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, item)
}

// Get handles GET /items/:id
func (h *InventoryHandler) Get(c *gin.Context) {
	id, ok := h.itemID(c)
	if !ok {
		return
	}

	item, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, item)
}

// Update handles PUT /items/:id, replacing the full item
func (h *InventoryHandler) Update(c *gin.Context) {
	h.update(c, false)
}

// PartialUpdate handles PATCH /items/:id, updating only the supplied fields
func (h *InventoryHandler) PartialUpdate(c *gin.Context) {
	h.update(c, true)
}

func (h *InventoryHandler) update(c *gin.Context, partial bool) {
	id, ok := h.itemID(c)
	if !ok {
		return
	}
	payload, ok := h.bindPayload(c)
	if !ok {
		return
	}

	item, err := h.service.Update(c.Request.Context(), id, payload, partial)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, item)
}

// Delete handles DELETE /items/:id
func (h *InventoryHandler) Delete(c *gin.Context) {
	id, ok := h.itemID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

func (h *InventoryHandler) itemID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, dto.NewErrorResponse(dto.ErrCodeNotFound, "Resource not found."))
		return uuid.Nil, false
	}
	return id, true
}

func (h *InventoryHandler) bindPayload(c *gin.Context) (map[string]any, bool) {
	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest,
			dto.NewErrorResponse(dto.ErrCodeInvalidJSON, "Request body must be valid JSON."))
		return nil, false
	}
	return payload, true
}
