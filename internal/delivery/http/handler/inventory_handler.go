package handler

import (
	"net/http"

	domainInventory "bookstore-management/internal/domain/inventory"
	"bookstore-management/internal/usecase/inventory"
	"bookstore-management/internal/validator"
	appErrors "bookstore-management/pkg/errors"
	"bookstore-management/pkg/utils"

	"github.com/gin-gonic/gin"
)

// InventoryHandler serves one collection; the router mounts one per collection.
type InventoryHandler struct {
	service    *inventory.Service
	collection domainInventory.Collection
}

func NewInventoryHandler(service *inventory.Service) *InventoryHandler {
	return &InventoryHandler{service: service, collection: service.Collection()}
}

// RegisterRoutes mounts /<key>, /<key>/:id and /<plural> on protected.
func (h *InventoryHandler) RegisterRoutes(protected *gin.RouterGroup) {
	single := "/" + h.collection.Key()

	protected.POST(single, h.Create)
	protected.GET("/"+h.collection.Plural, h.List)
	protected.GET(single, h.Get)
	protected.GET(single+"/:id", h.Get)
	protected.PATCH(single, h.Update)
	protected.PATCH(single+"/:id", h.Update)
	protected.DELETE(single, h.Delete)
	protected.DELETE(single+"/:id", h.Delete)
}

// Create godoc
// @Summary Create a book or stock record
// @Tags inventory
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param collection path string true "book or stock"
// @Param payload body inventory.ItemRequest true "Item payload"
// @Success 201 {object} MessageBody
// @Failure 400 {object} ErrorBody
// @Failure 401 {object} ErrorBody
// @Failure 403 {object} ErrorBody
// @Router /api/{collection} [post]
func (h *InventoryHandler) Create(c *gin.Context) {
	var req inventory.ItemRequest
	raw, err := bindBody(c, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if validator.IsEmptyPayload(raw) {
		respondWithError(c, appErrors.ErrEmptyCreate)
		return
	}

	if _, err := h.service.Create(c.Request.Context(), &req); err != nil {
		respondWithError(c, err)
		return
	}

	utils.MessageResponse(c, http.StatusCreated, h.collection.MsgRegistered())
}

// Get godoc
// @Summary Get a book or stock record by id
// @Tags inventory
// @Produce json
// @Security BearerAuth
// @Param collection path string true "book or stock"
// @Param id path int true "Item ID"
// @Success 200 {object} map[string]inventory.ItemResponse
// @Failure 400 {object} ErrorBody
// @Failure 404 {object} ErrorBody
// @Router /api/{collection}/{id} [get]
func (h *InventoryHandler) Get(c *gin.Context) {
	id, err := validator.ParseID(c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	item, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, h.collection.Key(), item)
}

// List godoc
// @Summary List books or stock records
// @Tags inventory
// @Produce json
// @Security BearerAuth
// @Param collections path string true "books or stocks"
// @Success 200 {array} inventory.ItemResponse
// @Failure 404 {object} ErrorBody
// @Router /api/{collections} [get]
func (h *InventoryHandler) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", items)
}

// Update godoc
// @Summary Partially update a book or stock record
// @Tags inventory
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param collection path string true "book or stock"
// @Param id path int true "Item ID"
// @Param payload body inventory.ItemRequest true "Fields to change"
// @Success 200 {object} MessageBody
// @Failure 400 {object} ErrorBody
// @Failure 404 {object} ErrorBody
// @Router /api/{collection}/{id} [patch]
func (h *InventoryHandler) Update(c *gin.Context) {
	id, err := validator.ParseID(c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req inventory.ItemRequest
	raw, err := bindBody(c, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if validator.IsEmptyPayload(raw) {
		respondWithError(c, appErrors.ErrEmptyUpdate)
		return
	}

	if err := h.service.Update(c.Request.Context(), id, &req); err != nil {
		respondWithError(c, err)
		return
	}

	utils.MessageResponse(c, http.StatusOK, domainInventory.MsgUpdated)
}

// Delete godoc
// @Summary Delete a book or stock record
// @Tags inventory
// @Produce json
// @Security BearerAuth
// @Param collection path string true "book or stock"
// @Param id path int true "Item ID"
// @Success 200 {object} MessageBody
// @Failure 400 {object} ErrorBody
// @Failure 404 {object} ErrorBody
// @Router /api/{collection}/{id} [delete]
func (h *InventoryHandler) Delete(c *gin.Context) {
	id, err := validator.ParseID(c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondWithError(c, err)
		return
	}

	utils.MessageResponse(c, http.StatusOK, h.collection.MsgDeleted())
}
