package handler

import (
	"net/http"

	domainUser "bookstore-management/internal/domain/user"
	"bookstore-management/internal/usecase/user"
	"bookstore-management/internal/validator"
	appErrors "bookstore-management/pkg/errors"
	"bookstore-management/pkg/utils"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	service *user.Service
}

func NewUserHandler(service *user.Service) *UserHandler {
	return &UserHandler{service: service}
}

// RegisterRoutes mounts registration on public and everything else on protected.
// The id-less variants exist so a missing id is reported as a validation error.
func (h *UserHandler) RegisterRoutes(public, protected *gin.RouterGroup) {
	public.POST("/user", h.Create)

	protected.GET("/users", h.List)
	protected.GET("/user", h.Get)
	protected.GET("/user/:id", h.Get)
	protected.PATCH("/user", h.Update)
	protected.PATCH("/user/:id", h.Update)
	protected.DELETE("/user", h.Delete)
	protected.DELETE("/user/:id", h.Delete)
}

// Create godoc
// @Summary Register a user
// @Tags users
// @Accept json
// @Produce json
// @Param payload body user.CreateUserRequest true "User payload"
// @Success 201 {object} MessageBody
// @Failure 400 {object} ErrorBody
// @Failure 500 {object} ErrorBody
// @Router /api/user [post]
func (h *UserHandler) Create(c *gin.Context) {
	var req user.CreateUserRequest
	if _, err := bindBody(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	if _, err := h.service.Register(c.Request.Context(), &req); err != nil {
		respondWithError(c, err)
		return
	}

	utils.MessageResponse(c, http.StatusCreated, domainUser.MsgUserRegistered)
}

// Get godoc
// @Summary Get a user by id
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} map[string]user.UserResponse
// @Failure 400 {object} ErrorBody
// @Failure 401 {object} ErrorBody
// @Failure 403 {object} ErrorBody
// @Failure 404 {object} ErrorBody
// @Router /api/user/{id} [get]
func (h *UserHandler) Get(c *gin.Context) {
	id, err := validator.ParseID(c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	u, err := h.service.GetUser(c.Request.Context(), id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "user", u)
}

// List godoc
// @Summary List users
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {array} user.UserResponse
// @Failure 401 {object} ErrorBody
// @Failure 403 {object} ErrorBody
// @Failure 404 {object} ErrorBody
// @Router /api/users [get]
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.service.ListUsers(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", users)
}

// Update godoc
// @Summary Partially update a user
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param payload body user.UpdateUserRequest true "Fields to change"
// @Success 200 {object} MessageBody
// @Failure 400 {object} ErrorBody
// @Failure 401 {object} ErrorBody
// @Failure 403 {object} ErrorBody
// @Failure 404 {object} ErrorBody
// @Router /api/user/{id} [patch]
func (h *UserHandler) Update(c *gin.Context) {
	id, err := validator.ParseID(c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req user.UpdateUserRequest
	raw, err := bindBody(c, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if validator.IsEmptyPayload(raw) {
		respondWithError(c, appErrors.ErrEmptyUpdate)
		return
	}

	if err := h.service.UpdateUser(c.Request.Context(), id, &req); err != nil {
		respondWithError(c, err)
		return
	}

	utils.MessageResponse(c, http.StatusOK, domainUser.MsgUserUpdated)
}

// Delete godoc
// @Summary Delete a user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} MessageBody
// @Failure 400 {object} ErrorBody
// @Failure 401 {object} ErrorBody
// @Failure 403 {object} ErrorBody
// @Failure 404 {object} ErrorBody
// @Router /api/user/{id} [delete]
func (h *UserHandler) Delete(c *gin.Context) {
	id, err := validator.ParseID(c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.service.DeleteUser(c.Request.Context(), id); err != nil {
		respondWithError(c, err)
		return
	}

	utils.MessageResponse(c, http.StatusOK, domainUser.MsgUserDeleted)
}
