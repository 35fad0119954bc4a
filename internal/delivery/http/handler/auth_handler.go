package handler

import (
	"net/http"

	"bookstore-management/internal/usecase/user"
	"bookstore-management/pkg/utils"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	service *user.Service
}

func NewAuthHandler(service *user.Service) *AuthHandler {
	return &AuthHandler{service: service}
}

func (h *AuthHandler) RegisterRoutes(public *gin.RouterGroup) {
	public.POST("/auth", h.Authenticate)
}

// Authenticate godoc
// @Summary Exchange credentials for a session token
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body user.AuthRequest true "Credentials"
// @Success 200 {object} user.TokenResponse
// @Failure 400 {object} ErrorBody
// @Failure 401 {object} ErrorBody
// @Failure 403 {object} ErrorBody
// @Failure 500 {object} ErrorBody
// @Router /api/auth [post]
func (h *AuthHandler) Authenticate(c *gin.Context) {
	var req user.AuthRequest
	if _, err := bindBody(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	token, err := h.service.Authenticate(c.Request.Context(), &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", token)
}
