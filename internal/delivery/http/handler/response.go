package handler

import (
	"errors"
	"io"
	"net/http"

	"bookstore-management/internal/logger"
	"bookstore-management/internal/middleware"
	appErrors "bookstore-management/pkg/errors"
	"bookstore-management/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"go.uber.org/zap"
)

// ErrorBody is the shape of every failed response.
type ErrorBody struct {
	Error string `json:"error" example:"Invalid or missing ID."`
}

// MessageBody is the shape of create, update and delete responses.
type MessageBody struct {
	Message string `json:"message"`
}

var errInvalidBody = appErrors.Validation("Invalid request body.")

// respondWithError maps the result contract onto HTTP. Internal causes are
// logged with the request id and replaced by the generic message.
func respondWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		utils.ErrorResponse(c, http.StatusRequestEntityTooLarge, "Request body too large")
		return
	}

	var appErr *appErrors.AppError
	if !errors.As(err, &appErr) {
		appErr = appErrors.Internal("unclassified error", err)
	}

	if appErr.Kind == appErrors.KindInternal {
		logger.WithRequestID(middleware.GetRequestID(c)).Error("Internal server error",
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
			zap.String("code", appErr.Code),
			zap.Error(err),
		)
		_ = c.Error(err)
	}

	utils.ErrorResponse(c, appErr.HTTPStatus(), appErr.PublicMessage())
}

// bindBody decodes the JSON body twice: into a raw map, so callers can tell an
// empty payload apart, and into dst. An absent body yields an empty map.
func bindBody(c *gin.Context, dst interface{}) (map[string]interface{}, error) {
	var raw map[string]interface{}
	if err := c.ShouldBindBodyWith(&raw, binding.JSON); err != nil {
		if errors.Is(err, io.EOF) {
			return map[string]interface{}{}, nil
		}
		return nil, classifyBindError(err)
	}
	if len(raw) == 0 {
		return map[string]interface{}{}, nil
	}

	if err := c.ShouldBindBodyWith(dst, binding.JSON); err != nil {
		return nil, classifyBindError(err)
	}
	return raw, nil
}

func classifyBindError(err error) error {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return err
	}
	return errInvalidBody
}
