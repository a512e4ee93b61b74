package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/invento/backend/internal/domain/shared"
	"github.com/invento/backend/internal/interfaces/http/dto"
	"github.com/invento/backend/internal/interfaces/http/middleware"
)

// BaseHandler provides response helpers shared by all handlers
type BaseHandler struct {
	logger *zap.Logger
}

// NewBaseHandler creates a base handler
func NewBaseHandler(logger *zap.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

// Success writes a 200 response with the given payload
func (h *BaseHandler) Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// SuccessWithMeta writes a 200 response with pagination metadata
func (h *BaseHandler) SuccessWithMeta(c *gin.Context, data interface{}, total int64, page, pageSize int) {
	c.JSON(http.StatusOK, dto.NewSuccessResponseWithMeta(data, total, page, pageSize))
}

// Created writes a 201 response with the given payload
func (h *BaseHandler) Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// NoContent writes a 204 response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// BadRequest writes a 400 response with the given message
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest,
		dto.NewErrorResponseWithRequestID(dto.ErrCodeBadRequest, message, middleware.GetRequestID(c)))
}

// HandleBindError writes a 400 for a request binding failure, with per-field
// detail when the body parsed but failed validation
func (h *BaseHandler) HandleBindError(c *gin.Context, err error) {
	requestID := middleware.GetRequestID(c)
	if fields := bindingFields(err); fields != nil {
		c.JSON(http.StatusBadRequest,
			dto.NewValidationErrorResponse("Validation failed.", requestID, fields))
		return
	}
	c.JSON(http.StatusBadRequest,
		dto.NewErrorResponseWithRequestID(dto.ErrCodeInvalidJSON, "Request body must be valid JSON.", requestID))
}

// HandleError translates application errors to HTTP responses
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	requestID := middleware.GetRequestID(c)

	var verr *shared.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest,
			dto.NewValidationErrorResponse("Validation failed.", requestID, verr.Fields))
		return
	}

	var derr *shared.DomainError
	if errors.As(err, &derr) {
		code := dto.NormalizeErrorCode(derr.Code)
		status := dto.GetHTTPStatus(code)
		if status >= http.StatusInternalServerError {
			h.logger.Error("request failed",
				zap.String("code", derr.Code),
				zap.String("request_id", requestID),
				zap.Error(err))
		}
		c.JSON(status, dto.NewErrorResponseWithRequestID(code, derr.Message, requestID))
		return
	}

	h.logger.Error("unhandled error",
		zap.String("request_id", requestID),
		zap.Error(err))
	c.JSON(http.StatusInternalServerError,
		dto.NewErrorResponseWithRequestID(dto.ErrCodeInternal, "An internal error occurred.", requestID))
}
