package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/movilshop/backend/internal/domain/shared"
	"github.com/movilshop/backend/internal/interfaces/http/dto"
)

// BaseHandler provides response helpers shared by all handlers
type BaseHandler struct{}

// Success sends a 200 response with data
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// SuccessWithMeta sends a 200 response with data and pagination metadata
func (h *BaseHandler) SuccessWithMeta(c *gin.Context, data any, meta dto.Meta) {
	c.JSON(http.StatusOK, dto.NewSuccessResponseWithMeta(data, meta))
}

// Created sends a 201 response with data
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// NoContent sends a 204 response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error sends an error response with the given status and code
func (h *BaseHandler) Error(c *gin.Context, status int, code, message string) {
	c.JSON(status, dto.NewErrorResponse(code, message))
}

// BadRequest sends a 400 response, typically for binding failures
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, dto.ErrCodeValidation, message)
}

// NotFound sends a 404 response
func (h *BaseHandler) NotFound(c *gin.Context, message string) {
	h.Error(c, http.StatusNotFound, dto.ErrCodeNotFound, message)
}

// InternalError sends a 500 response without leaking internals
func (h *BaseHandler) InternalError(c *gin.Context) {
	h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal, "An internal error occurred")
}

// HandleError translates an application error into an HTTP response.
// Domain errors keep their code in the error details so clients can react
// to specific business rejections.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		apiCode := dto.NormalizeErrorCode(domainErr.Code)
		status := dto.GetHTTPStatus(apiCode)
		if domainErr.Code != apiCode {
			c.JSON(status, dto.NewErrorResponseWithDetails(apiCode, domainErr.Message,
				gin.H{"domain_code": domainErr.Code}))
			return
		}
		c.JSON(status, dto.NewErrorResponse(apiCode, domainErr.Message))
		return
	}

	h.InternalError(c)
}

// normalizePage applies the default pagination window
func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}
	return page, pageSize
}

// uuidParam parses a UUID path parameter, writing a 400 on failure
func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest,
			dto.NewErrorResponse(dto.ErrCodeValidation, "Invalid resource ID"))
		return uuid.Nil, false
	}
	return id, true
}
