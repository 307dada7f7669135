package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the standard error envelope.
type ErrorResponse struct {
	Error string `json:"error"`
}

// SuccessResponse wraps a message and an optional payload.
type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ValidationErrorResponse carries field-level validation details.
type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// ErrorJSON sends a JSON error response with the given status code.
func ErrorJSON(ctx *gin.Context, statusCode int, err error) {
	ctx.JSON(statusCode, ErrorResponse{Error: err.Error()})
}

// ValidationErrorJSON sends a 400 with per-field details.
func ValidationErrorJSON(ctx *gin.Context, message string, fields map[string]string) {
	ctx.JSON(http.StatusBadRequest, ValidationErrorResponse{Error: message, Fields: fields})
}

// SuccessJSON sends a success envelope with optional data.
func SuccessJSON(ctx *gin.Context, statusCode int, message string, data interface{}) {
	ctx.JSON(statusCode, SuccessResponse{Message: message, Data: data})
}

// BadRequestJSON sends a bad request error response.
func BadRequestJSON(ctx *gin.Context, message string) {
	ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: message})
}

// UnauthorizedJSON sends an unauthorized error response.
func UnauthorizedJSON(ctx *gin.Context) {
	ctx.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized access"})
}

// ForbiddenJSON sends a forbidden error response.
func ForbiddenJSON(ctx *gin.Context) {
	ctx.JSON(http.StatusForbidden, ErrorResponse{Error: "Access forbidden"})
}

// NotFoundJSON sends a not found error response for the named resource.
func NotFoundJSON(ctx *gin.Context, resource string) {
	ctx.JSON(http.StatusNotFound, ErrorResponse{Error: resource + " not found"})
}

// ConflictJSON sends a conflict error response.
func ConflictJSON(ctx *gin.Context, err error) {
	ctx.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
}

// InternalErrorJSON sends a generic internal server error, hiding the cause.
func InternalErrorJSON(ctx *gin.Context, err error) {
	ctx.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
}
