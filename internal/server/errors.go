package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	catalogdomain "github.com/warungkita/pos/internal/catalog/domain"
	labeldomain "github.com/warungkita/pos/internal/label/domain"
	orderdomain "github.com/warungkita/pos/internal/order/domain"
	"gorm.io/gorm"
)

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (v ValidationErrors) Error() string {
	return "validation error"
}

// ErrorHandlingMiddleware turns the last error a handler recorded into
// the shared response envelope. Handlers that already wrote a body are
// left alone.
func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, message, data := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, Response{
			Success: false,
			Message: message,
			Data:    data,
			Code:    status,
		})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func newValidationError(field, code, message string) error {
	return &ValidationErrors{
		Errors: []ValidationError{
			{
				Field:   field,
				Code:    code,
				Message: message,
			},
		},
	}
}

func mapError(err error) (int, string, any) {
	var vErr *ValidationErrors
	if errors.As(err, &vErr) {
		return http.StatusBadRequest, "validation error", gin.H{"errors": vErr.Errors}
	}

	switch {
	case isNotFoundError(err):
		return http.StatusNotFound, "Data tidak ditemukan", nil
	case isValidationError(err):
		return http.StatusBadRequest, err.Error(), nil
	default:
		return http.StatusInternalServerError, "internal server error", gin.H{"error": err.Error()}
	}
}

func isNotFoundError(err error) bool {
	return errors.Is(err, catalogdomain.ErrNotFound) ||
		errors.Is(err, orderdomain.ErrNotFound) ||
		errors.Is(err, orderdomain.ErrProductNotFound) ||
		errors.Is(err, labeldomain.ErrOrderNotFound) ||
		errors.Is(err, gorm.ErrRecordNotFound)
}

func isValidationError(err error) bool {
	return errors.Is(err, catalogdomain.ErrInvalidName) ||
		errors.Is(err, catalogdomain.ErrInvalidPrice) ||
		errors.Is(err, orderdomain.ErrEmptyOrder) ||
		errors.Is(err, orderdomain.ErrInvalidQty) ||
		errors.Is(err, orderdomain.ErrInvalidStatus)
}

// classifyErrorForLog buckets handler errors for the request logger.
func classifyErrorForLog(err error) (string, string) {
	switch {
	case isNotFoundError(err):
		return "not_found", err.Error()
	case isValidationError(err):
		return "validation_error", err.Error()
	default:
		var vErr *ValidationErrors
		if errors.As(err, &vErr) {
			return "validation_error", vErr.Error()
		}
		return "internal_error", err.Error()
	}
}
