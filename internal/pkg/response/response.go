// internal/pkg/response/response.go
package response

import (
	"net/http"

	xerrors "crm-service/internal/pkg/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	MsgConflict      = "Phone number or email already exists"
	MsgInternalError = "Internal server error"
)

// Response defines the standard API response format.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Errors  []string    `json:"errors,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// Success sends a successful response with a message and optional data.
func Success(c *gin.Context, status int, message string, data interface{}) {
	if status == 0 {
		status = http.StatusOK
	}

	c.JSON(status, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Error sends a standardized error response.
func Error(c *gin.Context, code int, message string, err error, data ...interface{}) {
	c.Abort()

	resp := Response{
		Success: false,
		Message: message,
	}

	if err != nil {
		resp.Error = err.Error()
	}

	if len(data) > 0 {
		resp.Data = data[0]
	}

	c.JSON(code, resp)
}

// ValidationFailed sends a 400 carrying the list of field messages.
func ValidationFailed(c *gin.Context, message string, errs []string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, Response{
		Success: false,
		Message: message,
		Errors:  errs,
	})
}

// BadRequest sends a 400 for input that could not be parsed.
func BadRequest(c *gin.Context, message string, err error) {
	Error(c, http.StatusBadRequest, message, err)
}

// NotFound sends a 404 Not Found response.
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message, nil)
}

// Conflict sends a 409 for uniqueness violations.
func Conflict(c *gin.Context) {
	Error(c, http.StatusConflict, MsgConflict, nil)
}

// InternalError sends a 500 without echoing the cause.
func InternalError(c *gin.Context, message string) {
	if message == "" {
		message = MsgInternalError
	}
	Error(c, http.StatusInternalServerError, message, nil)
}

// FromError maps a service error onto the envelope. notFoundMsg is used
// for xerrors.ErrNotFound; unexpected errors are logged and reported as 500.
func FromError(c *gin.Context, logger *zap.Logger, err error, notFoundMsg string) {
	if ve, ok := xerrors.AsValidation(err); ok {
		ValidationFailed(c, ve.Message, ve.Errors)
		return
	}

	switch {
	case xerrors.Is(err, xerrors.ErrNotFound):
		NotFound(c, notFoundMsg)
	case xerrors.Is(err, xerrors.ErrConflict):
		Conflict(c)
	default:
		logger.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		InternalError(c, "")
	}
}
