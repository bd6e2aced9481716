package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response là envelope chung: {"data": ...} hoặc {"error": {...}}
type Response struct {
	Data  interface{} `json:"data,omitempty"`
	Error *Error      `json:"error,omitempty"`
}

type Error struct {
	Status  int                 `json:"status"`
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

// SuccessMarker là payload của delete
type SuccessMarker struct {
	Success bool `json:"success"`
}

// Success responses
func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, Response{Data: data})
}

func Deleted(c *gin.Context) {
	Success(c, http.StatusOK, SuccessMarker{Success: true})
}

// Error responses
func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, Response{
		Error: &Error{
			Status:  statusCode,
			Message: message,
		},
	})
}

func ValidationFailed(c *gin.Context, errs map[string][]string) {
	c.JSON(http.StatusUnprocessableEntity, Response{
		Error: &Error{
			Status:  http.StatusUnprocessableEntity,
			Message: "Validation error",
			Errors:  errs,
		},
	})
}

// Common error responses
func BadRequest(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusBadRequest, message)
}

func NotFound(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusNotFound, message)
}

func InternalServerError(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusInternalServerError, message)
}
