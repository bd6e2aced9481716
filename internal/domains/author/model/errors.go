package model

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"library-catalog/internal/shared/response"
	"library-catalog/internal/shared/validation"
	"library-catalog/pkg/pagination"
)

var (
	ErrAuthorNotFound = errors.New("author not found")
)

var authorErrorMap = map[error]struct {
	Status  int
	Message string
}{
	ErrAuthorNotFound:            {Status: http.StatusNotFound, Message: "Author not found"},
	pagination.ErrInvalidPerPage: {Status: http.StatusBadRequest, Message: "Parameter \"count\" must be a positive number"},
}

// HandleAuthorError writes the error envelope for err. Returns false when err is nil.
func HandleAuthorError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	var verrs validation.Errors
	if errors.As(err, &verrs) {
		response.ValidationFailed(c, verrs)
		return true
	}

	for known, cfg := range authorErrorMap {
		if errors.Is(err, known) {
			response.ErrorResponse(c, cfg.Status, cfg.Message)
			return true
		}
	}

	// Lỗi không xác định
	log.Error().Err(err).
		Str("request_id", c.GetString("request_id")).
		Str("path", c.Request.URL.Path).
		Msg("[Author] Unhandled error")
	response.InternalServerError(c, "Internal server error")
	return true
}
