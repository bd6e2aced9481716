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
	ErrBookNotFound = errors.New("book not found")
)

// AuthorFieldError is returned when the referenced author does not exist
func AuthorFieldError() validation.Errors {
	return validation.Field("author", validation.MsgInvalidValue)
}

var bookErrorMap = map[error]struct {
	Status  int
	Message string
}{
	ErrBookNotFound:              {Status: http.StatusNotFound, Message: "Book not found"},
	pagination.ErrInvalidPerPage: {Status: http.StatusBadRequest, Message: "Parameter \"count\" must be a positive number"},
}

func HandleBookError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	var verrs validation.Errors
	if errors.As(err, &verrs) {
		response.ValidationFailed(c, verrs)
		return true
	}

	for known, cfg := range bookErrorMap {
		if errors.Is(err, known) {
			response.ErrorResponse(c, cfg.Status, cfg.Message)
			return true
		}
	}

	log.Error().Err(err).
		Str("request_id", c.GetString("request_id")).
		Str("path", c.Request.URL.Path).
		Msg("[Book] Unhandled error")
	response.InternalServerError(c, "Internal server error")
	return true
}
