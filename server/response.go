package server

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/seqkit/errors"
)

// DataResponse is the standard success envelope.
type DataResponse struct {
	Data any   `json:"data"`
	Meta *Meta `json:"meta,omitempty"`
}

// Meta carries list metadata.
type Meta struct {
	Total int `json:"total"`
}

// RespondWithError renders err. An *errors.AppError keeps its status and
// structured body; an oversized body maps to 413; anything else is a 500.
func RespondWithError(c *gin.Context, err error) {
	var maxErr *http.MaxBytesError
	if stderrors.As(err, &maxErr) {
		err = errors.New(errors.ErrCodeLimitExceeded, "request body too large", http.StatusRequestEntityTooLarge).
			WithDetail("limit_bytes", maxErr.Limit)
	}
	appErr := errors.FromError(err)
	c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToResponse())
}

// RespondOK sends a 200 response wrapping data.
func RespondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, DataResponse{Data: data})
}

// RespondList sends a 200 response wrapping items with their count.
func RespondList[T any](c *gin.Context, items []T) {
	c.JSON(http.StatusOK, DataResponse{Data: items, Meta: &Meta{Total: len(items)}})
}

func notFound(c *gin.Context) {
	RespondWithError(c, errors.NotFound("route", c.Request.URL.Path))
}

func methodNotAllowed(c *gin.Context) {
	RespondWithError(c, errors.New(errors.ErrCodeInvalidArgument,
		c.Request.Method+" not allowed on "+c.Request.URL.Path, http.StatusMethodNotAllowed))
}
