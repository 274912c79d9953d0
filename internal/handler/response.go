package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "github.com/medrec/hospital-api/pkg/errors"
)

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Error string `json:"error"`
}

func NewErrorBody(message string) ErrorBody {
	return ErrorBody{Error: message}
}

// Error writes err as a JSON response with the status its code maps to.
func Error(c *gin.Context, err error) {
	c.Error(err)
	c.AbortWithStatusJSON(apperrors.Status(err), NewErrorBody(apperrors.Message(err)))
}

// IDParam parses the numeric :id path parameter.
func IDParam(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, apperrors.BadRequest("invalid id", err)
	}
	return id, nil
}
