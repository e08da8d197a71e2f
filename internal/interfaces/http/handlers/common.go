// Package handlers contains the gin HTTP handlers for the WellNodal API.
// Handlers stay thin: bind, call the application service, translate the
// result.  All error mapping goes through respondError so every failure
// reaches the client as the same {code, message} shape.
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/WellNodal/pkg/errors"
	"github.com/turtacn/WellNodal/pkg/types/common"
)

// ErrorResponse is the standard error body.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// respondError maps err onto its HTTP status and writes the structured body.
// 5xx details are masked; the full error is left to the logging middleware.
func respondError(c *gin.Context, err error) {
	status := errors.HTTPStatus(err)
	code := errors.GetCode(err)

	message := err.Error()
	if status >= http.StatusInternalServerError {
		message = "internal server error"
		if m, ok := errors.ErrorCodeMessage[code]; ok {
			message = m
		}
	}

	_ = c.Error(err)
	c.AbortWithStatusJSON(status, ErrorResponse{Code: code.String(), Message: message})
}

// pathID extracts and validates a UUID path parameter.
func pathID(c *gin.Context, name string) (common.ID, bool) {
	id := common.ID(c.Param(name))
	if !id.Valid() {
		respondError(c, errors.InvalidParam(name+" is not a valid ID"))
		return "", false
	}
	return id, true
}

// parsePagination reads page and page_size query parameters; Normalize on the
// service side clamps out-of-range values.
func parsePagination(c *gin.Context) common.Pagination {
	var p common.Pagination
	if v := c.Query("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			p.Page = n
		}
	}
	if v := c.Query("page_size"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			p.PageSize = n
		}
	}
	return p
}
