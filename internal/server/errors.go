package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// apiError carries the HTTP status an error should be reported with.
type apiError struct {
	Code    string `json:"code"`
	Message string `json:"error"`
	Status  int    `json:"-"`
	Err     error  `json:"-"`
}

func (e *apiError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *apiError) Unwrap() error { return e.Err }

func badRequest(code string, err error) *apiError {
	return &apiError{Code: code, Message: err.Error(), Status: http.StatusBadRequest, Err: err}
}

var (
	errNotFound = &apiError{Code: "NOT_FOUND", Message: "schedule not found", Status: http.StatusNotFound}
	errInternal = &apiError{Code: "INTERNAL_ERROR", Message: "internal server error", Status: http.StatusInternalServerError}
)

// abort writes err as JSON and records it on the context for the request log.
func abort(c *gin.Context, err error) {
	var apiErr *apiError
	if !errors.As(err, &apiErr) {
		apiErr = errInternal
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(apiErr.Status, apiErr)
}
