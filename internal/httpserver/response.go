package httpserver

import (
	"errors"
	"log"
	"net/http"

	"crm-backend/internal/domain"
	"github.com/gin-gonic/gin"
)

// envelope is the uniform response shape: success flag, optional message,
// payload, list count and itemized validation errors.
type envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Count   *int        `json:"count,omitempty"`
	Errors  []string    `json:"errors,omitempty"`
}

func respondOK(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, envelope{Success: true, Message: message, Data: data})
}

func respondCreated(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, envelope{Success: true, Message: message, Data: data})
}

func respondList(c *gin.Context, count int, data interface{}) {
	c.JSON(http.StatusOK, envelope{Success: true, Count: &count, Data: data})
}

func respondError(c *gin.Context, status int, message string, errs []string) {
	c.JSON(status, envelope{Success: false, Message: message, Errors: errs})
}

// writeServiceError translates the service error taxonomy into the envelope:
// validation → 400 with itemized messages, missing entity → 404, uniqueness
// conflict → 400, anything else → generic 500 with the detail logged
// server-side only.
func writeServiceError(c *gin.Context, logger *log.Logger, err error) {
	var vErr *domain.ValidationError
	if errors.As(err, &vErr) {
		respondError(c, http.StatusBadRequest, "Validation failed", vErr.Errors)
		return
	}
	var nfErr *domain.NotFoundError
	if errors.As(err, &nfErr) {
		respondError(c, http.StatusNotFound, nfErr.Error(), nil)
		return
	}
	if errors.Is(err, domain.ErrNotFound) {
		respondError(c, http.StatusNotFound, "Not found", nil)
		return
	}
	var cErr *domain.ConflictError
	if errors.As(err, &cErr) {
		respondError(c, http.StatusBadRequest, cErr.Message, nil)
		return
	}
	logger.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	respondError(c, http.StatusInternalServerError, "Server error", nil)
}
