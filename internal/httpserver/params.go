package httpserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// pathID parses a numeric path parameter; on failure it writes the
// validation response and reports false.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, http.StatusBadRequest, "Validation failed", []string{name + " must be a valid number"})
		return 0, false
	}
	return id, true
}
