package api

import (
	"errors"                        // Sentinel matching
	"lamp_catalog/internal/access"  // Permission errors
	"lamp_catalog/internal/cart"    // Cart errors
	"lamp_catalog/internal/catalog" // Catalog errors
	"lamp_catalog/internal/orders"  // Order errors
	"net/http"                      // HTTP status codes
	"strconv"                       // Path parameter parsing

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Structured logging
)

// statusOf maps package sentinel errors to HTTP status codes
var statusOf = []struct {
	err    error
	status int
}{
	{access.ErrPermissionDenied, http.StatusForbidden},
	{catalog.ErrLampNotFound, http.StatusNotFound},
	{catalog.ErrInvalidFilter, http.StatusBadRequest},
	{catalog.ErrDuplicateArticle, http.StatusBadRequest},
	{cart.ErrItemNotFound, http.StatusNotFound},
	{cart.ErrInvalidQuantity, http.StatusBadRequest},
	{orders.ErrEmptyCart, http.StatusBadRequest},
	{orders.ErrOrderNotFound, http.StatusNotFound},
	{orders.ErrInvalidTransition, http.StatusConflict},
}

// respondError writes err as a JSON error. Unknown errors are logged and
// reported as 500 without details.
func respondError(c *gin.Context, err error, msg string) {
	for _, s := range statusOf {
		if errors.Is(err, s.err) {
			c.JSON(s.status, gin.H{"error": err.Error()})
			return
		}
	}
	logrus.WithFields(logrus.Fields{
		"path":  c.FullPath(),
		"error": err.Error(),
	}).Error(msg)
	c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
}

// idParam parses a positive numeric path parameter, answering 404 when malformed
func idParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return 0, false
	}
	return uint(id), true
}

// pagination reads page and page_size query parameters
func pagination(c *gin.Context, defSize int) (page, pageSize int) {
	page = 1           // Default page number
	pageSize = defSize // Default page size
	if p := c.Query("page"); p != "" {
		if v, err := strconv.Atoi(p); err == nil && v > 0 {
			page = v // Set page if valid
		}
	}
	// Check and set page size within limits
	if ps := c.Query("page_size"); ps != "" {
		if v, err := strconv.Atoi(ps); err == nil && v > 0 && v <= 100 {
			pageSize = v // Set page size
		}
	}
	return page, pageSize
}
