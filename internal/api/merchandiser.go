package api

import (
	"bytes"                         // Workbook buffer
	"lamp_catalog/internal/catalog" // Lamp queries and edits
	"lamp_catalog/internal/reports" // Workbook rendering
	"lamp_catalog/internal/utils"   // Cache helpers
	"net/http"                      // HTTP status codes

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Structured logging
	"gorm.io/gorm"               // GORM ORM library
)

// xlsxContentType is the MIME type of an Excel workbook
const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// MerchandiserProductsHandler lists every lamp, newest first
func MerchandiserProductsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		lamps, err := catalog.ListForMerchandiser(db)
		if err != nil {
			respondError(c, err, "Failed to list products")
			return
		}
		c.JSON(http.StatusOK, gin.H{"lamps": lamps, "total": len(lamps)})
	}
}

// MerchandiserEditHandler updates any lamp field from form values.
// Numbers that fail to parse keep their stored value and are listed in ignored_fields.
func MerchandiserEditHandler(db *gorm.DB, cache *utils.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}
		if err := c.Request.ParseForm(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid form"})
			return
		}
		lamp, err := catalog.Get(db, id)
		if err != nil {
			respondError(c, err, "Failed to fetch lamp")
			return
		}
		ignored := catalog.ApplyForm(&lamp, c.Request.PostForm)
		if err := catalog.Save(db, &lamp); err != nil {
			respondError(c, err, "Failed to save lamp")
			return
		}
		cache.InvalidateCatalog(c.Request.Context())
		logrus.WithFields(logrus.Fields{
			"lamp_id": lamp.ID,
			"lamp":    lamp.String(),
			"user_id": c.GetUint("userID"),
			"ignored": ignored,
		}).Info("Lamp updated")
		if ignored == nil {
			ignored = []string{}
		}
		c.JSON(http.StatusOK, gin.H{"lamp": lamp, "ignored_fields": ignored})
	}
}

// ExportProductsHandler downloads the product list as an xlsx workbook
func ExportProductsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		lamps, err := catalog.ListForMerchandiser(db)
		if err != nil {
			respondError(c, err, "Failed to list products")
			return
		}
		var buf bytes.Buffer
		if err := reports.WriteProducts(&buf, lamps); err != nil {
			respondError(c, err, "Failed to write Excel file")
			return
		}
		// Set response headers for download
		c.Header("Content-Disposition", "attachment; filename=products.xlsx")
		c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
	}
}
