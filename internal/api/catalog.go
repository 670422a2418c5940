package api

import (
	"lamp_catalog/internal/catalog" // Lamp queries and edits
	"lamp_catalog/internal/domain"  // Lamp model
	"lamp_catalog/internal/utils"   // Cache helpers
	"net/http"                      // HTTP status codes

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Structured logging
	"gorm.io/gorm"               // GORM ORM library
)

// LampListResponse is one page of the catalog
type LampListResponse struct {
	catalog.Page
	SortFields  []string `json:"sort_fields"`  // Accepted sort_by values
	GroupFields []string `json:"group_fields"` // Accepted group_by values
	Cached      bool     `json:"cached"`       // Served from cache
}

// LampDetailResponse is a single lamp
type LampDetailResponse struct {
	Lamp   domain.Lamp `json:"lamp"`   // Lamp with its wholesale tiers
	Cached bool        `json:"cached"` // Served from cache
}

// DescriptionRequest carries a new lamp description
type DescriptionRequest struct {
	Description string `form:"description" json:"description"` // New description
}

// ListLampsHandler returns a filtered, sorted and optionally grouped page of lamps
func ListLampsHandler(db *gorm.DB, cache *utils.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		params, err := catalog.ParseListParams(c.Request.URL.Query())
		if err != nil {
			respondError(c, err, "Failed to list lamps")
			return
		}
		ctx := c.Request.Context()
		cacheKey := cache.CatalogKey(ctx, "list:"+params.CacheKey())
		var cached catalog.Page
		// If cached data found, return it
		if found, err := cache.Get(ctx, cacheKey, &cached); err == nil && found {
			c.JSON(http.StatusOK, LampListResponse{Page: cached, SortFields: catalog.SortFields, GroupFields: catalog.GroupFields, Cached: true})
			return
		}
		page, err := catalog.List(db, params)
		if err != nil {
			respondError(c, err, "Failed to list lamps")
			return
		}
		// Cache the page for future requests
		if err := cache.Set(ctx, cacheKey, page); err != nil {
			logrus.WithField("error", err.Error()).Warn("Failed to cache lamp list")
		}
		c.JSON(http.StatusOK, LampListResponse{Page: page, SortFields: catalog.SortFields, GroupFields: catalog.GroupFields})
	}
}

// GetLampHandler returns one lamp with its wholesale tiers
func GetLampHandler(db *gorm.DB, cache *utils.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}
		ctx := c.Request.Context()
		cacheKey := cache.CatalogKey(ctx, utils.LampKey(id))
		var cached domain.Lamp
		if found, err := cache.Get(ctx, cacheKey, &cached); err == nil && found {
			c.JSON(http.StatusOK, LampDetailResponse{Lamp: cached, Cached: true})
			return
		}
		lamp, err := catalog.Get(db, id)
		if err != nil {
			respondError(c, err, "Failed to fetch lamp")
			return
		}
		if err := cache.Set(ctx, cacheKey, lamp); err != nil {
			logrus.WithField("error", err.Error()).Warn("Failed to cache lamp")
		}
		c.JSON(http.StatusOK, LampDetailResponse{Lamp: lamp})
	}
}

// ListLampTypesHandler returns the lamp type lookup table
func ListLampTypesHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		types, err := catalog.ListLampTypes(db)
		if err != nil {
			respondError(c, err, "Failed to list lamp types")
			return
		}
		kinds := make([]gin.H, 0, len(domain.LampKinds))
		for _, k := range domain.LampKinds {
			kinds = append(kinds, gin.H{"value": k, "label": k.Label()})
		}
		c.JSON(http.StatusOK, gin.H{
			"lamp_types": types, // Lookup table rows
			"kinds":      kinds, // Kinds accepted by the lamp_type filter
		})
	}
}

// EditDescriptionHandler replaces the description of a lamp
func EditDescriptionHandler(db *gorm.DB, cache *utils.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}
		var req DescriptionRequest
		if err := c.ShouldBind(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		lamp, err := catalog.UpdateDescription(db, id, req.Description)
		if err != nil {
			respondError(c, err, "Failed to update description")
			return
		}
		cache.InvalidateCatalog(c.Request.Context())
		logrus.WithFields(logrus.Fields{
			"lamp_id": lamp.ID,
			"lamp":    lamp.String(),
			"user_id": c.GetUint("userID"),
		}).Info("Lamp description updated")
		c.JSON(http.StatusOK, LampDetailResponse{Lamp: lamp})
	}
}
