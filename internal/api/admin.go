package api

import (
	"errors"                       // Error inspection
	"lamp_catalog/internal/domain" // Account models
	"net/http"                     // HTTP status codes

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Structured logging
	"gorm.io/gorm"               // GORM ORM library
	"gorm.io/gorm/clause"        // Upsert clauses
)

// UserAdminResponse represents the user data returned to admin
type UserAdminResponse struct {
	ID       uint        `json:"id"`       // User ID
	Username string      `json:"username"` // Username
	Role     domain.Role `json:"role"`     // User role, empty without a profile
}

// RoleRequest carries the role to assign
type RoleRequest struct {
	Role domain.Role `form:"role" json:"role" binding:"required"` // New role
}

// ListUsersHandler returns a page of accounts with their roles
func ListUsersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, pageSize := pagination(c, 20)
		offset := (page - 1) * pageSize // Calculate offset for pagination
		var total int64                 // Total user count
		if err := db.Model(&domain.User{}).Count(&total).Error; err != nil {
			respondError(c, err, "Failed to count users")
			return
		}
		var users []domain.User // Slice to hold users
		// Preload Profile relation, apply offset and limit for pagination
		if err := db.Preload("Profile").Order("id").Offset(offset).Limit(pageSize).Find(&users).Error; err != nil {
			respondError(c, err, "Failed to fetch users")
			return
		}
		totalPages := (int(total) + pageSize - 1) / pageSize // Calculate total pages
		resp := make([]UserAdminResponse, len(users))
		// Map users to response format
		for i, u := range users {
			resp[i] = UserAdminResponse{ID: u.ID, Username: u.Username}
			if u.Profile != nil {
				resp[i].Role = u.Profile.Role
			}
		}
		c.JSON(http.StatusOK, gin.H{
			"users":       resp,       // List of users
			"page":        page,       // Current page
			"page_size":   pageSize,   // Page size
			"total":       total,      // Total number of users
			"total_pages": totalPages, // Total pages
		})
	}
}

// SetRoleHandler assigns a role, creating the profile when the account has none
func SetRoleHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}
		var req RoleRequest
		if err := c.ShouldBind(&req); err != nil || !req.Role.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role"})
			return
		}
		var user domain.User
		if err := db.First(&user, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
				return
			}
			respondError(c, err, "Failed to fetch user")
			return
		}
		profile := domain.UserProfile{UserID: user.ID, Role: req.Role}
		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"role"}),
		}).Create(&profile).Error
		if err != nil {
			respondError(c, err, "Failed to assign role")
			return
		}
		logrus.WithFields(logrus.Fields{
			"user_id":  user.ID,
			"role":     req.Role,
			"admin_id": c.GetUint("userID"),
		}).Info("Role assigned")
		c.JSON(http.StatusOK, UserAdminResponse{ID: user.ID, Username: user.Username, Role: req.Role})
	}
}
