package api

import (
	"lamp_catalog/internal/access" // Account creation
	"lamp_catalog/internal/domain" // Account models
	"lamp_catalog/internal/utils"  // JWT helpers
	"net/http"                     // HTTP status codes
	"regexp"                       // Regular expressions
	"strings"                      // String manipulation

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Structured logging
	"golang.org/x/crypto/bcrypt" // Password hashing
	"gorm.io/gorm"               // GORM ORM library
)

// CredentialsRequest is the body of register and login
type CredentialsRequest struct {
	Username string `form:"username" json:"username" binding:"required"` // Username must be provided
	Password string `form:"password" json:"password" binding:"required"` // Password must be provided
}

// AuthResponse struct for authentication
type AuthResponse struct {
	Token string      `json:"token"` // JWT token
	Role  domain.Role `json:"role"`  // Role of the account
}

// usernamePattern allows letters, digits, dots and underscores
var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_.]{3,150}$`)

// isValidUsername checks the username against usernamePattern
func isValidUsername(username string) bool {
	return usernamePattern.MatchString(username)
}

// isValidPassword checks if the password length is between 8 and 64 characters
func isValidPassword(password string) bool {
	return len(password) >= 8 && len(password) <= 64 // bcrypt ignores bytes past 72
}

// RegisterHandler creates a guest account
func RegisterHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CredentialsRequest // Bind request to struct
		if err := c.ShouldBind(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Validate username and password
		if !isValidUsername(req.Username) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Username must be 3-150 letters, digits, dots or underscores"})
			return
		}
		if !isValidPassword(req.Password) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Password must be 8-64 characters"})
			return
		}
		var taken int64
		if err := db.Model(&domain.User{}).Where("username = ?", strings.ToLower(req.Username)).Count(&taken).Error; err != nil {
			respondError(c, err, "Failed to register user")
			return
		}
		if taken > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Username already exists"})
			return
		}
		user, err := access.CreateAccount(db, req.Username, req.Password, domain.RoleGuest)
		if err != nil {
			// A concurrent registration may still win the unique index
			c.JSON(http.StatusBadRequest, gin.H{"error": "Username already exists"})
			return
		}
		logrus.WithFields(logrus.Fields{
			"user_id":  user.ID,
			"username": user.Username,
		}).Info("User registered")
		// Return success response
		c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully", "id": user.ID})
	}
}

// LoginHandler authenticates a user and returns a JWT token
func LoginHandler(db *gorm.DB, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CredentialsRequest
		if err := c.ShouldBind(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		var user domain.User // Fetch user from database
		if err := db.Preload("Profile").Where("username = ?", strings.ToLower(req.Username)).First(&user).Error; err != nil {
			// If user not found, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		// Compare provided password with stored hash
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
			logrus.WithField("username", user.Username).Warn("Failed login")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		token, err := utils.GenerateJWT(user.ID, user.Username, jwtSecret)
		if err != nil {
			respondError(c, err, "Failed to generate token")
			return
		}
		role := domain.RoleNone
		if user.Profile != nil {
			role = user.Profile.Role
		}
		c.JSON(http.StatusOK, AuthResponse{Token: token, Role: role})
	}
}
