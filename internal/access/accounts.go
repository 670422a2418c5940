package access

import (
	"errors"
	"fmt"
	"strings"

	"lamp_catalog/internal/domain"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ErrInvalidRole is returned when assigning a role outside the known set
var ErrInvalidRole = errors.New("invalid role")

// CreateAccount stores a user with a bcrypt password hash and a profile
// holding role. Usernames are stored lowercase.
func CreateAccount(db *gorm.DB, username, password string, role domain.Role) (domain.User, error) {
	if !role.Valid() {
		return domain.User{}, ErrInvalidRole
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}
	user := domain.User{Username: strings.ToLower(username), Password: string(hash)}
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		profile := domain.UserProfile{UserID: user.ID, Role: role}
		if err := tx.Create(&profile).Error; err != nil {
			return err
		}
		user.Profile = &profile
		return nil
	})
	if err != nil {
		return domain.User{}, fmt.Errorf("create user %s: %w", user.Username, err)
	}
	return user, nil
}
