package domain

// Role drives every authorization decision
type Role string

// Known roles. RoleNone stands for an account without a profile
const (
	RoleNone         Role = ""
	RoleAdmin        Role = "admin"
	RoleMerchandiser Role = "merchandiser"
	RoleSalesManager Role = "sales_manager"
	RoleGuest        Role = "guest"
)

// Valid reports whether r is an assignable role
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleMerchandiser, RoleSalesManager, RoleGuest:
		return true
	}
	return false
}

// User Model (account)
type User struct {
	ID       uint         `gorm:"primaryKey" json:"id"`                                  // Primary key
	Username string       `gorm:"size:150;unique;not null" json:"username"`              // Unique username
	Password string       `gorm:"not null" json:"-"`                                     // Hashed password
	Profile  *UserProfile `gorm:"constraint:OnDelete:CASCADE;" json:"profile,omitempty"` // One-to-one profile
}

// UserProfile Model, one per account
type UserProfile struct {
	ID     uint `gorm:"primaryKey" json:"id"`                       // Primary key
	UserID uint `gorm:"uniqueIndex" json:"user_id"`                 // Foreign key to User
	Role   Role `gorm:"size:20;not null;default:guest" json:"role"` // Role of the account
}
