// Package access holds the role permission matrix and role lookup.
package access

import (
	"errors"

	"lamp_catalog/internal/domain"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ErrPermissionDenied is returned when a principal may not perform an action
var ErrPermissionDenied = errors.New("permission denied")

// Action is something a principal may be allowed to do
type Action string

// Actions guarded by the permission matrix
const (
	ViewCatalog       Action = "view_catalog"
	EditLamp          Action = "edit_lamp"
	ManageCart        Action = "manage_cart"
	CreateOrder       Action = "create_order"
	ViewOrders        Action = "view_orders"
	ViewAllOrders     Action = "view_all_orders"
	MerchandiserList  Action = "merchandiser_list"
	ManageUsers       Action = "manage_users"
	UpdateOrderStatus Action = "update_order_status"
)

// Principal is the caller of a request
type Principal struct {
	UserID        uint
	Role          domain.Role
	Authenticated bool
}

// Anonymous is the principal of a request without a valid token
var Anonymous = Principal{}

var matrix = map[Action]map[domain.Role]bool{
	EditLamp:          {domain.RoleAdmin: true, domain.RoleMerchandiser: true},
	CreateOrder:       {domain.RoleAdmin: true, domain.RoleSalesManager: true},
	ViewOrders:        {domain.RoleAdmin: true, domain.RoleSalesManager: true},
	ViewAllOrders:     {domain.RoleAdmin: true},
	MerchandiserList:  {domain.RoleAdmin: true, domain.RoleMerchandiser: true},
	ManageUsers:       {domain.RoleAdmin: true},
	UpdateOrderStatus: {domain.RoleAdmin: true},
}

// Allowed reports whether p may perform action.
// The catalog is public and the cart only needs a logged in account;
// everything else is decided by role.
func Allowed(p Principal, action Action) bool {
	switch action {
	case ViewCatalog:
		return true
	case ManageCart:
		return p.Authenticated
	}
	if !p.Authenticated {
		return false
	}
	return matrix[action][p.Role]
}

// CanViewOrder reports whether p may open order: its sales manager or an admin.
func CanViewOrder(p Principal, order domain.Order) bool {
	if !p.Authenticated {
		return false
	}
	return p.Role == domain.RoleAdmin || (Allowed(p, ViewOrders) && order.SalesManagerID == p.UserID)
}

// LookupRole returns the role stored in the user's profile.
// A missing profile or a failed lookup yields RoleNone.
func LookupRole(db *gorm.DB, userID uint) domain.Role {
	var profile domain.UserProfile
	err := db.Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logrus.WithFields(logrus.Fields{
				"user_id": userID,
				"error":   err.Error(),
			}).Warn("Role lookup failed")
		}
		return domain.RoleNone
	}
	return profile.Role
}

// HasRole reports whether the user holds role
func HasRole(db *gorm.DB, userID uint, role domain.Role) bool {
	return role != domain.RoleNone && LookupRole(db, userID) == role
}

// Resolve builds the principal for an authenticated user
func Resolve(db *gorm.DB, userID uint) Principal {
	return Principal{UserID: userID, Role: LookupRole(db, userID), Authenticated: true}
}
