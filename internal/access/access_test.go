package access

import (
	"testing"

	"lamp_catalog/internal/domain"
	"lamp_catalog/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func principal(role domain.Role) Principal {
	return Principal{UserID: 1, Role: role, Authenticated: true}
}

func TestAllowedMatrix(t *testing.T) {
	admin := principal(domain.RoleAdmin)
	merch := principal(domain.RoleMerchandiser)
	sales := principal(domain.RoleSalesManager)
	guest := principal(domain.RoleGuest)
	noProfile := principal(domain.RoleNone)

	cases := []struct {
		action Action
		allow  []Principal
		deny   []Principal
	}{
		{ViewCatalog, []Principal{admin, merch, sales, guest, noProfile, Anonymous}, nil},
		{EditLamp, []Principal{admin, merch}, []Principal{sales, guest, noProfile, Anonymous}},
		{ManageCart, []Principal{admin, merch, sales, guest, noProfile}, []Principal{Anonymous}},
		{CreateOrder, []Principal{admin, sales}, []Principal{merch, guest, noProfile, Anonymous}},
		{ViewOrders, []Principal{admin, sales}, []Principal{merch, guest, noProfile, Anonymous}},
		{ViewAllOrders, []Principal{admin}, []Principal{sales, merch, guest, Anonymous}},
		{MerchandiserList, []Principal{admin, merch}, []Principal{sales, guest, noProfile, Anonymous}},
		{ManageUsers, []Principal{admin}, []Principal{merch, sales, guest, Anonymous}},
		{UpdateOrderStatus, []Principal{admin}, []Principal{merch, sales, guest, Anonymous}},
	}
	for _, tc := range cases {
		t.Run(string(tc.action), func(t *testing.T) {
			for _, p := range tc.allow {
				assert.Truef(t, Allowed(p, tc.action), "role %q should be allowed", p.Role)
			}
			for _, p := range tc.deny {
				assert.Falsef(t, Allowed(p, tc.action), "role %q should be denied", p.Role)
			}
		})
	}
}

func TestCanViewOrder(t *testing.T) {
	order := domain.Order{ID: 7, SalesManagerID: 1}

	assert.True(t, CanViewOrder(Principal{UserID: 1, Role: domain.RoleSalesManager, Authenticated: true}, order))
	assert.False(t, CanViewOrder(Principal{UserID: 2, Role: domain.RoleSalesManager, Authenticated: true}, order))
	assert.True(t, CanViewOrder(Principal{UserID: 3, Role: domain.RoleAdmin, Authenticated: true}, order))
	assert.False(t, CanViewOrder(Principal{UserID: 4, Role: domain.RoleMerchandiser, Authenticated: true}, order))
	assert.False(t, CanViewOrder(Anonymous, order))

	// an account demoted after placing the order loses access
	assert.False(t, CanViewOrder(Principal{UserID: 1, Role: domain.RoleGuest, Authenticated: true}, order))
}

func TestLookupRole(t *testing.T) {
	db := testutil.OpenDB(t)
	sales := testutil.CreateUser(t, db, "sales", domain.RoleSalesManager)
	bare := testutil.CreateUser(t, db, "bare", domain.RoleNone)

	assert.Equal(t, domain.RoleSalesManager, LookupRole(db, sales.ID))
	assert.True(t, HasRole(db, sales.ID, domain.RoleSalesManager))
	assert.False(t, HasRole(db, sales.ID, domain.RoleAdmin))

	t.Run("Missing profile means no role", func(t *testing.T) {
		assert.Equal(t, domain.RoleNone, LookupRole(db, bare.ID))
		assert.False(t, HasRole(db, bare.ID, domain.RoleGuest))
		assert.False(t, HasRole(db, bare.ID, domain.RoleNone))

		p := Resolve(db, bare.ID)
		assert.True(t, p.Authenticated)
		assert.True(t, Allowed(p, ManageCart))
		assert.False(t, Allowed(p, CreateOrder))
	})

	t.Run("Unknown user", func(t *testing.T) {
		assert.Equal(t, domain.RoleNone, LookupRole(db, 9999))
	})
}

func TestCreateAccount(t *testing.T) {
	db := testutil.OpenDB(t)

	user, err := CreateAccount(db, "Manager", "s3cretpass", domain.RoleSalesManager)
	require.NoError(t, err)
	assert.Equal(t, "manager", user.Username)
	assert.NotEqual(t, "s3cretpass", user.Password)
	assert.Equal(t, domain.RoleSalesManager, LookupRole(db, user.ID))

	_, err = CreateAccount(db, "manager", "s3cretpass", domain.RoleGuest)
	assert.Error(t, err)

	_, err = CreateAccount(db, "nobody", "s3cretpass", domain.RoleNone)
	assert.ErrorIs(t, err, ErrInvalidRole)
}
