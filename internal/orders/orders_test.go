package orders

import (
	"testing"

	"lamp_catalog/internal/access"
	"lamp_catalog/internal/cart"
	"lamp_catalog/internal/domain"
	"lamp_catalog/internal/testutil"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	db    *gorm.DB
	lamp  domain.Lamp
	admin access.Principal
	sales access.Principal
	merch access.Principal
	guest access.Principal
}

func setup(t *testing.T) fixture {
	db := testutil.OpenDB(t)
	principal := func(name string, role domain.Role) access.Principal {
		return access.Resolve(db, testutil.CreateUser(t, db, name, role).ID)
	}
	return fixture{
		db:    db,
		lamp:  testutil.CreateLamp(t, db, testutil.TieredLamp("TEST001")),
		admin: principal("admin", domain.RoleAdmin),
		sales: principal("sales", domain.RoleSalesManager),
		merch: principal("merch", domain.RoleMerchandiser),
		guest: principal("guest", domain.RoleGuest),
	}
}

func (f fixture) fill(t *testing.T, p access.Principal, quantity uint) domain.Cart {
	t.Helper()
	_, err := cart.AddItem(f.db, p.UserID, f.lamp.ID, quantity)
	require.NoError(t, err)
	c, err := cart.Load(f.db, p.UserID)
	require.NoError(t, err)
	return c
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.Truef(t, decimal.RequireFromString(want).Equal(got), "want %s, got %s", want, got)
}

func TestCreateOrder(t *testing.T) {
	f := setup(t)
	old := f.fill(t, f.sales, 100)

	order, err := CreateOrder(f.db, f.sales, Options{Snapshot: true})
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusPending, order.Status)
	assert.Equal(t, f.sales.UserID, order.SalesManagerID)
	assert.NotEmpty(t, order.Reference)
	assert.Nil(t, order.CartID)
	require.Len(t, order.Lines, 1)
	assertDecimal(t, "800", order.Lines[0].UnitPrice)

	t.Run("Old cart is gone and a fresh one exists", func(t *testing.T) {
		var count int64
		require.NoError(t, f.db.Model(&domain.Cart{}).Where("id = ?", old.ID).Count(&count).Error)
		assert.Zero(t, count)
		require.NoError(t, f.db.Model(&domain.CartItem{}).Where("cart_id = ?", old.ID).Count(&count).Error)
		assert.Zero(t, count)

		fresh, err := cart.Load(f.db, f.sales.UserID)
		require.NoError(t, err)
		assert.NotEqual(t, old.ID, fresh.ID)
		assert.Empty(t, fresh.Items)
	})

	t.Run("Snapshot keeps the total", func(t *testing.T) {
		view, err := Get(f.db, f.sales, order.ID)
		require.NoError(t, err)
		assertDecimal(t, "80000", view.Subtotal)
		assertDecimal(t, "76000", view.Total)
	})

	t.Run("Later price changes do not affect the order", func(t *testing.T) {
		require.NoError(t, f.db.Model(&domain.Lamp{}).Where("id = ?", f.lamp.ID).
			Update("large_wholesale_price", decimal.RequireFromString("1.00")).Error)
		view, err := Get(f.db, f.admin, order.ID)
		require.NoError(t, err)
		assertDecimal(t, "76000", view.Total)
	})
}

func TestCreateOrderLegacyModeLosesTotals(t *testing.T) {
	f := setup(t)
	f.fill(t, f.sales, 5)

	order, err := CreateOrder(f.db, f.sales, Options{Snapshot: false})
	require.NoError(t, err)
	assert.Empty(t, order.Lines)

	view, err := Get(f.db, f.sales, order.ID)
	require.NoError(t, err)
	assert.True(t, view.Total.IsZero())
	assert.Empty(t, view.Priced)
}

func TestCreateOrderPreconditions(t *testing.T) {
	f := setup(t)

	t.Run("Empty cart", func(t *testing.T) {
		_, err := CreateOrder(f.db, f.sales, Options{Snapshot: true})
		assert.ErrorIs(t, err, ErrEmptyCart)

		var count int64
		require.NoError(t, f.db.Model(&domain.Order{}).Count(&count).Error)
		assert.Zero(t, count)
	})

	for _, p := range []access.Principal{f.merch, f.guest, access.Anonymous} {
		t.Run("Denied for "+string(p.Role), func(t *testing.T) {
			var before domain.Cart
			if p.Authenticated {
				before = f.fill(t, p, 5)
			}
			_, err := CreateOrder(f.db, p, Options{Snapshot: true})
			assert.ErrorIs(t, err, access.ErrPermissionDenied)

			if p.Authenticated {
				after, err := cart.Load(f.db, p.UserID)
				require.NoError(t, err)
				assert.Equal(t, before.ID, after.ID)
				assert.Len(t, after.Items, 1)
			}
		})
	}

	t.Run("Admin may check out", func(t *testing.T) {
		f.fill(t, f.admin, 1)
		_, err := CreateOrder(f.db, f.admin, Options{Snapshot: true})
		assert.NoError(t, err)
	})
}

func TestOrderVisibility(t *testing.T) {
	f := setup(t)
	other := access.Resolve(f.db, testutil.CreateUser(t, f.db, "other", domain.RoleSalesManager).ID)

	f.fill(t, f.sales, 1)
	mine, err := CreateOrder(f.db, f.sales, Options{Snapshot: true})
	require.NoError(t, err)
	f.fill(t, other, 2)
	theirs, err := CreateOrder(f.db, other, Options{Snapshot: true})
	require.NoError(t, err)

	t.Run("Detail", func(t *testing.T) {
		_, err := Get(f.db, f.sales, mine.ID)
		assert.NoError(t, err)
		_, err = Get(f.db, other, mine.ID)
		assert.ErrorIs(t, err, access.ErrPermissionDenied)
		_, err = Get(f.db, f.admin, mine.ID)
		assert.NoError(t, err)
		_, err = Get(f.db, f.merch, mine.ID)
		assert.ErrorIs(t, err, access.ErrPermissionDenied)
		_, err = Get(f.db, f.admin, 9999)
		assert.ErrorIs(t, err, ErrOrderNotFound)
	})

	t.Run("List", func(t *testing.T) {
		all, err := List(f.db, f.admin)
		require.NoError(t, err)
		assert.Len(t, all, 2)

		own, err := List(f.db, f.sales)
		require.NoError(t, err)
		require.Len(t, own, 1)
		assert.Equal(t, mine.ID, own[0].ID)

		own, err = List(f.db, other)
		require.NoError(t, err)
		require.Len(t, own, 1)
		assert.Equal(t, theirs.ID, own[0].ID)

		_, err = List(f.db, f.merch)
		assert.ErrorIs(t, err, access.ErrPermissionDenied)
		_, err = List(f.db, f.guest)
		assert.ErrorIs(t, err, access.ErrPermissionDenied)
	})
}

func TestTransition(t *testing.T) {
	f := setup(t)
	f.fill(t, f.sales, 1)
	order, err := CreateOrder(f.db, f.sales, Options{Snapshot: true})
	require.NoError(t, err)

	_, err = Transition(f.db, f.sales, order.ID, domain.OrderStatusProcessing)
	assert.ErrorIs(t, err, access.ErrPermissionDenied)

	_, err = Transition(f.db, f.admin, order.ID, domain.OrderStatusShipped)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	for _, next := range []domain.OrderStatus{domain.OrderStatusProcessing, domain.OrderStatusShipped, domain.OrderStatusDelivered} {
		updated, err := Transition(f.db, f.admin, order.ID, next)
		require.NoError(t, err)
		assert.Equal(t, next, updated.Status)
	}

	_, err = Transition(f.db, f.admin, order.ID, domain.OrderStatusCancelled)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(domain.OrderStatusPending, domain.OrderStatusProcessing))
	assert.True(t, CanTransition(domain.OrderStatusPending, domain.OrderStatusCancelled))
	assert.True(t, CanTransition(domain.OrderStatusShipped, domain.OrderStatusCancelled))
	assert.False(t, CanTransition(domain.OrderStatusPending, domain.OrderStatusDelivered))
	assert.False(t, CanTransition(domain.OrderStatusCancelled, domain.OrderStatusPending))
	assert.True(t, IsTerminal(domain.OrderStatusDelivered))
	assert.True(t, IsTerminal(domain.OrderStatusCancelled))
	assert.False(t, IsTerminal(domain.OrderStatusProcessing))
}
