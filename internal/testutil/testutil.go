// Package testutil provides fixtures shared by package tests.
package testutil

import (
	"testing"

	"lamp_catalog/internal/db"
	"lamp_catalog/internal/domain"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenDB returns a migrated in-memory SQLite database private to the test
func OpenDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	// every connection to :memory: is a separate database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(gdb))
	return gdb
}

// CreateUser stores an account, with a profile unless role is RoleNone
func CreateUser(t *testing.T, gdb *gorm.DB, username string, role domain.Role) domain.User {
	t.Helper()
	user := domain.User{Username: username, Password: "x"}
	require.NoError(t, gdb.Create(&user).Error)
	if role != domain.RoleNone {
		require.NoError(t, gdb.Create(&domain.UserProfile{UserID: user.ID, Role: role}).Error)
	}
	return user
}

// Uint returns a pointer to v
func Uint(v uint) *uint { return &v }

// TieredLamp is a lamp priced 1000, 900 from 5 units and 800 from 10 units
func TieredLamp(article string) domain.Lamp {
	return domain.Lamp{
		Article:                article,
		Brand:                  "Test Brand",
		HasDimmer:              true,
		PowerWatts:             60,
		HeightCM:               Uint(30),
		Color:                  "White",
		LampType:               domain.KindTable,
		Price:                  decimal.RequireFromString("1000.00"),
		SmallWholesalePrice:    decimal.NewNullDecimal(decimal.RequireFromString("900.00")),
		SmallWholesaleQuantity: Uint(5),
		LargeWholesalePrice:    decimal.NewNullDecimal(decimal.RequireFromString("800.00")),
		LargeWholesaleQuantity: Uint(10),
	}
}

// CreateLamp stores lamp and returns it with its ID set
func CreateLamp(t *testing.T, gdb *gorm.DB, lamp domain.Lamp) domain.Lamp {
	t.Helper()
	require.NoError(t, gdb.Create(&lamp).Error)
	return lamp
}
