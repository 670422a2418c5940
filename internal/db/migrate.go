package db

import (
	"lamp_catalog/internal/domain" // Importing domain models

	"github.com/sirupsen/logrus" // Structured logging

	"gorm.io/driver/mysql" // MySQL driver for GORM
	"gorm.io/gorm"         // GORM ORM library
)

// Models lists every table managed by AutoMigrate, parents first
func Models() []any {
	return []any{
		&domain.User{},
		&domain.UserProfile{},
		&domain.LampType{},
		&domain.Lamp{},
		&domain.Cart{},
		&domain.CartItem{},
		&domain.Order{},
		&domain.OrderLine{},
	}
}

// Open opens a MySQL connection through GORM
func Open(dsn string) (*gorm.DB, error) {
	return gorm.Open(mysql.Open(dsn), &gorm.Config{TranslateError: true}) // Open a connection, mapping driver errors to gorm errors
}

// AutoMigrate creates tables, missing foreign keys, constraints, columns and indexes
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}

// Migrate performs automatic migration for the database schema
func Migrate(dsn string) {
	db, err := Open(dsn)
	if err != nil {
		logrus.Fatalf("failed to connect database: %v", err) // Log fatal error if connection fails
	}
	if err := AutoMigrate(db); err != nil {
		logrus.Fatalf("migration failed: %v", err) // Log fatal error if migration fails
	}
	logrus.Info("Migration completed.") // Log successful migration
}
