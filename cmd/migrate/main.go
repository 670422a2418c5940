package main

import (
	"lamp_catalog/internal/config" // Custom import path (Config)
	"lamp_catalog/internal/db"     // Custom import path (Database)

	"github.com/sirupsen/logrus" // Structured logging
)

// Main entry point for migration
func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	cfg := config.LoadConfig() // Load configuration
	db.Migrate(cfg.DSN())
}
