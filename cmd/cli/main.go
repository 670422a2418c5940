package main

import (
	"fmt"                          // Console output
	"lamp_catalog/internal/access" // Account creation
	"lamp_catalog/internal/config" // Configuration
	"lamp_catalog/internal/db"     // Database connection
	"lamp_catalog/internal/domain" // Models
	"os"                           // Process arguments

	"github.com/sirupsen/logrus" // Structured logging
	"github.com/urfave/cli/v2"   // Command line parsing
	"gorm.io/gorm"               // GORM ORM library
)

// openDB connects with the configured DSN and makes sure the schema exists
func openDB() (*gorm.DB, error) {
	cfg := config.LoadConfig()
	gdb, err := db.Open(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// Ensure tables exist if running the cli before the server
	if err := db.AutoMigrate(gdb); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return gdb, nil
}

func addUser(c *cli.Context) error {
	role := domain.Role(c.String("role"))
	if !role.Valid() {
		return fmt.Errorf("unknown role %q", role)
	}
	gdb, err := openDB()
	if err != nil {
		return err
	}
	user, err := access.CreateAccount(gdb, c.String("username"), c.String("password"), role)
	if err != nil {
		return err
	}
	fmt.Printf("User '%s' created with role %s.\n", user.Username, role)
	return nil
}

// seedLampTypes fills the lamp type lookup table with the known kinds
func seedLampTypes(*cli.Context) error {
	gdb, err := openDB()
	if err != nil {
		return err
	}
	for _, kind := range domain.LampKinds {
		var existing int64
		if err := gdb.Model(&domain.LampType{}).Where("name = ?", kind.Label()).Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			continue
		}
		if err := gdb.Create(&domain.LampType{Name: kind.Label()}).Error; err != nil {
			return fmt.Errorf("seed %s: %w", kind, err)
		}
		logrus.WithField("name", kind.Label()).Info("Lamp type created")
	}
	return nil
}

func main() {
	app := &cli.App{
		Name:  "lampctl",
		Usage: "administer the lamp catalog",
		Commands: []*cli.Command{
			{
				Name:  "add-user",
				Usage: "create an account with a role",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "username", Usage: "username for the new user", Required: true},
					&cli.StringFlag{Name: "password", Usage: "password for the new user", Required: true},
					&cli.StringFlag{Name: "role", Usage: "admin, merchandiser, sales_manager or guest", Value: string(domain.RoleGuest)},
				},
				Action: addUser,
			},
			{
				Name:   "seed-lamp-types",
				Usage:  "create the default lamp types",
				Action: seedLampTypes,
			},
		},
	}
	if err := app.Run(os.Args); err != nil {
		logrus.Fatal(err)
	}
}
