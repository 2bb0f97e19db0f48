package initializers

import (
	"fmt"
	"os"

	"github.com/foodway/foodway-api/models"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// ConnectToDB opens the MySQL connection described by the DSN environment
// variable. The handle is passed to controllers at startup rather than held
// in a package-level singleton.
func ConnectToDB() (*gorm.DB, error) {
	dsn := os.Getenv("DSN")
	if dsn == "" {
		return nil, fmt.Errorf("DSN environment variable is not set")
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

func SyncDatabase(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Seller{},
		&models.Food{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Rating{},
		&models.Promotion{},
	)
	if err != nil {
		return fmt.Errorf("failed to sync database: %w", err)
	}
	log.Info().Msg("Database synced successfully.")
	return nil
}
