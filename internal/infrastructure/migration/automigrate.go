package migration

import (
	"fmt"

	"gorm.io/gorm"

	"carelink/internal/infrastructure/persistence/models"
)

// AutoMigrateModels lists every persistence model managed by auto-migration.
func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.UserModel{},
		&models.TicketModel{},
		&models.MessageModel{},
	}
}

// Run applies schema auto-migration for all registered models.
func Run(db *gorm.DB) error {
	if err := db.AutoMigrate(AutoMigrateModels()...); err != nil {
		return fmt.Errorf("auto-migration failed: %w", err)
	}
	return nil
}
