package database

import (
	"fmt"

	"github.com/lumi-diary/lumi/backend/internal/models"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Migrate creates or updates the schema for every model.
func Migrate(db *gorm.DB) error {
	for _, m := range models.All() {
		if err := db.AutoMigrate(m); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", m, err)
		}
	}
	log.Info().Str("component", "database").Str("dialect", db.Dialector.Name()).Msg("schema migrated")
	return nil
}
