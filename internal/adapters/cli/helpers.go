package cli

import (
	"encoding/json"
	"fmt"

	"gorm.io/gorm"

	"github.com/lvaldes/statecraft/internal/infrastructure/config"
	"github.com/lvaldes/statecraft/internal/infrastructure/database"
)

// openDatabase loads configuration and opens the configured database,
// migrating the schema so fresh files work without a separate step
func openDatabase() (*gorm.DB, *config.Config, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		return nil, nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return db, cfg, nil
}

// printJSON renders a value as indented JSON on stdout
func printJSON(v interface{}) error {
	bytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to render output: %w", err)
	}
	fmt.Println(string(bytes))
	return nil
}
