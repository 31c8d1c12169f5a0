package helpers

import (
	"testing"

	"gorm.io/gorm"

	"github.com/lvaldes/statecraft/internal/infrastructure/database"
)

// NewTestDB creates a fresh in-memory SQLite database with the full schema
// migrated. Each call returns an isolated database.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.NewTestConnection()
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	t.Cleanup(func() {
		_ = database.Close(db)
	})

	return db
}
