// Package testutil opens throwaway stores for package tests.
package testutil

import (
	"balance_game_backend/internal/model"
	"balance_game_backend/pkg/database"
	"fmt"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// OpenDB returns a migrated in-memory SQLite database private to t, with the
// default game configuration seeded.
func OpenDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", model.GenerateUUID())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("test db handle: %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })

	if err := database.Migrate(db, model.DefaultGameConfigKey); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}
