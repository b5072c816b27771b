package database

import (
	"balance_game_backend/internal/config"
	"balance_game_backend/internal/model"
	"balance_game_backend/pkg/logger"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig, mode string) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	logLevel := gormlogger.Warn
	if mode == "debug" {
		logLevel = gormlogger.Info
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, err
	}

	logger.Log.Info("Database connection established", zap.String("host", cfg.Host), zap.String("db", cfg.DBName))
	return db, nil
}

// Migrate creates the schema and seeds the game configuration stored under
// configKey when it does not exist yet.
func Migrate(db *gorm.DB, configKey string) error {
	if err := db.AutoMigrate(
		&model.User{},
		&model.GameConfig{},
	); err != nil {
		return err
	}
	logger.Log.Info("Database migration completed")

	return SeedGameConfig(db, configKey)
}

func SeedGameConfig(db *gorm.DB, configKey string) error {
	var existing model.GameConfig
	err := db.Where(&model.GameConfig{Key: configKey}).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if err := db.Create(model.DefaultGameConfig(configKey)).Error; err != nil {
		return err
	}
	logger.Log.Info("Seeded default game configuration", zap.String("key", configKey))
	return nil
}
