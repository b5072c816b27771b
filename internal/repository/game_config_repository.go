package repository

import (
	"balance_game_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GameConfigRepository struct {
	DB *gorm.DB
}

func NewGameConfigRepository(db *gorm.DB) *GameConfigRepository {
	return &GameConfigRepository{DB: db}
}

func (r *GameConfigRepository) FindByKey(key string) (*model.GameConfig, error) {
	var cfg model.GameConfig
	err := r.DB.Where(&model.GameConfig{Key: key}).First(&cfg).Error
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save inserts cfg or replaces the configuration stored under its key.
func (r *GameConfigRepository) Save(cfg *model.GameConfig) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		UpdateAll: true,
	}).Create(cfg).Error
}
