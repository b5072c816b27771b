package model

import (
	"balance_game_backend/internal/game"
	"fmt"
)

// DefaultGameConfigKey is the key of the configuration served to players.
const DefaultGameConfigKey = "default"

// swagger:model ProgressionStep
type ProgressionStep struct {
	MaxAddends        int        `json:"max_addends"`
	TargetNumberRange game.Range `json:"target_number_range" swaggertype:"array,integer"`
}

// GameConfig is a named difficulty setting for the balance game. The
// progression path is stored and served but no component advances along it.
// swagger:model GameConfig
type GameConfig struct {
	Key                       string            `gorm:"primaryKey;size:64" json:"-"`
	Name                      string            `gorm:"size:100;not null" json:"name"`
	TargetNumberRange         game.Range        `gorm:"type:text;serializer:json" json:"target_number_range" swaggertype:"array,integer"`
	MaxAddends                int               `gorm:"not null;default:2" json:"max_addends"`
	VisualFeedbackSensitivity float64           `json:"visual_feedback_sensitivity"`
	WrongAnswerMessages       map[string]string `gorm:"type:text;serializer:json" json:"wrong_answer_messages"`
	ProgressionPath           []ProgressionStep `gorm:"type:text;serializer:json" json:"progression_path"`

	Timestamps
}

func (GameConfig) TableName() string {
	return "game_configurations"
}

// DefaultGameConfig is seeded when no configuration exists under key.
func DefaultGameConfig(key string) *GameConfig {
	return &GameConfig{
		Key:                       key,
		Name:                      "Basic Addition",
		TargetNumberRange:         game.NewRange(1, 10),
		MaxAddends:                2,
		VisualFeedbackSensitivity: 0.7,
		WrongAnswerMessages: map[string]string{
			"too_high": "Oops! Too much!",
			"too_low":  "Not enough!",
			"far_off":  "Try again!",
		},
		ProgressionPath: []ProgressionStep{
			{MaxAddends: 2, TargetNumberRange: game.NewRange(1, 10)},
			{MaxAddends: 2, TargetNumberRange: game.NewRange(5, 20)},
			{MaxAddends: 3, TargetNumberRange: game.NewRange(10, 30)},
		},
	}
}

func (c *GameConfig) Validate() error {
	if err := c.TargetNumberRange.Validate(); err != nil {
		return fmt.Errorf("target_number_range: %w", err)
	}
	if c.MaxAddends < 2 {
		return fmt.Errorf("max_addends must be at least 2, got %d", c.MaxAddends)
	}
	if c.VisualFeedbackSensitivity < 0 || c.VisualFeedbackSensitivity > 1 {
		return fmt.Errorf("visual_feedback_sensitivity must be within [0, 1], got %v", c.VisualFeedbackSensitivity)
	}
	for i, step := range c.ProgressionPath {
		if err := step.TargetNumberRange.Validate(); err != nil {
			return fmt.Errorf("progression_path[%d]: target_number_range: %w", i, err)
		}
	}
	return nil
}
