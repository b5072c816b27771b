package service

import (
	"balance_game_backend/internal/game"
	"balance_game_backend/internal/model"
	"balance_game_backend/internal/repository"
	"balance_game_backend/internal/util"
	"balance_game_backend/pkg/logger"
	"balance_game_backend/pkg/monitoring"
	"balance_game_backend/pkg/tracing"
	"context"
	"errors"
	"fmt"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type GameConfigStore interface {
	FindByKey(key string) (*model.GameConfig, error)
	Save(cfg *model.GameConfig) error
}

type GameConfigCacher interface {
	Get(ctx context.Context, key string) (*model.GameConfig, error)
	Set(ctx context.Context, cfg *model.GameConfig) error
}

type ProgressStore interface {
	UpdateProgress(id string, apply func(user *model.User)) (*model.User, error)
}

type GameService struct {
	Configs   GameConfigStore
	Cache     GameConfigCacher
	Users     ProgressStore
	Generator *game.Generator
	ConfigKey string
}

// NewGameService wires the game flow. cache may be nil.
func NewGameService(configs GameConfigStore, cache GameConfigCacher, users ProgressStore, generator *game.Generator, configKey string) *GameService {
	return &GameService{
		Configs:   configs,
		Cache:     cache,
		Users:     users,
		Generator: generator,
		ConfigKey: configKey,
	}
}

// GetConfig returns the served game configuration, seeding the default one
// when the store has none.
func (s *GameService) GetConfig(ctx context.Context) (*model.GameConfig, error) {
	if cfg, ok := s.cached(ctx); ok {
		return cfg, nil
	}

	cfg, err := s.Configs.FindByKey(s.ConfigKey)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cfg = model.DefaultGameConfig(s.ConfigKey)
		if err := s.Configs.Save(cfg); err != nil {
			return nil, fmt.Errorf("seed game configuration %q: %w", s.ConfigKey, err)
		}
		logger.Log.Info("Seeded missing game configuration", zap.String("key", s.ConfigKey))
	} else if err != nil {
		return nil, fmt.Errorf("load game configuration %q: %w", s.ConfigKey, err)
	}

	if s.Cache != nil {
		if err := s.Cache.Set(ctx, cfg); err != nil {
			logger.Log.Warn("Failed to cache game configuration", zap.String("key", s.ConfigKey), zap.Error(err))
		}
	}
	return cfg, nil
}

func (s *GameService) cached(ctx context.Context) (*model.GameConfig, bool) {
	if s.Cache == nil {
		return nil, false
	}

	cfg, err := s.Cache.Get(ctx, s.ConfigKey)
	switch {
	case err == nil:
		monitoring.ConfigCacheLookups.WithLabelValues("hit").Inc()
		return cfg, true
	case errors.Is(err, repository.ErrCacheMiss):
		monitoring.ConfigCacheLookups.WithLabelValues("miss").Inc()
	default:
		monitoring.ConfigCacheLookups.WithLabelValues("error").Inc()
		logger.Log.Warn("Game configuration cache unavailable", zap.Error(err))
	}
	return nil, false
}

// WarmCache reloads the configuration from the store into the cache.
func (s *GameService) WarmCache(ctx context.Context) error {
	if s.Cache == nil {
		return nil
	}
	cfg, err := s.Configs.FindByKey(s.ConfigKey)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %q", util.ErrConfigNotFound, s.ConfigKey)
	}
	if err != nil {
		return fmt.Errorf("load game configuration %q: %w", s.ConfigKey, err)
	}
	return s.Cache.Set(ctx, cfg)
}

func (s *GameService) GenerateProblem(ctx context.Context) (*model.Problem, error) {
	ctx, span := tracing.Tracer.Start(ctx, "GameService.GenerateProblem")
	defer span.End()

	cfg, err := s.GetConfig(ctx)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrInvalidConfig, err)
	}

	p := s.Generator.Generate(cfg.TargetNumberRange)
	monitoring.ObserveProblem(p.Fallback)
	if p.Fallback {
		logger.Log.Warn("Target range too narrow, built pairs from target",
			zap.String("config", cfg.Key),
			zap.Stringer("range", cfg.TargetNumberRange),
			zap.Int("target", p.Target),
		)
	}

	return &model.Problem{
		ID:      ulid.Make().String(),
		Target:  p.Target,
		Options: p.Options,
	}, nil
}

// SubmitAnswer scores a submission and records the outcome on the player.
func (s *GameService) SubmitAnswer(ctx context.Context, sub *model.AnswerSubmission) (*model.AnswerResponse, error) {
	_, span := tracing.Tracer.Start(ctx, "GameService.SubmitAnswer")
	defer span.End()

	correct := game.CheckAnswer(sub.UserAnswer, sub.CorrectAnswer)

	var before, after game.Progress
	user, err := s.Users.UpdateProgress(sub.UserID, func(u *model.User) {
		before = u.Progress()
		after = game.ApplyOutcome(before, correct)
		u.SetProgress(after)
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("record answer for user %s: %w", sub.UserID, err)
	}

	gained := game.LevelsGained(before, after)
	monitoring.ObserveAnswer(correct, gained)
	if gained > 0 {
		logger.Log.Info("Player levelled up",
			zap.String("user", user.ID),
			zap.Int("level", after.Level),
			zap.Int("xp", after.XP),
		)
	}

	message := model.WrongAnswerMessage
	if correct {
		message = model.CorrectAnswerMessage
	}

	return &model.AnswerResponse{
		Correct: correct,
		User:    user,
		Message: message,
	}, nil
}
