package scheduler

import (
	"balance_game_backend/pkg/logger"
	"context"
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"
)

// Warmer refreshes a cache from its backing store.
type Warmer interface {
	WarmCache(ctx context.Context) error
}

// Scheduler runs background jobs for the server.
type Scheduler struct {
	scheduler *gocron.Scheduler
	warmer    Warmer
	timeout   time.Duration
}

func New(warmer Warmer) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		warmer:    warmer,
		timeout:   10 * time.Second,
	}
}

// Start schedules the cache warm-up every interval, first run immediately.
// A non-positive interval schedules nothing.
func (s *Scheduler) Start(interval time.Duration) error {
	if interval > 0 {
		if _, err := s.scheduler.Every(interval).SingletonMode().Do(s.warm); err != nil {
			return err
		}
	}
	s.scheduler.StartAsync()
	return nil
}

func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

func (s *Scheduler) warm() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if err := s.warmer.WarmCache(ctx); err != nil {
		logger.Log.Warn("Game configuration cache warm-up failed", zap.Error(err))
		return
	}
	logger.Log.Debug("Game configuration cache warmed")
}
