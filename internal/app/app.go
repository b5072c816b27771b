package app

import (
	"balance_game_backend/internal/config"
	"balance_game_backend/internal/controller"
	"balance_game_backend/internal/game"
	"balance_game_backend/internal/repository"
	"balance_game_backend/internal/service"
	"balance_game_backend/pkg/configwatcher"
	"balance_game_backend/pkg/database"
	"balance_game_backend/pkg/logger"
	"balance_game_backend/pkg/monitoring"
	"balance_game_backend/pkg/scheduler"
	"balance_game_backend/pkg/security"
	"balance_game_backend/pkg/tracing"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client

	services        *services
	configCache     *repository.GameConfigCache
	limiter         *security.RateLimiter
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user       *repository.UserRepository
	gameConfig *repository.GameConfigRepository
}

type services struct {
	auth *service.AuthService
	user *service.UserService
	game *service.GameService
}

type controllers struct {
	auth    *controller.AuthController
	user    *controller.UserController
	game    *controller.GameController
	teacher *controller.TeacherController
	health  *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:       repository.NewUserRepository(db),
		gameConfig: repository.NewGameConfigRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config) *services {
	s := &services{}

	s.auth = service.NewAuthService(repos.user, cfg)
	s.user = service.NewUserService(repos.user)

	// A nil *GameConfigCache must not become a non-nil interface.
	var cache service.GameConfigCacher
	if a.configCache != nil {
		cache = a.configCache
	}
	s.game = service.NewGameService(repos.gameConfig, cache, repos.user, game.NewGenerator(cfg.Game.Seed), cfg.Game.ConfigKey)

	return s
}

func (a *App) initControllers(s *services) *controllers {
	return &controllers{
		auth:    controller.NewAuthController(s.auth),
		user:    controller.NewUserController(s.user),
		game:    controller.NewGameController(s.game),
		teacher: controller.NewTeacherController(s.user),
		health:  controller.NewHealthController(a.DB, a.Redis),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(a.limiter.Middleware())

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// applyConfig re-applies the settings that can change without a restart.
func (a *App) applyConfig(cfg *config.Config) {
	logger.SetLevel(cfg)
	a.limiter.Update(cfg.RateLimit.MaxRequests, cfg.RateLimit.Window())
	if a.configCache != nil {
		a.configCache.SetTTL(cfg.Game.CacheTTL())
	}
	logger.Log.Info("Applied reloaded config",
		zap.String("log_level", logger.Level().String()),
		zap.Int("rate_limit", cfg.RateLimit.MaxRequests),
		zap.Duration("cache_ttl", cfg.Game.CacheTTL()),
	)
}

// NewApp connects to the database and cache and builds the HTTP app. A cache
// that cannot be reached is logged and left out.
func NewApp(cfg *config.Config, migrate bool) (*App, error) {
	logger.InitLogger(cfg)
	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database, cfg.Server.Mode)
	if err != nil {
		return nil, fmt.Errorf("initialize database: %w", err)
	}

	if migrate {
		if err := database.Migrate(db, cfg.Game.ConfigKey); err != nil {
			return nil, fmt.Errorf("migrate database: %w", err)
		}
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Warn("Redis unavailable, serving game configuration without cache", zap.Error(err))
		rdb = nil
	}

	return Build(cfg, db, rdb), nil
}

// Build wires the app on top of open connections. rdb may be nil.
func Build(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *App {
	app := &App{
		Config:  cfg,
		DB:      db,
		Redis:   rdb,
		limiter: security.NewRateLimiter(cfg.RateLimit.MaxRequests, cfg.RateLimit.Window()),
	}
	if rdb != nil {
		app.configCache = repository.NewGameConfigCache(rdb, cfg.Game.CacheTTL())
	}

	repos := app.initRepositories(db)
	app.services = app.initServices(repos, cfg)
	controllers := app.initControllers(app.services)

	monitoring.Init()

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	app.Router = router

	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, controllers, cfg)

	app.RegisterConfigCallback(app.applyConfig)

	return app
}

func (a *App) notifyConfig(cfg *config.Config) {
	for _, cb := range a.configCallbacks {
		cb(cfg)
	}
}

// Run serves HTTP with the background jobs until SIGINT or SIGTERM.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if a.Config.Tracing.Enabled {
		tp, err := tracing.InitTracer(tracing.ServiceName, a.Config.Tracing.CollectorEndpoint)
		if err != nil {
			return fmt.Errorf("initialize tracing: %w", err)
		}
		defer func() {
			if err := tp.Shutdown(context.Background()); err != nil {
				logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
			}
		}()
	}

	jobs := scheduler.New(a.services.game)
	warmEvery := a.Config.Game.WarmInterval()
	if a.configCache == nil {
		warmEvery = 0
	}
	if err := jobs.Start(warmEvery); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}
	defer jobs.Stop()

	go a.limiter.Cleanup(ctx)

	if a.Config.File != "" {
		go func() {
			if err := configwatcher.Watch(ctx, a.Config.File, configwatcher.DefaultDebounce, a.notifyConfig); err != nil {
				logger.Log.Error("Config watcher stopped", zap.Error(err))
			}
		}()
	}

	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}
	logger.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	if a.Redis != nil {
		a.Redis.Close()
	}
	logger.Log.Info("Server exiting")
	return nil
}
