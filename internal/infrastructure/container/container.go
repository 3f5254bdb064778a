package container

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gdugdh24/videochat-backend/internal/config"
	"github.com/gdugdh24/videochat-backend/internal/delivery/http"
	"github.com/gdugdh24/videochat-backend/internal/delivery/http/handler"
	"github.com/gdugdh24/videochat-backend/internal/domain"
	"github.com/gdugdh24/videochat-backend/internal/infrastructure/agora"
	"github.com/gdugdh24/videochat-backend/internal/infrastructure/database"
	"github.com/gdugdh24/videochat-backend/internal/infrastructure/logger"
	"github.com/gdugdh24/videochat-backend/internal/infrastructure/server"
	"github.com/gdugdh24/videochat-backend/internal/repository"
	"github.com/gdugdh24/videochat-backend/internal/repository/memory"
	"github.com/gdugdh24/videochat-backend/internal/repository/postgres"
	redisrepo "github.com/gdugdh24/videochat-backend/internal/repository/redis"
	"github.com/gdugdh24/videochat-backend/internal/usecase/ledger"
	"github.com/gdugdh24/videochat-backend/internal/usecase/match"
	"github.com/gdugdh24/videochat-backend/internal/usecase/session"
	"github.com/gdugdh24/videochat-backend/internal/usecase/token"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	Logger *slog.Logger
	DB     *sqlx.DB
	Redis  *redis.Client
	Server *server.Server
}

// NewContainer creates a new dependency injection container
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	log := logger.New(cfg.Logging.Level, cfg.Server.Env)
	slog.SetDefault(log)

	if cfg.Server.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	if err := http.RegisterValidators(); err != nil {
		return nil, err
	}

	c := &Container{
		Config: cfg,
		Logger: log,
	}

	// Candidate directory
	var candidateRepo repository.CandidateRepository
	if cfg.Database.Enabled() {
		db, err := database.NewPostgresDB(ctx, &cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		c.DB = db
		candidateRepo = postgres.NewCandidateRepository(db)
		log.Info("using postgres candidate directory", slog.String("host", cfg.Database.Host))
	} else {
		candidateRepo = memory.NewSeededCandidateRepository()
		log.Info("using seeded in-memory candidate directory")
	}

	// Economy and settings store
	var (
		economyRepo  repository.EconomyRepository
		settingsRepo repository.SettingsRepository
	)
	if cfg.Redis.Enabled() {
		client, err := database.NewRedisClient(ctx, &cfg.Redis)
		if err != nil {
			_ = c.Close()
			return nil, fmt.Errorf("failed to initialize redis: %w", err)
		}
		c.Redis = client
		economyRepo = redisrepo.NewEconomyRepository(client)
		settingsRepo = redisrepo.NewSettingsRepository(client)
		log.Info("using redis economy store", slog.String("addr", cfg.Redis.GetAddr()))
	} else {
		economyRepo = memory.NewEconomyRepository()
		settingsRepo = memory.NewSettingsRepository()
		log.Info("using in-memory economy store")
	}

	// Initialize use cases
	costs := ledger.Costs{
		Filter: cfg.Economy.FilterCost,
		Boost:  cfg.Economy.BoostCost,
	}
	defaults := domain.UserDefaults{
		Age:    cfg.Match.DefaultUserAge,
		Gender: domain.Gender(cfg.Match.DefaultUserGender),
	}

	policy, err := match.NewPolicy(cfg.Match.Policy, cfg.Match.GlobalRoom, costs, defaults)
	if err != nil {
		_ = c.Close()
		return nil, err
	}

	selector := match.NewSelector(
		candidateRepo,
		policy,
		match.TimerDelayer{Duration: cfg.Match.Delay},
		log,
	)

	sessionUseCase := session.NewSessionUseCase(
		economyRepo,
		settingsRepo,
		selector,
		costs,
		log,
	)

	tokenUseCase := token.NewTokenUseCase(
		token.Credentials{AppID: cfg.Agora.AppID, AppCertificate: cfg.Agora.AppCertificate},
		token.Credentials{AppID: cfg.Agora.LegacyAppID, AppCertificate: cfg.Agora.LegacyAppCertificate},
		cfg.Agora.DefaultExpireSeconds,
		agora.NewTokenBuilder(),
		log,
	)

	// Initialize handlers
	sessionHandler := handler.NewSessionHandler(sessionUseCase)
	economyHandler := handler.NewEconomyHandler(sessionUseCase)
	matchHandler := handler.NewMatchHandler(sessionUseCase)
	tokenHandler := handler.NewTokenHandler(tokenUseCase)

	// Initialize router
	router := http.NewRouter(
		sessionHandler,
		economyHandler,
		matchHandler,
		tokenHandler,
	)

	// Setup routes
	ginRouter := router.Setup()

	// Initialize server
	c.Server = server.NewServer(&cfg.Server, &cfg.CORS, ginRouter, log)

	log.Info("application initialized",
		slog.String("policy", policy.Name()),
		slog.Duration("match_delay", cfg.Match.Delay),
	)

	return c, nil
}

// Close closes all connections
func (c *Container) Close() error {
	// Close Redis
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			c.Logger.Warn("error closing redis", slog.Any("error", err))
		}
	}

	// Close database
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
	}

	return nil
}
