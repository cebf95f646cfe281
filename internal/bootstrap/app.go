package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"dailydiet/internal/app"
	"dailydiet/internal/cache"
	"dailydiet/internal/config"
	"dailydiet/internal/migrations"
	"dailydiet/internal/platform/database"
	rabbitmqClient "dailydiet/internal/platform/rabbitmq"
	redisClient "dailydiet/internal/platform/redis"
	"dailydiet/internal/repository"
	"dailydiet/internal/repository/memory"
	"dailydiet/internal/worker"
)

type App struct {
	Config *config.Config
	Logger *logrus.Logger

	// DB is nil for the memory driver; Redis and MQConn are nil when disabled.
	DB            *gorm.DB
	Redis         *redis.Client
	MQConn        *amqp.Connection
	MetricsWorker *worker.MetricsRefreshWorker

	AuthService    *app.AuthService
	MealService    *app.MealService
	MetricsService *app.MetricsService

	StartedAt time.Time
}

// New opens every enabled dependency, applies pending migrations and wires
// the services. On failure everything opened so far is closed again.
func New(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*App, error) {
	a := &App{
		Config:    cfg,
		Logger:    logger,
		StartedAt: time.Now(),
	}
	if err := a.init(ctx); err != nil {
		if closeErr := a.Close(); closeErr != nil {
			logger.WithError(closeErr).Warn("close partially built app failed")
		}
		return nil, err
	}
	return a, nil
}

func (a *App) init(ctx context.Context) error {
	cfg := a.Config

	var (
		users app.UserStore
		meals app.MealStore
	)
	if cfg.Database.Driver == config.DriverMemory {
		users = memory.NewUserRepository()
		meals = memory.NewMealRepository()
		a.Logger.Warn("using in-memory storage, data is lost on restart")
	} else {
		db, err := database.Open(ctx, cfg, a.Logger)
		if err != nil {
			return err
		}
		a.DB = db

		sqlDB, err := db.DB()
		if err != nil {
			return fmt.Errorf("get sql db failed: %w", err)
		}
		if err := migrations.Up(ctx, sqlDB, cfg.Database.Driver); err != nil {
			return err
		}
		users = repository.NewUserRepository(db)
		meals = repository.NewMealRepository(db)
	}

	var metricsCache app.MetricsCache
	if cfg.Redis.Enabled {
		client, err := redisClient.New(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		a.Redis = client
		metricsCache = cache.NewMetricsCache(client, time.Duration(cfg.Redis.MetricsTTLSeconds)*time.Second)
	}

	var publisher app.MealEventPublisher
	if cfg.RabbitMQ.Enabled {
		conn, err := rabbitmqClient.New(ctx, cfg.RabbitMQ.URL, cfg.RabbitMQ.MealEventsQueue)
		if err != nil {
			return err
		}
		a.MQConn = conn
		publisher = rabbitmqClient.NewMealEventPublisher(conn, cfg.RabbitMQ.MealEventsQueue)
	}

	authService, err := app.NewAuthService(
		users,
		cfg.Auth.JWTSecret,
		time.Duration(cfg.Auth.JWTExpireMinute)*time.Minute,
		cfg.Auth.BcryptCost,
	)
	if err != nil {
		return err
	}
	a.AuthService = authService
	a.MealService = app.NewMealService(meals, metricsCache, publisher, a.Logger.WithField("component", "meals"))
	a.MetricsService = app.NewMetricsService(meals, metricsCache, a.Logger.WithField("component", "metrics"))

	if a.MQConn != nil {
		w := worker.NewMetricsRefreshWorker(a.MQConn, a.MetricsService, cfg.RabbitMQ.MealEventsQueue, a.Logger)
		if err := w.Start(ctx); err != nil {
			return fmt.Errorf("start metrics refresh worker failed: %w", err)
		}
		a.MetricsWorker = w
	}
	return nil
}

func (a *App) Close() error {
	var errs []error
	if a.MetricsWorker != nil {
		a.MetricsWorker.Close()
	}
	if a.MQConn != nil && !a.MQConn.IsClosed() {
		if err := a.MQConn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close rabbitmq: %w", err))
		}
	}
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close redis: %w", err))
		}
	}
	if a.DB != nil {
		sqlDB, err := a.DB.DB()
		if err == nil {
			if err := sqlDB.Close(); err != nil {
				errs = append(errs, fmt.Errorf("close database: %w", err))
			}
		}
	}
	return errors.Join(errs...)
}
