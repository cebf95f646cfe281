package database

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"dailydiet/internal/config"
	"dailydiet/internal/platform/mysql"
	"dailydiet/internal/platform/postgres"
)

// Open connects to the configured SQL database. The memory driver has no
// connection and is rejected here.
func Open(ctx context.Context, cfg *config.Config, log *logrus.Logger) (*gorm.DB, error) {
	gormCfg := GormConfig(log)
	switch cfg.Database.Driver {
	case config.DriverMySQL:
		return mysql.New(ctx, cfg.DatabaseDSN(), gormCfg)
	case config.DriverPostgres:
		return postgres.New(ctx, cfg.DatabaseDSN(), gormCfg)
	default:
		return nil, fmt.Errorf("database driver %q has no sql connection", cfg.Database.Driver)
	}
}

// GormConfig routes GORM's slow-query and error logging through logrus.
func GormConfig(log *logrus.Logger) *gorm.Config {
	return &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
		Logger: gormlogger.New(log, gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	}
}
