package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/weiwangfds/studyhub/config"
	"github.com/weiwangfds/studyhub/internal/logger"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// sqlite连接参数：WAL模式、外键约束和忙等待
const sqliteParams = "_journal_mode=WAL&_synchronous=NORMAL&_foreign_keys=1&_busy_timeout=5000"

// Init 初始化数据库连接并迁移表结构
func Init(cfg config.DatabaseConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch cfg.Driver {
	case "sqlite", "":
		dsn := cfg.DSN
		if strings.Contains(dsn, "?") {
			dsn += "&" + sqliteParams
		} else {
			dsn += "?" + sqliteParams
		}
		dialector = sqlite.Open(dsn)
	case "postgres":
		dialector = postgres.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: newGormLogger(cfg.LogLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// SQLite只允许单连接写入，内存库也依赖同一连接保持数据
	if cfg.Driver == "sqlite" || cfg.Driver == "" {
		sqlDB.SetMaxIdleConns(1)
		sqlDB.SetMaxOpenConns(1)
	} else {
		if cfg.MaxIdleConns > 0 {
			sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
		}
		if cfg.MaxOpenConns > 0 {
			sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
		}
	}
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Second)

	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to auto migrate: %w", err)
	}

	if cfg.Seed {
		if err := SeedDemoData(db); err != nil {
			return nil, fmt.Errorf("failed to seed data: %w", err)
		}
	}

	logger.WithField("driver", dialector.Name()).Info("Database initialized")
	return db, nil
}

// Ping 检查数据库连接是否可用
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close 关闭底层连接池
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// newGormLogger 将GORM日志输出到logrus
func newGormLogger(level string) gormlogger.Interface {
	var lv gormlogger.LogLevel
	switch strings.ToLower(level) {
	case "silent":
		lv = gormlogger.Silent
	case "error":
		lv = gormlogger.Error
	case "info":
		lv = gormlogger.Info
	default:
		lv = gormlogger.Warn
	}

	return gormlogger.New(logger.GetLogger(), gormlogger.Config{
		SlowThreshold:             500 * time.Millisecond,
		LogLevel:                  lv,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}
