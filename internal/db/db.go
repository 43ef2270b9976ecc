package db

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/BruksfildServices01/salon-manager/internal/config"
	"github.com/BruksfildServices01/salon-manager/internal/models"
)

// NewDB opens the pool and migrates every gateway table.
func NewDB(cfg *config.Config, logger *zap.Logger) (*gorm.DB, error) {
	level := gormlogger.Warn
	if !cfg.IsProduction() {
		level = gormlogger.Info
	}

	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
		Logger:      gormlogger.Default.LogMode(level),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(models.All()...); err != nil {
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}

	res := db.Exec(`
        UPDATE business_settings
        SET timezone = ?
        WHERE timezone IS NULL OR timezone = ''
    `, cfg.Timezone)
	if res.Error != nil {
		logger.Warn("timezone backfill failed", zap.Error(res.Error))
	}

	logger.Info("database ready", zap.Int("tables", len(models.All())))
	return db, nil
}
