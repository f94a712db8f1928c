package database

import (
	"fmt"
	"time"

	"fittrack/backend/internal/models"
	"fittrack/backend/pkg/logger"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Connect opens the Postgres connection and returns the handle for
// injection into repositories and handlers.
func Connect(dsn, appEnv string) (*gorm.DB, error) {
	var logLevel gormlogger.LogLevel
	if appEnv == "development" {
		logLevel = gormlogger.Info
	} else {
		logLevel = gormlogger.Warn
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	logger.Info("Database connection established")
	return db, nil
}

// AutoMigrate creates or updates the schema for every model.
func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Friendship{},
		&models.FriendRequest{},
		&models.Message{},
		&models.Post{},
		&models.Comment{},
		&models.Like{},
		&models.HealthLog{},
		&models.ProgressPic{},
		&models.Notification{},
		&models.PushToken{},
	)
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	logger.Info("Database migrated successfully")
	return nil
}
