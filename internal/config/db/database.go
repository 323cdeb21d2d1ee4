package db

import (
	"fmt"
	"log/slog"

	"github.com/luxserv365/concierge/internal/config"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		config.DbHost,
		config.DbPort,
		config.DbUser,
		config.DbPassword,
		config.DbName,
		config.DbSSLMode,
	)
}

func Init() error {
	gormDB, err := gorm.Open(postgres.Open(DSN()), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	DB = gormDB
	slog.Info("database connected", "host", config.DbHost, "name", config.DbName)
	return nil
}

func InitWithGormDB(gormDB *gorm.DB) {
	DB = gormDB
}
