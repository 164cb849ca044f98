// api/db/db.go
package db

import (
	"fmt"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	logger "github.com/sagelms/sage/api/logging"
	"github.com/sagelms/sage/api/model"
)

var DB *gorm.DB

func InitPostgres() error {
	dsn := viper.GetString("database.dsn")

	var err error
	// TranslateError must stay on: the DAOs match gorm.ErrDuplicatedKey to
	// report duplicate emails and enrollments as conflicts.
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return fmt.Errorf("failed to connect to Postgres: %w", err)
	}

	if err := DB.AutoMigrate(
		&model.User{},
		&model.Course{},
		&model.Lecture{},
		&model.Enrollment{},
		&model.Assignment{},
		&model.AssignmentSubmission{},
		&model.ChatInteraction{},
	); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info("Successfully connected to Postgres")
	return nil
}

func ClosePostgres() {
	if DB == nil {
		return
	}
	sqlDB, err := DB.DB()
	if err != nil {
		logger.Error("Error fetching underlying sql.DB", zap.Error(err))
		return
	}
	if err := sqlDB.Close(); err != nil {
		logger.Error("Error closing Postgres connection", zap.Error(err))
	}
}
