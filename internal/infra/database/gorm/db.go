package gorm

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"weatherapp/pkg/resource"
)

// Connect opens a gorm session over the pgx driver using app.db.*
func Connect() (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s search_path=%s",
		resource.GetString("app.db.host"),
		resource.GetString("app.db.username"),
		resource.GetString("app.db.password"),
		resource.GetString("app.db.database"),
		resource.GetString("app.db.port"),
		resource.GetString("app.db.ssl-mode"),
		resource.GetString("app.db.schema"),
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}
	return db, nil
}
