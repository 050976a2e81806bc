package sqlc

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"

	_ "github.com/lib/pq"

	"weatherapp/pkg/resource"
)

//go:embed schema.sql
var schema string

// DSN builds the lib/pq connection string from app.db.*
func DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s search_path=%s",
		resource.GetString("app.db.host"),
		resource.GetString("app.db.port"),
		resource.GetString("app.db.username"),
		resource.GetString("app.db.password"),
		resource.GetString("app.db.database"),
		resource.GetString("app.db.ssl-mode"),
		resource.GetString("app.db.schema"),
	)
}

// Connect opens the pool and checks it with a ping
func Connect(ctx context.Context) (*sql.DB, error) {
	db, err := sql.Open("postgres", DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open DB: %w", err)
	}

	if err = db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping DB: %w", err)
	}
	return db, nil
}

// Migrate creates the location_queries table when missing
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
