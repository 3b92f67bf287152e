package cli

import (
	"context"
	"database/sql"
	"fmt"

	"resume-ats/internal/reports"
	"resume-ats/internal/shared/storage/db"
)

// openHistory opens (creating when needed) the sqlite history file at path
// and migrates it to the latest schema.
func openHistory(ctx context.Context, path string) (*reports.SQLRepo, *sql.DB, error) {
	sqlDB, dialect, err := db.Connect(ctx, "sqlite://"+path, db.DefaultMigrateOptions())
	if err != nil {
		return nil, nil, fmt.Errorf("open history %s: %w", path, err)
	}
	if err := db.RunMigrations(ctx, sqlDB, dialect); err != nil {
		_ = sqlDB.Close()
		return nil, nil, fmt.Errorf("migrate history %s: %w", path, err)
	}
	return &reports.SQLRepo{DB: sqlDB, Dialect: dialect}, sqlDB, nil
}
