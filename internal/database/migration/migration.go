package migration

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"newsapi/internal/config"
)

type migrationStep struct {
	Name string
	SQL  string
}

// dialect groups the schema statements and the sentinel query of one engine.
type dialect struct {
	sentinel string
	steps    []migrationStep
}

var dialects = map[string]dialect{
	config.DriverPostgres: {
		sentinel: "SELECT to_regclass('public.news') IS NOT NULL",
		steps: []migrationStep{
			{
				Name: "create_table_news",
				SQL: `CREATE TABLE IF NOT EXISTS news (
  id          BIGSERIAL   PRIMARY KEY,
  title       TEXT        NOT NULL,
  content     TEXT        NOT NULL,
  author      TEXT        NOT NULL,
  category    TEXT        NOT NULL,
  image_data  BYTEA,
  image_mime  TEXT,
  image_key   TEXT,
  created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
  CONSTRAINT news_image_pair CHECK ((image_mime IS NULL) = (image_data IS NULL AND image_key IS NULL))
);`,
			},
			{
				Name: "create_index_news_created_at",
				SQL:  `CREATE INDEX IF NOT EXISTS idx_news_created_at ON news (created_at DESC, id DESC);`,
			},
			{
				Name: "create_index_news_category",
				SQL:  `CREATE INDEX IF NOT EXISTS idx_news_category ON news (category);`,
			},
		},
	},
	config.DriverSQLite: {
		sentinel: "SELECT EXISTS (SELECT 1 FROM sqlite_master WHERE type = 'table' AND name = 'news')",
		steps: []migrationStep{
			{
				Name: "create_table_news",
				SQL: `CREATE TABLE IF NOT EXISTS news (
  id          INTEGER  PRIMARY KEY AUTOINCREMENT,
  title       TEXT     NOT NULL,
  content     TEXT     NOT NULL,
  author      TEXT     NOT NULL,
  category    TEXT     NOT NULL,
  image_data  BLOB,
  image_mime  TEXT,
  image_key   TEXT,
  created_at  DATETIME NOT NULL,
  updated_at  DATETIME NOT NULL,
  CHECK ((image_mime IS NULL) = (image_data IS NULL AND image_key IS NULL))
);`,
			},
			{
				Name: "create_index_news_created_at",
				SQL:  `CREATE INDEX IF NOT EXISTS idx_news_created_at ON news (created_at DESC, id DESC);`,
			},
			{
				Name: "create_index_news_category",
				SQL:  `CREATE INDEX IF NOT EXISTS idx_news_category ON news (category);`,
			},
		},
	},
}

// EnsureMigrated checks if the 'news' table exists and runs migrations if it doesn't.
func EnsureMigrated(ctx context.Context, db *sql.DB, driver string, logger *slog.Logger, dbHost string) error {
	d, ok := dialects[driver]
	if !ok {
		return fmt.Errorf("no migrations for driver %q", driver)
	}

	start := time.Now()
	log := logger.With("component", "database", "db_host", dbHost)

	log.Info("db_migration_check", "status", "starting")

	var exists bool
	if err := db.QueryRowContext(ctx, d.sentinel).Scan(&exists); err != nil {
		log.Error("db_migration_failed",
			"status", "error",
			"error_message", fmt.Sprintf("failed to check sentinel table: %v", err),
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		log.Info("db_migration_skip",
			"status", "success",
			"detail", "schema already exists, skipping migration",
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return nil
	}

	log.Info("db_migration_start", "status", "in_progress")

	for _, step := range d.steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			log.Error("db_migration_failed",
				"status", "error",
				"migration_step", step.Name,
				"error_message", err.Error(),
				"duration_ms", time.Since(start).Milliseconds(),
				"step_duration_ms", time.Since(stepStart).Milliseconds(),
			)
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		log.Info("db_migration_step",
			"status", "success",
			"migration_step", step.Name,
			"step_duration_ms", time.Since(stepStart).Milliseconds(),
		)
	}

	log.Info("db_migration_success",
		"status", "success",
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return nil
}
