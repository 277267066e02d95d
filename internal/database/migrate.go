package database

import (
	"embed"
	"fmt"
	"strings"
)

//go:embed schemas/*.sql
var schemaFS embed.FS

// schemaFiles maps database names to their embedded schema files.
// Each schema is the single source of truth for that database.
var schemaFiles = map[string]string{
	"folio": "schemas/folio_schema.sql",
	"cache": "schemas/cache_schema.sql",
}

// Migrate applies the embedded schema for this database. Schemas are written
// to be idempotent (CREATE TABLE IF NOT EXISTS, INSERT OR IGNORE), so
// running Migrate on every startup is safe.
func (db *DB) Migrate() error {
	schemaFile, ok := schemaFiles[db.name]
	if !ok {
		// Unknown database name, skip migration
		return nil
	}

	content, err := schemaFS.ReadFile(schemaFile)
	if err != nil {
		return fmt.Errorf("failed to read schema %s: %w", schemaFile, err)
	}

	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction for schema %s: %w", schemaFile, err)
	}

	if _, err := tx.Exec(string(content)); err != nil {
		_ = tx.Rollback()

		// Tolerate re-applied schemas from older revisions
		errStr := err.Error()
		if strings.Contains(errStr, "duplicate column") ||
			strings.Contains(errStr, "already exists") {
			return nil
		}

		return fmt.Errorf("failed to execute schema %s for %s: %w", schemaFile, db.name, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit schema %s for %s: %w", schemaFile, db.name, err)
	}

	return nil
}
