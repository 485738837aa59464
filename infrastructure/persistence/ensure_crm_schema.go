package persistence

import (
	"database/sql"
	"fmt"

	"creedava-api/infrastructure/logger"
)

// EnsureLeadSchema creates the leads table if it does not exist (PostgreSQL).
func EnsureLeadSchema(db *sql.DB) error {
	ddl := `CREATE TABLE IF NOT EXISTS leads (
        id BIGSERIAL PRIMARY KEY,
        name TEXT NOT NULL,
        email TEXT NOT NULL,
        phone TEXT,
        company TEXT,
        message TEXT,
        source TEXT,
        status TEXT NOT NULL DEFAULT 'new',
        created_at TIMESTAMPTZ NOT NULL,
        updated_at TIMESTAMPTZ NOT NULL
    )`
	if _, err := db.Exec(ddl); err != nil {
		return fmt.Errorf("create leads table: %w", err)
	}
	if _, err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_leads_status ON leads(status)`); err != nil {
		logger.GetLogger().WithField("error", err).Warn("failed creating idx_leads_status")
	}
	return nil
}

// EnsureSocialPostSchema creates the social_posts table if it does not exist (PostgreSQL).
func EnsureSocialPostSchema(db *sql.DB) error {
	ddl := `CREATE TABLE IF NOT EXISTS social_posts (
        id BIGSERIAL PRIMARY KEY,
        organization_id TEXT NOT NULL,
        body TEXT NOT NULL,
        scheduled_at TIMESTAMPTZ NOT NULL,
        status TEXT NOT NULL DEFAULT 'scheduled',
        external_ref TEXT,
        error_message TEXT,
        attempt_count INT NOT NULL DEFAULT 0,
        published_at TIMESTAMPTZ,
        created_at TIMESTAMPTZ NOT NULL,
        updated_at TIMESTAMPTZ NOT NULL
    )`
	if _, err := db.Exec(ddl); err != nil {
		return fmt.Errorf("create social_posts table: %w", err)
	}
	if _, err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_social_posts_due ON social_posts(status, scheduled_at)`); err != nil {
		logger.GetLogger().WithField("error", err).Warn("failed creating idx_social_posts_due")
	}
	return nil
}
