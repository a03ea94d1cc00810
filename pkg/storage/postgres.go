package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"lead-capture/pkg/models"
)

const createLeadsTable = `
CREATE TABLE IF NOT EXISTS leads (
	seq               BIGSERIAL PRIMARY KEY,
	id                TEXT NOT NULL UNIQUE,
	email             TEXT NOT NULL,
	consent           BOOLEAN NOT NULL,
	consent_timestamp TEXT NOT NULL,
	user_agent        TEXT NOT NULL DEFAULT '',
	ip_hash           TEXT,
	collected_at      TEXT NOT NULL
)`

const selectLeads = `
SELECT id, email, consent, consent_timestamp, user_agent, ip_hash, collected_at
FROM leads
ORDER BY seq`

const insertLead = `
INSERT INTO leads (id, email, consent, consent_timestamp, user_agent, ip_hash, collected_at)
VALUES (:id, :email, :consent, :consent_timestamp, :user_agent, :ip_hash, :collected_at)`

// PostgresStore keeps leads in a Postgres table. WriteAll swaps the
// table contents inside one transaction.
type PostgresStore struct {
	db *sqlx.DB
}

// NewPostgresStore connects to dsn and ensures the leads table exists
func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	db, err := sqlx.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := db.ExecContext(ctx, createLeadsTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create leads table: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) ReadAll(ctx context.Context) ([]models.Lead, error) {
	leads := []models.Lead{}
	if err := s.db.SelectContext(ctx, &leads, selectLeads); err != nil {
		return nil, fmt.Errorf("failed to select leads: %w", err)
	}
	return leads, nil
}

func (s *PostgresStore) WriteAll(ctx context.Context, leads []models.Lead) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM leads"); err != nil {
		return fmt.Errorf("failed to clear leads: %w", err)
	}
	for _, lead := range leads {
		if _, err := tx.NamedExecContext(ctx, insertLead, lead); err != nil {
			return fmt.Errorf("failed to insert lead %s: %w", lead.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit leads: %w", err)
	}
	return nil
}

// Close closes the database connection
func (s *PostgresStore) Close() error {
	return s.db.Close()
}
