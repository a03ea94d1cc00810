// Package storage persists leads behind a read-all / write-all interface.
package storage

import (
	"context"

	"lead-capture/pkg/models"
)

// Store defines whole-collection access to persisted leads.
// WriteAll replaces everything previously stored; order is preserved.
type Store interface {
	ReadAll(ctx context.Context) ([]models.Lead, error)
	WriteAll(ctx context.Context, leads []models.Lead) error
}
