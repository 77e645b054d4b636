// Package store persists processed lead records.
package store

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/advancify/lead-engine/internal/model"
)

// LeadFilter specifies criteria for listing archived leads.
type LeadFilter struct {
	Email    string            `json:"email,omitempty"`
	Decision model.FitDecision `json:"decision,omitempty"`
	Limit    int               `json:"limit,omitempty"`
	Offset   int               `json:"offset,omitempty"`
}

// Store defines the persistence interface for the lead pipeline. Archival is
// insert-only; records are never mutated after the write.
type Store interface {
	// ArchiveLead inserts the flattened record, assigning ID and CreatedAt.
	ArchiveLead(ctx context.Context, rec *model.LeadRecord) error

	// SeenLead reports whether a record with the given dedup key exists.
	SeenLead(ctx context.Context, dedupKey string) (bool, error)

	// ListLeads returns archived records, most recent first.
	ListLeads(ctx context.Context, filter LeadFilter) ([]model.LeadRecord, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error
}

// Open selects a store backend by driver name.
func Open(ctx context.Context, driver, dsn string, poolCfg *PoolConfig) (Store, error) {
	switch driver {
	case "postgres", "":
		return NewPostgres(ctx, dsn, poolCfg)
	case "sqlite":
		return NewSQLite(dsn)
	default:
		return nil, eris.Errorf("store: unknown driver %q", driver)
	}
}
