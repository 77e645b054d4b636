package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/advancify/lead-engine/internal/db"
	"github.com/advancify/lead-engine/internal/model"
)

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool    db.Pool
	closeFn func()
}

// PoolConfig holds optional connection pool tuning parameters.
type PoolConfig struct {
	MaxConns int32 `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns int32 `yaml:"min_conns" mapstructure:"min_conns"`
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string, poolCfg *PoolConfig) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	maxConns := int32(10)
	minConns := int32(2)
	if poolCfg != nil {
		if poolCfg.MaxConns > 0 {
			maxConns = poolCfg.MaxConns
		}
		if poolCfg.MinConns > 0 {
			minConns = poolCfg.MinConns
		}
	}
	pgxCfg.MaxConns = maxConns
	pgxCfg.MinConns = minConns
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool, closeFn: pool.Close}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS leads (
	id               TEXT PRIMARY KEY,
	name             TEXT NOT NULL,
	email            TEXT NOT NULL,
	industry         TEXT NOT NULL,
	decision         TEXT NOT NULL,
	confidence_score INTEGER NOT NULL,
	justification    TEXT NOT NULL,
	email_subject    TEXT NOT NULL DEFAULT '',
	email_body       TEXT NOT NULL DEFAULT '',
	language         TEXT NOT NULL DEFAULT 'English',
	dedup_key        TEXT NOT NULL,
	created_at       TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_leads_email ON leads(email);
CREATE INDEX IF NOT EXISTS idx_leads_dedup_key ON leads(dedup_key);
CREATE INDEX IF NOT EXISTS idx_leads_created_at ON leads(created_at DESC);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, "SELECT 1")
	return eris.Wrap(err, "postgres: ping")
}

func (s *PostgresStore) Close() error {
	if s.closeFn != nil {
		s.closeFn()
	}
	return nil
}

func (s *PostgresStore) ArchiveLead(ctx context.Context, rec *model.LeadRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	_, err := s.pool.Exec(ctx,
		`INSERT INTO leads
		 (id, name, email, industry, decision, confidence_score, justification, email_subject, email_body, language, dedup_key, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		rec.ID, rec.Name, rec.Email, string(rec.Industry), string(rec.Decision),
		rec.ConfidenceScore, rec.Justification, rec.EmailSubject, rec.EmailBody,
		string(rec.Language), rec.DedupKey, rec.CreatedAt,
	)
	return eris.Wrapf(err, "postgres: insert lead %s", rec.Email)
}

func (s *PostgresStore) SeenLead(ctx context.Context, dedupKey string) (bool, error) {
	var one int
	err := s.pool.QueryRow(ctx,
		`SELECT 1 FROM leads WHERE dedup_key = $1 LIMIT 1`,
		dedupKey,
	).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, eris.Wrap(err, "postgres: seen lead")
	}
	return true, nil
}

func (s *PostgresStore) ListLeads(ctx context.Context, filter LeadFilter) ([]model.LeadRecord, error) {
	query := `SELECT id, name, email, industry, decision, confidence_score, justification, email_subject, email_body, language, dedup_key, created_at
	          FROM leads WHERE true`
	args := []any{}
	argIdx := 1

	if filter.Email != "" {
		query += fmt.Sprintf(` AND email = $%d`, argIdx)
		args = append(args, filter.Email)
		argIdx++
	}
	if filter.Decision != "" {
		query += fmt.Sprintf(` AND decision = $%d`, argIdx)
		args = append(args, string(filter.Decision))
		argIdx++
	}
	query += ` ORDER BY created_at DESC`

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	query += fmt.Sprintf(` LIMIT $%d`, argIdx)
	args = append(args, limit)
	argIdx++

	if filter.Offset > 0 {
		query += fmt.Sprintf(` OFFSET $%d`, argIdx)
		args = append(args, filter.Offset)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list leads")
	}
	defer rows.Close()

	var records []model.LeadRecord
	for rows.Next() {
		var r model.LeadRecord
		if err := rows.Scan(&r.ID, &r.Name, &r.Email, &r.Industry, &r.Decision,
			&r.ConfidenceScore, &r.Justification, &r.EmailSubject, &r.EmailBody,
			&r.Language, &r.DedupKey, &r.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "postgres: scan lead")
		}
		records = append(records, r)
	}
	return records, eris.Wrap(rows.Err(), "postgres: list leads iterate")
}
