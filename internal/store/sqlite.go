package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/advancify/lead-engine/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite. Used for local runs
// where no Postgres is available.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
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
	created_at       DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_leads_email ON leads(email);
CREATE INDEX IF NOT EXISTS idx_leads_dedup_key ON leads(dedup_key);
CREATE INDEX IF NOT EXISTS idx_leads_created_at ON leads(created_at);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Ping(ctx context.Context) error {
	return eris.Wrap(s.db.PingContext(ctx), "sqlite: ping")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) ArchiveLead(ctx context.Context, rec *model.LeadRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO leads
		 (id, name, email, industry, decision, confidence_score, justification, email_subject, email_body, language, dedup_key, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Name, rec.Email, string(rec.Industry), string(rec.Decision),
		rec.ConfidenceScore, rec.Justification, rec.EmailSubject, rec.EmailBody,
		string(rec.Language), rec.DedupKey, rec.CreatedAt,
	)
	return eris.Wrapf(err, "sqlite: insert lead %s", rec.Email)
}

func (s *SQLiteStore) SeenLead(ctx context.Context, dedupKey string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx,
		`SELECT 1 FROM leads WHERE dedup_key = ? LIMIT 1`,
		dedupKey,
	).Scan(&one)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, eris.Wrap(err, "sqlite: seen lead")
	}
	return true, nil
}

func (s *SQLiteStore) ListLeads(ctx context.Context, filter LeadFilter) ([]model.LeadRecord, error) {
	query := `SELECT id, name, email, industry, decision, confidence_score, justification, email_subject, email_body, language, dedup_key, created_at
	          FROM leads WHERE true`
	args := []any{}

	if filter.Email != "" {
		query += ` AND email = ?`
		args = append(args, filter.Email)
	}
	if filter.Decision != "" {
		query += ` AND decision = ?`
		args = append(args, string(filter.Decision))
	}
	query += ` ORDER BY created_at DESC`

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	query += ` LIMIT ?`
	args = append(args, limit)

	if filter.Offset > 0 {
		query += ` OFFSET ?`
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list leads")
	}
	defer rows.Close()

	var records []model.LeadRecord
	for rows.Next() {
		var r model.LeadRecord
		if err := rows.Scan(&r.ID, &r.Name, &r.Email, &r.Industry, &r.Decision,
			&r.ConfidenceScore, &r.Justification, &r.EmailSubject, &r.EmailBody,
			&r.Language, &r.DedupKey, &r.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan lead")
		}
		records = append(records, r)
	}
	return records, eris.Wrap(rows.Err(), "sqlite: list leads iterate")
}
