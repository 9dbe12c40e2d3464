// Package sqlite provides a SQLite-backed implementation of the
// storage.Storage interface using Go's standard database/sql package.
//
// Importing go-sqlite3 registers the "sqlite3" driver with database/sql;
// its error type is also used to detect duplicate subscribers.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mattn/go-sqlite3"

	"github.com/sunvista/solar-site/internal/storage"
	"github.com/sunvista/solar-site/internal/types"
)

// SQLite is the concrete implementation of storage.Storage.
// A single *sql.DB is safe for concurrent use by multiple goroutines.
type SQLite struct {
	Db *sql.DB
}

const schema = `
	CREATE TABLE IF NOT EXISTS leads (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		kind       TEXT    NOT NULL,
		name       TEXT    NOT NULL,
		email      TEXT    NOT NULL,
		phone      TEXT    NOT NULL DEFAULT '',
		zip_code   TEXT    NOT NULL DEFAULT '',
		payload    TEXT    NOT NULL,
		request_id TEXT    NOT NULL DEFAULT '',
		created_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS leads_kind_created ON leads (kind, created_at);

	CREATE TABLE IF NOT EXISTS subscribers (
		email       TEXT    PRIMARY KEY,
		source      TEXT    NOT NULL DEFAULT '',
		lead_magnet TEXT    NOT NULL DEFAULT '',
		created_at  INTEGER NOT NULL
	);
`

// New opens the SQLite database at path, creating the parent directory
// and the tables if they do not exist yet.
func New(path string) (*SQLite, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("sqlite.New: create dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: open db: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite.New: create tables: %w", err)
	}

	return &SQLite{Db: db}, nil
}

// Close releases the connection pool.
func (s *SQLite) Close() error {
	return s.Db.Close()
}

// CreateLead inserts a new row into the leads table.
func (s *SQLite) CreateLead(ctx context.Context, lead types.Lead) (int64, error) {
	if lead.CreatedAt.IsZero() {
		lead.CreatedAt = time.Now()
	}
	payload := string(lead.Payload)
	if payload == "" {
		payload = "{}"
	}

	result, err := s.Db.ExecContext(ctx,
		`INSERT INTO leads (kind, name, email, phone, zip_code, payload, request_id, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		string(lead.Kind), lead.Name, lead.Email, lead.Phone, lead.ZipCode,
		payload, lead.RequestID, lead.CreatedAt.UTC().UnixMilli(),
	)
	if err != nil {
		return 0, fmt.Errorf("CreateLead: exec: %w", err)
	}

	lastID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("CreateLead: last insert id: %w", err)
	}

	return lastID, nil
}

const leadColumns = "id, kind, name, email, phone, zip_code, payload, request_id, created_at"

type scanner interface {
	Scan(dest ...any) error
}

func scanLead(row scanner) (types.Lead, error) {
	var (
		lead      types.Lead
		kind      string
		payload   string
		createdAt int64
	)
	err := row.Scan(
		&lead.ID,
		&kind,
		&lead.Name,
		&lead.Email,
		&lead.Phone,
		&lead.ZipCode,
		&payload,
		&lead.RequestID,
		&createdAt,
	)
	if err != nil {
		return types.Lead{}, err
	}
	lead.Kind = types.LeadKind(kind)
	lead.Payload = []byte(payload)
	lead.CreatedAt = time.UnixMilli(createdAt).UTC()
	return lead, nil
}

// GetLeadByID fetches exactly one lead row matched by primary key.
func (s *SQLite) GetLeadByID(ctx context.Context, id int64) (types.Lead, error) {
	row := s.Db.QueryRowContext(ctx,
		"SELECT "+leadColumns+" FROM leads WHERE id = ? LIMIT 1", id)

	lead, err := scanLead(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Lead{}, fmt.Errorf("lead %d: %w", id, storage.ErrNotFound)
		}
		return types.Lead{}, fmt.Errorf("GetLeadByID: scan: %w", err)
	}

	return lead, nil
}

// GetLeads returns the newest leads, optionally filtered by kind.
func (s *SQLite) GetLeads(ctx context.Context, kind types.LeadKind, limit int) ([]types.Lead, error) {
	if limit <= 0 {
		limit = 50
	}

	query := "SELECT " + leadColumns + " FROM leads"
	args := []any{}
	if kind != "" {
		query += " WHERE kind = ?"
		args = append(args, string(kind))
	}
	query += " ORDER BY created_at DESC, id DESC LIMIT ?"
	args = append(args, limit)

	rows, err := s.Db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("GetLeads: query: %w", err)
	}
	defer rows.Close()

	leads := make([]types.Lead, 0)
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, fmt.Errorf("GetLeads: scan row: %w", err)
		}
		leads = append(leads, lead)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("GetLeads: rows iteration: %w", err)
	}

	return leads, nil
}

// CreateSubscriber inserts an address, reporting storage.ErrAlreadySubscribed
// when the primary key already exists.
func (s *SQLite) CreateSubscriber(ctx context.Context, sub types.Subscriber) error {
	if sub.CreatedAt.IsZero() {
		sub.CreatedAt = time.Now()
	}

	_, err := s.Db.ExecContext(ctx,
		"INSERT INTO subscribers (email, source, lead_magnet, created_at) VALUES (?, ?, ?, ?)",
		sub.Email, sub.Source, sub.LeadMagnet, sub.CreatedAt.UTC().UnixMilli(),
	)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) &&
			(sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey ||
				sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique) {
			return storage.ErrAlreadySubscribed
		}
		return fmt.Errorf("CreateSubscriber: exec: %w", err)
	}

	return nil
}

// DeleteSubscriber removes an address from the list.
func (s *SQLite) DeleteSubscriber(ctx context.Context, email string) error {
	result, err := s.Db.ExecContext(ctx, "DELETE FROM subscribers WHERE email = ?", email)
	if err != nil {
		return fmt.Errorf("DeleteSubscriber: exec: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("DeleteSubscriber: rows affected: %w", err)
	}
	if n == 0 {
		return storage.ErrNotFound
	}

	return nil
}
