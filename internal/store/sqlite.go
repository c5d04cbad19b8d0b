package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/dmaia/casedesk/internal/model"
)

// SQLiteStore implements the Store interface using a local SQLite database.
type SQLiteStore struct {
	db *sqlx.DB
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath,
// enables WAL mode, and runs any pending schema migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	// Enable WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// runMigrations checks the current schema version and applies any
// outstanding migrations in order.
func (s *SQLiteStore) runMigrations() error {
	currentVersion := 0

	// Check if schema_version table exists.
	var tableCount int
	err := s.db.Get(
		&tableCount,
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	)
	if err != nil {
		return fmt.Errorf("checking schema_version table: %w", err)
	}

	if tableCount > 0 {
		err = s.db.Get(&currentVersion, "SELECT COALESCE(MAX(version), 0) FROM schema_version")
		if err != nil {
			return fmt.Errorf("reading schema version: %w", err)
		}
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}
		if _, err := s.db.Exec(m.sql); err != nil {
			return fmt.Errorf("applying migration v%d: %w", m.version, err)
		}
	}

	return nil
}

// UpsertContacts inserts or replaces the contact directory in one
// transaction. The session writes the whole merged directory after every
// load, so replace semantics are safe here.
func (s *SQLiteStore) UpsertContacts(ctx context.Context, contacts []model.Contact) error {
	if len(contacts) == 0 {
		return nil
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	const query = `
		INSERT OR REPLACE INTO contacts (
			id, name, phone, email, address, tax_id,
			type, status, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	stmt, err := tx.PreparexContext(ctx, query)
	if err != nil {
		return fmt.Errorf("preparing upsert statement: %w", err)
	}
	defer stmt.Close()

	for _, c := range contacts {
		_, err = stmt.ExecContext(ctx,
			c.ID, c.Name, c.Phone, c.Email, c.Address, c.TaxID,
			c.Type, c.Status, c.CreatedAt.UTC(), c.UpdatedAt.UTC(),
		)
		if err != nil {
			return fmt.Errorf("upserting contact %s: %w", c.ID, err)
		}
	}

	return tx.Commit()
}

// GetContacts retrieves the whole contact directory ordered by name.
func (s *SQLiteStore) GetContacts(ctx context.Context) ([]model.Contact, error) {
	rows, err := s.db.QueryxContext(ctx, "SELECT * FROM contacts ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("querying contacts: %w", err)
	}
	defer rows.Close()

	var contacts []model.Contact
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		contacts = append(contacts, c)
	}

	return contacts, rows.Err()
}

// UpdateContact updates an existing contact's editable fields by ID.
func (s *SQLiteStore) UpdateContact(ctx context.Context, contact model.Contact) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE contacts SET
			name = ?, phone = ?, email = ?, address = ?, tax_id = ?,
			type = ?, status = ?, updated_at = ?
		WHERE id = ?`,
		contact.Name, contact.Phone, contact.Email, contact.Address, contact.TaxID,
		contact.Type, contact.Status, time.Now().UTC(),
		contact.ID,
	)
	if err != nil {
		return fmt.Errorf("updating contact %s: %w", contact.ID, err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("contact %s not found", contact.ID)
	}
	return nil
}

// DismissAlert records an alert identifier as dismissed. Dismissing the
// same identifier twice is a no-op.
func (s *SQLiteStore) DismissAlert(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO dismissed_alerts (id, dismissed_at)
		VALUES (?, ?)`,
		id, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("dismissing alert %s: %w", id, err)
	}
	return nil
}

// GetDismissedAlertIDs returns the set of dismissed alert identifiers.
func (s *SQLiteStore) GetDismissedAlertIDs(ctx context.Context) (map[string]bool, error) {
	var ids []string
	if err := s.db.SelectContext(ctx, &ids, "SELECT id FROM dismissed_alerts"); err != nil {
		return nil, fmt.Errorf("querying dismissed alerts: %w", err)
	}

	dismissed := make(map[string]bool, len(ids))
	for _, id := range ids {
		dismissed[id] = true
	}
	return dismissed, nil
}

// scanContact scans a contact row from a sqlx.Rows result set.
func scanContact(rows *sqlx.Rows) (model.Contact, error) {
	var (
		c         model.Contact
		createdAt time.Time
		updatedAt time.Time
	)

	err := rows.Scan(
		&c.ID, &c.Name, &c.Phone, &c.Email, &c.Address, &c.TaxID,
		&c.Type, &c.Status, &createdAt, &updatedAt,
	)
	if err != nil {
		return model.Contact{}, fmt.Errorf("scanning contact row: %w", err)
	}

	c.CreatedAt = createdAt
	c.UpdatedAt = updatedAt
	return c, nil
}

// boolToInt converts a boolean to 0 or 1 for SQLite storage.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
