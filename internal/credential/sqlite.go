package credential

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS credentials (
	id         TEXT PRIMARY KEY,
	type       TEXT NOT NULL,
	key        TEXT NOT NULL,
	created_at INTEGER NOT NULL,
	updated_at INTEGER NOT NULL
);
`

// SQLiteStore is a Store backed by a local SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the database at dbPath and ensures the
// schema exists.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Get(ctx context.Context, id string) (*Credential, error) {
	query := `
		SELECT id, type, key, created_at, updated_at
		FROM credentials
		WHERE id = ?
	`

	var cred Credential
	var keyBlob string
	var createdAt, updatedAt int64

	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&cred.ID,
		&cred.Type,
		&keyBlob,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(keyBlob), &cred.Key); err != nil {
		return nil, fmt.Errorf("failed to decode credential key: %w", err)
	}
	cred.CreatedAt = time.Unix(createdAt, 0)
	cred.UpdatedAt = time.Unix(updatedAt, 0)

	return &cred, nil
}

func (s *SQLiteStore) Create(ctx context.Context, cred *Credential) error {
	if cred.ID == "" {
		cred.ID = uuid.NewString()
	}
	now := time.Now()
	if cred.CreatedAt.IsZero() {
		cred.CreatedAt = now
	}
	cred.UpdatedAt = now

	keyBlob, err := json.Marshal(cred.Key)
	if err != nil {
		return fmt.Errorf("failed to encode credential key: %w", err)
	}

	query := `
		INSERT INTO credentials (id, type, key, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`
	_, err = s.db.ExecContext(ctx, query,
		cred.ID,
		cred.Type,
		string(keyBlob),
		cred.CreatedAt.Unix(),
		cred.UpdatedAt.Unix(),
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return ErrAlreadyExists
		}
		return err
	}

	return nil
}

func (s *SQLiteStore) Update(ctx context.Context, id string, key Key) error {
	keyBlob, err := json.Marshal(key)
	if err != nil {
		return fmt.Errorf("failed to encode credential key: %w", err)
	}

	query := `
		UPDATE credentials
		SET key = ?, updated_at = ?
		WHERE id = ?
	`
	result, err := s.db.ExecContext(ctx, query, string(keyBlob), time.Now().Unix(), id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

func (s *SQLiteStore) List(ctx context.Context) ([]Credential, error) {
	query := `
		SELECT id, type, key, created_at, updated_at
		FROM credentials
		ORDER BY created_at
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	creds := []Credential{}
	for rows.Next() {
		var cred Credential
		var keyBlob string
		var createdAt, updatedAt int64
		if err := rows.Scan(&cred.ID, &cred.Type, &keyBlob, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(keyBlob), &cred.Key); err != nil {
			return nil, fmt.Errorf("failed to decode credential key: %w", err)
		}
		cred.CreatedAt = time.Unix(createdAt, 0)
		cred.UpdatedAt = time.Unix(updatedAt, 0)
		creds = append(creds, cred)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return creds, nil
}

func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM credentials WHERE id = ?`, id)
	return err
}

func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed") ||
		strings.Contains(err.Error(), "UNIQUE")
}
