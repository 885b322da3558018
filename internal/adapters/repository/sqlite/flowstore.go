// Package sqlite provides a SQLite-backed flow store.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/fairlight1337/slicknxt/internal/app/dto"
	"github.com/fairlight1337/slicknxt/internal/core/flow"
	"github.com/fairlight1337/slicknxt/pkg/serialization"
)

// FlowStore persists flow descriptions as serialized blobs in SQLite.
type FlowStore struct {
	db         *sql.DB
	serializer *serialization.Serializer
	tableName  string
}

// NewFlowStore creates a flow store over an open database handle.
func NewFlowStore(db *sql.DB, serializer *serialization.Serializer) *FlowStore {
	return &FlowStore{
		db:         db,
		serializer: serializer,
		tableName:  "flows",
	}
}

// WithTableName allows overriding the default table name with validation.
// Only alphanumeric and underscore are permitted to prevent SQL injection
// via identifiers.
func (s *FlowStore) WithTableName(name string) *FlowStore {
	if isSafeIdent(name) {
		s.tableName = name
	}
	return s
}

func isSafeIdent(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '_' {
			continue
		}
		return false
	}
	return true
}

// CreateTables creates the necessary database tables.
func (s *FlowStore) CreateTables(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id TEXT PRIMARY KEY,
			description BLOB NOT NULL,
			codec TEXT NOT NULL,
			updated_at INTEGER NOT NULL
		);
	`, s.tableName)

	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}
	return nil
}

// Save stores a flow description, replacing any previous one with the same id.
func (s *FlowStore) Save(ctx context.Context, id string, d *dto.FlowDescription) error {
	if id == "" {
		return flow.ErrEmptyFlowID
	}
	if err := d.Validate(); err != nil {
		return fmt.Errorf("invalid flow description: %w", err)
	}

	data, err := s.serializer.Serialize(d)
	if err != nil {
		return fmt.Errorf("failed to serialize flow description: %w", err)
	}

	query := fmt.Sprintf(`
		INSERT OR REPLACE INTO %s (id, description, codec, updated_at)
		VALUES (?, ?, ?, ?)
	`, s.tableName)

	if _, err := s.db.ExecContext(ctx, query, id, data, "msgpack+zstd", time.Now().Unix()); err != nil {
		return fmt.Errorf("failed to save flow: %w", err)
	}
	return nil
}

// Get retrieves a flow description by id.
func (s *FlowStore) Get(ctx context.Context, id string) (*dto.FlowDescription, error) {
	if id == "" {
		return nil, flow.ErrEmptyFlowID
	}

	query := fmt.Sprintf(`SELECT description FROM %s WHERE id = ?`, s.tableName)

	var data []byte
	if err := s.db.QueryRowContext(ctx, query, id).Scan(&data); err != nil {
		if err == sql.ErrNoRows {
			return nil, flow.ErrFlowNotFound
		}
		return nil, fmt.Errorf("failed to load flow: %w", err)
	}

	var d dto.FlowDescription
	if err := s.serializer.Deserialize(data, &d); err != nil {
		return nil, fmt.Errorf("failed to deserialize flow description: %w", err)
	}
	return &d, nil
}

// List returns the stored flow ids, newest first.
func (s *FlowStore) List(ctx context.Context) ([]string, error) {
	query := fmt.Sprintf(`SELECT id FROM %s ORDER BY updated_at DESC`, s.tableName)

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list flows: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan flow row: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Delete removes a stored flow by id.
func (s *FlowStore) Delete(ctx context.Context, id string) error {
	if id == "" {
		return flow.ErrEmptyFlowID
	}

	query := fmt.Sprintf("DELETE FROM %s WHERE id = ?", s.tableName)
	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete flow: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return flow.ErrFlowNotFound
	}
	return nil
}

// Open opens (creating if needed) a SQLite database at path and returns a
// ready flow store on it.
func Open(ctx context.Context, path string, serializer *serialization.Serializer) (*FlowStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	store := NewFlowStore(db, serializer)
	if err := store.CreateTables(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

// Close releases the underlying database handle.
func (s *FlowStore) Close() error {
	return s.db.Close()
}
