// Package postgres provides a PostgreSQL-backed flow store.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fairlight1337/slicknxt/internal/app/dto"
	"github.com/fairlight1337/slicknxt/internal/core/flow"
	"github.com/fairlight1337/slicknxt/pkg/serialization"
)

// FlowStore persists flow descriptions as serialized blobs in PostgreSQL.
type FlowStore struct {
	pool       *pgxpool.Pool
	serializer *serialization.Serializer
	tableName  string
}

// NewFlowStore creates a flow store over a connection pool.
func NewFlowStore(pool *pgxpool.Pool, serializer *serialization.Serializer) *FlowStore {
	return &FlowStore{
		pool:       pool,
		serializer: serializer,
		tableName:  "flows",
	}
}

// CreateTables creates the necessary database tables.
func (s *FlowStore) CreateTables(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id TEXT PRIMARY KEY,
			description BYTEA NOT NULL,
			codec TEXT NOT NULL,
			updated_at BIGINT NOT NULL
		)
	`, s.tableName)

	if _, err := s.pool.Exec(ctx, query); err != nil {
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
		INSERT INTO %s (id, description, codec, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE
		SET description = EXCLUDED.description,
		    codec = EXCLUDED.codec,
		    updated_at = EXCLUDED.updated_at
	`, s.tableName)

	if _, err := s.pool.Exec(ctx, query, id, data, "msgpack+zstd", time.Now().Unix()); err != nil {
		return fmt.Errorf("failed to save flow: %w", err)
	}
	return nil
}

// Get retrieves a flow description by id.
func (s *FlowStore) Get(ctx context.Context, id string) (*dto.FlowDescription, error) {
	if id == "" {
		return nil, flow.ErrEmptyFlowID
	}

	query := fmt.Sprintf(`SELECT description FROM %s WHERE id = $1`, s.tableName)

	var data []byte
	if err := s.pool.QueryRow(ctx, query, id).Scan(&data); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
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

	rows, err := s.pool.Query(ctx, query)
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

	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, s.tableName)
	tag, err := s.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete flow: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return flow.ErrFlowNotFound
	}
	return nil
}
