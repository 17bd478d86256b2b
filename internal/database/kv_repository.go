package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// Item is one row of the key-value table
type Item struct {
	Key       string    `db:"item_key"`
	Value     string    `db:"item_value"`
	UpdatedAt time.Time `db:"updated_at"`
}

// KVRepository handles database operations for the key-value table.
// It implements storage.Backend.
type KVRepository struct {
	db *sqlx.DB
}

// NewKVRepository creates a new repository instance
func NewKVRepository(db *sqlx.DB) *KVRepository {
	return &KVRepository{db: db}
}

// GetItem returns the value stored under key
func (r *KVRepository) GetItem(ctx context.Context, key string) (string, bool, error) {
	var value string
	query := r.db.Rebind("SELECT item_value FROM kv_store WHERE item_key = ?")
	err := r.db.GetContext(ctx, &value, query, key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get item: %w", err)
	}
	return value, true, nil
}

// SetItem creates or replaces the value stored under key
func (r *KVRepository) SetItem(ctx context.Context, key, value string) error {
	// Both SQLite and PostgreSQL accept this upsert form
	query := r.db.Rebind(`
		INSERT INTO kv_store (item_key, item_value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (item_key) DO UPDATE SET
			item_value = excluded.item_value,
			updated_at = CURRENT_TIMESTAMP
	`)
	if _, err := r.db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("failed to set item: %w", err)
	}
	return nil
}

// RemoveItem deletes the value stored under key
func (r *KVRepository) RemoveItem(ctx context.Context, key string) error {
	query := r.db.Rebind("DELETE FROM kv_store WHERE item_key = ?")
	if _, err := r.db.ExecContext(ctx, query, key); err != nil {
		return fmt.Errorf("failed to remove item: %w", err)
	}
	return nil
}

// Get returns the full row stored under key
func (r *KVRepository) Get(ctx context.Context, key string) (*Item, error) {
	var item Item
	query := r.db.Rebind("SELECT item_key, item_value, updated_at FROM kv_store WHERE item_key = ?")
	err := r.db.GetContext(ctx, &item, query, key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	return &item, nil
}
