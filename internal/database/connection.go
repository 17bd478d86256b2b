package database

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// Supported database types
const (
	TypeSQLite   = "sqlite"
	TypePostgres = "postgres"
)

// MemoryDSN opens a private in-memory SQLite database
const MemoryDSN = ":memory:"

// Options selects and locates the database
type Options struct {
	Type    string // TypeSQLite or TypePostgres
	DSN     string // postgres connection string, or sqlite path override
	DataDir string // directory holding the sqlite file when DSN is empty
}

// Connect opens the database and makes sure the schema exists
func Connect(opts Options) (*sqlx.DB, error) {
	var (
		db  *sqlx.DB
		err error
	)

	switch opts.Type {
	case TypePostgres:
		if opts.DSN == "" {
			return nil, fmt.Errorf("postgres requires a connection string")
		}
		db, err = sqlx.Connect("postgres", opts.DSN)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
	case TypeSQLite, "":
		dbPath := opts.DSN
		if dbPath == "" {
			dataDir := opts.DataDir
			if dataDir == "" {
				dataDir = "data"
			}
			// Create data directory if it doesn't exist
			if err := os.MkdirAll(dataDir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create data directory: %w", err)
			}
			dbPath = filepath.Join(dataDir, "roadmap.db")
		}
		db, err = sqlx.Connect("sqlite3", dbPath)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		// SQLite doesn't support multiple writers, and every connection to
		// :memory: would get its own database
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	default:
		return nil, fmt.Errorf("unsupported database type %q", opts.Type)
	}

	if err := initializeSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// initializeSchema creates necessary tables if they don't exist
func initializeSchema(db *sqlx.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS kv_store (
			item_key TEXT PRIMARY KEY,
			item_value TEXT NOT NULL,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create kv_store table: %w", err)
	}
	return nil
}
