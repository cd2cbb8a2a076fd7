package repository

import (
	"database/sql"

	_ "github.com/lib/pq"
)

// NewPostgresDB creates and initializes a PostgreSQL database connection
func NewPostgresDB(connStr string) (*sql.DB, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	// Create tables
	if err := createPostgresTables(db); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

func createPostgresTables(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS families (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		owner_id TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_families_owner_id ON families(owner_id);

	CREATE TABLE IF NOT EXISTS family_members (
		id TEXT PRIMARY KEY,
		family_id TEXT NOT NULL REFERENCES families(id) ON DELETE CASCADE,
		user_id TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT 'member',
		created_at TIMESTAMP NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMP NOT NULL DEFAULT NOW(),
		UNIQUE(family_id, user_id)
	);

	CREATE INDEX IF NOT EXISTS idx_family_members_family_id ON family_members(family_id);
	CREATE INDEX IF NOT EXISTS idx_family_members_user_id ON family_members(user_id);

	CREATE TABLE IF NOT EXISTS lists (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		name TEXT NOT NULL,
		family_id TEXT REFERENCES families(id) ON DELETE SET NULL,
		created_at TIMESTAMP NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMP NOT NULL DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_lists_user_id ON lists(user_id);
	CREATE INDEX IF NOT EXISTS idx_lists_family_id ON lists(family_id);

	CREATE TABLE IF NOT EXISTS items (
		id TEXT PRIMARY KEY,
		list_id TEXT NOT NULL REFERENCES lists(id) ON DELETE CASCADE,
		name TEXT NOT NULL,
		estimated_price DOUBLE PRECISION,
		quantity INTEGER NOT NULL DEFAULT 1,
		completed BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMP NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMP NOT NULL DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_items_list_id ON items(list_id);

	CREATE TABLE IF NOT EXISTS list_shares (
		id TEXT PRIMARY KEY,
		list_id TEXT NOT NULL REFERENCES lists(id) ON DELETE CASCADE,
		user_id TEXT NOT NULL,
		can_edit BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMP NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMP NOT NULL DEFAULT NOW(),
		UNIQUE(list_id, user_id)
	);

	CREATE INDEX IF NOT EXISTS idx_list_shares_list_id ON list_shares(list_id);
	CREATE INDEX IF NOT EXISTS idx_list_shares_user_id ON list_shares(user_id);
	`

	_, err := db.Exec(schema)
	return err
}
