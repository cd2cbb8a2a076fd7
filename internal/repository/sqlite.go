package repository

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

// NewSQLiteDB creates and initializes a SQLite database
func NewSQLiteDB(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, err
	}

	// Create tables
	if err := createTables(db); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

func createTables(db *sql.DB) error {
	schema := `
	-- Families table
	CREATE TABLE IF NOT EXISTS families (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		owner_id TEXT NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_families_owner_id ON families(owner_id);

	-- Family members (one owner row per family)
	CREATE TABLE IF NOT EXISTS family_members (
		id TEXT PRIMARY KEY,
		family_id TEXT NOT NULL REFERENCES families(id) ON DELETE CASCADE,
		user_id TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT 'member',
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(family_id, user_id)
	);

	CREATE INDEX IF NOT EXISTS idx_family_members_family_id ON family_members(family_id);
	CREATE INDEX IF NOT EXISTS idx_family_members_user_id ON family_members(user_id);

	-- Lists table
	CREATE TABLE IF NOT EXISTS lists (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		name TEXT NOT NULL,
		family_id TEXT REFERENCES families(id) ON DELETE SET NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_lists_user_id ON lists(user_id);
	CREATE INDEX IF NOT EXISTS idx_lists_family_id ON lists(family_id);

	-- Items table
	CREATE TABLE IF NOT EXISTS items (
		id TEXT PRIMARY KEY,
		list_id TEXT NOT NULL REFERENCES lists(id) ON DELETE CASCADE,
		name TEXT NOT NULL,
		estimated_price REAL,
		quantity INTEGER NOT NULL DEFAULT 1,
		completed INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_items_list_id ON items(list_id);

	-- List shares (one row per list/user pair)
	CREATE TABLE IF NOT EXISTS list_shares (
		id TEXT PRIMARY KEY,
		list_id TEXT NOT NULL REFERENCES lists(id) ON DELETE CASCADE,
		user_id TEXT NOT NULL,
		can_edit INTEGER NOT NULL DEFAULT 1,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(list_id, user_id)
	);

	CREATE INDEX IF NOT EXISTS idx_list_shares_list_id ON list_shares(list_id);
	CREATE INDEX IF NOT EXISTS idx_list_shares_user_id ON list_shares(user_id);
	`

	_, err := db.Exec(schema)
	return err
}
