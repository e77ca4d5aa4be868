package database

import "fmt"

// migrations упорядоченный список схемных миграций.
// Каждая миграция применяется ровно один раз, прогресс
// фиксируется в таблице schema_migrations.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS contacts (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		contact_name  TEXT NOT NULL,
		company_name  TEXT,
		email         TEXT,
		phone         TEXT,
		address_line1 TEXT,
		address_line2 TEXT,
		city          TEXT,
		state         TEXT,
		zip_code      TEXT,
		country       TEXT NOT NULL DEFAULT 'US',
		tax_id        TEXT,
		notes         TEXT,
		created_at    TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_contacts_email ON contacts(email)`,
	`CREATE INDEX IF NOT EXISTS idx_contacts_phone ON contacts(phone)`,
}

// migrate применяет недостающие миграции
func (db *ContactDB) migrate() error {
	db.tableCreateMutex.Lock()
	defer db.tableCreateMutex.Unlock()

	_, err := db.conn.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (
		version    INTEGER PRIMARY KEY,
		applied_at TEXT NOT NULL DEFAULT (datetime('now'))
	)`)
	if err != nil {
		return fmt.Errorf("failed to create schema_migrations: %w", err)
	}

	var current int
	if err := db.conn.QueryRow(`SELECT COALESCE(MAX(version), 0) FROM schema_migrations`).Scan(&current); err != nil {
		return fmt.Errorf("failed to read migration version: %w", err)
	}

	for i := current; i < len(migrations); i++ {
		if _, err := db.conn.Exec(migrations[i]); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
		if _, err := db.conn.Exec(`INSERT INTO schema_migrations (version) VALUES (?)`, i+1); err != nil {
			return fmt.Errorf("failed to record migration %d: %w", i+1, err)
		}
	}

	return nil
}
