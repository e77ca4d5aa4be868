// Package database хранит канонические записи контактов в sqlite.
// База — источник "существующих" записей для межбатчевой дедупликации
// и место, куда коммитятся уникальные записи после подтверждения
// оператором. Сам пайплайн к базе не обращается.
package database

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"importserver/normalization"
)

// DBConfig конфигурация подключения к БД
type DBConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// DefaultDBConfig возвращает настройки пула по умолчанию
func DefaultDBConfig() DBConfig {
	return DBConfig{
		MaxOpenConns:    10,
		MaxIdleConns:    5,
		ConnMaxLifetime: 5 * time.Minute,
	}
}

// ContactDB обертка для работы с базой контактов
type ContactDB struct {
	conn             *sql.DB
	tableCreateMutex sync.Mutex // защита от гонки при создании таблиц
}

// NewContactDB открывает (при необходимости создает) базу контактов
// и применяет миграции
func NewContactDB(dbPath string, config DBConfig) (*ContactDB, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	conn, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	conn.SetMaxOpenConns(config.MaxOpenConns)
	conn.SetMaxIdleConns(config.MaxIdleConns)
	conn.SetConnMaxLifetime(config.ConnMaxLifetime)

	db := &ContactDB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Printf("Contact database ready at %s", dbPath)
	return db, nil
}

// Close закрывает подключение к базе
func (db *ContactDB) Close() error {
	return db.conn.Close()
}

// SaveContacts сохраняет канонические записи в одной транзакции.
// Возвращает количество вставленных записей.
func (db *ContactDB) SaveContacts(records []normalization.CanonicalRecord) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	tx, err := db.conn.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO contacts (
			contact_name, company_name, email, phone,
			address_line1, address_line2, city, state, zip_code,
			country, tax_id, notes, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC().Format(time.RFC3339)
	inserted := 0
	for _, rec := range records {
		if _, err := stmt.Exec(
			rec.ContactName, rec.CompanyName, rec.Email, rec.Phone,
			rec.AddressLine1, rec.AddressLine2, rec.City, rec.State, rec.ZipCode,
			rec.Country, rec.TaxID, rec.Notes, now,
		); err != nil {
			return 0, fmt.Errorf("failed to insert contact %q: %w", rec.ContactName, err)
		}
		inserted++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return inserted, nil
}

// ListContacts возвращает сохраненные записи в порядке вставки.
// limit <= 0 означает без лимита.
func (db *ContactDB) ListContacts(limit, offset int) ([]normalization.CanonicalRecord, error) {
	query := `
		SELECT contact_name, company_name, email, phone,
		       address_line1, address_line2, city, state, zip_code,
		       country, tax_id, notes
		FROM contacts
		ORDER BY id
	`
	args := []interface{}{}
	if limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, limit, offset)
	}

	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query contacts: %w", err)
	}
	defer rows.Close()

	records := []normalization.CanonicalRecord{}
	for rows.Next() {
		var rec normalization.CanonicalRecord
		var fields [12]sql.NullString
		if err := rows.Scan(
			&fields[0], &fields[1], &fields[2], &fields[3],
			&fields[4], &fields[5], &fields[6], &fields[7], &fields[8],
			&fields[9], &fields[10], &fields[11],
		); err != nil {
			return nil, fmt.Errorf("failed to scan contact row: %w", err)
		}

		rec.ContactName = nullString(fields[0])
		rec.CompanyName = nullString(fields[1])
		rec.Email = nullString(fields[2])
		rec.Phone = nullString(fields[3])
		rec.AddressLine1 = nullString(fields[4])
		rec.AddressLine2 = nullString(fields[5])
		rec.City = nullString(fields[6])
		rec.State = nullString(fields[7])
		rec.ZipCode = nullString(fields[8])
		rec.Country = nullString(fields[9])
		rec.TaxID = nullString(fields[10])
		rec.Notes = nullString(fields[11])
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate contacts: %w", err)
	}

	return records, nil
}

// CountContacts возвращает количество сохраненных контактов
func (db *ContactDB) CountContacts() (int, error) {
	var count int
	if err := db.conn.QueryRow(`SELECT COUNT(*) FROM contacts`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count contacts: %w", err)
	}
	return count, nil
}

func nullString(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}
