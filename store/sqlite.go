package store

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/kyucel/fiyat-avcisi/models"
)

// column set mirrors the sheet header; values are stored as the same
// locale-formatted text so both backends read back identically.
const createTableStmt = `
	CREATE TABLE IF NOT EXISTS %s (
		tarih TEXT NOT NULL,
		urun_adi TEXT NOT NULL,
		etiket_fiyati TEXT NOT NULL,
		satis_fiyati TEXT NOT NULL,
		indirim_tipi TEXT,
		indirim_pct TEXT NOT NULL,
		durum TEXT NOT NULL,
		stok TEXT NOT NULL,
		birim_fiyat TEXT,
		birim TEXT,
		kategori TEXT NOT NULL,
		resim TEXT,
		link TEXT
	)`

const insertStmt = `
	INSERT INTO %s (
		tarih, urun_adi, etiket_fiyati, satis_fiyati, indirim_tipi,
		indirim_pct, durum, stok, birim_fiyat, birim, kategori, resim, link
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

// SQLiteStore appends records to an embedded insert-only table. The
// package issues no UPDATE or DELETE statements.
type SQLiteStore struct {
	db    *sql.DB
	table string
}

// OpenSQLite opens the database at path and lazily creates the main
// history table.
func OpenSQLite(path string) (*SQLiteStore, error) {
	return openSQLiteTable(path, "price_history")
}

// OpenSQLiteSnapshot opens a fresh timestamp-named table in the same
// database for one sweep's results.
func OpenSQLiteSnapshot(path string, t time.Time) (*SQLiteStore, error) {
	return openSQLiteTable(path, SnapshotName(t))
}

func openSQLiteTable(path, table string) (*SQLiteStore, error) {
	if err := ensureDir(path); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec(fmt.Sprintf(createTableStmt, table)); err != nil {
		db.Close()
		return nil, fmt.Errorf("create table %s: %w", table, err)
	}

	return &SQLiteStore{db: db, table: table}, nil
}

// Ping verifies the database connection.
func (s *SQLiteStore) Ping() error {
	return s.db.Ping()
}

// Append inserts rows inside one transaction.
func (s *SQLiteStore) Append(rows []*models.ProductRecord) error {
	if len(rows) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin append: %w", err)
	}

	stmt, err := tx.Prepare(fmt.Sprintf(insertStmt, s.table))
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, record := range rows {
		values := Row(record)
		args := make([]any, len(values))
		for i, v := range values {
			args[i] = v
		}
		if _, err := stmt.Exec(args...); err != nil {
			tx.Rollback()
			return fmt.Errorf("insert row for %q: %w", record.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit append: %w", err)
	}
	return nil
}

// Close closes the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
