package store

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/kyucel/fiyat-avcisi/models"
)

// SheetStore appends records to a CSV file that doubles as the
// spreadsheet-backed main table. The file is opened in append mode and
// the header row is written only when the table is new or empty.
type SheetStore struct {
	path   string
	file   *os.File
	writer *csv.Writer
	mu     sync.Mutex
}

// OpenSheet opens (or lazily creates) the sheet at path.
func OpenSheet(path string) (*SheetStore, error) {
	if err := ensureDir(path); err != nil {
		return nil, err
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open sheet: %w", err)
	}

	writer := csv.NewWriter(f)

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat sheet: %w", err)
	}
	if info.Size() == 0 {
		if err := writer.Write(Header); err != nil {
			f.Close()
			return nil, fmt.Errorf("write sheet header: %w", err)
		}
		writer.Flush()
		if err := writer.Error(); err != nil {
			f.Close()
			return nil, fmt.Errorf("flush sheet header: %w", err)
		}
	}

	return &SheetStore{
		path:   path,
		file:   f,
		writer: writer,
	}, nil
}

// OpenSnapshot creates a fresh timestamp-named sheet for one sweep's
// results.
func OpenSnapshot(dir string, t time.Time) (*SheetStore, error) {
	return OpenSheet(filepath.Join(dir, SnapshotName(t)+".csv"))
}

// Ping verifies the sheet file is still reachable.
func (s *SheetStore) Ping() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.file.Stat(); err != nil {
		return fmt.Errorf("stat sheet: %w", err)
	}
	return nil
}

// Append writes rows in schema order and flushes them to disk.
func (s *SheetStore) Append(rows []*models.ProductRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, record := range rows {
		if err := s.writer.Write(Row(record)); err != nil {
			return fmt.Errorf("write sheet row: %w", err)
		}
	}
	s.writer.Flush()
	if err := s.writer.Error(); err != nil {
		return fmt.Errorf("flush sheet rows: %w", err)
	}
	return nil
}

// Close flushes and closes the underlying file.
func (s *SheetStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.writer.Flush()
	if err := s.writer.Error(); err != nil {
		return fmt.Errorf("flush sheet writer: %w", err)
	}
	return s.file.Close()
}

// Path returns the location of the backing file.
func (s *SheetStore) Path() string {
	return s.path
}

func ensureDir(filename string) error {
	dir := filepath.Dir(filename)
	if dir == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory %q: %w", dir, err)
	}
	return nil
}
