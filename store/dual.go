package store

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/kyucel/fiyat-avcisi/models"
)

// DualStore appends each batch to the main table and mirrors it into a
// per-sweep snapshot. The snapshot is a convenience view: its failures
// are logged and never block the main-table write.
type DualStore struct {
	main     Store
	snapshot Store
	mu       sync.Mutex
}

// NewDual combines a main store with an optional snapshot store.
func NewDual(main, snapshot Store) *DualStore {
	return &DualStore{
		main:     main,
		snapshot: snapshot,
	}
}

// Ping probes the main store only; the snapshot is best-effort.
func (d *DualStore) Ping() error {
	return d.main.Ping()
}

// Append writes rows to the main table, then mirrors them into the
// snapshot.
func (d *DualStore) Append(rows []*models.ProductRecord) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.main.Append(rows); err != nil {
		return fmt.Errorf("main append: %w", err)
	}

	if d.snapshot != nil {
		if err := d.snapshot.Append(rows); err != nil {
			slog.Warn("snapshot append failed", slog.Any("error", err))
		}
	}
	return nil
}

// Close closes both stores, reporting the first failure.
func (d *DualStore) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	var errs []error
	if err := d.main.Close(); err != nil {
		errs = append(errs, fmt.Errorf("main close: %w", err))
	}
	if d.snapshot != nil {
		if err := d.snapshot.Close(); err != nil {
			errs = append(errs, fmt.Errorf("snapshot close: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("multiple errors: %v", errs)
	}
	return nil
}
