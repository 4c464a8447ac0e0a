// Package store persists harvested records to append-only tabular
// backends. No backend ever updates or deletes a written row; current
// state is always derived downstream from the most recent row per
// product name.
package store

import (
	"time"

	"github.com/kyucel/fiyat-avcisi/models"
	"github.com/kyucel/fiyat-avcisi/normalize"
)

// Header is the main-table header row. Column names are the read
// contract of the dashboard layer; order matters for writes, names
// matter for reads.
var Header = []string{
	"Tarih",
	"Ürün Adı",
	"Etiket Fiyatı",
	"Satış Fiyatı",
	"İndirim Tipi",
	"İndirim %",
	"Durum",
	"Stok",
	"Birim Fiyat",
	"Birim",
	"Kategori",
	"Resim",
	"Link",
}

// Row renders a record in header order. Numeric fields are written as
// locale-formatted text because the destination sheet is also edited
// by hand and must render consistently for a Turkish audience.
func Row(r *models.ProductRecord) []string {
	return []string{
		r.CapturedAt,
		r.Name,
		normalize.FormatPrice(r.ListPrice),
		normalize.FormatPrice(r.SalePrice),
		r.CampaignText,
		normalize.FormatPrice(r.DiscountPct),
		string(r.DealClass),
		string(r.Stock),
		normalize.FormatPrice(r.UnitPrice),
		r.Unit,
		r.Category,
		r.ImageURL,
		r.ProductURL,
	}
}

// Store is an append-only destination for sweep batches.
type Store interface {
	// Ping verifies the backend is reachable and writable. A failed
	// probe aborts the sweep before any fetching starts.
	Ping() error
	Append(rows []*models.ProductRecord) error
	Close() error
}

// SnapshotName builds the human-readable name of a per-sweep snapshot
// table.
func SnapshotName(t time.Time) string {
	return "snapshot_" + t.Format("2006-01-02_15-04")
}
