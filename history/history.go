// Package history reads the main table back the way the dashboard
// layer does: columns resolved by header name, numeric text parsed
// with the locale rules, and current state reduced to the most recent
// row per product name.
package history

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/kyucel/fiyat-avcisi/models"
	"github.com/kyucel/fiyat-avcisi/normalize"
)

// Row is one parsed observation from the main table.
type Row struct {
	CapturedAt   time.Time
	Name         string
	ListPrice    float64
	SalePrice    float64
	CampaignText string
	DiscountPct  float64
	DealClass    string
	Stock        string
	UnitPrice    float64
	Unit         string
	Category     string
	ImageURL     string
	ProductURL   string
}

// Reader loads sheets through a TTL cache so repeated dashboard reads
// do not hit the file on every render.
type Reader struct {
	cache *expirable.LRU[string, []Row]
}

// NewReader builds a reader whose loads stay cached for ttl.
func NewReader(ttl time.Duration) *Reader {
	return &Reader{
		cache: expirable.NewLRU[string, []Row](8, nil, ttl),
	}
}

// Load returns all rows of the sheet at path, from cache when fresh.
func (r *Reader) Load(path string) ([]Row, error) {
	if rows, ok := r.cache.Get(path); ok {
		return rows, nil
	}
	rows, err := ReadSheet(path)
	if err != nil {
		return nil, err
	}
	r.cache.Add(path, rows)
	return rows, nil
}

// Invalidate drops the cached rows for path, forcing the next Load to
// re-read the file. Called after a sweep appends new data.
func (r *Reader) Invalidate(path string) {
	r.cache.Remove(path)
}

// ReadSheet parses a main-table file. The first row is the header;
// columns are matched by trimmed header name, not position. Rows
// without a name are skipped.
func ReadSheet(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open sheet: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read sheet: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	index := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		index[strings.TrimSpace(name)] = i
	}

	rows := make([]Row, 0, len(records)-1)
	for _, record := range records[1:] {
		field := func(name string) string {
			i, ok := index[name]
			if !ok || i >= len(record) {
				return ""
			}
			return record[i]
		}

		name := strings.TrimSpace(field("Ürün Adı"))
		if name == "" {
			continue
		}

		capturedAt, _ := time.Parse(models.CaptureTimeLayout, field("Tarih"))

		rows = append(rows, Row{
			CapturedAt:   capturedAt,
			Name:         name,
			ListPrice:    normalize.ParsePrice(field("Etiket Fiyatı")),
			SalePrice:    normalize.ParsePrice(field("Satış Fiyatı")),
			CampaignText: field("İndirim Tipi"),
			DiscountPct:  normalize.ParsePrice(field("İndirim %")),
			DealClass:    field("Durum"),
			Stock:        field("Stok"),
			UnitPrice:    normalize.ParsePrice(field("Birim Fiyat")),
			Unit:         field("Birim"),
			Category:     field("Kategori"),
			ImageURL:     field("Resim"),
			ProductURL:   field("Link"),
		})
	}
	return rows, nil
}

// Latest reduces history to the current state: the most recent row per
// product name. When timestamps tie, the later row in the file wins.
func Latest(rows []Row) []Row {
	byName := make(map[string]int, len(rows))
	out := make([]Row, 0, len(rows))
	for _, row := range rows {
		if i, ok := byName[row.Name]; ok {
			if !row.CapturedAt.Before(out[i].CapturedAt) {
				out[i] = row
			}
			continue
		}
		byName[row.Name] = len(out)
		out = append(out, row)
	}
	return out
}

// PriceHistory returns every observation of one product, oldest first.
func PriceHistory(rows []Row, name string) []Row {
	out := make([]Row, 0, 8)
	for _, row := range rows {
		if row.Name == name {
			out = append(out, row)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CapturedAt.Before(out[j].CapturedAt)
	})
	return out
}

// FilterCategory keeps rows of one category.
func FilterCategory(rows []Row, category string) []Row {
	out := make([]Row, 0, len(rows))
	for _, row := range rows {
		if row.Category == category {
			out = append(out, row)
		}
	}
	return out
}

// FilterName keeps rows whose name contains the query,
// case-insensitively.
func FilterName(rows []Row, query string) []Row {
	q := strings.ToLower(query)
	out := make([]Row, 0, len(rows))
	for _, row := range rows {
		if strings.Contains(strings.ToLower(row.Name), q) {
			out = append(out, row)
		}
	}
	return out
}

// DiscountedOnly keeps rows with a positive discount.
func DiscountedOnly(rows []Row) []Row {
	out := make([]Row, 0, len(rows))
	for _, row := range rows {
		if row.DiscountPct > 0 {
			out = append(out, row)
		}
	}
	return out
}

// SortSmart orders by discount descending, then name ascending.
func SortSmart(rows []Row) {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].DiscountPct != rows[j].DiscountPct {
			return rows[i].DiscountPct > rows[j].DiscountPct
		}
		return rows[i].Name < rows[j].Name
	})
}

// SortByPrice orders by sale price.
func SortByPrice(rows []Row, ascending bool) {
	sort.SliceStable(rows, func(i, j int) bool {
		if ascending {
			return rows[i].SalePrice < rows[j].SalePrice
		}
		return rows[i].SalePrice > rows[j].SalePrice
	})
}
