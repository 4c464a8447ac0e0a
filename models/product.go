// Package models defines data structures shared across the harvester.
package models

import "time"

// DealClass buckets a product by discount severity for one sweep.
type DealClass string

const (
	DealNormal        DealClass = "Normal"
	DealDeal          DealClass = "Fırsat"
	DealSuperDeal     DealClass = "Süper Fırsat"
	DealMultiBuy      DealClass = "Çoklu Alım"
	DealPossibleError DealClass = "Olası Hata"
)

// StockState reports whether a product was purchasable at capture time.
type StockState string

const (
	StockAvailable   StockState = "Var"
	StockUnavailable StockState = "Yok"
)

// ProductRecord is one observation of one product within one sweep.
// Records are immutable once handed to a store.
type ProductRecord struct {
	CapturedAt   string     `json:"captured_at"`
	Name         string     `json:"name"`
	ListPrice    float64    `json:"list_price"`
	SalePrice    float64    `json:"sale_price"`
	CampaignText string     `json:"campaign_text"`
	DiscountPct  float64    `json:"discount_pct"`
	DealClass    DealClass  `json:"deal_class"`
	Stock        StockState `json:"stock"`
	UnitPrice    float64    `json:"unit_price"`
	Unit         string     `json:"unit"`
	Category     string     `json:"category"`
	ImageURL     string     `json:"image_url"`
	ProductURL   string     `json:"product_url"`
}

// CaptureTimeLayout is the minute-precision timestamp written to the store.
const CaptureTimeLayout = "2006-01-02 15:04"

// SweepResult summarizes one full run across all configured categories.
type SweepResult struct {
	StartTime      time.Time
	EndTime        time.Time
	Categories     int
	PagesFetched   int
	ItemsSeen      int
	Duplicates     int
	RecordsWritten int
	WriteFailures  int
	ErrorsByType   map[string]int
	FailedCats     []string
}
