package extract

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/kyucel/fiyat-avcisi/fetch"
	"github.com/kyucel/fiyat-avcisi/models"
	"github.com/kyucel/fiyat-avcisi/normalize"
)

const baseURL = "https://market.example.test"

func TestRecordDiscountAndDealClass(t *testing.T) {
	tests := []struct {
		name      string
		regular   int64
		shown     int64
		badges    []normalize.Badge
		wantPct   float64
		wantClass models.DealClass
	}{
		{name: "no discount", regular: 5000, shown: 5000, wantPct: 0, wantClass: models.DealNormal},
		{name: "small discount", regular: 10000, shown: 8500, wantPct: 15, wantClass: models.DealNormal},
		{name: "deal threshold", regular: 10000, shown: 8000, wantPct: 20, wantClass: models.DealDeal},
		{name: "super deal", regular: 10000, shown: 4000, wantPct: 60, wantClass: models.DealSuperDeal},
		{name: "exactly fifty stays deal", regular: 10000, shown: 5000, wantPct: 50, wantClass: models.DealDeal},
		{
			name:      "multibuy keyword overrides percentage",
			regular:   10000,
			shown:     4000,
			badges:    []normalize.Badge{{Value: "2 Al 1 Öde"}},
			wantPct:   60,
			wantClass: models.DealMultiBuy,
		},
		{
			name:      "inconsistent feed flags possible error",
			regular:   10000,
			shown:     -500,
			wantPct:   105,
			wantClass: models.DealPossibleError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := &fetch.Product{
				Name:         "Test Ürünü",
				RegularPrice: tt.regular,
				ShownPrice:   tt.shown,
				Badges:       tt.badges,
			}
			record, ok := Record(item, "yag-c-7a", "2026-08-29 10:00", baseURL)
			if !ok {
				t.Fatalf("expected extractable record")
			}
			if math.Abs(record.DiscountPct-tt.wantPct) > 0.005 {
				t.Fatalf("discount = %v, want %v", record.DiscountPct, tt.wantPct)
			}
			if record.DealClass != tt.wantClass {
				t.Fatalf("deal class = %q, want %q", record.DealClass, tt.wantClass)
			}
		})
	}
}

func TestRecordListPriceFallback(t *testing.T) {
	item := &fetch.Product{
		Name:         "Etiketsiz Ürün",
		RegularPrice: 0,
		ShownPrice:   4550,
	}
	record, ok := Record(item, "cay-c-6e", "2026-08-29 10:00", baseURL)
	if !ok {
		t.Fatalf("expected extractable record")
	}
	if record.ListPrice != 45.5 {
		t.Fatalf("list price = %v, want 45.5 (fallback to sale)", record.ListPrice)
	}
	if record.DiscountPct != 0 {
		t.Fatalf("discount = %v, want 0", record.DiscountPct)
	}
	if record.DealClass != models.DealNormal {
		t.Fatalf("deal class = %q, want %q", record.DealClass, models.DealNormal)
	}
}

func TestRecordFields(t *testing.T) {
	item := &fetch.Product{
		Name:         "Beyaz Peynir 500 Gr",
		RegularPrice: 12000,
		ShownPrice:   9000,
		Exhausted:    true,
		Badges:       []normalize.Badge{{Value: "120,50 TL"}, {Value: "Son Gün"}},
		Images: []fetch.Image{
			{URLs: map[string]string{"PRODUCT_DETAIL": "https://cdn.example.test/peynir-detail.jpg"}},
			{URLs: map[string]string{"PRODUCT_DETAIL": "https://cdn.example.test/peynir-2.jpg"}},
		},
		PrettyName: "beyaz-peynir-500-gr-p-100",
	}

	record, ok := Record(item, "sut-kahvaltilik-c-4", "2026-08-29 10:00", baseURL)
	if !ok {
		t.Fatalf("expected extractable record")
	}
	if record.Stock != models.StockUnavailable {
		t.Fatalf("stock = %q, want %q", record.Stock, models.StockUnavailable)
	}
	if record.CampaignText != "Son Gün" {
		t.Fatalf("campaign = %q, want %q", record.CampaignText, "Son Gün")
	}
	if record.ImageURL != "https://cdn.example.test/peynir-detail.jpg" {
		t.Fatalf("image = %q", record.ImageURL)
	}
	if record.ProductURL != baseURL+"/beyaz-peynir-500-gr-p-100" {
		t.Fatalf("product url = %q", record.ProductURL)
	}
	if record.Unit != "Kg" || record.UnitPrice != 180 {
		t.Fatalf("unit = %v %q, want 180 Kg", record.UnitPrice, record.Unit)
	}
	if record.Category != "sut-kahvaltilik-c-4" {
		t.Fatalf("category = %q", record.Category)
	}
}

func TestRecordsSkipsNamelessItems(t *testing.T) {
	body := `{
		"data": {
			"searchInfo": {
				"storeProductInfos": [
					{"name": "Çay 1 KG", "regularPrice": 20000, "shownPrice": 18000},
					{"name": "", "regularPrice": 1000, "shownPrice": 1000},
					{"name": "   ", "regularPrice": 1000, "shownPrice": 1000},
					{"name": "Şeker 5 KG", "regularPrice": 15000, "shownPrice": 15000}
				]
			}
		}
	}`
	var env fetch.Envelope
	if err := json.Unmarshal([]byte(body), &env); err != nil {
		t.Fatalf("unmarshal envelope: %v", err)
	}

	records := Records(&env, "seker-c-7be", "2026-08-29 10:00", baseURL)
	if len(records) != 2 {
		t.Fatalf("records = %d, want 2", len(records))
	}
	if records[0].Name != "Çay 1 KG" || records[1].Name != "Şeker 5 KG" {
		t.Fatalf("unexpected names: %q, %q", records[0].Name, records[1].Name)
	}
}

func TestRecordsEmptyEnvelope(t *testing.T) {
	var env fetch.Envelope
	if got := Records(&env, "cay-c-6e", "2026-08-29 10:00", baseURL); got != nil {
		t.Fatalf("expected nil for empty envelope, got %d records", len(got))
	}
}
