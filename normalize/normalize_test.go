package normalize

import (
	"math"
	"testing"
)

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		expected string
	}{
		{name: "trailing zero", value: 1234.5, expected: "1234,50"},
		{name: "zero", value: 0, expected: "0,00"},
		{name: "rounding", value: 9.999, expected: "10,00"},
		{name: "exact cents", value: 12345.6, expected: "12345,60"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatPrice(tt.value); got != tt.expected {
				t.Fatalf("FormatPrice(%v) = %q, want %q", tt.value, got, tt.expected)
			}
		})
	}
}

func TestParsePriceRoundTrip(t *testing.T) {
	for _, value := range []float64{0, 0.5, 12345.6, 99.99, 1234.5} {
		got := ParsePrice(FormatPrice(value))
		if math.Abs(got-value) > 0.005 {
			t.Fatalf("round trip of %v = %v", value, got)
		}
	}
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected float64
	}{
		{name: "plain", input: "12345,60", expected: 12345.6},
		{name: "currency suffix", input: "120,50 TL", expected: 120.5},
		{name: "lira sign", input: "99,90 ₺", expected: 99.9},
		{name: "thousands dot", input: "1.234,50", expected: 1234.5},
		{name: "empty", input: "", expected: 0},
		{name: "garbage", input: "yok", expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParsePrice(tt.input); math.Abs(got-tt.expected) > 0.005 {
				t.Fatalf("ParsePrice(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestCleanCampaignText(t *testing.T) {
	tests := []struct {
		name     string
		badges   []Badge
		expected string
	}{
		{
			name:     "currency badge dropped",
			badges:   []Badge{{Value: "120,50 TL"}, {Value: "2 Al 1 Öde"}},
			expected: "2 Al 1 Öde",
		},
		{
			name:     "pure numeric dropped",
			badges:   []Badge{{Value: "25"}, {Value: "1.234,50"}, {Value: "Hediyeli"}},
			expected: "Hediyeli",
		},
		{
			name:     "order preserved",
			badges:   []Badge{{Value: "Yeni"}, {Value: "42"}, {Value: "Son Gün"}},
			expected: "Yeni, Son Gün",
		},
		{
			name:     "nothing left",
			badges:   []Badge{{Value: "99,90 ₺"}, {Value: "15"}},
			expected: "",
		},
		{
			name:     "empty list",
			badges:   nil,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanCampaignText(tt.badges); got != tt.expected {
				t.Fatalf("CleanCampaignText() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestExtractUnit(t *testing.T) {
	tests := []struct {
		name      string
		product   string
		salePrice float64
		wantPrice float64
		wantUnit  string
	}{
		{name: "litre", product: "Sütaş Tam Yağlı Süt 1 L", salePrice: 40, wantPrice: 40, wantUnit: "L"},
		{name: "grams to kg", product: "Beyaz Peynir 500 Gr", salePrice: 60, wantPrice: 120, wantUnit: "Kg"},
		{name: "kilograms", product: "Ayçiçek Yağı 5 KG", salePrice: 750, wantPrice: 150, wantUnit: "Kg"},
		{name: "millilitres to litre", product: "Zeytinyağı 250 ml", salePrice: 100, wantPrice: 400, wantUnit: "L"},
		{name: "no quantity", product: "Yumurta 10'lu", salePrice: 55, wantPrice: 0, wantUnit: UnitPiece},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotPrice, gotUnit := ExtractUnit(tt.product, tt.salePrice)
			if gotUnit != tt.wantUnit {
				t.Fatalf("unit = %q, want %q", gotUnit, tt.wantUnit)
			}
			if math.Abs(gotPrice-tt.wantPrice) > 0.005 {
				t.Fatalf("unit price = %v, want %v", gotPrice, tt.wantPrice)
			}
		})
	}
}
