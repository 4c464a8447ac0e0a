// Package normalize holds locale-aware price formatting and the text
// cleanup helpers applied to raw product fields before persistence.
package normalize

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// UnitPiece is the fallback unit label when no quantity token is found.
const UnitPiece = "Adet"

var (
	numericBadge = regexp.MustCompile(`^[\d.,]+$`)
	quantityRe   = regexp.MustCompile(`(?i)(\d+(?:[.,]\d+)?)\s*(kg|gr|g|lt|l|ml)\b`)
)

// currencyMarkers flag badge values that are price noise rather than
// campaign labels.
var currencyMarkers = []string{"TL", "₺"}

// FormatPrice renders a price with two decimal digits and a comma
// decimal separator, the convention of the persisted sheet.
func FormatPrice(value float64) string {
	return strings.Replace(fmt.Sprintf("%.2f", value), ".", ",", 1)
}

// ParsePrice reverses FormatPrice, tolerating currency suffixes and
// thousands dots as found in manually edited sheet cells. Malformed
// input parses as 0.
func ParsePrice(text string) float64 {
	s := strings.TrimSpace(text)
	if s == "" {
		return 0
	}
	for _, marker := range currencyMarkers {
		s = strings.ReplaceAll(s, marker, "")
	}
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// Badge is one campaign label as delivered by the search API.
type Badge struct {
	Value string `json:"value"`
}

// CleanCampaignText joins badge values with ", ", dropping values that
// are purely numeric or carry a currency marker. Order is preserved.
func CleanCampaignText(badges []Badge) string {
	kept := make([]string, 0, len(badges))
	for _, b := range badges {
		value := strings.TrimSpace(b.Value)
		if value == "" {
			continue
		}
		if numericBadge.MatchString(value) {
			continue
		}
		if containsCurrency(value) {
			continue
		}
		kept = append(kept, value)
	}
	return strings.Join(kept, ", ")
}

func containsCurrency(s string) bool {
	for _, marker := range currencyMarkers {
		if strings.Contains(s, marker) {
			return true
		}
	}
	return false
}

// ExtractUnit scans a product name for a quantity token ("500 Gr",
// "1 L", "5 KG") and derives a per-unit price from the sale price.
// Grams and millilitres normalize to kilograms and litres. Names with
// no recognizable quantity fall back to a per-piece label with a zero
// unit price.
func ExtractUnit(name string, salePrice float64) (unitPrice float64, unitLabel string) {
	match := quantityRe.FindStringSubmatch(name)
	if match == nil {
		return 0, UnitPiece
	}

	qty, err := strconv.ParseFloat(strings.ReplaceAll(match[1], ",", "."), 64)
	if err != nil || qty <= 0 {
		return 0, UnitPiece
	}

	switch strings.ToLower(match[2]) {
	case "kg":
		return salePrice / qty, "Kg"
	case "gr", "g":
		return salePrice / (qty / 1000), "Kg"
	case "lt", "l":
		return salePrice / qty, "L"
	case "ml":
		return salePrice / (qty / 1000), "L"
	}
	return 0, UnitPiece
}
