// Package extract maps raw search-API items onto the persisted record
// schema, deriving discount percentage and deal classification.
package extract

import (
	"log/slog"
	"strings"

	"github.com/kyucel/fiyat-avcisi/fetch"
	"github.com/kyucel/fiyat-avcisi/models"
	"github.com/kyucel/fiyat-avcisi/normalize"
)

// Deal class thresholds, in percent.
const (
	superDealPct = 50
	dealPct      = 20
)

// multiBuyKeywords mark campaign texts describing quantity promotions
// ("2 Al 1 Öde", "1 Alana 1 Hediye").
var multiBuyKeywords = []string{"Öde", "Hediye", "Alana"}

// Records converts every extractable item on a page into a record.
// Items missing a name, or failing extraction for any other reason,
// are skipped individually; a dirty item never aborts the page.
func Records(env *fetch.Envelope, category, capturedAt, baseURL string) []*models.ProductRecord {
	items := env.Products()
	if len(items) == 0 {
		return nil
	}

	records := make([]*models.ProductRecord, 0, len(items))
	for i := range items {
		record, ok := Record(&items[i], category, capturedAt, baseURL)
		if !ok {
			slog.Debug("skipping unextractable item",
				slog.String("category", category),
				slog.String("name", items[i].Name),
			)
			continue
		}
		records = append(records, record)
	}
	return records
}

// Record maps one raw item onto the record schema. The second return
// value is false when the item lacks the fields a persisted record
// requires.
func Record(item *fetch.Product, category, capturedAt, baseURL string) (*models.ProductRecord, bool) {
	name := strings.TrimSpace(item.Name)
	if name == "" {
		return nil, false
	}

	// Prices arrive in minor units (kuruş).
	listPrice := float64(item.RegularPrice) / 100
	salePrice := float64(item.ShownPrice) / 100
	if listPrice <= 0 {
		listPrice = salePrice
	}

	discountPct := 0.0
	if listPrice > 0 {
		discountPct = (listPrice - salePrice) / listPrice * 100
	}
	if discountPct < 0 {
		discountPct = 0
	}

	campaign := normalize.CleanCampaignText(item.Badges)
	unitPrice, unit := normalize.ExtractUnit(name, salePrice)

	stock := models.StockAvailable
	if item.Exhausted {
		stock = models.StockUnavailable
	}

	return &models.ProductRecord{
		CapturedAt:   capturedAt,
		Name:         name,
		ListPrice:    listPrice,
		SalePrice:    salePrice,
		CampaignText: campaign,
		DiscountPct:  discountPct,
		DealClass:    classify(discountPct, campaign),
		Stock:        stock,
		UnitPrice:    unitPrice,
		Unit:         unit,
		Category:     category,
		ImageURL:     item.DetailImage(),
		ProductURL:   productURL(baseURL, item.PrettyName),
	}, true
}

// classify buckets a product by discount severity. Inconsistent feed
// data can push the percentage past 100; such rows are kept but
// flagged so downstream consumers can decide what to do with them.
func classify(discountPct float64, campaign string) models.DealClass {
	if discountPct > 100 {
		return models.DealPossibleError
	}
	for _, keyword := range multiBuyKeywords {
		if strings.Contains(campaign, keyword) {
			return models.DealMultiBuy
		}
	}
	switch {
	case discountPct > superDealPct:
		return models.DealSuperDeal
	case discountPct >= dealPct:
		return models.DealDeal
	default:
		return models.DealNormal
	}
}

func productURL(baseURL, prettyName string) string {
	if prettyName == "" {
		return ""
	}
	return strings.TrimSuffix(baseURL, "/") + "/" + prettyName
}
