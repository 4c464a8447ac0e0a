package fetch

import "github.com/kyucel/fiyat-avcisi/normalize"

// Product is one raw item from the category search API.
type Product struct {
	Name         string            `json:"name"`
	RegularPrice int64             `json:"regularPrice"`
	ShownPrice   int64             `json:"shownPrice"`
	Exhausted    bool              `json:"exhausted"`
	Badges       []normalize.Badge `json:"badges"`
	Images       []Image           `json:"images"`
	PrettyName   string            `json:"prettyName"`
}

// Image holds the resolution variants of one product picture.
type Image struct {
	URLs map[string]string `json:"urls"`
}

// DetailImage returns the detail-resolution variant of the first image,
// or empty when the item carries no usable picture.
func (p *Product) DetailImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0].URLs["PRODUCT_DETAIL"]
}

// Envelope is the decoded body of one category search page. The API
// does not use a single stable shape, so the known product-list
// locations are all declared here and probed in order.
type Envelope struct {
	Data struct {
		SearchInfo struct {
			StoreProductInfos []Product `json:"storeProductInfos"`
		} `json:"searchInfo"`
		Products []Product `json:"products"`
	} `json:"data"`
	StoreProductInfos []Product `json:"storeProductInfos"`
}

// productAccessors is the ordered chain of known envelope shapes.
// The first accessor yielding a non-empty list wins.
var productAccessors = []struct {
	name string
	get  func(*Envelope) []Product
}{
	{"data.searchInfo.storeProductInfos", func(e *Envelope) []Product { return e.Data.SearchInfo.StoreProductInfos }},
	{"data.products", func(e *Envelope) []Product { return e.Data.Products }},
	{"storeProductInfos", func(e *Envelope) []Product { return e.StoreProductInfos }},
}

// Products resolves the product list through the accessor chain.
// A nil result means the page is empty under every known shape.
func (e *Envelope) Products() []Product {
	if e == nil {
		return nil
	}
	for _, a := range productAccessors {
		if items := a.get(e); len(items) > 0 {
			return items
		}
	}
	return nil
}
