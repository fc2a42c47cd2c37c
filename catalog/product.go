// Package catalog holds the product domain: the immutable snapshot, the
// partial update command built from a merge patch, the pure update workflow
// and the handler that loads, applies, saves and publishes.
package catalog

import "github.com/shopspring/decimal"

// Updatable field names. They are the JSON member names of the patch
// document and of the product representation.
const (
	FieldName        = "name"
	FieldImgURI      = "imgUri"
	FieldPrice       = "price"
	FieldDescription = "description"
)

// Product is a catalog entry snapshot. Values are never modified in place;
// the With* methods return a changed copy.
type Product struct {
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	ImgURI      string          `json:"imgUri"`
	Price       decimal.Decimal `json:"price"`
	Description *string         `json:"description"`
}

func (p Product) WithName(v string) Product   { p.Name = v; return p }
func (p Product) WithImgURI(v string) Product { p.ImgURI = v; return p }

func (p Product) WithPrice(v decimal.Decimal) Product { p.Price = v; return p }

// WithDescription replaces the description; nil clears it.
func (p Product) WithDescription(v *string) Product {
	p.Description = cloneString(v)
	return p
}

// Equal reports value equality; prices compare numerically.
func (p Product) Equal(o Product) bool {
	return p.SKU == o.SKU &&
		p.Name == o.Name &&
		p.ImgURI == o.ImgURI &&
		p.Price.Equal(o.Price) &&
		equalString(p.Description, o.Description)
}

func cloneString(v *string) *string {
	if v == nil {
		return nil
	}
	s := *v
	return &s
}

func equalString(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
