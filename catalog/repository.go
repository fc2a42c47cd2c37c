package catalog

import (
	"context"
	"errors"
)

// ErrNotFound reports a product missing at load or gone at save.
var ErrNotFound = errors.New("product not found")

// Repository loads and saves product snapshots.
//
// Save overwrites the stored row and reports how many rows it changed. No
// version is compared: two concurrent patches of one product race and the
// last save wins without detection. Callers that need conflict detection
// must add a version token; this repository contract does not provide one.
type Repository interface {
	GetBySKU(ctx context.Context, sku string) (Product, error)
	Save(ctx context.Context, p Product) (int64, error)
}

// ReadService serves the query side of the API.
type ReadService interface {
	// ListProducts returns every product ordered by name.
	ListProducts(ctx context.Context) ([]Product, error)
	// ListProductsPage returns one page, pageNumber starting at 1.
	ListProductsPage(ctx context.Context, pageNumber, pageSize int) (Page[Product], error)
	GetProduct(ctx context.Context, sku string) (Product, error)
}

// Page is one page of a listing.
type Page[T any] struct {
	Items      []T
	TotalCount int
	PageNumber int
	PageSize   int
}

// TotalPages is the number of pages of PageSize needed for TotalCount.
func (p Page[T]) TotalPages() int {
	if p.PageSize <= 0 {
		return 0
	}
	n := p.TotalCount / p.PageSize
	if p.TotalCount%p.PageSize != 0 {
		n++
	}
	return n
}

// Offset returns how many items precede the page, and false when the page
// starts at or past TotalCount. Page numbers of any size are safe: the
// product is only computed for pages that exist.
func (p Page[T]) Offset() (int, bool) {
	if p.PageNumber < 1 || p.PageSize < 1 {
		return 0, false
	}
	if p.PageNumber-1 >= p.TotalPages() {
		return 0, false
	}
	return (p.PageNumber - 1) * p.PageSize, true
}

// EventSink receives the events of a persisted update. Delivery is best
// effort.
type EventSink interface {
	Publish(ctx context.Context, events []Event) error
}
