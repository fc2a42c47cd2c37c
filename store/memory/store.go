// Package memory is an in-process catalog store for tests and local runs.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/reoring/catalogpatch/catalog"
)

// Store is a simple in-memory store.
type Store struct {
	mu       sync.RWMutex
	products map[string]catalog.Product
}

var (
	_ catalog.Repository  = (*Store)(nil)
	_ catalog.ReadService = (*Store)(nil)
)

// New returns a store holding products.
func New(products ...catalog.Product) *Store {
	s := &Store{products: make(map[string]catalog.Product, len(products))}
	for _, p := range products {
		s.products[p.SKU] = p.WithDescription(p.Description)
	}
	return s
}

func (s *Store) GetBySKU(ctx context.Context, sku string) (catalog.Product, error) {
	if err := ctx.Err(); err != nil {
		return catalog.Product{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, exists := s.products[sku]
	if !exists {
		return catalog.Product{}, catalog.ErrNotFound
	}
	return p.WithDescription(p.Description), nil
}

func (s *Store) GetProduct(ctx context.Context, sku string) (catalog.Product, error) {
	return s.GetBySKU(ctx, sku)
}

func (s *Store) Save(ctx context.Context, p catalog.Product) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.products[p.SKU]; !exists {
		return 0, nil
	}
	s.products[p.SKU] = p.WithDescription(p.Description)
	return 1, nil
}

// Remove deletes a product and reports whether it existed.
func (s *Store) Remove(sku string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.products[sku]; !exists {
		return false
	}
	delete(s.products, sku)
	return true
}

// Seed stores products when the store is empty and reports whether it did.
func (s *Store) Seed(_ context.Context, products []catalog.Product) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.products) > 0 {
		return false, nil
	}
	for _, p := range products {
		s.products[p.SKU] = p.WithDescription(p.Description)
	}
	return len(products) > 0, nil
}

func (s *Store) ListProducts(ctx context.Context) ([]catalog.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.sorted(), nil
}

func (s *Store) ListProductsPage(ctx context.Context, pageNumber, pageSize int) (catalog.Page[catalog.Product], error) {
	if err := ctx.Err(); err != nil {
		return catalog.Page[catalog.Product]{}, err
	}
	all := s.sorted()
	page := catalog.Page[catalog.Product]{
		Items:      []catalog.Product{},
		TotalCount: len(all),
		PageNumber: pageNumber,
		PageSize:   pageSize,
	}
	start, ok := page.Offset()
	if !ok {
		return page, nil
	}
	end := len(all)
	if pageSize < end-start {
		end = start + pageSize
	}
	page.Items = all[start:end]
	return page, nil
}

func (s *Store) sorted() []catalog.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]catalog.Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, p.WithDescription(p.Description))
	}
	sort.Slice(out, func(i, k int) bool {
		if out[i].Name != out[k].Name {
			return out[i].Name < out[k].Name
		}
		return out[i].SKU < out[k].SKU
	})
	return out
}
