package catalog_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/reoring/catalogpatch/catalog"
)

var (
	fixedNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	decimalEq = cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) })
)

func strPtr(s string) *string { return &s }

func sampleProduct() catalog.Product {
	return catalog.Product{
		SKU:         "SKU001",
		Name:        "Product A",
		ImgURI:      "https://example.com/a.jpg",
		Price:       decimal.RequireFromString("10.50"),
		Description: strPtr("Old"),
	}
}

func prepare(t *testing.T, body string) catalog.Command {
	t.Helper()
	cmd, err := catalog.PreparePatch("SKU001", []byte(body))
	require.NoError(t, err)
	return cmd
}

// fakeRepo is an in-test Repository with call counters and failure hooks.
type fakeRepo struct {
	mu       sync.Mutex
	products map[string]catalog.Product
	loads    int
	saves    int
	saved    []catalog.Product

	loadErr   error
	saveErr   error
	vanish    bool   // Save reports zero rows
	afterLoad func() // runs after a successful load
	onSave    func(ctx context.Context)
}

func newFakeRepo(ps ...catalog.Product) *fakeRepo {
	r := &fakeRepo{products: map[string]catalog.Product{}}
	for _, p := range ps {
		r.products[p.SKU] = p
	}
	return r
}

func (r *fakeRepo) GetBySKU(_ context.Context, sku string) (catalog.Product, error) {
	r.mu.Lock()
	r.loads++
	if r.loadErr != nil {
		r.mu.Unlock()
		return catalog.Product{}, r.loadErr
	}
	p, ok := r.products[sku]
	r.mu.Unlock()
	if !ok {
		return catalog.Product{}, catalog.ErrNotFound
	}
	if r.afterLoad != nil {
		r.afterLoad()
	}
	return p, nil
}

func (r *fakeRepo) Save(ctx context.Context, p catalog.Product) (int64, error) {
	if r.onSave != nil {
		r.onSave(ctx)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saves++
	if r.saveErr != nil {
		return 0, r.saveErr
	}
	if r.vanish {
		return 0, nil
	}
	if _, ok := r.products[p.SKU]; !ok {
		return 0, nil
	}
	r.products[p.SKU] = p
	r.saved = append(r.saved, p)
	return 1, nil
}

// recordingSink collects published batches.
type recordingSink struct {
	mu      sync.Mutex
	batches [][]catalog.Event
	ctxErr  error
	err     error
}

func (s *recordingSink) Publish(ctx context.Context, events []catalog.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ctxErr = ctx.Err()
	s.batches = append(s.batches, events)
	return s.err
}

func (s *recordingSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, b := range s.batches {
		n += len(b)
	}
	return n
}
