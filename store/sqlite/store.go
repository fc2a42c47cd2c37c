// Package sqlite implements the catalog repository and read service on
// SQLite through the pure Go modernc.org/sqlite driver.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/reoring/catalogpatch/catalog"
)

const schema = `
CREATE TABLE IF NOT EXISTS products (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	sku TEXT NOT NULL UNIQUE,
	name TEXT NOT NULL,
	img_uri TEXT NOT NULL,
	price TEXT NOT NULL,
	description TEXT
);
CREATE INDEX IF NOT EXISTS idx_products_name ON products(name);
`

// Store is a SQLite backed catalog.Repository and catalog.ReadService.
type Store struct {
	db  *sql.DB
	dsn string
	log *zap.Logger
}

var (
	_ catalog.Repository  = (*Store)(nil)
	_ catalog.ReadService = (*Store)(nil)
)

// Open opens (creating when needed) the database at dsn and ensures the
// schema exists. dsn is a file path or a modernc.org/sqlite URI; a plain
// path gets WAL and a busy timeout.
func Open(ctx context.Context, dsn string, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}
	db, err := sql.Open("sqlite", withPragmas(dsn))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if strings.Contains(dsn, ":memory:") {
		// Every pooled connection would get its own empty in-memory database.
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to reach database: %w", err)
	}
	s := &Store{db: db, dsn: dsn, log: log.Named("sqlite")}
	if err := s.initSchema(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return s, nil
}

func withPragmas(dsn string) string {
	if strings.Contains(dsn, "?") || strings.Contains(dsn, ":memory:") {
		return dsn
	}
	return dsn + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
}

func (s *Store) initSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, schema)
	return err
}

// DB exposes the handle for components sharing the database, such as the
// event outbox.
func (s *Store) DB() *sql.DB { return s.db }

// Close closes the database connection.
func (s *Store) Close() error { return s.db.Close() }

const selectProduct = `SELECT sku, name, img_uri, price, description FROM products`

type scanner interface {
	Scan(dest ...any) error
}

func scanProduct(row scanner) (catalog.Product, error) {
	var (
		p    catalog.Product
		desc sql.NullString
	)
	if err := row.Scan(&p.SKU, &p.Name, &p.ImgURI, &p.Price, &desc); err != nil {
		return catalog.Product{}, err
	}
	if desc.Valid {
		d := desc.String
		p.Description = &d
	}
	return p, nil
}

func nullString(v *string) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *v, Valid: true}
}

// GetBySKU loads one product.
func (s *Store) GetBySKU(ctx context.Context, sku string) (catalog.Product, error) {
	p, err := scanProduct(s.db.QueryRowContext(ctx, selectProduct+` WHERE sku = ?`, sku))
	if errors.Is(err, sql.ErrNoRows) {
		return catalog.Product{}, catalog.ErrNotFound
	}
	if err != nil {
		return catalog.Product{}, fmt.Errorf("failed to load product: %w", err)
	}
	return p, nil
}

// GetProduct is GetBySKU for the read side.
func (s *Store) GetProduct(ctx context.Context, sku string) (catalog.Product, error) {
	return s.GetBySKU(ctx, sku)
}

// Save overwrites the stored fields of p.SKU and returns the rows affected.
// It never inserts; a missing row yields 0.
func (s *Store) Save(ctx context.Context, p catalog.Product) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE products SET name = ?, img_uri = ?, price = ?, description = ? WHERE sku = ?`,
		p.Name, p.ImgURI, p.Price.String(), nullString(p.Description), p.SKU)
	if err != nil {
		return 0, fmt.Errorf("failed to save product: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return n, nil
}

// ListProducts returns every product ordered by name.
func (s *Store) ListProducts(ctx context.Context) ([]catalog.Product, error) {
	rows, err := s.db.QueryContext(ctx, selectProduct+` ORDER BY name, sku`)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return collect(rows)
}

// ListProductsPage returns one page ordered by name.
func (s *Store) ListProductsPage(ctx context.Context, pageNumber, pageSize int) (catalog.Page[catalog.Product], error) {
	page := catalog.Page[catalog.Product]{PageNumber: pageNumber, PageSize: pageSize}
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&page.TotalCount); err != nil {
		return page, fmt.Errorf("failed to count products: %w", err)
	}
	page.Items = []catalog.Product{}
	offset, ok := page.Offset()
	if !ok {
		return page, nil
	}
	rows, err := s.db.QueryContext(ctx, selectProduct+` ORDER BY name, sku LIMIT ? OFFSET ?`,
		pageSize, offset)
	if err != nil {
		return page, fmt.Errorf("failed to list products: %w", err)
	}
	items, err := collect(rows)
	if err != nil {
		return page, err
	}
	page.Items = items
	return page, nil
}

func collect(rows *sql.Rows) ([]catalog.Product, error) {
	defer rows.Close()
	out := []catalog.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Insert adds products, failing on a duplicate SKU.
func (s *Store) Insert(ctx context.Context, products ...catalog.Product) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin insert: %w", err)
	}
	defer func() { _ = tx.Rollback() }()
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO products (sku, name, img_uri, price, description) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()
	for _, p := range products {
		if _, err := stmt.ExecContext(ctx, p.SKU, p.Name, p.ImgURI, p.Price.String(), nullString(p.Description)); err != nil {
			return fmt.Errorf("failed to insert %s: %w", p.SKU, err)
		}
	}
	return tx.Commit()
}

// Seed inserts products when the table is empty. It reports whether rows
// were written.
func (s *Store) Seed(ctx context.Context, products []catalog.Product) (bool, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&n); err != nil {
		return false, fmt.Errorf("failed to count products: %w", err)
	}
	if n > 0 {
		s.log.Info("products table already populated; skipping seed", zap.Int("count", n))
		return false, nil
	}
	if err := s.Insert(ctx, products...); err != nil {
		return false, err
	}
	s.log.Info("seeded products", zap.Int("count", len(products)))
	return true, nil
}

// Delete removes a product. Missing rows are not an error.
func (s *Store) Delete(ctx context.Context, sku string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM products WHERE sku = ?`, sku); err != nil {
		return fmt.Errorf("failed to delete %s: %w", sku, err)
	}
	return nil
}
