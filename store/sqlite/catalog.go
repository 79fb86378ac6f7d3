/*
catalog.go - catalog.Store implementation

The catalog tables are ordinary mutable rows, unlike the append-only event
tables in sqlite.go. Single-entity lookups return (nil, nil) for missing
rows; mutations of missing rows return catalog.ErrNotFound.
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/warp/inventory-ledger/catalog"
	"github.com/warp/inventory-ledger/ledger"
)

// =============================================================================
// PRODUCTS (catalog.Store interface)
// =============================================================================

func (s *Store) CreateProduct(ctx context.Context, p catalog.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO products (id, name, category_id, description, price, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	_, err := s.db.ExecContext(ctx, query,
		p.ID,
		p.Name,
		nullString(p.CategoryID),
		nullString(p.Description),
		p.Price.String(),
		p.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

func (s *Store) Product(ctx context.Context, id ledger.ProductID) (*catalog.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT id, name, category_id, description, price, created_at
		FROM products
		WHERE id = ?
	`
	row := s.db.QueryRowContext(ctx, query, id)
	p, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Store) Products(ctx context.Context) ([]catalog.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT id, name, category_id, description, price, created_at
		FROM products
		ORDER BY name ASC
	`
	return s.queryProducts(ctx, query)
}

func (s *Store) UpdateProduct(ctx context.Context, p catalog.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		UPDATE products
		SET name = ?, category_id = ?, description = ?, price = ?
		WHERE id = ?
	`
	res, err := s.db.ExecContext(ctx, query,
		p.Name,
		nullString(p.CategoryID),
		nullString(p.Description),
		p.Price.String(),
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return catalog.ErrNotFound
	}
	return nil
}

func (s *Store) DeleteProduct(ctx context.Context, id ledger.ProductID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return catalog.ErrNotFound
	}
	return nil
}

func (s *Store) ProductsByCategory(ctx context.Context, categoryID string) ([]catalog.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if categoryID == "" {
		return nil, nil
	}

	query := `
		SELECT id, name, category_id, description, price, created_at
		FROM products
		WHERE category_id = ?
		ORDER BY name ASC
	`
	return s.queryProducts(ctx, query, categoryID)
}

func (s *Store) queryProducts(ctx context.Context, query string, args ...any) ([]catalog.Product, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []catalog.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}
	return products, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProduct(row scanner) (*catalog.Product, error) {
	var (
		p           catalog.Product
		categoryID  sql.NullString
		description sql.NullString
		price       string
		createdAt   string
	)
	err := row.Scan(&p.ID, &p.Name, &categoryID, &description, &price, &createdAt)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan product: %w", err)
	}
	p.CategoryID = categoryID.String
	p.Description = description.String
	p.Price = mustDecimal(price)
	p.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return &p, nil
}

// =============================================================================
// CATEGORIES (catalog.Store interface)
// =============================================================================

func (s *Store) CreateCategory(ctx context.Context, c catalog.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO categories (id, name, description, created_at)
		VALUES (?, ?, ?, ?)
	`
	_, err := s.db.ExecContext(ctx, query,
		c.ID,
		c.Name,
		nullString(c.Description),
		c.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

func (s *Store) Category(ctx context.Context, id string) (*catalog.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		c           catalog.Category
		description sql.NullString
		createdAt   string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, description, created_at FROM categories WHERE id = ?`, id,
	).Scan(&c.ID, &c.Name, &description, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan category: %w", err)
	}
	c.Description = description.String
	c.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return &c, nil
}

func (s *Store) Categories(ctx context.Context) ([]catalog.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, description, created_at FROM categories ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var categories []catalog.Category
	for rows.Next() {
		var (
			c           catalog.Category
			description sql.NullString
			createdAt   string
		)
		if err := rows.Scan(&c.ID, &c.Name, &description, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		c.Description = description.String
		c.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		categories = append(categories, c)
	}
	return categories, rows.Err()
}
