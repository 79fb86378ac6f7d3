/*
Package sqlite provides a SQLite-backed implementation of the storage
interfaces.

PURPOSE:
  Implements ledger.Store (append-only event persistence) and catalog.Store
  (plain CRUD) using SQLite. In production the same patterns apply to
  PostgreSQL - only minor SQL dialect differences.

APPEND-ONLY ENFORCEMENT:
  The ledger tables see INSERT and SELECT only:
  - No UPDATE statements on inventory_events or sale_events
  - No DELETE statements on inventory_events or sale_events

ATOMIC BATCHES:
  AppendInventoryEvents / AppendSaleEvents wrap the batch in one SQL
  transaction. Either every event in the call becomes visible or none does,
  and a reader never observes a torn multi-row insert.

CONCURRENCY:
  SQLite is opened in WAL mode (readers don't block) with a bounded busy
  timeout, which is where transient lock contention is retried. The store
  adds no retry logic of its own: ledger appends are not idempotent by
  position, so replaying a failed append would double-count a delta.

KEY TABLES:
  inventory_events: Immutable ledger of signed quantity deltas
  sale_events:      Immutable ledger of sale facts
  products:         Catalog entries (mutable, see catalog.go)
  categories:       Catalog groupings (mutable, see catalog.go)

USAGE:
  store, err := sqlite.New("./data/inventory.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

SEE ALSO:
  - ledger/store.go: Interface definitions and read contracts
  - ledger/store/memory.go: In-memory implementation, parity-tested
  - ledger/storetest: Shared contract suite
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/warp/inventory-ledger/ledger"
)

// Store implements ledger.Store and catalog.Store using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	-- Inventory events (append-only ledger)
	CREATE TABLE IF NOT EXISTS inventory_events (
		id TEXT PRIMARY KEY,
		product_id TEXT NOT NULL,
		quantity_delta INTEGER NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_inventory_events_product
		ON inventory_events(product_id);

	-- Sale events (append-only ledger)
	CREATE TABLE IF NOT EXISTS sale_events (
		id TEXT PRIMARY KEY,
		product_id TEXT NOT NULL,
		quantity INTEGER NOT NULL,
		total_price TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	-- Range scans ordered by created_at (hot path for sales queries)
	CREATE INDEX IF NOT EXISTS idx_sale_events_created_at
		ON sale_events(created_at);
	CREATE INDEX IF NOT EXISTS idx_sale_events_product
		ON sale_events(product_id);

	-- Catalog (mutable entity store, not part of the ledger)
	CREATE TABLE IF NOT EXISTS products (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		category_id TEXT,
		description TEXT,
		price TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_products_category
		ON products(category_id);

	CREATE TABLE IF NOT EXISTS categories (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT,
		created_at TEXT NOT NULL
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// INVENTORY EVENTS (ledger.InventoryStore interface)
// =============================================================================

// AppendInventoryEvents adds a batch of events atomically.
func (s *Store) AppendInventoryEvents(ctx context.Context, events []ledger.InventoryEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer sqlTx.Rollback()

	query := `
		INSERT INTO inventory_events (id, product_id, quantity_delta, created_at)
		VALUES (?, ?, ?, ?)
	`
	for _, ev := range events {
		_, err := sqlTx.ExecContext(ctx, query,
			ev.ID,
			ev.ProductID,
			ev.QuantityDelta,
			ev.CreatedAt.UTC().Format(time.RFC3339),
		)
		if err != nil {
			return fmt.Errorf("failed to append inventory event: %w", err)
		}
	}

	return sqlTx.Commit()
}

// InventoryEvents returns events matching the given ids; missing ids are
// silently omitted.
func (s *Store) InventoryEvents(ctx context.Context, ids []ledger.EventID) ([]ledger.InventoryEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(ids) == 0 {
		return nil, nil
	}

	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	query := fmt.Sprintf(`
		SELECT id, product_id, quantity_delta, created_at
		FROM inventory_events
		WHERE id IN (%s)
	`, placeholders(len(ids)))

	return s.queryInventoryEvents(ctx, query, args...)
}

// InventoryEventsByProduct returns events for the given products, unordered.
// A nil slice means every event in the ledger; an empty non-nil slice means
// none.
func (s *Store) InventoryEventsByProduct(ctx context.Context, productIDs []ledger.ProductID) ([]ledger.InventoryEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if productIDs == nil {
		query := `
			SELECT id, product_id, quantity_delta, created_at
			FROM inventory_events
		`
		return s.queryInventoryEvents(ctx, query)
	}
	if len(productIDs) == 0 {
		return nil, nil
	}

	args := make([]any, len(productIDs))
	for i, id := range productIDs {
		args[i] = id
	}
	query := fmt.Sprintf(`
		SELECT id, product_id, quantity_delta, created_at
		FROM inventory_events
		WHERE product_id IN (%s)
	`, placeholders(len(productIDs)))

	return s.queryInventoryEvents(ctx, query, args...)
}

func (s *Store) queryInventoryEvents(ctx context.Context, query string, args ...any) ([]ledger.InventoryEvent, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query inventory events: %w", err)
	}
	defer rows.Close()

	var events []ledger.InventoryEvent
	for rows.Next() {
		var (
			ev        ledger.InventoryEvent
			createdAt string
		)
		if err := rows.Scan(&ev.ID, &ev.ProductID, &ev.QuantityDelta, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan inventory event: %w", err)
		}
		ev.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		events = append(events, ev)
	}

	return events, rows.Err()
}

// =============================================================================
// SALE EVENTS (ledger.SaleStore interface)
// =============================================================================

// AppendSaleEvents adds a batch of events atomically.
func (s *Store) AppendSaleEvents(ctx context.Context, events []ledger.SaleEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer sqlTx.Rollback()

	query := `
		INSERT INTO sale_events (id, product_id, quantity, total_price, created_at)
		VALUES (?, ?, ?, ?, ?)
	`
	for _, ev := range events {
		_, err := sqlTx.ExecContext(ctx, query,
			ev.ID,
			ev.ProductID,
			ev.Quantity,
			ev.TotalPrice.String(),
			ev.CreatedAt.UTC().Format(time.RFC3339),
		)
		if err != nil {
			return fmt.Errorf("failed to append sale event: %w", err)
		}
	}

	return sqlTx.Commit()
}

// SaleEventsByRange returns sales in [start, end] inclusive at day
// granularity, ordered by CreatedAt ascending.
func (s *Store) SaleEventsByRange(ctx context.Context, start, end time.Time) ([]ledger.SaleEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// RFC3339 UTC strings sort lexicographically, so string comparison in
	// SQL matches time comparison.
	from, to := ledger.DayRange(start, end)

	query := `
		SELECT id, product_id, quantity, total_price, created_at
		FROM sale_events
		WHERE created_at >= ? AND created_at < ?
		ORDER BY created_at ASC
	`

	rows, err := s.db.QueryContext(ctx, query,
		from.Format(time.RFC3339), to.Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("failed to query sale events: %w", err)
	}
	defer rows.Close()

	var events []ledger.SaleEvent
	for rows.Next() {
		var (
			ev         ledger.SaleEvent
			totalPrice string
			createdAt  string
		)
		if err := rows.Scan(&ev.ID, &ev.ProductID, &ev.Quantity, &totalPrice, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan sale event: %w", err)
		}
		ev.TotalPrice = mustDecimal(totalPrice)
		ev.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		events = append(events, ev)
	}

	return events, rows.Err()
}

// =============================================================================
// HELPERS
// =============================================================================

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

func mustDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
