// internal/adapters/out/sqlite/cart_repository_sqlite.go
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	cartdom "tableside/internal/domain/cart"
)

//go:embed schema.sql
var schemaSQL string

// CartRepositorySQLite implements cart.Repository on a local SQLite file.
// Carts are stored as JSON documents keyed by session id; the repository is
// the durable backend option of the reference service.
type CartRepositorySQLite struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path and applies the schema.
func Open(path string) (*CartRepositorySQLite, error) {
	p := strings.TrimSpace(path)
	if p == "" {
		return nil, errors.New("cart_repository_sqlite: path is empty")
	}

	db, err := sql.Open("sqlite", p)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", p, err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &CartRepositorySQLite{db: db}, nil
}

// Close closes the underlying database.
func (r *CartRepositorySQLite) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

// GetBySessionID returns (nil, nil) if not found (nil policy).
func (r *CartRepositorySQLite) GetBySessionID(ctx context.Context, sessionID string) (*cartdom.Cart, error) {
	sid := strings.TrimSpace(sessionID)
	if sid == "" {
		return nil, errors.New("cart_repository_sqlite: sessionID is empty")
	}

	var doc string
	err := r.db.QueryRowContext(ctx,
		`SELECT document FROM carts WHERE session_id = ?`, sid,
	).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select cart %s: %w", sid, err)
	}

	var c cartdom.Cart
	if err := json.Unmarshal([]byte(doc), &c); err != nil {
		return nil, fmt.Errorf("decode cart %s: %w", sid, err)
	}
	// The key column is the source of truth.
	c.SessionID = sid
	return &c, nil
}

func (r *CartRepositorySQLite) Upsert(ctx context.Context, c *cartdom.Cart) error {
	if c == nil {
		return errors.New("cart_repository_sqlite: cart is nil")
	}
	if err := c.Validate(); err != nil {
		return err
	}

	doc, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode cart %s: %w", c.SessionID, err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO carts (session_id, document, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(session_id) DO UPDATE SET document = excluded.document, updated_at = excluded.updated_at`,
		c.SessionID, string(doc), c.UpdatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("upsert cart %s: %w", c.SessionID, err)
	}
	return nil
}

func (r *CartRepositorySQLite) DeleteBySessionID(ctx context.Context, sessionID string) error {
	sid := strings.TrimSpace(sessionID)
	if sid == "" {
		return errors.New("cart_repository_sqlite: sessionID is empty")
	}

	if _, err := r.db.ExecContext(ctx, `DELETE FROM carts WHERE session_id = ?`, sid); err != nil {
		return fmt.Errorf("delete cart %s: %w", sid, err)
	}
	return nil
}
