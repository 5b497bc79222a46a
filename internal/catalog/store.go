package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
)

// Store reads and writes package definitions in the application database.
// Every Load returns a fresh Catalog value, so callers never share state.
type Store struct {
	db *sql.DB
}

// NewStore returns a Store backed by db.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Load returns the stored catalog in sort order. An empty table yields the
// built-in catalog.
func (s *Store) Load(ctx context.Context) (Catalog, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT key, name, interior_rate, elevation_rate, discount_min, discount_max, features_json, rules_json
		FROM packages
		ORDER BY sort_order, key
	`)
	if err != nil {
		return Catalog{}, fmt.Errorf("query packages: %w", err)
	}
	defer rows.Close()

	pkgs := make([]Package, 0)
	for rows.Next() {
		var p Package
		var featuresJSON, rulesJSON string
		if err := rows.Scan(&p.Key, &p.Name, &p.InteriorRate, &p.ElevationRate, &p.DiscountMin, &p.DiscountMax, &featuresJSON, &rulesJSON); err != nil {
			return Catalog{}, fmt.Errorf("scan package: %w", err)
		}
		if err := json.Unmarshal([]byte(featuresJSON), &p.Features); err != nil {
			return Catalog{}, fmt.Errorf("decode features of %s: %w", p.Key, err)
		}
		if err := json.Unmarshal([]byte(rulesJSON), &p.Rules); err != nil {
			return Catalog{}, fmt.Errorf("decode rules of %s: %w", p.Key, err)
		}
		pkgs = append(pkgs, p)
	}
	if err := rows.Err(); err != nil {
		return Catalog{}, fmt.Errorf("iterate packages: %w", err)
	}

	if len(pkgs) == 0 {
		return Default(), nil
	}

	c, err := New(pkgs...)
	if err != nil {
		return Catalog{}, fmt.Errorf("build stored catalog: %w", err)
	}
	return c, nil
}

// Save updates an existing package definition.
func (s *Store) Save(ctx context.Context, p Package) error {
	if err := p.Validate(); err != nil {
		return err
	}

	featuresJSON, rulesJSON, err := encodeLists(p)
	if err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE packages
		SET
			name = ?,
			interior_rate = ?,
			elevation_rate = ?,
			discount_min = ?,
			discount_max = ?,
			features_json = ?,
			rules_json = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE key = ?
	`, p.Name, p.InteriorRate, p.ElevationRate, p.DiscountMin, p.DiscountMax, featuresJSON, rulesJSON, p.Key)
	if err != nil {
		return fmt.Errorf("update package %s: %w", p.Key, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update package %s: %w", p.Key, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Insert adds p at position order. It is a no-op when the key exists and
// reports whether a row was written.
func Insert(ctx context.Context, db Execer, p Package, order int) (bool, error) {
	featuresJSON, rulesJSON, err := encodeLists(p)
	if err != nil {
		return false, err
	}

	result, err := db.ExecContext(ctx, `
		INSERT INTO packages (key, name, interior_rate, elevation_rate, discount_min, discount_max, features_json, rules_json, sort_order)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(key) DO NOTHING
	`, p.Key, p.Name, p.InteriorRate, p.ElevationRate, p.DiscountMin, p.DiscountMax, featuresJSON, rulesJSON, order)
	if err != nil {
		return false, fmt.Errorf("insert package %s: %w", p.Key, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("insert package %s: %w", p.Key, err)
	}
	return affected > 0, nil
}

// Execer is satisfied by *sql.DB and *sql.Tx.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func encodeLists(p Package) (string, string, error) {
	features := p.Features
	if features == nil {
		features = []string{}
	}
	rules := p.Rules
	if rules == nil {
		rules = []string{}
	}

	featuresJSON, err := json.Marshal(features)
	if err != nil {
		return "", "", fmt.Errorf("encode features of %s: %w", p.Key, err)
	}
	rulesJSON, err := json.Marshal(rules)
	if err != nil {
		return "", "", fmt.Errorf("encode rules of %s: %w", p.Key, err)
	}
	return string(featuresJSON), string(rulesJSON), nil
}
