// Package store persists positions in a local SQLite database. Persistence
// is a collaborator concern: the engine only ever sees the []folio.Position
// snapshot that List returns.
package store

import (
	"database/sql"
	"fmt"

	// Register sqlite3 driver
	_ "github.com/mattn/go-sqlite3"
	"github.com/nvannier/folio"
	"github.com/nvannier/folio/date"
	"github.com/shopspring/decimal"
)

// Store is a SQLite-backed position repository.
type Store struct{ db *sql.DB }

// Open opens (creating if needed) the database at path and ensures the
// schema. Decimal amounts are stored as TEXT to keep them exact; dates are
// ISO-8601 TEXT so the file stays inspectable with the sqlite3 shell.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("cannot open position store %q: %w", path, err)
	}
	s := &Store{db: db}
	if err := s.init(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) init() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS positions(
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		instrument TEXT NOT NULL,
		shares TEXT NOT NULL,
		cost_basis TEXT NOT NULL,
		purchase_date TEXT NOT NULL,
		target_weight REAL
	)`)
	return err
}

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }

// Add validates and inserts a position, returning it with its assigned ID.
func (s *Store) Add(p folio.Position) (folio.Position, error) {
	if err := p.Validate(); err != nil {
		return p, err
	}
	res, err := s.db.Exec(
		`INSERT INTO positions(instrument, shares, cost_basis, purchase_date, target_weight) VALUES(?,?,?,?,?)`,
		p.Instrument, p.Shares.String(), p.CostBasis.String(), p.PurchaseDate.String(), p.TargetWeight,
	)
	if err != nil {
		return p, fmt.Errorf("cannot insert position %s: %w", p.Instrument, err)
	}
	p.ID, err = res.LastInsertId()
	return p, err
}

// Delete removes a position by ID. Deleting an unknown ID is an error, so a
// typo never silently succeeds.
func (s *Store) Delete(id int64) error {
	res, err := s.db.Exec(`DELETE FROM positions WHERE id=?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("no position with id %d", id)
	}
	return nil
}

// List returns all positions ordered by purchase date, then ID.
func (s *Store) List() ([]folio.Position, error) {
	rows, err := s.db.Query(
		`SELECT id, instrument, shares, cost_basis, purchase_date, target_weight
		 FROM positions ORDER BY purchase_date ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var positions []folio.Position
	for rows.Next() {
		var p folio.Position
		var shares, cost, purchased string
		var weight sql.NullFloat64
		if err := rows.Scan(&p.ID, &p.Instrument, &shares, &cost, &purchased, &weight); err != nil {
			return nil, err
		}
		if p.Shares, err = decimal.NewFromString(shares); err != nil {
			return nil, fmt.Errorf("position %d has invalid shares %q: %w", p.ID, shares, err)
		}
		if p.CostBasis, err = decimal.NewFromString(cost); err != nil {
			return nil, fmt.Errorf("position %d has invalid cost basis %q: %w", p.ID, cost, err)
		}
		if p.PurchaseDate, err = date.Parse(purchased); err != nil {
			return nil, fmt.Errorf("position %d: %w", p.ID, err)
		}
		if weight.Valid {
			p.TargetWeight = &weight.Float64
		}
		positions = append(positions, p)
	}
	return positions, rows.Err()
}
