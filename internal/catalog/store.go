package catalog

import (
	"database/sql"
	"fmt"

	"github.com/charmbracelet/log"
)

// NewStore creates a CatalogStore backed by the teams table.
func NewStore(db *sql.DB) CatalogStore {
	return &store{
		db: db,
	}
}

// ReplaceEntries swaps the stored catalog for entries in one transaction.
func (s *store) ReplaceEntries(entries []TeamEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}

	if _, err := tx.Exec("DELETE FROM teams"); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to clear teams: %w", err)
	}

	stmt, err := tx.Prepare("INSERT OR IGNORE INTO teams (country, league, team) VALUES (?, ?, ?)")
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	inserted := 0
	for _, e := range entries {
		e = e.normalized()
		if !e.valid() {
			continue
		}
		if _, err := stmt.Exec(e.Country, e.League, e.Team); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to insert team %s: %w", e.Team, err)
		}
		inserted++
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	log.Info("Stored team catalog", "teams", inserted)
	return nil
}

// GetEntries returns every stored entry ordered by country, league and team.
func (s *store) GetEntries() ([]TeamEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query("SELECT country, league, team FROM teams ORDER BY country, league, team")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []TeamEntry
	for rows.Next() {
		var e TeamEntry
		if err := rows.Scan(&e.Country, &e.League, &e.Team); err != nil {
			log.Error("Failed to scan team row", "error", err)
			continue
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// LoadStore builds a catalog from the entries held by s.
func LoadStore(s CatalogStore) (*Catalog, error) {
	entries, err := s.GetEntries()
	if err != nil {
		return nil, &DataLoadError{Source: "database", Err: err}
	}
	return New(entries), nil
}
