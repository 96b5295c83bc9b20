package history

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// New creates a Store backed by the predictions table.
func New(db *sql.DB) Store {
	return &store{
		db: db,
	}
}

// Add inserts record. Records with an ID that already exists are ignored so
// redelivered events do not duplicate history.
func (s *store) Add(record *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	numbers, err := msgpack.Marshal(record.Numbers)
	if err != nil {
		return fmt.Errorf("failed to encode prediction values: %w", err)
	}
	texts, err := msgpack.Marshal(record.Texts)
	if err != nil {
		return fmt.Errorf("failed to encode prediction labels: %w", err)
	}

	query := `
		INSERT INTO predictions (id, home_team, away_team, country, league, schema_name, values_blob, labels_blob, home_share, away_share, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING`
	res, err := s.db.Exec(query,
		record.ID, record.Home, record.Away, record.Country, record.League, record.Schema,
		numbers, texts, record.HomeShare, record.AwayShare, record.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert prediction %s: %w", record.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		log.Debug("Prediction already recorded", "id", record.ID)
		return nil
	}
	log.Debug("Recorded prediction", "id", record.ID, "home", record.Home, "away", record.Away)
	return nil
}

// List returns up to limit records, newest first.
func (s *store) List(limit int) ([]*Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		SELECT id, home_team, away_team, country, league, schema_name, values_blob, labels_blob, home_share, away_share, created_at
		FROM predictions
		ORDER BY created_at DESC, id`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query predictions: %w", err)
	}
	defer rows.Close()

	records := []*Record{}
	for rows.Next() {
		var r Record
		var numbers, texts []byte
		var createdAt int64
		if err := rows.Scan(&r.ID, &r.Home, &r.Away, &r.Country, &r.League, &r.Schema,
			&numbers, &texts, &r.HomeShare, &r.AwayShare, &createdAt); err != nil {
			log.Error("Failed to scan prediction row", "error", err)
			continue
		}
		if len(numbers) > 0 {
			if err := msgpack.Unmarshal(numbers, &r.Numbers); err != nil {
				log.Error("Failed to decode prediction values", "error", err, "id", r.ID)
			}
		}
		if len(texts) > 0 {
			if err := msgpack.Unmarshal(texts, &r.Texts); err != nil {
				log.Error("Failed to decode prediction labels", "error", err, "id", r.ID)
			}
		}
		r.CreatedAt = time.UnixMilli(createdAt).UTC()
		records = append(records, &r)
	}
	return records, rows.Err()
}

// Count returns the number of recorded predictions.
func (s *store) Count() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM predictions").Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
