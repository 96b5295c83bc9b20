package catalog

import (
	"database/sql"
	"sync"
)

// TeamEntry is a single row of the team hierarchy.
type TeamEntry struct {
	Country string `json:"country"`
	League  string `json:"league"`
	Team    string `json:"team"`
}

// Catalog is an immutable country -> league -> teams index.
// Team lists are sorted ascending and free of duplicates.
type Catalog struct {
	index map[string]map[string][]string
	size  int
}

// store persists catalog entries in the teams table.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}
